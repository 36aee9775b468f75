package asm

import (
	"fmt"
)

// TokenKind is the lexical class of a token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_EOF         = TokenKind(0)  // eof
	TOKEN_DEFINE      = TokenKind(1)  // define
	TOKEN_IDENTIFIER  = TokenKind(2)  // identifier
	TOKEN_LABEL       = TokenKind(3)  // label
	TOKEN_NUMBER      = TokenKind(4)  // number
	TOKEN_REGISTER    = TokenKind(5)  // register
	TOKEN_MEMORY      = TokenKind(6)  // memory
	TOKEN_INSTRUCTION = TokenKind(7)  // instruction
	TOKEN_EXPRESSION  = TokenKind(8)  // expression
	TOKEN_COMMENT     = TokenKind(9)  // comment
	TOKEN_SEMICOLON   = TokenKind(10) // semicolon
)

// Token is a single lexical token.
type Token struct {
	Kind   TokenKind
	Text   string // Source lexeme, label or identifier name, comment or expression body.
	Value  uint8  // Number, register index, or memory address.
	LineNo int
	Column int
}

// Operand returns true if the token may appear as an instruction operand.
func (tok Token) Operand() bool {
	switch tok.Kind {
	case TOKEN_IDENTIFIER, TOKEN_NUMBER, TOKEN_REGISTER, TOKEN_MEMORY, TOKEN_EXPRESSION:
		return true
	}
	return false
}

// Terminator returns true if the token ends a statement.
func (tok Token) Terminator() bool {
	switch tok.Kind {
	case TOKEN_EOF, TOKEN_SEMICOLON, TOKEN_COMMENT:
		return true
	}
	return false
}

// String returns a debug representation of the token.
func (tok Token) String() string {
	switch tok.Kind {
	case TOKEN_EOF, TOKEN_DEFINE, TOKEN_SEMICOLON:
		return tok.Kind.String()
	case TOKEN_NUMBER, TOKEN_REGISTER, TOKEN_MEMORY:
		return fmt.Sprintf("%v(%d)", tok.Kind, tok.Value)
	default:
		return fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
}
