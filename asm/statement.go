package asm

import (
	"iter"
)

// stmtKind is the kind of a source statement.
type stmtKind int

const (
	stmtInstruction = stmtKind(iota) // mnemonic and operands
	stmtDefine                       // .define NAME VALUE
	stmtLabel                        // NAME:
	stmtUnknown                      // identifier in mnemonic position
	stmtStray                        // operand outside of a statement
)

// statement is a group of tokens; a head token followed by its operands.
type statement struct {
	kind stmtKind
	head Token
	args []Token
}

// Words returns the source lexemes of the statement.
func (stmt statement) Words() (words []string) {
	for _, tok := range append([]Token{stmt.head}, stmt.args...) {
		switch tok.Kind {
		case TOKEN_EXPRESSION:
			words = append(words, "$("+tok.Text+")")
		case TOKEN_LABEL:
			words = append(words, tok.Text+":")
		default:
			words = append(words, tok.Text)
		}
	}

	return
}

// statements splits a token list into statements.
//
// A statement runs from its head token up to a semicolon, comment, end of
// input, or the next mnemonic, directive or label. Both the symbol pass and
// the resolve pass walk these same statements, so instruction addresses
// agree between them.
func statements(tokens []Token) iter.Seq[statement] {
	return func(yield func(stmt statement) bool) {
		for n := 0; n < len(tokens); n++ {
			tok := tokens[n]
			if tok.Terminator() {
				continue
			}

			stmt := statement{head: tok}
			switch tok.Kind {
			case TOKEN_LABEL:
				stmt.kind = stmtLabel
				if !yield(stmt) {
					return
				}
				continue
			case TOKEN_INSTRUCTION:
				stmt.kind = stmtInstruction
			case TOKEN_DEFINE:
				stmt.kind = stmtDefine
			case TOKEN_IDENTIFIER:
				stmt.kind = stmtUnknown
			default:
				stmt.kind = stmtStray
			}

			for n+1 < len(tokens) && tokens[n+1].Operand() {
				n++
				stmt.args = append(stmt.args, tokens[n])
			}

			if !yield(stmt) {
				return
			}
		}
	}
}
