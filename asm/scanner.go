package asm

import (
	"strconv"
	"unicode"

	"github.com/ezrec/rasm/cpu"
)

// Scanner splits assembly source text into tokens.
type Scanner struct {
	src    []rune
	pos    int // index of the next rune to consume
	line   int // current 1-based source line
	column int // current 1-based source column
}

// NewScanner creates a scanner over the source text.
func NewScanner(text string) *Scanner {
	return &Scanner{src: []rune(text), line: 1, column: 1}
}

// Scan tokenizes the whole source text. The returned tokens always end with
// a TOKEN_EOF token. Scanning stops at the first error.
func Scan(text string) (tokens []Token, err error) {
	sc := NewScanner(text)
	for {
		var tok Token
		tok, err = sc.Next()
		if err != nil {
			return
		}
		tokens = append(tokens, tok)
		if tok.Kind == TOKEN_EOF {
			return
		}
	}
}

func (sc *Scanner) atEnd() bool {
	return sc.pos >= len(sc.src)
}

// peek returns the rune n positions ahead without advancing, or 0 past the end.
func (sc *Scanner) peek(n int) rune {
	if sc.pos+n >= len(sc.src) {
		return 0
	}
	return sc.src[sc.pos+n]
}

// advance consumes one rune.
func (sc *Scanner) advance() {
	if sc.atEnd() {
		return
	}
	if sc.src[sc.pos] == '\n' {
		sc.line++
		sc.column = 0
	}
	sc.pos++
	sc.column++
}

func (sc *Scanner) skipWhitespace() {
	for !sc.atEnd() && unicode.IsSpace(sc.peek(0)) {
		sc.advance()
	}
}

// lexeme returns the source text from start to the current position.
func (sc *Scanner) lexeme(start int) string {
	return string(sc.src[start:sc.pos])
}

// Next returns the next token. At the end of input it returns TOKEN_EOF,
// and keeps doing so on every later call.
func (sc *Scanner) Next() (tok Token, err error) {
	sc.skipWhitespace()
	defer sc.skipWhitespace()

	for !sc.atEnd() {
		line, column := sc.line, sc.column
		start := sc.pos

		switch r := sc.peek(0); {
		case r == ';':
			sc.advance()
			tok = Token{Kind: TOKEN_SEMICOLON, Text: ";"}
		case r == '#' || r == '/':
			for !sc.atEnd() && sc.peek(0) != '\n' {
				sc.advance()
			}
			tok = Token{Kind: TOKEN_COMMENT, Text: sc.lexeme(start)}
		case r == '$' && sc.peek(1) == '(':
			tok, err = sc.scanExpression()
		case unicode.IsLetter(r) || r == '.':
			tok, err = sc.scanWord()
		case r >= '0' && r <= '9':
			tok, err = sc.scanNumber()
		default:
			// Unknown character; skip and retry.
			sc.advance()
			sc.skipWhitespace()
			continue
		}

		tok.LineNo = line
		tok.Column = column
		if err != nil {
			err = &ErrSource{LineNo: line, Column: column, Text: sc.lexeme(start), Err: err}
		}
		return
	}

	tok = Token{Kind: TOKEN_EOF, LineNo: sc.line, Column: sc.column}
	return
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isIndexed returns true if word is prefix followed by a digit.
func isIndexed(word string, prefix byte) bool {
	return len(word) >= 2 && word[0] == prefix && isDigit(word[1])
}

// parseIndex parses the decimal suffix of a register or memory word.
func parseIndex(digits string, limit int, invalid error) (index uint8, err error) {
	for n := range len(digits) {
		if !isDigit(digits[n]) {
			err = invalid
			return
		}
	}

	value, perr := strconv.ParseUint(digits, 10, 8)
	if perr != nil || int(value) >= limit {
		err = invalid
		return
	}

	index = uint8(value)
	return
}

// scanWord scans an identifier-class word: directive, mnemonic, register,
// memory operand, label or identifier.
func (sc *Scanner) scanWord() (tok Token, err error) {
	start := sc.pos
	for !sc.atEnd() && isWordRune(sc.peek(0)) {
		sc.advance()
	}
	word := sc.lexeme(start)

	tok = Token{Kind: TOKEN_IDENTIFIER, Text: word}

	if _, ok := cpu.OpOf(word); ok {
		tok.Kind = TOKEN_INSTRUCTION
		return
	}

	switch {
	case word == ".define":
		tok.Kind = TOKEN_DEFINE
	case isIndexed(word, 'r'):
		tok.Kind = TOKEN_REGISTER
		tok.Value, err = parseIndex(word[1:], cpu.REGISTER_COUNT, ErrRegisterInvalid)
	case isIndexed(word, 'm'):
		tok.Kind = TOKEN_MEMORY
		tok.Value, err = parseIndex(word[1:], cpu.MEMORY_SIZE, ErrMemoryInvalid)
	case sc.peek(0) == ':':
		sc.advance()
		tok.Kind = TOKEN_LABEL
	}

	return
}

// scanNumber scans an unsigned 8-bit decimal number.
func (sc *Scanner) scanNumber() (tok Token, err error) {
	start := sc.pos
	for !sc.atEnd() && sc.peek(0) >= '0' && sc.peek(0) <= '9' {
		sc.advance()
	}
	digits := sc.lexeme(start)

	tok = Token{Kind: TOKEN_NUMBER, Text: digits}

	value, perr := strconv.ParseUint(digits, 10, 8)
	if perr != nil {
		err = ErrNumberOverflow
		return
	}

	tok.Value = uint8(value)
	return
}

// scanExpression scans a $(...) expression on a single line.
// The body, without the enclosing $( and ), is the token text.
// Parentheses inside quoted strings do not count towards nesting.
func (sc *Scanner) scanExpression() (tok Token, err error) {
	sc.advance() // $
	sc.advance() // (

	start := sc.pos
	depth := 1
	var quote rune
	for depth > 0 {
		if sc.atEnd() || sc.peek(0) == '\n' {
			err = ErrUnterminated
			return
		}
		r := sc.peek(0)
		switch {
		case quote != 0:
			if r == '\\' && sc.peek(1) != '\n' {
				sc.advance()
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
		}
		sc.advance()
	}

	tok = Token{Kind: TOKEN_EXPRESSION, Text: string(sc.src[start : sc.pos-1])}
	return
}
