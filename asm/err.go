package asm

import (
	"errors"

	"github.com/ezrec/rasm/translate"
)

var f = translate.From

var (
	// Error classes
	ErrLexical = errors.New(f("lexical error"))
	ErrSymbol  = errors.New(f("symbol error"))
	ErrSyntax  = errors.New(f("syntax error"))
)

// classError is an error kind that also matches its class.
type classError struct {
	class error
	msg   string
}

func (err *classError) Error() string {
	return err.msg
}

func (err *classError) Is(target error) bool {
	return target == err.class
}

func newError(class error, msg string) error {
	return &classError{class: class, msg: msg}
}

var (
	// Scanner errors
	ErrRegisterInvalid = newError(ErrLexical, f("register invalid"))
	ErrMemoryInvalid   = newError(ErrLexical, f("memory address invalid"))
	ErrNumberOverflow  = newError(ErrLexical, f("number overflow"))
	ErrUnterminated    = newError(ErrLexical, f("unterminated expression"))

	// Symbol errors
	ErrSymbolDuplicate = newError(ErrSymbol, f("symbol duplicated"))
	ErrSymbolUndefined = newError(ErrSymbol, f("symbol undefined"))

	// Statement errors
	ErrDefineSyntax       = newError(ErrSyntax, f(".define syntax"))
	ErrInstructionInvalid = newError(ErrSyntax, f("instruction invalid"))
	ErrOperandCount       = newError(ErrSyntax, f("operand count"))
	ErrOperandKind        = newError(ErrSyntax, f("operand kind"))
	ErrOperandStray       = newError(ErrSyntax, f("operand outside of instruction"))
	ErrValueRange         = newError(ErrSyntax, f("value out of range"))
	ErrExpression         = newError(ErrSyntax, f("expression invalid"))
)

// ErrSymbolMissing names a symbol that was referenced but never defined.
type ErrSymbolMissing string

func (err ErrSymbolMissing) Error() string {
	return f("symbol %v missing", string(err))
}

func (err ErrSymbolMissing) Unwrap() error {
	return ErrSymbolUndefined
}

// ErrSymbolRedefined names a symbol defined more than once.
type ErrSymbolRedefined struct {
	Name   string
	LineNo int // Line of the first definition, 0 if predefined.
}

func (err ErrSymbolRedefined) Error() string {
	return f("symbol %v already defined at line %d", err.Name, err.LineNo)
}

func (err ErrSymbolRedefined) Unwrap() error {
	return ErrSymbolDuplicate
}

// ErrParseExpression is an expression that could not be evaluated.
type ErrParseExpression struct {
	Expr string
	Err  error
}

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
}

func (err ErrParseExpression) Unwrap() []error {
	return []error{ErrExpression, err.Err}
}

// ErrSource indicates the source location of an assembly error.
type ErrSource struct {
	LineNo int
	Column int
	Text   string
	Err    error
}

func (err *ErrSource) Error() string {
	return f("line %d:%d '%v' %v", err.LineNo, err.Column, err.Text, err.Err)
}

func (err *ErrSource) Unwrap() error {
	return err.Err
}
