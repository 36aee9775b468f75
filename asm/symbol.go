package asm

import (
	"iter"
	"log"
	"maps"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/rasm/cpu"
	"github.com/ezrec/rasm/internal"
)

// SymbolKind is the kind of binding of a symbol.
type SymbolKind int

//go:generate go tool stringer -linecomment -type=SymbolKind
const (
	SYMBOL_DEFINE = SymbolKind(0) // define
	SYMBOL_LABEL  = SymbolKind(1) // label
)

// Symbol is a name bound to a constant or to an instruction address.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Value  int // Constant value, or instruction address of a label.
	LineNo int // Line of the definition, 0 if predefined.
}

// maxExpressionSteps bounds the work of a single $(...) evaluation.
const maxExpressionSteps = 1 << 16

// Symbols returns an iterator over the symbols of one kind.
func (asm *Assembler) Symbols(kind SymbolKind) iter.Seq2[string, Symbol] {
	return internal.IterSeq2Filter(maps.All(asm.Symbol), func(name string, sym Symbol) bool {
		return sym.Kind == kind
	})
}

// BuildSymbols records every .define constant and label address of the
// token list. Label addresses count instruction statements only.
func (asm *Assembler) BuildSymbols(tokens []Token) (err error) {
	asm.Symbol = make(map[string]Symbol)

	for name, value := range internal.IterSeq2Concat(cpu.Defines(), maps.All(asm.predefine)) {
		asm.Symbol[name] = Symbol{Name: name, Kind: SYMBOL_DEFINE, Value: int(value)}
	}

	ip := 0
	for stmt := range statements(tokens) {
		switch stmt.kind {
		case stmtInstruction:
			ip++
		case stmtLabel:
			err = asm.bind(Symbol{Name: stmt.head.Text, Kind: SYMBOL_LABEL, Value: ip, LineNo: stmt.head.LineNo})
			if err != nil {
				err = sourceError(stmt.head, err)
				return
			}
		case stmtDefine:
			err = asm.parseDefine(stmt)
			if err != nil {
				return
			}
		}
	}

	return
}

// bind adds a new symbol to the table.
func (asm *Assembler) bind(sym Symbol) (err error) {
	prior, ok := asm.Symbol[sym.Name]
	if ok {
		err = ErrSymbolRedefined{Name: sym.Name, LineNo: prior.LineNo}
		return
	}

	if asm.Verbose {
		log.Printf("%v: %v %v = %v", sym.LineNo, sym.Kind, sym.Name, sym.Value)
	}

	asm.Symbol[sym.Name] = sym
	return
}

// lookup finds a symbol by name.
func (asm *Assembler) lookup(name string) (sym Symbol, err error) {
	sym, ok := asm.Symbol[name]
	if !ok {
		err = ErrSymbolMissing(name)
	}
	return
}

// parseDefine handles `.define NAME VALUE`.
func (asm *Assembler) parseDefine(stmt statement) (err error) {
	if len(stmt.args) != 2 {
		err = sourceError(stmt.head, ErrDefineSyntax)
		return
	}

	name := stmt.args[0]
	if name.Kind != TOKEN_IDENTIFIER {
		err = sourceError(name, ErrDefineSyntax)
		return
	}

	arg := stmt.args[1]
	var value int
	switch arg.Kind {
	case TOKEN_NUMBER:
		value = int(arg.Value)
	case TOKEN_IDENTIFIER:
		var sym Symbol
		sym, err = asm.lookup(arg.Text)
		if err == nil && sym.Kind != SYMBOL_DEFINE {
			err = ErrOperandKind
		}
		value = sym.Value
	case TOKEN_EXPRESSION:
		value, err = asm.evaluate(arg.Text)
	default:
		err = ErrDefineSyntax
	}
	if err == nil && (value < 0 || value > 0xff) {
		err = ErrValueRange
	}
	if err != nil {
		err = sourceError(arg, err)
		return
	}

	err = asm.bind(Symbol{Name: name.Text, Kind: SYMBOL_DEFINE, Value: value, LineNo: name.LineNo})
	if err != nil {
		err = sourceError(name, err)
		return
	}

	return
}

// evaluate does compile-time $(...) evaluations over the known symbols.
// The text must be a single starlark expression.
func (asm *Assembler) evaluate(expr string) (value int, err error) {
	defer func() {
		if err != nil {
			err = ErrParseExpression{Expr: expr, Err: err}
		}
	}()

	thread := starlark.Thread{Name: "rasm"}
	thread.SetMaxExecutionSteps(maxExpressionSteps)
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, sym := range asm.Symbol {
		pred[name] = starlark.MakeInt(sym.Value)
	}

	rc, err := starlark.EvalOptions(&opts, &thread, "expr", expr, pred)
	if err != nil {
		return
	}

	st_int, ok := rc.(starlark.Int)
	if !ok {
		err = ErrExpression
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrValueRange
		return
	}

	value = int(st_int64)
	return
}

// sourceError attaches the source position of tok to err.
func sourceError(tok Token, err error) error {
	text := tok.Text
	if tok.Kind == TOKEN_EXPRESSION {
		text = "$(" + text + ")"
	}
	return &ErrSource{LineNo: tok.LineNo, Column: tok.Column, Text: text, Err: err}
}
