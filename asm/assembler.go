// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"io"
	"log"
	"slices"

	"github.com/ezrec/rasm/cpu"
)

// Assembler is a two pass assembler for the rasm 8-bit machine.
type Assembler struct {
	Verbose bool              // If set, verbosely logs the assembler actions.
	Opcode  []cpu.Opcode      // List of generated opcodes.
	Symbol  map[string]Symbol // Map of defines and labels.

	predefine map[string]uint8 // Predefines
}

// Predefine defines a constant visible to every program, or replaces a prior predefine.
func (asm *Assembler) Predefine(name string, value uint8) {
	if asm.predefine == nil {
		asm.predefine = map[string]uint8{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Parse parses an input stream into a Program.
// Nothing is returned unless the whole input assembles.
func (asm *Assembler) Parse(input io.Reader) (prog *cpu.Program, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	tokens, err := Scan(string(text))
	if err != nil {
		return
	}

	err = asm.BuildSymbols(tokens)
	if err != nil {
		return
	}

	prog, err = asm.Resolve(tokens)
	return
}

// Resolve assembles the tokens into a Program, using the symbols from BuildSymbols.
func (asm *Assembler) Resolve(tokens []Token) (prog *cpu.Program, err error) {
	asm.Opcode = asm.Opcode[:0]

	for stmt := range statements(tokens) {
		switch stmt.kind {
		case stmtInstruction:
			var code cpu.Code
			code, err = asm.parseInstruction(stmt)
			if err != nil {
				return
			}
			opcode := cpu.Opcode{LineNo: stmt.head.LineNo, Ip: len(asm.Opcode), Words: stmt.Words(), Code: code}
			if asm.Verbose {
				log.Printf("%v: %03d %v", opcode.LineNo, opcode.Ip, code)
			}
			asm.Opcode = append(asm.Opcode, opcode)
		case stmtUnknown:
			err = sourceError(stmt.head, ErrInstructionInvalid)
			return
		case stmtStray:
			err = sourceError(stmt.head, ErrOperandStray)
			return
		}
	}

	prog = &cpu.Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// operand counts per operation.
var opArgs = map[cpu.CodeOp]int{
	cpu.OP_NOP:   0,
	cpu.OP_HALT:  0,
	cpu.OP_LDI:   2,
	cpu.OP_MOV:   2,
	cpu.OP_LOAD:  2,
	cpu.OP_STORE: 2,
	cpu.OP_JMP:   1,
}

// parseInstruction evaluates the operands of an instruction statement.
func (asm *Assembler) parseInstruction(stmt statement) (code cpu.Code, err error) {
	op, ok := cpu.OpOf(stmt.head.Text)
	if !ok {
		err = sourceError(stmt.head, ErrInstructionInvalid)
		return
	}

	need, ok := opArgs[op]
	if !ok {
		need = 3
	}
	if len(stmt.args) != need {
		err = sourceError(stmt.head, ErrOperandCount)
		return
	}

	args := stmt.args
	var arg int
	operand := func(parse func(tok Token) (uint8, error)) (value uint8) {
		if err != nil {
			return
		}
		tok := args[arg]
		arg++
		value, err = parse(tok)
		if err != nil {
			err = sourceError(tok, err)
		}
		return
	}

	switch {
	case op == cpu.OP_NOP:
		code = cpu.MakeCodeNop()
	case op == cpu.OP_HALT:
		code = cpu.MakeCodeHalt()
	case op == cpu.OP_LDI:
		dst := operand(asm.register)
		value := operand(asm.value)
		code = cpu.MakeCodeLdi(dst, value)
	case op == cpu.OP_MOV:
		src := operand(asm.register)
		dst := operand(asm.register)
		code = cpu.MakeCodeMov(src, dst)
	case op.Alu():
		src1 := operand(asm.register)
		src2 := operand(asm.register)
		dst := operand(asm.register)
		code = cpu.MakeCodeAlu(op, src1, src2, dst)
	case op == cpu.OP_LOAD:
		addr := operand(asm.address)
		dst := operand(asm.register)
		code = cpu.MakeCodeLoad(addr, dst)
	case op == cpu.OP_STORE:
		addr := operand(asm.address)
		src := operand(asm.register)
		code = cpu.MakeCodeStore(addr, src)
	case op == cpu.OP_JMP:
		tok := args[0]
		var target int
		target, err = asm.label(tok)
		if err != nil {
			err = sourceError(tok, err)
			return
		}
		code = cpu.MakeCodeJmp(target)
	}

	return
}

// register returns the index of a register operand.
func (asm *Assembler) register(tok Token) (index uint8, err error) {
	if tok.Kind != TOKEN_REGISTER {
		err = ErrOperandKind
		return
	}

	index = tok.Value
	return
}

// value returns the value of a number, symbol, or expression operand.
func (asm *Assembler) value(tok Token) (value uint8, err error) {
	var v int
	switch tok.Kind {
	case TOKEN_NUMBER:
		value = tok.Value
		return
	case TOKEN_IDENTIFIER:
		var sym Symbol
		sym, err = asm.lookup(tok.Text)
		v = sym.Value
	case TOKEN_EXPRESSION:
		v, err = asm.evaluate(tok.Text)
	default:
		err = ErrOperandKind
	}
	if err != nil {
		return
	}

	if v < 0 || v > 0xff {
		err = ErrValueRange
		return
	}

	value = uint8(v)
	return
}

// address returns the memory address of a memory operand, or of a
// number, define or expression naming a memory cell.
func (asm *Assembler) address(tok Token) (addr uint8, err error) {
	switch tok.Kind {
	case TOKEN_MEMORY:
		addr = tok.Value
		return
	case TOKEN_IDENTIFIER:
		var sym Symbol
		sym, err = asm.lookup(tok.Text)
		if err == nil && sym.Kind != SYMBOL_DEFINE {
			err = ErrOperandKind
		}
		if err != nil {
			return
		}
	}

	addr, err = asm.value(tok)
	if err != nil {
		return
	}

	if int(addr) >= cpu.MEMORY_SIZE {
		err = ErrValueRange
		return
	}

	return
}

// label returns the instruction address of a label operand.
func (asm *Assembler) label(tok Token) (target int, err error) {
	if tok.Kind != TOKEN_IDENTIFIER {
		err = ErrOperandKind
		return
	}

	sym, err := asm.lookup(tok.Text)
	if err != nil {
		return
	}

	if sym.Kind != SYMBOL_LABEL {
		err = ErrOperandKind
		return
	}

	target = sym.Value
	return
}
