package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rasm/cpu"
)

func parse(asm *Assembler, program []string) (*cpu.Program, error) {
	return asm.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func codesOf(prog *cpu.Program) (codes []cpu.Code) {
	for _, code := range prog.Codes() {
		codes = append(codes, code)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal(16, asm.Symbol["REG_COUNT"].Value)
	assert.Equal(128, asm.Symbol["MEM_SIZE"].Value)

	prog, err = asm.Parse(strings.NewReader("# only a comment\n;;;\n"))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
}

func TestAssemblerDefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".define FOO 5",
		"ldi r0 FOO;",
		"ldi r1 3;",
		"add r0 r1 r2;",
		"halt;",
	}

	prog, err := parse(asm, program)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []cpu.Opcode{
		{LineNo: 2, Ip: 0, Words: []string{"ldi", "r0", "FOO"}, Code: cpu.MakeCodeLdi(0, 5)},
		{LineNo: 3, Ip: 1, Words: []string{"ldi", "r1", "3"}, Code: cpu.MakeCodeLdi(1, 3)},
		{LineNo: 4, Ip: 2, Words: []string{"add", "r0", "r1", "r2"}, Code: cpu.MakeCodeAlu(cpu.OP_ADD, 0, 1, 2)},
		{LineNo: 5, Ip: 3, Words: []string{"halt"}, Code: cpu.MakeCodeHalt()},
	}

	assert.Equal(expected, prog.Opcodes)
	assert.Equal(5, asm.Symbol["FOO"].Value)
	assert.NoError(prog.Validate())
}

func TestAssemblerInstructions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		"nop",
		"ldi r15 255",
		"mov r15 r0",
		"add r0 r1 r2",
		"sub r3 r4 r5",
		"and r6 r7 r8",
		"or r9 r10 r11",
		"xor r12 r13 r14",
		"nor r15 r0 r1",
		"lsh r2 r3 r4",
		"rsh r5 r6 r7",
		"load m0 r8",
		"store m127 r9",
		"halt",
	}

	prog, err := parse(asm, program)
	assert.NoError(err)

	assert.Equal([]cpu.Code{
		cpu.MakeCodeNop(),
		cpu.MakeCodeLdi(15, 255),
		cpu.MakeCodeMov(15, 0),
		cpu.MakeCodeAlu(cpu.OP_ADD, 0, 1, 2),
		cpu.MakeCodeAlu(cpu.OP_SUB, 3, 4, 5),
		cpu.MakeCodeAlu(cpu.OP_AND, 6, 7, 8),
		cpu.MakeCodeAlu(cpu.OP_OR, 9, 10, 11),
		cpu.MakeCodeAlu(cpu.OP_XOR, 12, 13, 14),
		cpu.MakeCodeAlu(cpu.OP_NOR, 15, 0, 1),
		cpu.MakeCodeAlu(cpu.OP_LSH, 2, 3, 4),
		cpu.MakeCodeAlu(cpu.OP_RSH, 5, 6, 7),
		cpu.MakeCodeLoad(0, 8),
		cpu.MakeCodeStore(127, 9),
		cpu.MakeCodeHalt(),
	}, codesOf(prog))

	for n, op := range prog.Opcodes {
		assert.Equal(n, op.Ip)
		assert.Equal(n+1, op.LineNo)
	}

	// Same mnemonics, with different separators, assemble the same.
	again, err := asm.Parse(strings.NewReader(strings.Join(program, "; ") + "; # trailing"))
	assert.NoError(err)
	assert.Equal(codesOf(prog), codesOf(again))
}

func TestAssemblerAddresses(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".define BASE 100",
		"load BASE r0",
		"load $(BASE + 27) r1",
		"store 5 r2",
		"store $(MEM_SIZE - 1) r3",
	}

	prog, err := parse(asm, program)
	assert.NoError(err)

	assert.Equal([]cpu.Code{
		cpu.MakeCodeLoad(100, 0),
		cpu.MakeCodeLoad(127, 1),
		cpu.MakeCodeStore(5, 2),
		cpu.MakeCodeStore(127, 3),
	}, codesOf(prog))
	assert.Equal([]string{"load", "$(BASE + 27)", "r1"}, prog.Opcodes[1].Words)
}

func TestAssemblerExpressionSymbols(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := parse(asm, []string{".define rc 5", "ldi r0 $(rc)"})
	assert.NoError(err)
	assert.Equal([]cpu.Code{cpu.MakeCodeLdi(0, 5)}, codesOf(prog))

	prog, err = parse(asm, []string{"nop", "rc: nop", "ldi r0 $(rc)", "load $(rc * 3) r1"})
	assert.NoError(err)
	assert.Equal(cpu.MakeCodeLdi(0, 1), prog.Opcodes[2].Code)
	assert.Equal(cpu.MakeCodeLoad(3, 1), prog.Opcodes[3].Code)

	prog, err = parse(asm, []string{`ldi r0 $(len(")") + len('(('))`})
	assert.NoError(err)
	assert.Equal(cpu.MakeCodeLdi(0, 3), prog.Opcodes[0].Code)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	forward := []string{
		"jmp target",
		"nop",
		"target: halt",
	}
	backward := []string{
		"jmp skip",
		"target: halt",
		"skip: jmp target",
	}

	asm := &Assembler{}

	prog, err := parse(asm, forward)
	assert.NoError(err)
	assert.Equal(cpu.MakeCodeJmp(2), prog.Opcodes[0].Code)

	prog, err = parse(asm, backward)
	assert.NoError(err)
	assert.Equal(cpu.MakeCodeJmp(2), prog.Opcodes[0].Code)
	assert.Equal(cpu.MakeCodeJmp(1), prog.Opcodes[2].Code)

	// Forward and backward references resolve to the same address.
	before := []string{"here: nop", "nop", "jmp here"}
	after := []string{"jmp here", "here: nop", "nop"}

	prog, err = parse(asm, before)
	assert.NoError(err)
	assert.Equal(0, prog.Opcodes[2].Code.Target)
	prog, err = parse(asm, after)
	assert.NoError(err)
	assert.Equal(1, prog.Opcodes[0].Code.Target)
	assert.Equal(asm.Symbol["here"].Value, prog.Opcodes[0].Code.Target)

	// Labels in the middle of lines, and multiple labels on one address.
	prog, err = parse(asm, []string{"a: b: ldi r0 a c: ldi r1 c d:", "jmp d"})
	assert.NoError(err)
	assert.Equal([]cpu.Code{
		cpu.MakeCodeLdi(0, 0),
		cpu.MakeCodeLdi(1, 1),
		cpu.MakeCodeJmp(2),
	}, codesOf(prog))
	assert.Equal(0, asm.Symbol["b"].Value)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		input  string
		err    error
		class  error
		lineNo int
		column int
	}){
		{"register_range", "nop\nldi r16 1", ErrRegisterInvalid, ErrLexical, 2, 5},
		{"register_range_late", "halt\nadd r0 r1 r16", ErrRegisterInvalid, ErrLexical, 2, 11},
		{"memory_range", "load m128 r0", ErrMemoryInvalid, ErrLexical, 1, 6},
		{"number_range", "ldi r0 256", ErrNumberOverflow, ErrLexical, 1, 8},
		{"undefined_label", "jmp undefined_label;", ErrSymbolUndefined, ErrSymbol, 1, 5},
		{"undefined_define", "ldi r0 FOO", ErrSymbolUndefined, ErrSymbol, 1, 8},
		{"undefined_address", "load NOWHERE r0", ErrSymbolUndefined, ErrSymbol, 1, 6},
		{"duplicate", "x: nop\nx: nop", ErrSymbolDuplicate, ErrSymbol, 2, 1},
		{"add_short", "add r0 r1", ErrOperandCount, ErrSyntax, 1, 1},
		{"add_long", "add r0 r1 r2 r3", ErrOperandCount, ErrSyntax, 1, 1},
		{"halt_args", "halt r0", ErrOperandCount, ErrSyntax, 1, 1},
		{"nop_args", "nop 5", ErrOperandCount, ErrSyntax, 1, 1},
		{"jmp_none", "jmp", ErrOperandCount, ErrSyntax, 1, 1},
		{"ldi_short", "ldi r0;", ErrOperandCount, ErrSyntax, 1, 1},
		{"ldi_comment", "ldi r0 # 5", ErrOperandCount, ErrSyntax, 1, 1},
		{"add_kind", "add r0 5 r2", ErrOperandKind, ErrSyntax, 1, 8},
		{"mov_kind", "mov r0 m1", ErrOperandKind, ErrSyntax, 1, 8},
		{"ldi_kind", "ldi 5 r0", ErrOperandKind, ErrSyntax, 1, 5},
		{"ldi_memory", "ldi r0 m5", ErrOperandKind, ErrSyntax, 1, 8},
		{"load_kind", "load r0 m1", ErrOperandKind, ErrSyntax, 1, 6},
		{"store_kind", "store m1 m2", ErrOperandKind, ErrSyntax, 1, 10},
		{"jmp_number", "jmp 0", ErrOperandKind, ErrSyntax, 1, 5},
		{"jmp_define", ".define L 0\njmp L", ErrOperandKind, ErrSyntax, 2, 5},
		{"load_label", "here: load here r0", ErrOperandKind, ErrSyntax, 1, 12},
		{"address_range", "store 128 r0", ErrValueRange, ErrSyntax, 1, 7},
		{"address_expr", "store $(MEM_SIZE) r0", ErrValueRange, ErrSyntax, 1, 7},
		{"value_range", "ldi r0 $(255 + 1)", ErrValueRange, ErrSyntax, 1, 8},
		{"value_expr", "ldi r0 $(1 / 0)", ErrExpression, ErrSyntax, 1, 8},
		{"stray", "nop\nr0 r1", ErrOperandStray, ErrSyntax, 2, 1},
		{"stray_number", "5;", ErrOperandStray, ErrSyntax, 1, 1},
		{"unknown", "nop\n  push r0", ErrInstructionInvalid, ErrSyntax, 2, 3},
		{"uppercase", "HALT", ErrInstructionInvalid, ErrSyntax, 1, 1},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.input))
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.ErrorIs(err, entry.class, entry.name)

		var serr *ErrSource
		if assert.ErrorAs(err, &serr, entry.name) {
			assert.Equal(entry.lineNo, serr.LineNo, entry.name)
			assert.Equal(entry.column, serr.Column, entry.name)
		}
	}
}

func TestAssemblerUndefinedLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("jmp undefined_label;"))

	var merr ErrSymbolMissing
	if assert.ErrorAs(err, &merr) {
		assert.Equal("undefined_label", string(merr))
	}
	assert.Contains(err.Error(), "undefined_label")
}

func TestAssemblerResolveOnly(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Scan("ldi r0 X; ldi r1 7")
	assert.NoError(err)

	asm := &Assembler{}
	asm.Predefine("X", 42)
	assert.NoError(asm.BuildSymbols(tokens))

	prog, err := asm.Resolve(tokens)
	assert.NoError(err)
	assert.Equal([]cpu.Code{cpu.MakeCodeLdi(0, 42), cpu.MakeCodeLdi(1, 7)}, codesOf(prog))

	// The returned program does not alias the assembler.
	asm.Opcode[0].Code = cpu.MakeCodeNop()
	assert.Equal(cpu.MakeCodeLdi(0, 42), prog.Opcodes[0].Code)
}
