package cpu

import (
	"fmt"
	"strings"
)

// CodeOp is an instruction operation.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_NOP   = CodeOp(0)  // nop
	OP_HALT  = CodeOp(1)  // halt
	OP_LDI   = CodeOp(2)  // ldi
	OP_MOV   = CodeOp(3)  // mov
	OP_ADD   = CodeOp(4)  // add
	OP_SUB   = CodeOp(5)  // sub
	OP_AND   = CodeOp(6)  // and
	OP_OR    = CodeOp(7)  // or
	OP_XOR   = CodeOp(8)  // xor
	OP_NOR   = CodeOp(9)  // nor
	OP_LSH   = CodeOp(10) // lsh
	OP_RSH   = CodeOp(11) // rsh
	OP_LOAD  = CodeOp(12) // load
	OP_STORE = CodeOp(13) // store
	OP_JMP   = CodeOp(14) // jmp
)

// OpOf looks up the operation for a mnemonic.
func OpOf(mnemonic string) (op CodeOp, ok bool) {
	for op = OP_NOP; op <= OP_JMP; op++ {
		if op.String() == mnemonic {
			ok = true
			return
		}
	}

	return
}

// Alu returns true if the operation takes two source and one destination register.
func (op CodeOp) Alu() bool {
	return op >= OP_ADD && op <= OP_RSH
}

// Opcode represents a line of assembled code with its source location and decoded instruction.
type Opcode struct {
	LineNo int
	Ip     int
	Words  []string
	Code   Code
}

// Code is a single decoded instruction. Only the fields used by Op are meaningful.
type Code struct {
	Op     CodeOp
	Src1   uint8 // First source register (mov, alu, store)
	Src2   uint8 // Second source register (alu)
	Dst    uint8 // Destination register (ldi, mov, alu, load)
	Addr   uint8 // Memory address (load, store)
	Value  uint8 // Immediate value (ldi)
	Target int   // Jump target (jmp)
}

// MakeCodeNop creates a no-op instruction.
func MakeCodeNop() Code {
	return Code{Op: OP_NOP}
}

// MakeCodeHalt creates an end-of-program instruction.
func MakeCodeHalt() Code {
	return Code{Op: OP_HALT}
}

// MakeCodeLdi creates a load-immediate instruction.
func MakeCodeLdi(dst uint8, value uint8) Code {
	return Code{Op: OP_LDI, Dst: dst, Value: value}
}

// MakeCodeMov creates a register to register copy.
func MakeCodeMov(src, dst uint8) Code {
	return Code{Op: OP_MOV, Src1: src, Dst: dst}
}

// MakeCodeAlu creates an ALU operation instruction.
func MakeCodeAlu(op CodeOp, src1, src2, dst uint8) Code {
	return Code{Op: op, Src1: src1, Src2: src2, Dst: dst}
}

// MakeCodeLoad creates a memory to register instruction.
func MakeCodeLoad(addr, dst uint8) Code {
	return Code{Op: OP_LOAD, Addr: addr, Dst: dst}
}

// MakeCodeStore creates a register to memory instruction.
func MakeCodeStore(addr, src uint8) Code {
	return Code{Op: OP_STORE, Addr: addr, Src1: src}
}

// MakeCodeJmp creates an unconditional jump.
func MakeCodeJmp(target int) Code {
	return Code{Op: OP_JMP, Target: target}
}

// Valid returns nil if every operand of the code is within machine bounds.
func (code Code) Valid() error {
	regs := []uint8{}
	switch {
	case code.Op == OP_NOP, code.Op == OP_HALT:
	case code.Op == OP_LDI:
		regs = append(regs, code.Dst)
	case code.Op == OP_MOV:
		regs = append(regs, code.Src1, code.Dst)
	case code.Op.Alu():
		regs = append(regs, code.Src1, code.Src2, code.Dst)
	case code.Op == OP_LOAD:
		regs = append(regs, code.Dst)
	case code.Op == OP_STORE:
		regs = append(regs, code.Src1)
	case code.Op == OP_JMP:
		if code.Target < 0 {
			return ErrOpcodeArgs
		}
	default:
		return ErrOpcodeOp
	}

	for _, reg := range regs {
		if int(reg) >= REGISTER_COUNT {
			return ErrOpcodeArgs
		}
	}

	if (code.Op == OP_LOAD || code.Op == OP_STORE) && int(code.Addr) >= MEMORY_SIZE {
		return ErrOpcodeArgs
	}

	return nil
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	words := []string{code.Op.String()}

	reg := func(n uint8) string { return fmt.Sprintf("r%d", n) }
	mem := func(n uint8) string { return fmt.Sprintf("m%d", n) }

	switch {
	case code.Op == OP_LDI:
		words = append(words, reg(code.Dst), fmt.Sprintf("%d", code.Value))
	case code.Op == OP_MOV:
		words = append(words, reg(code.Src1), reg(code.Dst))
	case code.Op.Alu():
		words = append(words, reg(code.Src1), reg(code.Src2), reg(code.Dst))
	case code.Op == OP_LOAD:
		words = append(words, mem(code.Addr), reg(code.Dst))
	case code.Op == OP_STORE:
		words = append(words, mem(code.Addr), reg(code.Src1))
	case code.Op == OP_JMP:
		words = append(words, fmt.Sprintf("@%d", code.Target))
	}

	return strings.Join(words, " ")
}
