package cpu

import (
	"iter"
)

// Program is an assembled instruction sequence. Opcodes[n].Ip == n.
type Program struct {
	Opcodes []Opcode
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Debug returns the opcode at an instruction address, or nil.
func (prog *Program) Debug(ip int) (op *Opcode) {
	if ip < 0 || ip >= len(prog.Opcodes) {
		return
	}

	return &prog.Opcodes[ip]
}

// Validate checks every instruction for out-of-range operands and addressing.
func (prog *Program) Validate() (err error) {
	for n, op := range prog.Opcodes {
		if op.Ip != n {
			err = ErrOpcodeArgs
		} else {
			err = op.Code.Valid()
		}
		if err != nil {
			return &ErrProgram{Ip: n, LineNo: op.LineNo, Err: err}
		}
	}

	return
}

// Codes returns an iterator over the instruction address and code of each opcode.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Code) {
				return
			}
		}
	}
}

// Listing returns the disassembly of the program, one line per instruction.
func (prog *Program) Listing() (lines []string) {
	for ip, code := range prog.Codes() {
		lines = append(lines, f("%03d: %v", ip, code.String()))
	}

	return
}

// ErrProgram indicates an invalid instruction in a program.
type ErrProgram struct {
	Ip     int
	LineNo int
	Err    error
}

func (err *ErrProgram) Error() string {
	return f("ip %d line %d %v", err.Ip, err.LineNo, err.Err)
}

func (err *ErrProgram) Unwrap() error {
	return err.Err
}
