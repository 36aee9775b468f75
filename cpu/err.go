package cpu

import (
	"errors"

	"github.com/ezrec/rasm/translate"
)

var f = translate.From

// ErrFault is the class of every runtime fault.
var ErrFault = errors.New(f("runtime fault"))

// fault is a runtime error kind that also matches ErrFault.
type fault struct {
	msg string
}

func (err *fault) Error() string {
	return err.msg
}

func (err *fault) Is(target error) bool {
	return target == ErrFault
}

var (
	// Cpu faults
	ErrIpRange    = error(&fault{f("program counter out of range")})
	ErrStepLimit  = error(&fault{f("step limit exceeded")})
	ErrHalted     = error(&fault{f("cpu halted")})
	ErrOpcodeOp   = error(&fault{f("unknown operation")})
	ErrOpcodeArgs = error(&fault{f("operand out of range")})
)

// ErrOpcode reports the decoded instruction that failed to execute.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
