// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
)

// Machine dimensions.
const (
	REGISTER_COUNT = 16  // Number of 8-bit registers.
	MEMORY_SIZE    = 128 // Number of 8-bit memory cells.
)

var _cpu_defines = map[string]uint8{
	"REG_COUNT": REGISTER_COUNT,
	"MEM_SIZE":  MEMORY_SIZE,
}

// CpuState is the execution state of the CPU.
type CpuState int

//go:generate go tool stringer -linecomment -type=CpuState
const (
	STATE_RUNNING = CpuState(0) // running
	STATE_HALTED  = CpuState(1) // halted
	STATE_FAULTED = CpuState(2) // faulted
)

// Cpu is the simulation context for the 8-bit machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register [REGISTER_COUNT]uint8 // Register bank.
	Memory   [MEMORY_SIZE]uint8    // Data memory.
	Ip       int                   // Current instruction pointer.
	State    CpuState              // Execution state.
	Fault    error                 // Reason for STATE_FAULTED.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU in the reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines returns the machine dimension symbols predefined for every program.
func Defines() iter.Seq2[string, uint8] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Zeros the instruction pointer and tick counter.
// - Sets the CPU running.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Memory[:])
	cpu.Ip = 0
	cpu.State = STATE_RUNNING
	cpu.Fault = nil
	cpu.Ticks = 0
}

// Running returns true if the CPU has neither halted nor faulted.
func (cpu *Cpu) Running() bool {
	return cpu.State == STATE_RUNNING
}

// Halt stops the CPU with a fault. Further ticks return the fault.
func (cpu *Cpu) Halt(fault error) {
	cpu.State = STATE_FAULTED
	cpu.Fault = fault

	if cpu.Verbose {
		log.Printf("cpu: fault at %03d: %v", cpu.Ip, fault)
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "% 5s: %03d\n", "ip", cpu.Ip)
	fmt.Fprintf(&sb, "% 5s: %v\n", "state", cpu.State)
	for n, val := range cpu.Register {
		fmt.Fprintf(&sb, "% 5s: %02X (%d)\n", fmt.Sprintf("r%d", n), val, val)
	}

	text = sb.String()
	return
}

// FetchCode fetches the instruction at the instruction pointer.
func (cpu *Cpu) FetchCode(prog *Program) (code Code, err error) {
	op := prog.Debug(cpu.Ip)
	if op == nil {
		err = ErrIpRange
		return
	}

	code = op.Code
	return
}

// Tick executes a single CPU instruction cycle.
// A halted or faulted CPU executes nothing.
func (cpu *Cpu) Tick(prog *Program) (err error) {
	switch cpu.State {
	case STATE_HALTED:
		return ErrHalted
	case STATE_FAULTED:
		return cpu.Fault
	}

	code, err := cpu.FetchCode(prog)
	if err != nil {
		cpu.Halt(err)
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		cpu.Halt(err)
		return
	}

	return
}

// Execute executes a single decoded instruction.
// The operands of code must already be in range.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Ip, code)
	}

	next_ip := cpu.Ip + 1

	reg := &cpu.Register

	switch {
	case code.Op == OP_NOP:
		// pass
	case code.Op == OP_HALT:
		next_ip = cpu.Ip
		cpu.State = STATE_HALTED
	case code.Op == OP_LDI:
		reg[code.Dst] = code.Value
	case code.Op == OP_MOV:
		reg[code.Dst] = reg[code.Src1]
	case code.Op.Alu():
		reg[code.Dst] = cpu.doAlu(code.Op, reg[code.Src1], reg[code.Src2])
	case code.Op == OP_LOAD:
		reg[code.Dst] = cpu.Memory[code.Addr]
	case code.Op == OP_STORE:
		cpu.Memory[code.Addr] = reg[code.Src1]
	case code.Op == OP_JMP:
		next_ip = code.Target
	default:
		err = ErrOpcodeOp
		return
	}

	cpu.Ip = next_ip
	cpu.Ticks += 1

	return
}

// doAlu performs the requested ALU action, and returns the output value.
// Arithmetic wraps modulo 256, and shifts of 8 or more produce zero.
func (cpu *Cpu) doAlu(op CodeOp, a uint8, b uint8) (output uint8) {
	switch op {
	case OP_ADD:
		output = a + b
	case OP_SUB:
		output = a - b
	case OP_AND:
		output = a & b
	case OP_OR:
		output = a | b
	case OP_XOR:
		output = a ^ b
	case OP_NOR:
		output = ^(a | b)
	case OP_LSH:
		output = a << b
	case OP_RSH:
		output = a >> b
	}

	return
}
