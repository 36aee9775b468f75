// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"

	"github.com/ezrec/rasm/cpu"
)

// DEFAULT_STEP_LIMIT is the number of instructions a program may execute
// before it is considered runaway.
const DEFAULT_STEP_LIMIT = 65536

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose   bool         // If set, enables verbose logging.
	*cpu.Cpu               // Reference to the CPU simulation.
	Program   *cpu.Program // Reference to the currently running program listing; Reset after assigning.
	StepLimit int          // Maximum instructions per run; 0 or less is unlimited.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:       cpu.NewCpu(),
		Program:   &cpu.Program{},
		StepLimit: DEFAULT_STEP_LIMIT,
	}

	return
}

// Reset the emulator state, and check the program for invalid instructions.
func (emu *Emulator) Reset() (err error) {
	err = emu.Program.Validate()
	if err != nil {
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	op := emu.Program.Debug(emu.Cpu.Ip)
	if op == nil {
		return cpu.Code{}
	}

	return op.Code
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Ip)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the program has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, LineNo: lineno, Err: err}
		}
	}()

	if emu.Cpu.State == cpu.STATE_HALTED {
		done = true
		return
	}

	// Programs assigned without a Reset are checked before the first instruction.
	if emu.Cpu.Running() && emu.Cpu.Ticks == 0 {
		err = emu.Program.Validate()
		if err != nil {
			return
		}
	}

	if emu.Cpu.Running() && emu.StepLimit > 0 && emu.Cpu.Ticks >= emu.StepLimit {
		emu.Cpu.Halt(cpu.ErrStepLimit)
	}

	err = emu.Cpu.Tick(emu.Program)
	if err != nil {
		return
	}

	done = emu.Cpu.State == cpu.STATE_HALTED
	return
}

// Run ticks the emulator until the program halts or faults.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			break
		}
	}

	if emu.Verbose {
		log.Printf("emulator: %v after %d ticks", emu.Cpu.State, emu.Cpu.Ticks)
	}

	return
}
