// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/ezrec/rasm/asm"
	"github.com/ezrec/rasm/cpu"
	"github.com/ezrec/rasm/emulator"
	"github.com/ezrec/rasm/translate"
)

var f = translate.From

// predefines collects -D NAME=VALUE options.
type predefines map[string]uint8

func (pd predefines) String() string {
	var defs []string
	for name, value := range pd {
		defs = append(defs, fmt.Sprintf("%v=%v", name, value))
	}
	return strings.Join(defs, ",")
}

func (pd predefines) Set(text string) (err error) {
	name, value, ok := strings.Cut(text, "=")
	if !ok || len(name) == 0 {
		err = errors.New(f("%v: expected NAME=VALUE", text))
		return
	}

	num, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		err = fmt.Errorf("%v: %w", text, err)
		return
	}

	pd[name] = uint8(num)
	return
}

// memoryColumns returns how many memory cells fit on one line of output.
func memoryColumns(out *os.File) (columns int) {
	columns = 16

	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		return
	}

	// "000:" prefix, then " XX" per cell.
	columns = max((width-4)/3, 1)
	for cpu.MEMORY_SIZE%columns != 0 {
		columns--
	}

	return
}

// dumpMemory writes the data memory as hex, columns cells per line.
func dumpMemory(w io.Writer, memory []uint8, columns int) {
	for base := 0; base < len(memory); base += columns {
		translate.Fprintf(w, "%03d:", base)
		for _, val := range memory[base:min(base+columns, len(memory))] {
			translate.Fprintf(w, " %02X", val)
		}
		translate.Fprintf(w, "\n")
	}
}

func main() {
	var compile string
	var limit int
	var tokens bool
	var save bool
	var verbose bool

	defines := predefines{}

	flag.StringVar(&compile, "c", "-", "assembly source to compile, '-' for stdin")
	flag.Var(defines, "D", "NAME=VALUE predefined symbol (repeatable)")
	flag.IntVar(&limit, "l", emulator.DEFAULT_STEP_LIMIT, "step limit, 0 for unlimited")
	flag.BoolVar(&tokens, "t", false, "Dump tokens, do not execute")
	flag.BoolVar(&save, "s", false, "Print the assembled listing, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		atexit.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var inf io.Reader = os.Stdin
	if compile != "-" {
		file, err := os.Open(compile)
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
		atexit.Register(func() { file.Close() })
		inf = file
	}

	text, err := io.ReadAll(inf)
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}

	if tokens {
		toks, err := asm.Scan(string(text))
		for _, tok := range toks {
			translate.Fprintf(os.Stdout, "%d:%d %v\n", tok.LineNo, tok.Column, tok)
		}
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
		atexit.Exit(0)
	}

	assembler := &asm.Assembler{Verbose: verbose}
	for name, value := range defines {
		assembler.Predefine(name, value)
	}

	prog, err := assembler.Parse(strings.NewReader(string(text)))
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}

	if save {
		for _, line := range prog.Listing() {
			fmt.Println(line)
		}
		atexit.Exit(0)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Program = prog
	emu.StepLimit = limit

	err = emu.Reset()
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}

	err = emu.Run()

	fmt.Print(emu.Cpu.String())
	translate.Fprintf(os.Stdout, "%5s: %d\n", "ticks", emu.Ticks())
	dumpMemory(os.Stdout, emu.Cpu.Memory[:], memoryColumns(os.Stdout))

	if err != nil {
		log.Printf("%v: %v", compile, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
