// Package cpu implements the machine model for the rasm 8-bit system.
//
// The machine has sixteen 8-bit registers (r0-r15), 128 bytes of data
// memory (m0-m127), and an instruction pointer into a separate program of
// decoded instructions. Arithmetic wraps modulo 256.
package cpu
