// Package asm implements the scanner and two pass assembler for the rasm
// 8-bit machine.
//
// Source text is split into tokens by the Scanner. The first pass records
// `.define` constants and label addresses, so labels may be used before
// they are declared. The second pass resolves every operand against the
// symbol table and emits one cpu.Opcode per instruction statement.
//
// Statements are separated by `;`, a comment (`#` or `/` to end of line),
// or simply by the next mnemonic, label or directive. Operands are
// registers (r0-r15), memory cells (m0-m127), decimal numbers (0-255),
// symbols, and compile-time expressions written as $(...).
package asm
