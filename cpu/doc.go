// Package cpu implements the instruction set and assembler for the fastrv
// RISC-V subset.
//
// The assembler consumes preprocessed assembly lines (one instruction,
// directive or label per line) in two passes: a linear scan that collects
// instructions, data bytes and label positions, then a resolution pass that
// commits every label reference to an absolute byte offset. Pseudo
// instructions (li, mv, la, ret, j, call, nop) are expanded into base
// instructions during the scan, so the execution engine only ever sees the
// closed base set.
//
// Compile-time $(...) expressions and .equ equates are evaluated in the
// assembler, with Starlark as the expression language.
package cpu
