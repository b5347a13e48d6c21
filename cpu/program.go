package cpu

// Program is the fully resolved output of the assembler: an ordered
// instruction sequence (index times INSTRUCTION_WIDTH = byte offset) and
// the initialized data segment, fixed at the configured size. Immutable
// once returned by Parse.
type Program struct {
	Code  []Instruction
	Lines []int // Source line per instruction; 0 for the epilogue.
	Data  []byte
}

// LineAt returns the source line number of the instruction at the given
// index, or 0 when the index falls on the synthetic epilogue or out of
// range.
func (prog *Program) LineAt(index int) (lineNo int) {
	if index >= 0 && index < len(prog.Lines) {
		lineNo = prog.Lines[index]
	}
	return
}
