package emulator

import (
	"github.com/ezrec/fastrv/translate"
)

var f = translate.From

// ErrRuntime locates a runtime fault in the simulated program. The fault
// is fatal to the program, not to the simulator.
type ErrRuntime struct {
	Pc     int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d pc %d %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrPcRange reports a fetch outside the instruction sequence.
type ErrPcRange int

func (ep ErrPcRange) Error() string {
	return f("program counter %d out of range", int(ep))
}

// ErrSyscallUnknown reports an unrecognized syscall number in a7.
type ErrSyscallUnknown uint32

func (es ErrSyscallUnknown) Error() string {
	return f("syscall %d unknown", uint32(es))
}
