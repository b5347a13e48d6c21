// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"io"
	"iter"
	"log"
	"math"
	"os"
	"sync/atomic"

	"github.com/ezrec/fastrv/cpu"
	"github.com/ezrec/fastrv/internal"
	"github.com/ezrec/fastrv/memory"
)

// Defines returns the machine constants (memory map plus syscall numbers)
// as assembler equates, for Assembler.Predefine.
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(memory.Defines(), syscallDefines())
}

// Emulator is the execution engine: the integer and float register files,
// the program counter and the memory. It runs on its own goroutine; the
// only state it shares with the display front-end is the MMIO window
// inside Mem.
type Emulator struct {
	Verbose bool // Set to enable verbose logging.

	Program *cpu.Program  // The resolved program being executed.
	Mem     memory.Memory // Data/heap region plus the MMIO window.

	Input  io.Reader // Console input for the read syscalls.
	Output io.Writer // Console output for the print syscalls.

	Reg  [32]uint32  // Integer register bank. Reg[0] stays zero.
	Freg [32]float32 // Float register bank.
	Pc   int         // Program counter, as an instruction index.

	Instret uint64 // Executed instruction counter.

	// The display front-end polls the halt flag from its own goroutine.
	halted atomic.Bool
}

// New creates an engine for a resolved program. Console I/O defaults to
// the process's stdin/stdout.
func New(prog *cpu.Program, mem memory.Memory) (emu *Emulator) {
	emu = &Emulator{
		Program: prog,
		Mem:     mem,
		Input:   os.Stdin,
		Output:  os.Stdout,
	}

	return
}

// Reset clears the register files and counters and rewinds the program
// counter. Memory contents are left as-is.
func (emu *Emulator) Reset() {
	clear(emu.Reg[:])
	clear(emu.Freg[:])
	emu.Pc = 0
	emu.Instret = 0
	emu.halted.Store(false)
}

// Halted reports whether a terminate syscall has stopped the engine.
func (emu *Emulator) Halted() bool {
	return emu.halted.Load()
}

// setReg writes an integer register. Writes to x0 are dropped.
func (emu *Emulator) setReg(rd uint8, value uint32) {
	if rd != cpu.REG_ZERO {
		emu.Reg[rd] = value
	}
}

// Step executes the instruction at the program counter. It reports done
// once the engine has halted; a returned error is a runtime fault and
// halts the simulated program.
func (emu *Emulator) Step() (done bool, err error) {
	if emu.halted.Load() {
		done = true
		return
	}

	// The fall-through epilogue makes an out-of-range fetch unreachable
	// for well-formed programs, but a wild jalr can still get here.
	if emu.Pc < 0 || emu.Pc >= len(emu.Program.Code) {
		err = ErrPcRange(emu.Pc)
		return
	}
	ins := emu.Program.Code[emu.Pc]

	if emu.Verbose {
		log.Printf("%4d: %v", emu.Pc, ins)
	}

	next := emu.Pc + 1

	a := emu.Reg[ins.Rs1]
	b := emu.Reg[ins.Rs2]

	switch ins.Op {
	case cpu.OP_ADD:
		emu.setReg(ins.Rd, a+b)
	case cpu.OP_SUB:
		emu.setReg(ins.Rd, a-b)
	case cpu.OP_SLL:
		emu.setReg(ins.Rd, a<<(b&31))
	case cpu.OP_SLT:
		emu.setReg(ins.Rd, boolTo32(int32(a) < int32(b)))
	case cpu.OP_SLTU:
		emu.setReg(ins.Rd, boolTo32(a < b))
	case cpu.OP_XOR:
		emu.setReg(ins.Rd, a^b)
	case cpu.OP_SRL:
		emu.setReg(ins.Rd, a>>(b&31))
	case cpu.OP_SRA:
		emu.setReg(ins.Rd, uint32(int32(a)>>(b&31)))
	case cpu.OP_OR:
		emu.setReg(ins.Rd, a|b)
	case cpu.OP_AND:
		emu.setReg(ins.Rd, a&b)
	case cpu.OP_MUL:
		emu.setReg(ins.Rd, a*b)
	case cpu.OP_DIV:
		emu.setReg(ins.Rd, div(int32(a), int32(b)))
	case cpu.OP_DIVU:
		emu.setReg(ins.Rd, divu(a, b))
	case cpu.OP_REM:
		emu.setReg(ins.Rd, rem(int32(a), int32(b)))
	case cpu.OP_REMU:
		emu.setReg(ins.Rd, remu(a, b))

	case cpu.OP_ADDI:
		emu.setReg(ins.Rd, a+uint32(ins.Imm))
	case cpu.OP_SLTI:
		emu.setReg(ins.Rd, boolTo32(int32(a) < ins.Imm))
	case cpu.OP_SLTIU:
		emu.setReg(ins.Rd, boolTo32(a < uint32(ins.Imm)))
	case cpu.OP_SLLI:
		emu.setReg(ins.Rd, a<<(uint32(ins.Imm)&31))
	case cpu.OP_SRLI:
		emu.setReg(ins.Rd, a>>(uint32(ins.Imm)&31))
	case cpu.OP_SRAI:
		emu.setReg(ins.Rd, uint32(int32(a)>>(uint32(ins.Imm)&31)))
	case cpu.OP_ORI:
		emu.setReg(ins.Rd, a|uint32(ins.Imm))
	case cpu.OP_ANDI:
		emu.setReg(ins.Rd, a&uint32(ins.Imm))
	case cpu.OP_XORI:
		emu.setReg(ins.Rd, a^uint32(ins.Imm))

	// A faulting load must not touch rd.
	case cpu.OP_LB:
		var value uint8
		value, err = emu.Mem.Byte(a + uint32(ins.Imm))
		if err == nil {
			emu.setReg(ins.Rd, uint32(int32(int8(value))))
		}
	case cpu.OP_LBU:
		var value uint8
		value, err = emu.Mem.Byte(a + uint32(ins.Imm))
		if err == nil {
			emu.setReg(ins.Rd, uint32(value))
		}
	case cpu.OP_LH:
		var value uint16
		value, err = emu.Mem.Half(a + uint32(ins.Imm))
		if err == nil {
			emu.setReg(ins.Rd, uint32(int32(int16(value))))
		}
	case cpu.OP_LHU:
		var value uint16
		value, err = emu.Mem.Half(a + uint32(ins.Imm))
		if err == nil {
			emu.setReg(ins.Rd, uint32(value))
		}
	case cpu.OP_LW:
		var value uint32
		value, err = emu.Mem.Word(a + uint32(ins.Imm))
		if err == nil {
			emu.setReg(ins.Rd, value)
		}

	case cpu.OP_SB:
		err = emu.Mem.SetByte(a+uint32(ins.Imm), uint8(b))
	case cpu.OP_SH:
		err = emu.Mem.SetHalf(a+uint32(ins.Imm), uint16(b))
	case cpu.OP_SW:
		err = emu.Mem.SetWord(a+uint32(ins.Imm), b)

	case cpu.OP_BEQ:
		if a == b {
			next = target(ins.Imm)
		}
	case cpu.OP_BNE:
		if a != b {
			next = target(ins.Imm)
		}
	case cpu.OP_BLT:
		if int32(a) < int32(b) {
			next = target(ins.Imm)
		}
	case cpu.OP_BGE:
		if int32(a) >= int32(b) {
			next = target(ins.Imm)
		}
	case cpu.OP_BLTU:
		if a < b {
			next = target(ins.Imm)
		}
	case cpu.OP_BGEU:
		if a >= b {
			next = target(ins.Imm)
		}

	case cpu.OP_JAL:
		emu.setReg(ins.Rd, uint32(next)*cpu.INSTRUCTION_WIDTH)
		next = target(ins.Imm)
	case cpu.OP_JALR:
		t := a + uint32(ins.Imm)
		emu.setReg(ins.Rd, uint32(next)*cpu.INSTRUCTION_WIDTH)
		next = target(int32(t))

	case cpu.OP_ECALL:
		err = emu.syscall()
	}
	if err != nil {
		return
	}

	emu.Pc = next
	emu.Instret++

	done = emu.halted.Load()
	return
}

// Run steps the engine until a terminate syscall or a runtime fault.
// Faults are wrapped with the faulting instruction index and source line.
func (emu *Emulator) Run() (err error) {
	for {
		pc := emu.Pc

		var done bool
		done, err = emu.Step()
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: emu.Program.LineAt(pc), Err: err}
			return
		}
		if done {
			return
		}
	}
}

// target converts an absolute byte offset into an instruction index.
func target(imm int32) int {
	return int(imm) / cpu.INSTRUCTION_WIDTH
}

func boolTo32(set bool) (value uint32) {
	if set {
		value = 1
	}
	return
}

// div follows the RISC-V division contract: quotient is all-ones on a zero
// divisor, and the dividend on signed overflow.
func div(a, b int32) (value uint32) {
	switch {
	case b == 0:
		value = ^uint32(0)
	case a == math.MinInt32 && b == -1:
		value = uint32(a)
	default:
		value = uint32(a / b)
	}
	return
}

func divu(a, b uint32) (value uint32) {
	if b == 0 {
		value = ^uint32(0)
	} else {
		value = a / b
	}
	return
}

// rem follows the RISC-V remainder contract: the dividend on a zero
// divisor, zero on signed overflow.
func rem(a, b int32) (value uint32) {
	switch {
	case b == 0:
		value = uint32(a)
	case a == math.MinInt32 && b == -1:
		value = 0
	default:
		value = uint32(a % b)
	}
	return
}

func remu(a, b uint32) (value uint32) {
	if b == 0 {
		value = a
	} else {
		value = a % b
	}
	return
}
