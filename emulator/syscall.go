package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/fastrv/cpu"
)

var _syscall_defines = map[string]string{
	"SYS_PRINT_INT":    fmt.Sprintf("%v", cpu.SYS_PRINT_INT),
	"SYS_PRINT_STRING": fmt.Sprintf("%v", cpu.SYS_PRINT_STRING),
	"SYS_READ_INT":     fmt.Sprintf("%v", cpu.SYS_READ_INT),
	"SYS_EXIT":         fmt.Sprintf("%v", cpu.SYS_EXIT),
	"SYS_PRINT_CHAR":   fmt.Sprintf("%v", cpu.SYS_PRINT_CHAR),
	"SYS_READ_CHAR":    fmt.Sprintf("%v", cpu.SYS_READ_CHAR),
	"SYS_KEY_POLL":     fmt.Sprintf("%v", cpu.SYS_KEY_POLL),
}

func syscallDefines() iter.Seq2[string, string] {
	return maps.All(_syscall_defines)
}

// syscall dispatches on register a7. The exit syscall halts the engine;
// everything else consumes/produces a0 and the console streams.
func (emu *Emulator) syscall() (err error) {
	switch emu.Reg[cpu.REG_A7] {
	case cpu.SYS_PRINT_INT:
		_, err = fmt.Fprintf(emu.Output, "%d", int32(emu.Reg[cpu.REG_A0]))
	case cpu.SYS_PRINT_STRING:
		// NUL-terminated string at a0.
		var text []byte
		addr := emu.Reg[cpu.REG_A0]
		for {
			var ch uint8
			ch, err = emu.Mem.Byte(addr)
			if err != nil || ch == 0 {
				break
			}
			text = append(text, ch)
			addr++
		}
		if err != nil {
			return
		}
		_, err = emu.Output.Write(text)
	case cpu.SYS_READ_INT:
		var value int64
		_, err = fmt.Fscan(emu.Input, &value)
		emu.Reg[cpu.REG_A0] = uint32(value)
	case cpu.SYS_EXIT:
		emu.halted.Store(true)
	case cpu.SYS_PRINT_CHAR:
		_, err = emu.Output.Write([]byte{byte(emu.Reg[cpu.REG_A0])})
	case cpu.SYS_READ_CHAR:
		var one [1]byte
		_, err = io.ReadFull(emu.Input, one[:])
		emu.Reg[cpu.REG_A0] = uint32(one[0])
	case cpu.SYS_KEY_POLL:
		// Non-blocking: a0 gets the oldest buffered key, or all-ones
		// when the queue is empty.
		key, ok := emu.Mem.Mmio().PopKey()
		if ok {
			emu.Reg[cpu.REG_A0] = uint32(key)
		} else {
			emu.Reg[cpu.REG_A0] = ^uint32(0)
		}
	default:
		err = ErrSyscallUnknown(emu.Reg[cpu.REG_A7])
	}

	return
}
