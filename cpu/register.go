package cpu

import (
	"fmt"
)

// Register name tables. The integer, float and status namespaces are
// independent: a lookup always states which table it searches, and the
// tables never collide.

// intRegs maps integer register mnemonics (x0..x31 and ABI names) to indexes.
var intRegs = map[string]uint8{
	"zero": 0,
	"ra":   1,
	"sp":   2,
	"gp":   3,
	"tp":   4,
	"t0":   5,
	"t1":   6,
	"t2":   7,
	"s0":   8,
	"fp":   8,
	"s1":   9,
	"a0":   10,
	"a1":   11,
	"a2":   12,
	"a3":   13,
	"a4":   14,
	"a5":   15,
	"a6":   16,
	"a7":   17,
	"s2":   18,
	"s3":   19,
	"s4":   20,
	"s5":   21,
	"s6":   22,
	"s7":   23,
	"s8":   24,
	"s9":   25,
	"s10":  26,
	"s11":  27,
	"t3":   28,
	"t4":   29,
	"t5":   30,
	"t6":   31,
}

// floatRegs maps float register mnemonics (f0..f31 and ABI names) to indexes.
var floatRegs = map[string]uint8{
	"ft0":  0,
	"ft1":  1,
	"ft2":  2,
	"ft3":  3,
	"ft4":  4,
	"ft5":  5,
	"ft6":  6,
	"ft7":  7,
	"fs0":  8,
	"fs1":  9,
	"fa0":  10,
	"fa1":  11,
	"fa2":  12,
	"fa3":  13,
	"fa4":  14,
	"fa5":  15,
	"fa6":  16,
	"fa7":  17,
	"fs2":  18,
	"fs3":  19,
	"fs4":  20,
	"fs5":  21,
	"fs6":  22,
	"fs7":  23,
	"fs8":  24,
	"fs9":  25,
	"fs10": 26,
	"fs11": 27,
	"ft8":  28,
	"ft9":  29,
	"ft10": 30,
	"ft11": 31,
}

// statusRegs maps status register mnemonics to indexes.
var statusRegs = map[string]uint8{
	"cycle":    0,
	"time":     1,
	"instret":  2,
	"cycleh":   3,
	"timeh":    4,
	"instreth": 5,
}

func init() {
	for n := range 32 {
		intRegs[fmt.Sprintf("x%d", n)] = uint8(n)
		floatRegs[fmt.Sprintf("f%d", n)] = uint8(n)
	}
}

// IntReg resolves an integer register mnemonic to its index.
func IntReg(name string) (index uint8, err error) {
	index, ok := intRegs[name]
	if !ok {
		err = ErrRegisterUnknown(name)
	}
	return
}

// FloatReg resolves a float register mnemonic to its index.
func FloatReg(name string) (index uint8, err error) {
	index, ok := floatRegs[name]
	if !ok {
		err = ErrRegisterUnknown(name)
	}
	return
}

// StatusReg resolves a status register mnemonic to its index.
func StatusReg(name string) (index uint8, err error) {
	index, ok := statusRegs[name]
	if !ok {
		err = ErrRegisterUnknown(name)
	}
	return
}
