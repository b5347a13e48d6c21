package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add", OP_ADD.String())
	assert.Equal("remu", OP_REMU.String())
	assert.Equal("sltiu", OP_SLTIU.String())
	assert.Equal("lbu", OP_LBU.String())
	assert.Equal("bgeu", OP_BGEU.String())
	assert.Equal("jalr", OP_JALR.String())
	assert.Equal("ecall", OP_ECALL.String())
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add x3 x1 x2", Instruction{Op: OP_ADD, Rd: 3, Rs1: 1, Rs2: 2}.String())
	assert.Equal("addi x1 x0 -5", Instruction{Op: OP_ADDI, Rd: 1, Imm: -5}.String())
	assert.Equal("lw x10 4(x2)", Instruction{Op: OP_LW, Rd: 10, Rs1: 2, Imm: 4}.String())
	assert.Equal("sw x11 8(x2)", Instruction{Op: OP_SW, Rs2: 11, Rs1: 2, Imm: 8}.String())
	assert.Equal("beq x1 x2 16", Instruction{Op: OP_BEQ, Rs1: 1, Rs2: 2, Imm: 16}.String())
	assert.Equal("jal x1 32", Instruction{Op: OP_JAL, Rd: 1, Imm: 32}.String())
	assert.Equal("jalr x0 x1 0", Instruction{Op: OP_JALR, Rs1: 1}.String())
	assert.Equal("ecall", Instruction{Op: OP_ECALL}.String())
}
