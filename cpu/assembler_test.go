package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testDataSize = 64

func doParse(t *testing.T, program []string) (prog *Program) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")), testDataSize)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	return
}

// insEqual compares the parsed user instructions, ignoring the epilogue.
func insEqual(t *testing.T, expected []Instruction, prog *Program) {
	assert := assert.New(t)

	assert.Equal(len(expected)+3, len(prog.Code))
	for n := range expected {
		if n < len(prog.Code) {
			assert.Equal(expected[n], prog.Code[n], "instruction %d", n)
		}
	}
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""), testDataSize)
	assert.NoError(err)

	// The empty program is just the epilogue.
	assert.Equal(3, len(prog.Code))
	assert.Equal(testDataSize, len(prog.Data))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("320", asm.Equate["FRAME_WIDTH"])
	assert.Equal("240", asm.Equate["FRAME_HEIGHT"])
	assert.Equal("0xff000000", asm.Equate["FRAME_0"])
	assert.Equal("0xff100000", asm.Equate["FRAME_1"])
	assert.Equal("0xff200604", asm.Equate["FRAME_SELECT"])
}

func TestAssemblerEpilogue(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t, []string{
		"addi x1 x0 5",
		"addi x2 x0 7",
	})

	// Two user instructions plus the three-instruction epilogue. The
	// landing pad carries fall-through into the terminate sequence.
	assert.Equal(5, len(prog.Code))
	assert.Equal(Instruction{Op: OP_JAL, Rd: REG_ZERO, Imm: 3 * INSTRUCTION_WIDTH}, prog.Code[2])
	assert.Equal(Instruction{Op: OP_ADDI, Rd: REG_A7, Rs1: REG_ZERO, Imm: SYS_EXIT}, prog.Code[3])
	assert.Equal(Instruction{Op: OP_ECALL}, prog.Code[4])

	// User lines are recorded; the epilogue reports line 0.
	assert.Equal(1, prog.LineAt(0))
	assert.Equal(2, prog.LineAt(1))
	assert.Equal(0, prog.LineAt(2))
	assert.Equal(0, prog.LineAt(100))
}

func TestAssemblerTypeR(t *testing.T) {
	prog := doParse(t, []string{
		"add x3, x1, x2",
		"sub a0, a1, a2",
		"SLTU t0, t1, t2",
		"rem s0, s1, s2",
	})

	insEqual(t, []Instruction{
		{Op: OP_ADD, Rd: 3, Rs1: 1, Rs2: 2},
		{Op: OP_SUB, Rd: 10, Rs1: 11, Rs2: 12},
		{Op: OP_SLTU, Rd: 5, Rs1: 6, Rs2: 7},
		{Op: OP_REM, Rd: 8, Rs1: 9, Rs2: 18},
	}, prog)
}

func TestAssemblerImmediates(t *testing.T) {
	prog := doParse(t, []string{
		"addi x1 x0 -1",
		"andi x2 x1 0xff",
		"slli x3 x2 4",
		"xori x4 x3 0b1010",
	})

	insEqual(t, []Instruction{
		{Op: OP_ADDI, Rd: 1, Rs1: 0, Imm: -1},
		{Op: OP_ANDI, Rd: 2, Rs1: 1, Imm: 0xff},
		{Op: OP_SLLI, Rd: 3, Rs1: 2, Imm: 4},
		{Op: OP_XORI, Rd: 4, Rs1: 3, Imm: 10},
	}, prog)
}

func TestAssemblerMemOperands(t *testing.T) {
	prog := doParse(t, []string{
		"lw a0 4(sp)",
		"lw a1 (sp)",
		"lbu a2 -2(s0)",
		"lh a3 8 sp",
		"sw a0 12(sp)",
		"sb a1 (t0)",
	})

	insEqual(t, []Instruction{
		{Op: OP_LW, Rd: 10, Rs1: 2, Imm: 4},
		{Op: OP_LW, Rd: 11, Rs1: 2},
		{Op: OP_LBU, Rd: 12, Rs1: 8, Imm: -2},
		{Op: OP_LH, Rd: 13, Rs1: 2, Imm: 8},
		{Op: OP_SW, Rs2: 10, Rs1: 2, Imm: 12},
		{Op: OP_SB, Rs2: 11, Rs1: 5},
	}, prog)
}

func TestAssemblerPseudo(t *testing.T) {
	prog := doParse(t, []string{
		"li a0 42",
		"mv a1 a0",
		"nop",
		"beqz a0 0",
		"bnez a1 4",
		"j 0",
		"ret",
	})

	insEqual(t, []Instruction{
		{Op: OP_ADDI, Rd: 10, Rs1: REG_ZERO, Imm: 42},
		{Op: OP_ADDI, Rd: 11, Rs1: 10},
		{Op: OP_ADDI},
		{Op: OP_BEQ, Rs1: 10, Rs2: REG_ZERO},
		{Op: OP_BNE, Rs1: 11, Rs2: REG_ZERO, Imm: 4},
		{Op: OP_JAL, Rd: REG_ZERO},
		{Op: OP_JALR, Rd: REG_ZERO, Rs1: REG_RA},
	}, prog)
}

func TestAssemblerJumps(t *testing.T) {
	prog := doParse(t, []string{
		"jal 0",
		"jal x5 0",
		"call 0",
		"jalr t0",
		"jalr x1 t0 8",
	})

	insEqual(t, []Instruction{
		{Op: OP_JAL, Rd: REG_RA},
		{Op: OP_JAL, Rd: 5},
		{Op: OP_JAL, Rd: REG_RA},
		{Op: OP_JALR, Rd: REG_RA, Rs1: 5},
		{Op: OP_JALR, Rd: 1, Rs1: 5, Imm: 8},
	}, prog)
}

func TestAssemblerBranchSwap(t *testing.T) {
	assert := assert.New(t)

	swapped := doParse(t, []string{
		"bgt x1 x2 END",
		"ble x1 x2 END",
		"bgtu x1 x2 END",
		"bleu x1 x2 END",
		"END:",
	})
	canonical := doParse(t, []string{
		"blt x2 x1 END",
		"bge x2 x1 END",
		"bltu x2 x1 END",
		"bgeu x2 x1 END",
		"END:",
	})

	assert.Equal(canonical.Code, swapped.Code)
}

func TestAssemblerForwardReference(t *testing.T) {
	assert := assert.New(t)

	// A label referenced before its definition resolves to the same
	// address as one referenced after.
	forward := doParse(t, []string{
		"beq x1 x2 done",
		"nop",
		"done:",
		"nop",
	})
	assert.Equal(int32(2*INSTRUCTION_WIDTH), forward.Code[0].Imm)

	backward := doParse(t, []string{
		"loop:",
		"nop",
		"beq x1 x2 loop",
	})
	assert.Equal(int32(0), backward.Code[1].Imm)
}

func TestAssemblerLabelOnInstructionLine(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t, []string{
		"start: first: nop",
		"j start",
		"j first",
	})

	assert.Equal(int32(0), prog.Code[1].Imm)
	assert.Equal(int32(0), prog.Code[2].Imm)
}

func TestAssemblerDataLabels(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t, []string{
		".data",
		"greeting: .asciz \"hi\"",
		"count: .word 7",
		".text",
		"la a0 greeting",
		"la a1 count",
	})

	assert.Equal(Instruction{Op: OP_ADDI, Rd: 10, Rs1: REG_ZERO, Imm: 0}, prog.Code[0])
	assert.Equal(Instruction{Op: OP_ADDI, Rd: 11, Rs1: REG_ZERO, Imm: 3}, prog.Code[1])
	assert.Equal([]byte{'h', 'i', 0, 7, 0, 0, 0}, prog.Data[:7])
}

func TestAssemblerMissingLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("j nowhere\n"), testDataSize)
	assert.Error(err)

	var missing ErrLabelMissing
	assert.True(errors.As(err, &missing))
	assert.Equal("nowhere", string(missing))

	var syn ErrSyntax
	assert.True(errors.As(err, &syn))
	assert.Equal(1, syn.LineNo)
}

func TestAssemblerDuplicateLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := "here:\nnop\nhere:\n"
	_, err := asm.Parse(strings.NewReader(program), testDataSize)
	assert.ErrorIs(err, ErrLabelDuplicate)
}

func TestAssemblerUnknownInstruction(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("frobnicate x1 x2 x3\n"), testDataSize)

	var unknown ErrInstructionUnknown
	assert.True(errors.As(err, &unknown))
	assert.Equal("frobnicate", string(unknown))
}

func TestAssemblerUnknownRegister(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("add x1 x2 q9\n"), testDataSize)

	var unknown ErrRegisterUnknown
	assert.True(errors.As(err, &unknown))
	assert.Equal("q9", string(unknown))
}

func TestAssemblerComments(t *testing.T) {
	prog := doParse(t, []string{
		"# full-line comment",
		"nop # trailing comment",
		"",
	})

	insEqual(t, []Instruction{
		{Op: OP_ADDI},
	}, prog)
}

func TestAssemblerHashLiterals(t *testing.T) {
	assert := assert.New(t)

	// A # inside a quoted literal is data, not a comment.
	prog := doParse(t, []string{
		".data",
		".asciz \"a#b\" # trailing comment",
		".byte '#'",
		".text",
		"li a0 '#' # comment after a char literal",
	})

	assert.Equal([]byte{'a', '#', 'b', 0, '#'}, prog.Data[:5])
	assert.Equal(Instruction{Op: OP_ADDI, Rd: 10, Rs1: REG_ZERO, Imm: '#'}, prog.Code[0])
}

func TestAssemblerEquates(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t, []string{
		".equ SPEED 11",
		"li a0 SPEED",
		"li a1 FRAME_WIDTH",
	})

	assert.Equal(int32(11), prog.Code[0].Imm)
	assert.Equal(int32(320), prog.Code[1].Imm)
}

func TestAssemblerEquateDuplicate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := ".equ TWICE 1\n.equ TWICE 2\n"
	_, err := asm.Parse(strings.NewReader(program), testDataSize)
	assert.ErrorIs(err, ErrEquateDuplicate)
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("LIVES", "3")

	prog, err := asm.Parse(strings.NewReader("li a0 LIVES\n"), testDataSize)
	assert.NoError(err)
	assert.Equal(int32(3), prog.Code[0].Imm)
}

func TestAssemblerExpressions(t *testing.T) {
	assert := assert.New(t)

	prog := doParse(t, []string{
		".equ ROWS 10",
		"li a0 $(ROWS * FRAME_WIDTH)",
		"li a1 $(1 << 8)",
		"li a2 'A'",
		"li a3 '\\n'",
	})

	assert.Equal(int32(3200), prog.Code[0].Imm)
	assert.Equal(int32(256), prog.Code[1].Imm)
	assert.Equal(int32('A'), prog.Code[2].Imm)
	assert.Equal(int32('\n'), prog.Code[3].Imm)
}

func TestAssemblerBadExpression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("li a0 $(nonsense +)\n"), testDataSize)

	var bad ErrParseExpression
	assert.True(errors.As(err, &bad))
}

func TestAssemblerOperandCounts(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("add x1 x2\n"), testDataSize)
	assert.ErrorIs(err, ErrOperandMissing)

	_, err = asm.Parse(strings.NewReader("add x1 x2 x3 x4\n"), testDataSize)
	assert.ErrorIs(err, ErrOperandExtra)

	_, err = asm.Parse(strings.NewReader("ecall now\n"), testDataSize)
	assert.ErrorIs(err, ErrOperandExtra)
}
