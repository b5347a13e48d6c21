package cpu

import (
	"fmt"
)

// Op identifies one instruction in the closed fastrv base set. Pseudo
// instructions never appear here; the assembler expands them while parsing.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	// Register-register
	OP_ADD  = Op(iota) // add
	OP_SUB             // sub
	OP_SLL             // sll
	OP_SLT             // slt
	OP_SLTU            // sltu
	OP_XOR             // xor
	OP_SRL             // srl
	OP_SRA             // sra
	OP_OR              // or
	OP_AND             // and
	OP_MUL             // mul
	OP_DIV             // div
	OP_DIVU            // divu
	OP_REM             // rem
	OP_REMU            // remu

	// Register-immediate
	OP_ADDI  // addi
	OP_SLTI  // slti
	OP_SLTIU // sltiu
	OP_SLLI  // slli
	OP_SRLI  // srli
	OP_SRAI  // srai
	OP_ORI   // ori
	OP_ANDI  // andi
	OP_XORI  // xori

	// Loads and stores
	OP_LB  // lb
	OP_LH  // lh
	OP_LW  // lw
	OP_LBU // lbu
	OP_LHU // lhu
	OP_SB  // sb
	OP_SH  // sh
	OP_SW  // sw

	// Branches
	OP_BEQ  // beq
	OP_BNE  // bne
	OP_BLT  // blt
	OP_BGE  // bge
	OP_BLTU // bltu
	OP_BGEU // bgeu

	// Jumps and traps
	OP_JAL   // jal
	OP_JALR  // jalr
	OP_ECALL // ecall
)

// INSTRUCTION_WIDTH is the byte width of one instruction in the code
// segment's address space. Labels and jump targets are byte offsets;
// the engine's program counter is an instruction index.
const INSTRUCTION_WIDTH = 4

// Instruction is a single decoded instruction. Operand meaning depends on
// the Op: Imm holds the sign-extended immediate for register-immediate ops
// and loads/stores, and the resolved absolute byte offset into the code
// segment for branches and jal. Immutable once built.
type Instruction struct {
	Op  Op
	Rd  uint8
	Rs1 uint8
	Rs2 uint8
	Imm int32
}

// preInstruction is the pass 1 form of an Instruction. A branch, jump or
// load-address whose target is a label keeps the label name until the whole
// file has been scanned; everything else passes through with an empty label.
type preInstruction struct {
	ins    Instruction
	label  string
	lineNo int
	src    string
}

// String returns the assembly language rendering of the instruction.
func (ins Instruction) String() (out string) {
	switch ins.Op {
	case OP_ADD, OP_SUB, OP_SLL, OP_SLT, OP_SLTU, OP_XOR, OP_SRL, OP_SRA,
		OP_OR, OP_AND, OP_MUL, OP_DIV, OP_DIVU, OP_REM, OP_REMU:
		out = fmt.Sprintf("%v x%d x%d x%d", ins.Op, ins.Rd, ins.Rs1, ins.Rs2)
	case OP_ADDI, OP_SLTI, OP_SLTIU, OP_SLLI, OP_SRLI, OP_SRAI,
		OP_ORI, OP_ANDI, OP_XORI:
		out = fmt.Sprintf("%v x%d x%d %d", ins.Op, ins.Rd, ins.Rs1, ins.Imm)
	case OP_LB, OP_LH, OP_LW, OP_LBU, OP_LHU:
		out = fmt.Sprintf("%v x%d %d(x%d)", ins.Op, ins.Rd, ins.Imm, ins.Rs1)
	case OP_SB, OP_SH, OP_SW:
		out = fmt.Sprintf("%v x%d %d(x%d)", ins.Op, ins.Rs2, ins.Imm, ins.Rs1)
	case OP_BEQ, OP_BNE, OP_BLT, OP_BGE, OP_BLTU, OP_BGEU:
		out = fmt.Sprintf("%v x%d x%d %d", ins.Op, ins.Rs1, ins.Rs2, ins.Imm)
	case OP_JAL:
		out = fmt.Sprintf("%v x%d %d", ins.Op, ins.Rd, ins.Imm)
	case OP_JALR:
		out = fmt.Sprintf("%v x%d x%d %d", ins.Op, ins.Rd, ins.Rs1, ins.Imm)
	case OP_ECALL:
		out = ins.Op.String()
	default:
		out = fmt.Sprintf("%v?", ins.Op)
	}

	return
}
