package cpu

import (
	"strings"
)

// typeROps maps register-register mnemonics.
var typeROps = map[string]Op{
	"add":  OP_ADD,
	"sub":  OP_SUB,
	"sll":  OP_SLL,
	"slt":  OP_SLT,
	"sltu": OP_SLTU,
	"xor":  OP_XOR,
	"srl":  OP_SRL,
	"sra":  OP_SRA,
	"or":   OP_OR,
	"and":  OP_AND,
	"mul":  OP_MUL,
	"div":  OP_DIV,
	"divu": OP_DIVU,
	"rem":  OP_REM,
	"remu": OP_REMU,
}

// immOps maps register-immediate mnemonics.
var immOps = map[string]Op{
	"addi":  OP_ADDI,
	"slti":  OP_SLTI,
	"sltiu": OP_SLTIU,
	"slli":  OP_SLLI,
	"srli":  OP_SRLI,
	"srai":  OP_SRAI,
	"ori":   OP_ORI,
	"andi":  OP_ANDI,
	"xori":  OP_XORI,
}

// loadOps maps load mnemonics. Operand order is rd, offset(base).
var loadOps = map[string]Op{
	"lb":  OP_LB,
	"lh":  OP_LH,
	"lw":  OP_LW,
	"lbu": OP_LBU,
	"lhu": OP_LHU,
}

// storeOps maps store mnemonics. Operand order is rs2, offset(base).
var storeOps = map[string]Op{
	"sb": OP_SB,
	"sh": OP_SH,
	"sw": OP_SW,
}

// branchOps maps canonical branch mnemonics.
var branchOps = map[string]Op{
	"beq":  OP_BEQ,
	"bne":  OP_BNE,
	"blt":  OP_BLT,
	"bge":  OP_BGE,
	"bltu": OP_BLTU,
	"bgeu": OP_BGEU,
}

// branchSwapped maps the "greater-than" branch aliases to their canonical
// comparison; the two register operands are reversed on emit, so for
// example `bgt a b L` assembles exactly as `blt b a L`.
var branchSwapped = map[string]Op{
	"bgt":  OP_BLT,
	"ble":  OP_BGE,
	"bgtu": OP_BLTU,
	"bleu": OP_BGEU,
}

// argsTypeR parses a three-register operand list.
func (asm *Assembler) argsTypeR(words []string) (rd, rs1, rs2 uint8, err error) {
	if len(words) < 3 {
		err = ErrOperandMissing
		return
	}
	if len(words) > 3 {
		err = ErrOperandExtra
		return
	}

	rd, err = IntReg(words[0])
	if err != nil {
		return
	}
	rs1, err = IntReg(words[1])
	if err != nil {
		return
	}
	rs2, err = IntReg(words[2])
	return
}

// argsRegImm parses a register, register, immediate operand list.
func (asm *Assembler) argsRegImm(words []string) (rd, rs1 uint8, imm int32, err error) {
	if len(words) < 3 {
		err = ErrOperandMissing
		return
	}
	if len(words) > 3 {
		err = ErrOperandExtra
		return
	}

	rd, err = IntReg(words[0])
	if err != nil {
		return
	}
	rs1, err = IntReg(words[1])
	if err != nil {
		return
	}
	imm, err = asm.valueOf(words[2])
	return
}

// argsMem parses the load/store operand shape: a register followed by
// either `offset(base)`, `(base)`, or the two words `offset base`.
func (asm *Assembler) argsMem(words []string) (reg uint8, imm int32, base uint8, err error) {
	if len(words) < 2 {
		err = ErrOperandMissing
		return
	}

	reg, err = IntReg(words[0])
	if err != nil {
		return
	}

	rest := words[1:]
	switch len(rest) {
	case 1:
		word := rest[0]
		open := strings.IndexByte(word, '(')
		if open < 0 || !strings.HasSuffix(word, ")") {
			err = ErrOperandSyntax
			return
		}
		if off := word[:open]; off != "" {
			imm, err = asm.valueOf(off)
			if err != nil {
				return
			}
		}
		base, err = IntReg(word[open+1 : len(word)-1])
	case 2:
		imm, err = asm.valueOf(rest[0])
		if err != nil {
			return
		}
		base, err = IntReg(rest[1])
	default:
		err = ErrOperandExtra
	}

	return
}

// argsBranch parses two registers and a target (label or absolute offset).
func (asm *Assembler) argsBranch(words []string) (rs1, rs2 uint8, target string, err error) {
	if len(words) < 3 {
		err = ErrOperandMissing
		return
	}
	if len(words) > 3 {
		err = ErrOperandExtra
		return
	}

	rs1, err = IntReg(words[0])
	if err != nil {
		return
	}
	rs2, err = IntReg(words[1])
	if err != nil {
		return
	}
	target = words[2]
	return
}

// target splits a branch/jump target word into an already-absolute byte
// offset or a label name left for the resolution pass.
func (asm *Assembler) target(word string) (imm int32, label string) {
	imm, err := asm.valueOf(word)
	if err != nil {
		imm = 0
		label = word
	}
	return
}

// parseText parses the words of one text-segment line and appends the
// resulting instruction to the code collection. Pseudo instructions are
// expanded here; the emitted set is always the closed base set.
func (asm *Assembler) parseText(words []string, lineNo int, src string) (err error) {
	emit := func(ins Instruction, label string) {
		asm.code = append(asm.code, preInstruction{ins: ins, label: label, lineNo: lineNo, src: src})
	}

	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	if op, ok := typeROps[mnemonic]; ok {
		var rd, rs1, rs2 uint8
		rd, rs1, rs2, err = asm.argsTypeR(args)
		if err != nil {
			return
		}
		emit(Instruction{Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}, "")
		return
	}

	if op, ok := immOps[mnemonic]; ok {
		var rd, rs1 uint8
		var imm int32
		rd, rs1, imm, err = asm.argsRegImm(args)
		if err != nil {
			return
		}
		emit(Instruction{Op: op, Rd: rd, Rs1: rs1, Imm: imm}, "")
		return
	}

	if op, ok := loadOps[mnemonic]; ok {
		var rd, base uint8
		var imm int32
		rd, imm, base, err = asm.argsMem(args)
		if err != nil {
			return
		}
		emit(Instruction{Op: op, Rd: rd, Rs1: base, Imm: imm}, "")
		return
	}

	if op, ok := storeOps[mnemonic]; ok {
		var rs2, base uint8
		var imm int32
		rs2, imm, base, err = asm.argsMem(args)
		if err != nil {
			return
		}
		emit(Instruction{Op: op, Rs2: rs2, Rs1: base, Imm: imm}, "")
		return
	}

	if op, ok := branchOps[mnemonic]; ok {
		var rs1, rs2 uint8
		var word string
		rs1, rs2, word, err = asm.argsBranch(args)
		if err != nil {
			return
		}
		imm, label := asm.target(word)
		emit(Instruction{Op: op, Rs1: rs1, Rs2: rs2, Imm: imm}, label)
		return
	}

	if op, ok := branchSwapped[mnemonic]; ok {
		var rs1, rs2 uint8
		var word string
		rs1, rs2, word, err = asm.argsBranch(args)
		if err != nil {
			return
		}
		imm, label := asm.target(word)
		emit(Instruction{Op: op, Rs1: rs2, Rs2: rs1, Imm: imm}, label)
		return
	}

	switch mnemonic {
	case "beqz", "bnez":
		if len(args) != 2 {
			err = ErrOperandMissing
			return
		}
		var rs1 uint8
		rs1, err = IntReg(args[0])
		if err != nil {
			return
		}
		op := OP_BEQ
		if mnemonic == "bnez" {
			op = OP_BNE
		}
		imm, label := asm.target(args[1])
		emit(Instruction{Op: op, Rs1: rs1, Rs2: REG_ZERO, Imm: imm}, label)
	case "jal":
		// `jal label` is shorthand for `jal ra label`
		rd := uint8(REG_RA)
		word := ""
		switch len(args) {
		case 1:
			word = args[0]
		case 2:
			rd, err = IntReg(args[0])
			if err != nil {
				return
			}
			word = args[1]
		default:
			err = ErrOperandMissing
			return
		}
		imm, label := asm.target(word)
		emit(Instruction{Op: OP_JAL, Rd: rd, Imm: imm}, label)
	case "j":
		if len(args) != 1 {
			err = ErrOperandMissing
			return
		}
		imm, label := asm.target(args[0])
		emit(Instruction{Op: OP_JAL, Rd: REG_ZERO, Imm: imm}, label)
	case "call":
		if len(args) != 1 {
			err = ErrOperandMissing
			return
		}
		imm, label := asm.target(args[0])
		emit(Instruction{Op: OP_JAL, Rd: REG_RA, Imm: imm}, label)
	case "jalr":
		switch len(args) {
		case 1:
			// `jalr rs` is shorthand for `jalr ra rs 0`
			var rs1 uint8
			rs1, err = IntReg(args[0])
			if err != nil {
				return
			}
			emit(Instruction{Op: OP_JALR, Rd: REG_RA, Rs1: rs1}, "")
		case 3:
			var rd, rs1 uint8
			var imm int32
			rd, rs1, imm, err = asm.argsRegImm(args)
			if err != nil {
				return
			}
			emit(Instruction{Op: OP_JALR, Rd: rd, Rs1: rs1, Imm: imm}, "")
		default:
			err = ErrOperandMissing
		}
	case "ecall":
		if len(args) != 0 {
			err = ErrOperandExtra
			return
		}
		emit(Instruction{Op: OP_ECALL}, "")
	case "li":
		if len(args) != 2 {
			err = ErrOperandMissing
			return
		}
		var rd uint8
		var imm int32
		rd, err = IntReg(args[0])
		if err != nil {
			return
		}
		imm, err = asm.valueOf(args[1])
		if err != nil {
			return
		}
		emit(Instruction{Op: OP_ADDI, Rd: rd, Rs1: REG_ZERO, Imm: imm}, "")
	case "mv":
		if len(args) != 2 {
			err = ErrOperandMissing
			return
		}
		var rd, rs1 uint8
		rd, err = IntReg(args[0])
		if err != nil {
			return
		}
		rs1, err = IntReg(args[1])
		if err != nil {
			return
		}
		emit(Instruction{Op: OP_ADDI, Rd: rd, Rs1: rs1}, "")
	case "la":
		if len(args) != 2 {
			err = ErrOperandMissing
			return
		}
		var rd uint8
		rd, err = IntReg(args[0])
		if err != nil {
			return
		}
		imm, label := asm.target(args[1])
		emit(Instruction{Op: OP_ADDI, Rd: rd, Rs1: REG_ZERO, Imm: imm}, label)
	case "ret":
		if len(args) != 0 {
			err = ErrOperandExtra
			return
		}
		emit(Instruction{Op: OP_JALR, Rd: REG_ZERO, Rs1: REG_RA}, "")
	case "nop":
		emit(Instruction{Op: OP_ADDI}, "")
	default:
		err = ErrInstructionUnknown(words[0])
	}

	return
}
