// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/fastrv/memory"
)

// Predefined system equates. The memory map constants are exported so
// programs can name MMIO addresses symbolically.
var sysEquate = func() map[string]string {
	equ := maps.Collect(memory.Defines())
	equ["LINENO"] = "0"
	return equ
}()

// Assembler is a two-pass assembler for the fastrv RISC-V subset. Pass 1
// scans the preprocessed line stream, collecting instructions, data bytes
// and label positions; pass 2 resolves every deferred label reference.
// A parse failure at any stage aborts the whole parse - no partial program
// is ever returned.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to byte offsets in their segment.
	Equate    map[string]string // Map of equates.

	code []preInstruction
	data []byte
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the 32-bit value of a simple word. Accepts decimal,
// hex/octal/binary (Go literal syntax) and negative values; the result is
// the two's-complement bit pattern.
func (asm *Assembler) valueOf(word string) (value int32, err error) {
	if word == "" {
		err = ErrParseNumber(word)
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in expand()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}
	if v64 > 0xffffffff || v64 < -0x80000000 {
		err = ErrParseNumber(word)
		return
	}

	value = int32(uint32(v64))
	return
}

// parenEval does compile-time $(...) evaluations. Integer equates are bound
// as Starlark variables.
func (asm *Assembler) parenEval(expr string) (value int32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 int32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	err = nil

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int32(uint32(st_int64))
	return
}

var charRe = regexp.MustCompile(`'\\?[^']'`)
var exprRe = regexp.MustCompile(`\$\([^\$]*\)`)
var labelRe = regexp.MustCompile(`^([A-Za-z_][0-9A-Za-z_.$]*):[ \t]*`)

// stripComment removes a trailing # comment. A # inside a character or
// string literal is literal text, not a comment.
func stripComment(line string) (out string) {
	out = line

	var quote byte
	for n := 0; n < len(line); n++ {
		ch := line[n]
		switch {
		case quote != 0:
			if ch == '\\' {
				n++
			} else if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '#':
			out = line[:n]
			return
		}
	}

	return
}

// expand rewrites character literals and $(...) expressions into numbers,
// splits the line into words and substitutes equates.
func (asm *Assembler) expand(line string, lineNo int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineNo)

	// Do 'x' evaluations
	line = charRe.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "'":
				str = "'"
			case "0":
				str = "\x00"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return strconv.Itoa(int(str[0]))
	})

	// Do $() evaluations
	line = exprRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.Itoa(int(value))
	})
	if err != nil {
		return
	}

	line = strings.ReplaceAll(line, ",", " ")
	words = strings.Fields(line)

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// Parse parses an input stream of preprocessed assembly lines into a
// Program. The data segment of the result is fixed at dataSegmentSize
// bytes, zero-filled beyond what the data directives wrote.
func (asm *Assembler) Parse(input io.Reader, dataSegmentSize int) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineNo int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineNo, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.code = asm.code[:0]
	asm.data = make([]byte, 0, dataSegmentSize)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	text := true

	for scanner.Scan() {
		raw := scanner.Text()
		lineNo++

		if asm.Verbose {
			log.Printf("%v: %v", lineNo, raw)
		}

		line = strings.TrimSpace(stripComment(raw))

		// Labels bind to the current position of the active segment.
		// A label may share its line with the instruction it precedes.
		for m := labelRe.FindStringSubmatch(line); m != nil; m = labelRe.FindStringSubmatch(line) {
			label := m[1]
			_, ok := asm.Label[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			if text {
				asm.Label[label] = len(asm.code) * INSTRUCTION_WIDTH
			} else {
				asm.Label[label] = len(asm.data)
			}
			line = line[len(m[0]):]
		}

		if line == "" {
			continue
		}

		// .equ CONST VALUE
		words := strings.Fields(line)
		if words[0] == ".equ" {
			if len(words) != 3 {
				err = ErrEquateSyntax
				return
			}
			_, ok := asm.Equate[words[1]]
			if ok {
				err = ErrEquateDuplicate
				return
			}
			asm.Equate[words[1]] = words[2]
			continue
		}

		// Segment switches. Prefix match, like RARS.
		if strings.HasPrefix(line, ".data") {
			text = false
			continue
		}
		if strings.HasPrefix(line, ".text") {
			text = true
			continue
		}

		if text {
			words, err = asm.expand(line, lineNo)
			if err != nil {
				return
			}
			err = asm.parseText(words, lineNo, line)
		} else {
			err = asm.parseData(line, lineNo)
		}
		if err != nil {
			return
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Pass 2: commit deferred labels to absolute byte offsets.
	code := make([]Instruction, 0, len(asm.code)+3)
	lines := make([]int, 0, len(asm.code)+3)
	for _, pre := range asm.code {
		ins := pre.ins
		if pre.label != "" {
			pos, ok := asm.Label[pre.label]
			if !ok {
				lineNo = pre.lineNo
				line = pre.src
				err = ErrLabelMissing(pre.label)
				return
			}
			ins.Imm = int32(pos)
		}
		code = append(code, ins)
		lines = append(lines, pre.lineNo)
	}

	// Fall-through epilogue: a jump landing pad followed by a terminate
	// syscall, so control dropping off the end of user code exits cleanly
	// instead of running past the instruction sequence.
	code = append(code,
		Instruction{Op: OP_JAL, Rd: REG_ZERO, Imm: int32((len(code) + 1) * INSTRUCTION_WIDTH)},
		Instruction{Op: OP_ADDI, Rd: REG_A7, Rs1: REG_ZERO, Imm: SYS_EXIT},
		Instruction{Op: OP_ECALL},
	)
	lines = append(lines, 0, 0, 0)

	if len(asm.data) > dataSegmentSize {
		err = ErrDataTooLarge
		return
	}
	data := make([]byte, dataSegmentSize)
	copy(data, asm.data)

	prog = &Program{Code: code, Lines: lines, Data: data}
	return
}
