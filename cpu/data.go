package cpu

import (
	"strconv"
	"strings"
)

// parseData parses one data-segment line and appends its bytes to the data
// collection. Values are stored little-endian; string escapes follow Go
// quoting rules.
func (asm *Assembler) parseData(line string, lineNo int) (err error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case ".ascii", ".asciz", ".string":
		var literal string
		literal, err = strconv.Unquote(rest)
		if err != nil {
			err = ErrStringSyntax
			return
		}
		asm.data = append(asm.data, literal...)
		if name != ".ascii" {
			asm.data = append(asm.data, 0)
		}
	case ".byte", ".half", ".word":
		var words []string
		words, err = asm.expand(rest, lineNo)
		if err != nil {
			return
		}
		if len(words) == 0 {
			err = ErrOperandMissing
			return
		}
		width := map[string]int{".byte": 1, ".half": 2, ".word": 4}[name]
		for _, word := range words {
			var value int32
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			for n := range width {
				asm.data = append(asm.data, byte(uint32(value)>>(8*n)))
			}
		}
	case ".space":
		var count int32
		count, err = asm.dataValue(rest, lineNo)
		if err != nil {
			return
		}
		if count < 0 {
			err = ErrOperandSyntax
			return
		}
		asm.data = append(asm.data, make([]byte, count)...)
	case ".align":
		var power int32
		power, err = asm.dataValue(rest, lineNo)
		if err != nil {
			return
		}
		if power < 0 || power > 16 {
			err = ErrAlignSyntax
			return
		}
		align := 1 << power
		for len(asm.data)%align != 0 {
			asm.data = append(asm.data, 0)
		}
	default:
		err = ErrDirectiveUnknown(name)
	}

	return
}

// dataValue evaluates a single-value directive argument.
func (asm *Assembler) dataValue(rest string, lineNo int) (value int32, err error) {
	words, err := asm.expand(rest, lineNo)
	if err != nil {
		return
	}
	if len(words) < 1 {
		err = ErrOperandMissing
		return
	}
	if len(words) > 1 {
		err = ErrOperandExtra
		return
	}
	value, err = asm.valueOf(words[0])
	return
}
