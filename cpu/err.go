package cpu

import (
	"errors"

	"github.com/ezrec/fastrv/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrOperandSyntax   = errors.New(f("operand syntax"))
	ErrStringSyntax    = errors.New(f("string literal syntax"))
	ErrAlignSyntax     = errors.New(f("alignment out of range"))
	ErrDataTooLarge    = errors.New(f("data segment overflow"))
)

// ErrLabelMissing reports a label that was referenced but never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrRegisterUnknown reports a register mnemonic absent from its namespace.
type ErrRegisterUnknown string

func (er ErrRegisterUnknown) Error() string {
	return f("register %v unknown", string(er))
}

// ErrInstructionUnknown reports a mnemonic outside the supported set.
type ErrInstructionUnknown string

func (ei ErrInstructionUnknown) Error() string {
	return f("instruction %v not implemented", string(ei))
}

// ErrDirectiveUnknown reports an unrecognized data directive.
type ErrDirectiveUnknown string

func (ed ErrDirectiveUnknown) Error() string {
	return f("directive %v unknown", string(ed))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax wraps any parse failure with its source location. Every error
// out of Assembler.Parse is an ErrSyntax; the parse aborts on the first one.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
