package cpu

// ABI register indexes used by the assembler's pseudo expansion and the
// engine's syscall interface.
const (
	REG_ZERO = 0
	REG_RA   = 1
	REG_SP   = 2
	REG_A0   = 10
	REG_A1   = 11
	REG_A7   = 17
)

// Syscall numbers dispatched on register a7 by the ecall trap. The catalog
// follows the RARS convention; SYS_KEY_POLL is fastrv-specific.
const (
	SYS_PRINT_INT    = 1
	SYS_PRINT_STRING = 4
	SYS_READ_INT     = 5
	SYS_EXIT         = 10
	SYS_PRINT_CHAR   = 11
	SYS_READ_CHAR    = 12
	SYS_KEY_POLL     = 30
)
