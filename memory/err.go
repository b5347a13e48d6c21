package memory

import (
	"github.com/ezrec/fastrv/translate"
)

var f = translate.From

// ErrAccessFault reports an address outside the data region and the MMIO
// window. Only checked memory produces it.
type ErrAccessFault uint32

func (ea ErrAccessFault) Error() string {
	return f("memory access fault at address %#x", uint32(ea))
}
