// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

// Memory is byte-addressable storage with 1/2/4-byte loads and stores,
// little-endian. Addresses below Size() are in the data/heap region;
// addresses from MMIO_BASE route into the shared MMIO window.
//
// New returns a checked or an unchecked implementation. Checked validates
// every address and returns ErrAccessFault on a miss; unchecked skips the
// validation for throughput and is undefined on out-of-range access. The
// mode is fixed at construction and never switches at runtime - tests and
// verification always run checked.
type Memory interface {
	Byte(addr uint32) (value uint8, err error)
	Half(addr uint32) (value uint16, err error)
	Word(addr uint32) (value uint32, err error)
	SetByte(addr uint32, value uint8) (err error)
	SetHalf(addr uint32, value uint16) (err error)
	SetWord(addr uint32, value uint32) (err error)

	// Size returns the data/heap region size in bytes.
	Size() uint32
	// Mmio returns the shared MMIO window.
	Mmio() *Mmio
}

// New creates a Memory whose data region is initialized with the parsed
// data segment. The segment is copied; the caller's slice stays untouched.
func New(data []byte, checked bool) (mem Memory) {
	b := bank{
		data: append([]byte(nil), data...),
		mmio: NewMmio(),
	}

	if checked {
		mem = &checkedMemory{bank: b}
	} else {
		mem = &uncheckedMemory{bank: b}
	}
	return
}

// bank is the storage shared by both access modes.
type bank struct {
	data []byte
	mmio *Mmio
}

func (b *bank) Size() uint32 {
	return uint32(len(b.data))
}

func (b *bank) Mmio() *Mmio {
	return b.mmio
}

// load reads an n-byte little-endian quantity. Bounds already validated.
func (b *bank) load(addr uint32, n int) (value uint32) {
	if addr >= MMIO_BASE {
		return b.mmio.load(addr-MMIO_BASE, n)
	}
	for i := range n {
		value |= uint32(b.data[addr+uint32(i)]) << (8 * i)
	}
	return
}

// store writes an n-byte little-endian quantity. Bounds already validated.
func (b *bank) store(addr uint32, n int, value uint32) {
	if addr >= MMIO_BASE {
		b.mmio.store(addr-MMIO_BASE, n, value)
		return
	}
	for i := range n {
		b.data[addr+uint32(i)] = byte(value >> (8 * i))
	}
}

// checkedMemory validates every access against the data region and the
// MMIO window before touching storage.
type checkedMemory struct {
	bank
}

func (m *checkedMemory) check(addr uint32, n int) (err error) {
	if addr >= MMIO_BASE {
		off := addr - MMIO_BASE
		if off+uint32(n) > MMIO_SIZE {
			err = ErrAccessFault(addr)
		}
		return
	}
	if addr+uint32(n) > uint32(len(m.data)) || addr+uint32(n) < addr {
		err = ErrAccessFault(addr)
	}
	return
}

func (m *checkedMemory) Byte(addr uint32) (value uint8, err error) {
	err = m.check(addr, 1)
	if err != nil {
		return
	}
	value = uint8(m.load(addr, 1))
	return
}

func (m *checkedMemory) Half(addr uint32) (value uint16, err error) {
	err = m.check(addr, 2)
	if err != nil {
		return
	}
	value = uint16(m.load(addr, 2))
	return
}

func (m *checkedMemory) Word(addr uint32) (value uint32, err error) {
	err = m.check(addr, 4)
	if err != nil {
		return
	}
	value = m.load(addr, 4)
	return
}

func (m *checkedMemory) SetByte(addr uint32, value uint8) (err error) {
	err = m.check(addr, 1)
	if err != nil {
		return
	}
	m.store(addr, 1, uint32(value))
	return
}

func (m *checkedMemory) SetHalf(addr uint32, value uint16) (err error) {
	err = m.check(addr, 2)
	if err != nil {
		return
	}
	m.store(addr, 2, uint32(value))
	return
}

func (m *checkedMemory) SetWord(addr uint32, value uint32) (err error) {
	err = m.check(addr, 4)
	if err != nil {
		return
	}
	m.store(addr, 4, value)
	return
}

// uncheckedMemory indexes storage directly. Out-of-range access is
// undefined; select it only when throughput matters more than diagnosis.
type uncheckedMemory struct {
	bank
}

func (m *uncheckedMemory) Byte(addr uint32) (value uint8, err error) {
	value = uint8(m.load(addr, 1))
	return
}

func (m *uncheckedMemory) Half(addr uint32) (value uint16, err error) {
	value = uint16(m.load(addr, 2))
	return
}

func (m *uncheckedMemory) Word(addr uint32) (value uint32, err error) {
	value = m.load(addr, 4)
	return
}

func (m *uncheckedMemory) SetByte(addr uint32, value uint8) (err error) {
	m.store(addr, 1, uint32(value))
	return
}

func (m *uncheckedMemory) SetHalf(addr uint32, value uint16) (err error) {
	m.store(addr, 2, uint32(value))
	return
}

func (m *uncheckedMemory) SetWord(addr uint32, value uint32) (err error) {
	m.store(addr, 4, value)
	return
}
