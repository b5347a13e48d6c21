// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"fmt"
	"iter"
	"maps"
	"sync"
)

// Memory map constants. The MMIO offsets and the packed color format are
// the external contract with the display front-end.
const (
	MMIO_BASE = uint32(0xff000000) // First MMIO address.

	FRAME_WIDTH  = 320 // Framebuffer width in pixels.
	FRAME_HEIGHT = 240 // Framebuffer height in pixels.
	FRAME_SIZE   = FRAME_WIDTH * FRAME_HEIGHT

	FRAME_0      = uint32(0x000000) // Framebuffer 0 offset.
	FRAME_1      = uint32(0x100000) // Framebuffer 1 offset.
	FRAME_SELECT = uint32(0x200604) // Frame-select byte offset.

	MMIO_SIZE = uint32(0x200608) // Total MMIO window size.

	KEY_LIMIT = 64 // Maximum buffered keyboard bytes.
)

var _memory_defines = map[string]string{
	"MMIO_BASE":    fmt.Sprintf("%#x", MMIO_BASE),
	"FRAME_0":      fmt.Sprintf("%#x", MMIO_BASE+FRAME_0),
	"FRAME_1":      fmt.Sprintf("%#x", MMIO_BASE+FRAME_1),
	"FRAME_SELECT": fmt.Sprintf("%#x", MMIO_BASE+FRAME_SELECT),
	"FRAME_WIDTH":  fmt.Sprintf("%v", FRAME_WIDTH),
	"FRAME_HEIGHT": fmt.Sprintf("%v", FRAME_HEIGHT),
}

// Defines returns the memory map constants as assembler equates. The
// framebuffer and frame-select entries are absolute addresses.
func Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Mmio is the memory-mapped I/O window shared between the execution engine
// and the display front-end. It outlives both; the engine reaches it
// through a Memory, the front-end holds it directly.
type Mmio struct {
	mu   sync.Mutex
	buf  []byte
	keys []byte
}

// NewMmio creates a zeroed MMIO window.
func NewMmio() (mm *Mmio) {
	return &Mmio{
		buf: make([]byte, MMIO_SIZE),
	}
}

// load reads an n-byte little-endian quantity at off under the lock.
// Bounds are the caller's responsibility.
func (mm *Mmio) load(off uint32, n int) (value uint32) {
	mm.mu.Lock()
	for i := range n {
		value |= uint32(mm.buf[off+uint32(i)]) << (8 * i)
	}
	mm.mu.Unlock()
	return
}

// store writes an n-byte little-endian quantity at off under the lock, so
// a single access never tears.
func (mm *Mmio) store(off uint32, n int, value uint32) {
	mm.mu.Lock()
	for i := range n {
		mm.buf[off+uint32(i)] = byte(value >> (8 * i))
	}
	mm.mu.Unlock()
}

// FrameSelect returns the current frame-select byte.
func (mm *Mmio) FrameSelect() (frame byte) {
	return byte(mm.load(FRAME_SELECT, 1))
}

// SetFrameSelect sets the frame-select byte, presenting the other buffer.
func (mm *Mmio) SetFrameSelect(frame byte) {
	mm.store(FRAME_SELECT, 1, uint32(frame))
}

// ActiveBase returns the offset of the framebuffer the display presents.
func (mm *Mmio) ActiveBase() (base uint32) {
	base = FRAME_0
	if mm.FrameSelect() != 0 {
		base = FRAME_1
	}
	return
}

// BackBase returns the offset of the framebuffer not being presented -
// the one the program should draw into before flipping the select byte.
func (mm *Mmio) BackBase() (base uint32) {
	base = FRAME_1
	if mm.FrameSelect() != 0 {
		base = FRAME_0
	}
	return
}

// SnapshotActive copies the presented framebuffer into dst under a single
// lock acquisition. dst must hold FRAME_SIZE bytes.
func (mm *Mmio) SnapshotActive(dst []byte) {
	mm.mu.Lock()
	base := FRAME_0
	if mm.buf[FRAME_SELECT] != 0 {
		base = FRAME_1
	}
	copy(dst, mm.buf[base:base+FRAME_SIZE])
	mm.mu.Unlock()
}

// PushKey appends a keyboard byte from the display front-end. Reports
// false when the queue is full; the key is dropped.
func (mm *Mmio) PushKey(key byte) (ok bool) {
	mm.mu.Lock()
	if len(mm.keys) < KEY_LIMIT {
		mm.keys = append(mm.keys, key)
		ok = true
	}
	mm.mu.Unlock()
	return
}

// PopKey removes the oldest buffered keyboard byte. Reports false when the
// queue is empty.
func (mm *Mmio) PopKey() (key byte, ok bool) {
	mm.mu.Lock()
	if len(mm.keys) > 0 {
		key = mm.keys[0]
		mm.keys = mm.keys[1:]
		ok = true
	}
	mm.mu.Unlock()
	return
}
