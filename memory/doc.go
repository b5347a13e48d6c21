// Package memory implements the byte-addressable memory of the fastrv
// machine: a general data/heap region at low addresses and a memory-mapped
// I/O window holding the double-buffered framebuffers, the frame-select
// byte and the keyboard queue.
//
// The MMIO window is the only state shared between the execution engine
// and the display front-end; every access from either side goes through
// one mutex, held for a single access at a time.
package memory
