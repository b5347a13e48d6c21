// Package video implements the display front-end of the fastrv machine on
// Ebiten. Each frame it snapshots the presented framebuffer out of the
// shared MMIO window, expands the packed color bytes into RGBA, and feeds
// key presses into the keyboard queue as single bytes.
//
// The front-end runs on the main goroutine (Ebiten owns the main thread);
// the execution engine runs elsewhere. The MMIO window's lock is the only
// synchronization between them.
package video
