// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package video

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ezrec/fastrv/memory"
)

// Window scale factor over the native framebuffer resolution.
const SCALE = 2

// Display presents the MMIO framebuffer in a window and feeds keyboard
// input back into the MMIO key queue.
type Display struct {
	Done func() bool // If set, the window closes once this reports true.

	mmio  *memory.Mmio
	frame []byte
	pix   []byte
	keys  []ebiten.Key
}

func NewDisplay(mmio *memory.Mmio) (disp *Display) {
	disp = &Display{
		mmio:  mmio,
		frame: make([]byte, memory.FRAME_SIZE),
		pix:   make([]byte, memory.FRAME_SIZE*4),
	}

	return
}

// Update pushes this tick's newly pressed keys onto the keyboard queue.
func (disp *Display) Update() (err error) {
	if disp.Done != nil && disp.Done() {
		err = ebiten.Termination
		return
	}

	disp.keys = inpututil.AppendJustPressedKeys(disp.keys[:0])
	for _, key := range disp.keys {
		code, ok := KeyByte(key)
		if ok {
			disp.mmio.PushKey(code)
		}
	}

	return
}

// Draw snapshots the presented framebuffer and expands each packed color
// byte to RGBA for the screen.
func (disp *Display) Draw(screen *ebiten.Image) {
	disp.mmio.SnapshotActive(disp.frame)

	for n, packed := range disp.frame {
		r, g, b := Unpack(packed)
		disp.pix[n*4+0] = r
		disp.pix[n*4+1] = g
		disp.pix[n*4+2] = b
		disp.pix[n*4+3] = 0xff
	}

	screen.WritePixels(disp.pix)
}

func (disp *Display) Layout(outsideWidth, outsideHeight int) (width, height int) {
	return memory.FRAME_WIDTH, memory.FRAME_HEIGHT
}

// Run opens the window and drives the display until it is closed. Ebiten
// requires this to run on the main goroutine.
func (disp *Display) Run(title string) (err error) {
	ebiten.SetWindowSize(memory.FRAME_WIDTH*SCALE, memory.FRAME_HEIGHT*SCALE)
	ebiten.SetWindowTitle(title)

	err = ebiten.RunGame(disp)

	return
}
