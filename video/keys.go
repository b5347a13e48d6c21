package video

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Arrow keys have no printable form; they enter the queue as the DC1..DC4
// control bytes so guest programs can still poll for them.
const (
	KEY_UP    = byte(0x11)
	KEY_DOWN  = byte(0x12)
	KEY_LEFT  = byte(0x13)
	KEY_RIGHT = byte(0x14)
)

var specialKeys = map[ebiten.Key]byte{
	ebiten.KeySpace:        ' ',
	ebiten.KeyEnter:        '\n',
	ebiten.KeyTab:          '\t',
	ebiten.KeyBackspace:    0x08,
	ebiten.KeyEscape:       0x1b,
	ebiten.KeyMinus:        '-',
	ebiten.KeyEqual:        '=',
	ebiten.KeyComma:        ',',
	ebiten.KeyPeriod:       '.',
	ebiten.KeySlash:        '/',
	ebiten.KeySemicolon:    ';',
	ebiten.KeyQuote:        '\'',
	ebiten.KeyBracketLeft:  '[',
	ebiten.KeyBracketRight: ']',
	ebiten.KeyBackslash:    '\\',
	ebiten.KeyBackquote:    '`',
	ebiten.KeyArrowUp:      KEY_UP,
	ebiten.KeyArrowDown:    KEY_DOWN,
	ebiten.KeyArrowLeft:    KEY_LEFT,
	ebiten.KeyArrowRight:   KEY_RIGHT,
}

// KeyByte translates an Ebiten key into the byte pushed onto the keyboard
// queue. Keys with no byte form report ok == false and are ignored.
func KeyByte(key ebiten.Key) (code byte, ok bool) {
	switch {
	case key >= ebiten.KeyA && key <= ebiten.KeyZ:
		code = 'a' + byte(key-ebiten.KeyA)
		ok = true
	case key >= ebiten.KeyDigit0 && key <= ebiten.KeyDigit9:
		code = '0' + byte(key-ebiten.KeyDigit0)
		ok = true
	default:
		code, ok = specialKeys[key]
	}

	return
}
