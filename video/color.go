package video

// Unpack expands a packed framebuffer byte into 8-bit RGB channels.
// Bits 0-2 are red, bits 3-5 green, and bits 6-7 blue.
func Unpack(packed byte) (r, g, b byte) {
	r = (packed & 0b111) * 32
	g = ((packed >> 3) & 0b111) * 32
	b = (packed >> 6) * 64

	return
}

// Pack quantizes 8-bit RGB channels into a packed framebuffer byte.
func Pack(r, g, b byte) (packed byte) {
	packed = (r / 32) | ((g / 32) << 3) | ((b / 64) << 6)

	return
}
