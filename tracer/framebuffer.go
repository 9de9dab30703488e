package tracer

import (
	"image"

	"github.com/achilleasa/diorama/types"
)

// Framebuffer holds packed 0xRRGGBB pixels in row-major order.
type Framebuffer struct {
	Width  uint32
	Height uint32
	Pixels []uint32
}

// Allocate a framebuffer with the given dimensions.
func NewFramebuffer(width, height uint32) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, int(width)*int(height)),
	}
}

// Fill the framebuffer with a color.
func (fb *Framebuffer) Clear(c types.Color) {
	hex := c.Hex()
	for i := range fb.Pixels {
		fb.Pixels[i] = hex
	}
}

// Row returns the pixels of row y. The returned slice aliases the
// framebuffer storage.
func (fb *Framebuffer) Row(y uint32) []uint32 {
	start := int(y) * int(fb.Width)
	return fb.Pixels[start : start+int(fb.Width)]
}

// At returns the color of pixel (x, y).
func (fb *Framebuffer) At(x, y uint32) types.Color {
	return types.ColorFromHex(fb.Pixels[int(y)*int(fb.Width)+int(x)])
}

// Expand the packed pixels into an 8-bit RGBA byte buffer with opaque
// alpha. dst is reused if it is large enough.
func (fb *Framebuffer) RGBA(dst []byte) []byte {
	size := len(fb.Pixels) * 4
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	for i, hex := range fb.Pixels {
		dst[i*4] = uint8(hex >> 16)
		dst[i*4+1] = uint8(hex >> 8)
		dst[i*4+2] = uint8(hex)
		dst[i*4+3] = 0xff
	}
	return dst
}

// Convert the framebuffer contents to an image.
func (fb *Framebuffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(fb.Width), int(fb.Height)))
	fb.RGBA(img.Pix)
	return img
}
