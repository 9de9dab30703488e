package types

import "fmt"

// An RGB color with 8-bit channels. Arithmetic on colors saturates at 0
// and 255 instead of wrapping around.
type Color struct {
	R, G, B uint8
}

// Define a color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Unpack a color from a packed 0xRRGGBB cell.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
	}
}

// Pack color into a 0xRRGGBB cell; the top byte is always zero.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Scale all channels by s. Results are truncated and clamped to [0, 255].
func (c Color) Mul(s float32) Color {
	return Color{
		R: clampChannel(float32(c.R) * s),
		G: clampChannel(float32(c.G) * s),
		B: clampChannel(float32(c.B) * s),
	}
}

// Channel-wise saturating addition.
func (c Color) Add(c2 Color) Color {
	return Color{
		R: saturatingAdd(c.R, c2.R),
		G: saturatingAdd(c.G, c2.G),
		B: saturatingAdd(c.B, c2.B),
	}
}

// Convert to a Vec3 with channels mapped to [0, 1].
func (c Color) Vec3() Vec3 {
	return Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

func clampChannel(v float32) uint8 {
	switch {
	case v != v, v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func saturatingAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}
