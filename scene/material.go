package scene

import (
	"github.com/achilleasa/diorama/asset/texture"
	"github.com/achilleasa/diorama/types"
)

var (
	// Returned when a material has neither a texture nor a diffuse color.
	DefaultBaseColor = types.RGB(255, 255, 255)

	// Returned when a texture lookup falls outside the texture data.
	TextureErrorColor = types.RGB(255, 0, 0)
)

// Defines a surface material.
type Material struct {
	Name string

	// Flat diffuse color; ignored when a texture is set.
	Diffuse *types.Color

	// Optional texture. It may be shared with other materials and must
	// be treated as read-only.
	Texture *texture.Texture

	// Specular exponent.
	Specular float32

	// Diffuse and specular weights.
	Albedo [2]float32

	// Emission properties. They are carried along with the material but
	// do not contribute to shading.
	Emissive          *types.Color
	EmissionIntensity float32
}

// The material assigned to boxes that do not select one.
func DefaultMaterial() *Material {
	gray := types.RGB(50, 50, 50)
	return &Material{
		Diffuse: &gray,
		Albedo:  [2]float32{1, 0},
	}
}

// Returns true if the material emits light.
func (m *Material) IsEmissive() bool {
	return m.Emissive != nil && m.EmissionIntensity > 0
}

// Sample the material base color at the given texture coordinates.
func (m *Material) Sample(uv types.Vec2) types.Color {
	if m.Texture != nil {
		c, ok := SampleTexture(m.Texture, uv)
		if !ok {
			return TextureErrorColor
		}
		return c
	}

	if m.Diffuse != nil {
		return *m.Diffuse
	}
	return DefaultBaseColor
}

// Look up the texel at uv. The second return value is false if the
// computed texel lies outside the texture data.
func SampleTexture(tex *texture.Texture, uv types.Vec2) (types.Color, bool) {
	u, v := uv[0], uv[1]
	if u != u || v != v || u < 0 || v < 0 {
		return types.Color{}, false
	}

	texX := int(u * float32(tex.Width))
	texY := int(v * float32(tex.Height))
	offset := (texY*int(tex.Width) + texX) * 4
	if offset+2 >= len(tex.Data) {
		return types.Color{}, false
	}

	return types.RGB(tex.Data[offset], tex.Data[offset+1], tex.Data[offset+2]), true
}
