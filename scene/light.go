package scene

import "github.com/achilleasa/diorama/types"

// A point light. Lights may be modified between frames but are read-only
// while a frame is rendered.
type Light struct {
	Position  types.Vec3
	Color     types.Color
	Intensity float32
}

// Create a new point light.
func NewLight(position types.Vec3, color types.Color, intensity float32) Light {
	return Light{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}
