package renderer

import (
	"time"

	"github.com/achilleasa/diorama/scene"
	"github.com/achilleasa/diorama/types"
	"github.com/chewxy/math32"
)

const (
	// Camera orbit speed in radians per second.
	OrbitSpeed float32 = math32.Pi / 5

	// Light movement speed in world units per second.
	LightMoveSpeed float32 = 2

	// Light intensity change per second.
	LightIntensitySpeed float32 = 0.5
)

// InputState captures the controls that are held down.
type InputState struct {
	// Camera orbit.
	OrbitLeft  bool
	OrbitRight bool
	OrbitUp    bool
	OrbitDown  bool

	// Light movement along the world axes.
	LightLeft     bool
	LightRight    bool
	LightForward  bool
	LightBackward bool
	LightUp       bool
	LightDown     bool

	// Light intensity.
	IntensityUp   bool
	IntensityDown bool
}

// Returns true if any control is active.
func (in InputState) Active() bool {
	return in != InputState{}
}

// ApplyInput computes the camera and light state that results from holding
// the controls in for dt. The inputs are not modified.
func ApplyInput(in InputState, camera scene.Camera, light scene.Light, dt time.Duration) (scene.Camera, scene.Light) {
	seconds := float32(dt.Seconds())
	if seconds <= 0 {
		return camera, light
	}

	var yaw, pitch float32
	if in.OrbitLeft {
		yaw -= OrbitSpeed * seconds
	}
	if in.OrbitRight {
		yaw += OrbitSpeed * seconds
	}
	if in.OrbitUp {
		pitch -= OrbitSpeed * seconds
	}
	if in.OrbitDown {
		pitch += OrbitSpeed * seconds
	}
	if yaw != 0 || pitch != 0 {
		camera.Orbit(yaw, pitch)
	}

	var move types.Vec3
	if in.LightLeft {
		move[0] -= 1
	}
	if in.LightRight {
		move[0] += 1
	}
	if in.LightDown {
		move[1] -= 1
	}
	if in.LightUp {
		move[1] += 1
	}
	if in.LightForward {
		move[2] -= 1
	}
	if in.LightBackward {
		move[2] += 1
	}
	light.Position = light.Position.Add(move.Mul(LightMoveSpeed * seconds))

	if in.IntensityUp {
		light.Intensity += LightIntensitySpeed * seconds
	}
	if in.IntensityDown {
		light.Intensity -= LightIntensitySpeed * seconds
	}
	if light.Intensity < 0 {
		light.Intensity = 0
	}

	return camera, light
}
