package scene

import (
	"github.com/achilleasa/diorama/types"
	"github.com/chewxy/math32"
)

// Pitch updates that would bring the view direction closer than this
// (as a cosine) to the up axis are dropped.
const maxPitchCos float32 = 0.995

// The camera type controls the scene camera. Eye, Center and Up may be
// edited directly as long as Update is called afterwards; Orbit takes
// care of that itself.
type Camera struct {
	Eye    types.Vec3
	Center types.Vec3
	Up     types.Vec3

	// Orthonormal view basis.
	forward types.Vec3
	right   types.Vec3
	trueUp  types.Vec3
}

// Create a new camera looking from eye towards center.
func NewCamera(eye, center, up types.Vec3) *Camera {
	c := &Camera{
		Eye:    eye,
		Center: center,
		Up:     up,
	}
	c.Update()
	return c
}

// Recalculate the view basis from the camera eye, center and up vectors.
func (c *Camera) Update() {
	c.forward = c.Center.Sub(c.Eye).Normalize()
	c.right = c.forward.Cross(c.Up).Normalize()
	if c.right == (types.Vec3{}) {
		// Looking straight along the up axis; pick any perpendicular
		c.right = c.forward.Cross(types.XYZ(0, 0, 1)).Normalize()
		if c.right == (types.Vec3{}) {
			c.right = types.XYZ(1, 0, 0)
		}
	}
	c.trueUp = c.right.Cross(c.forward).Normalize()
}

// Forward returns the unit view direction.
func (c *Camera) Forward() types.Vec3 { return c.forward }

// Right returns the unit right vector of the view basis.
func (c *Camera) Right() types.Vec3 { return c.right }

// TrueUp returns the unit up vector of the view basis.
func (c *Camera) TrueUp() types.Vec3 { return c.trueUp }

// Transform a camera-space direction into world space. Camera space has
// +X pointing right, +Y pointing up and -Z pointing into the screen.
//
// The forward term is subtracted because forward points into the screen.
// Together with right = forward x up this keeps the image unmirrored;
// right = up x forward with +forward*z flips it horizontally.
func (c *Camera) BaseChange(dir types.Vec3) types.Vec3 {
	return c.right.Mul(dir[0]).
		Add(c.trueUp.Mul(dir[1])).
		Sub(c.forward.Mul(dir[2]))
}

// Rotate the eye around the center by deltaYaw radians about the world up
// axis and deltaPitch radians about the camera right axis. The distance
// between eye and center is preserved.
func (c *Camera) Orbit(deltaYaw, deltaPitch float32) {
	if deltaYaw == 0 && deltaPitch == 0 {
		c.Update()
		return
	}

	offset := c.Eye.Sub(c.Center)
	radius := offset.Len()
	worldUp := c.Up.Normalize()

	if deltaPitch != 0 {
		pitched := types.QuatFromAxisAngle(c.right, deltaPitch).Rotate(offset)
		if math32.Abs(pitched.Normalize().Dot(worldUp)) < maxPitchCos {
			offset = pitched
		}
	}

	if deltaYaw != 0 {
		offset = types.QuatFromAxisAngle(worldUp, deltaYaw).Rotate(offset)
	}

	c.Eye = c.Center.Add(offset.Normalize().Mul(radius))
	c.Update()
}
