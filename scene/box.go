package scene

import (
	"fmt"

	"github.com/achilleasa/diorama/types"
	"github.com/chewxy/math32"
)

// An axis-aligned box. Boxes are created once while the scene is set up
// and never mutated afterwards.
type Box struct {
	Min types.Vec3
	Max types.Vec3

	Material *Material
}

// Create a new box. Each component of min must be strictly less than the
// matching component of max.
func NewBox(min, max types.Vec3, material *Material) (*Box, error) {
	for axis := 0; axis < 3; axis++ {
		if !(min[axis] < max[axis]) {
			return nil, fmt.Errorf("scene: box min corner %v must be less than max corner %v on all axes", min, max)
		}
	}
	if material == nil {
		return nil, fmt.Errorf("scene: no material assigned to box")
	}

	return &Box{
		Min:      min,
		Max:      max,
		Material: material,
	}, nil
}

// Intersect a ray with the box using the slab method. The direction does
// not need to be normalized; zero components yield infinite slab bounds.
// Hits at or behind the ray origin are rejected.
func (b *Box) Intersect(origin, dir types.Vec3) Hit {
	tMin := math32.Inf(-1)
	tMax := math32.Inf(1)

	// The axis whose near plane produced tMin and the sign of the normal
	// for that plane. Strict comparisons give x priority over y over z
	// on ties and skip NaN bounds.
	var hitAxis int
	var hitSign float32 = -1

	for axis := 0; axis < 3; axis++ {
		inv := 1 / dir[axis]
		tNear := (b.Min[axis] - origin[axis]) * inv
		tFar := (b.Max[axis] - origin[axis]) * inv

		var sign float32 = -1
		if tNear > tFar {
			tNear, tFar = tFar, tNear
			sign = 1
		}

		if tNear > tMin {
			tMin = tNear
			hitAxis = axis
			hitSign = sign
		}
		if tFar < tMax {
			tMax = tFar
		}
	}

	if !(tMax >= tMin && tMin > 0) {
		return NoHit()
	}

	var normal types.Vec3
	normal[hitAxis] = hitSign

	return Hit{
		Intersecting: true,
		Point:        origin.Add(dir.Mul(tMin)),
		Normal:       normal,
		Distance:     tMin,
		Material:     b.Material,
	}
}

// Map a point on the box surface to texture coordinates. The pair of
// coordinates is picked from the plane orthogonal to the dominant normal
// axis and clamped to [0, 1]. Axes with zero extent map to 0.
func (b *Box) UV(point, normal types.Vec3) types.Vec2 {
	abs := normal.Abs()
	switch {
	case abs[2] >= abs[0] && abs[2] >= abs[1]:
		// front/back faces
		return types.XY(b.ratio(point, 0), b.ratio(point, 1))
	case abs[0] >= abs[1]:
		// side faces
		return types.XY(b.ratio(point, 2), b.ratio(point, 1))
	default:
		// top/bottom faces
		return types.XY(b.ratio(point, 0), b.ratio(point, 2))
	}
}

// Relative position of point along axis, clamped to [0, 1].
func (b *Box) ratio(point types.Vec3, axis int) float32 {
	extent := b.Max[axis] - b.Min[axis]
	if !(extent > 0) {
		return 0
	}

	r := (point[axis] - b.Min[axis]) / extent
	switch {
	case r != r, r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
