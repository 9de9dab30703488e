package scene

import (
	"github.com/achilleasa/diorama/types"
	"github.com/chewxy/math32"
)

// Hit describes a ray-surface intersection.
type Hit struct {
	Intersecting bool

	// Intersection point and outward facing unit normal.
	Point  types.Vec3
	Normal types.Vec3

	// The ray parameter at the intersection point.
	Distance float32

	Material *Material
}

// NoHit returns the empty hit record.
func NoHit() Hit {
	return Hit{Distance: math32.Inf(1)}
}
