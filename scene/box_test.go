package scene

import (
	"math/rand"
	"testing"

	"github.com/achilleasa/diorama/types"
)

func TestBoxIntersectCenterHit(t *testing.T) {
	box := mustBox(t, types.XYZ(-0.5, -0.5, -1.0), types.XYZ(0.5, 0.5, -0.5))

	hit := box.Intersect(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	if !hit.Intersecting {
		t.Fatal("expected ray to hit the box")
	}
	if hit.Distance != 0.5 {
		t.Fatalf("expected hit distance to be 0.5; got %f", hit.Distance)
	}
	if hit.Point != types.XYZ(0, 0, -0.5) {
		t.Fatalf("expected hit point to be (0, 0, -0.5); got %v", hit.Point)
	}
	if hit.Normal != types.XYZ(0, 0, 1) {
		t.Fatalf("expected hit normal to be (0, 0, 1); got %v", hit.Normal)
	}
	if hit.Material != box.Material {
		t.Fatal("expected hit to reference the box material")
	}
}

func TestBoxIntersectFaceNormals(t *testing.T) {
	box := mustBox(t, types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1))

	type spec struct {
		origin    types.Vec3
		dir       types.Vec3
		expNormal types.Vec3
		expDist   float32
	}
	specs := []spec{
		{types.XYZ(-5, 0, 0), types.XYZ(1, 0, 0), types.XYZ(-1, 0, 0), 4},
		{types.XYZ(5, 0, 0), types.XYZ(-1, 0, 0), types.XYZ(1, 0, 0), 4},
		{types.XYZ(0, -3, 0), types.XYZ(0, 1, 0), types.XYZ(0, -1, 0), 2},
		{types.XYZ(0, 3, 0), types.XYZ(0, -2, 0), types.XYZ(0, 1, 0), 1},
		{types.XYZ(0.5, 0.5, 9), types.XYZ(0, 0, -1), types.XYZ(0, 0, 1), 8},
		{types.XYZ(0, 0, -9), types.XYZ(0, 0, 1), types.XYZ(0, 0, -1), 8},
	}

	for index, s := range specs {
		hit := box.Intersect(s.origin, s.dir)
		if !hit.Intersecting {
			t.Fatalf("[spec %d] expected ray to hit the box", index)
		}
		if hit.Normal != s.expNormal {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, s.expNormal, hit.Normal)
		}
		if hit.Distance != s.expDist {
			t.Fatalf("[spec %d] expected distance %f; got %f", index, s.expDist, hit.Distance)
		}
	}
}

func TestBoxIntersectMisses(t *testing.T) {
	box := mustBox(t, types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1))

	type spec struct {
		origin types.Vec3
		dir    types.Vec3
	}
	specs := []spec{
		// Pointing away
		{types.XYZ(0, 0, 5), types.XYZ(0, 0, 1)},
		{types.XYZ(3, 3, 3), types.XYZ(1, 1, 1)},
		// Passing by
		{types.XYZ(0, 2, 5), types.XYZ(0, 0, -1)},
		// Origin inside the box; entry is behind the origin
		{types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)},
		// Origin exactly on the entry face
		{types.XYZ(0, 0, 1), types.XYZ(0, 0, -1)},
	}

	for index, s := range specs {
		hit := box.Intersect(s.origin, s.dir)
		if hit.Intersecting {
			t.Fatalf("[spec %d] expected ray to miss the box; got hit at %v", index, hit.Point)
		}
		if hit.Distance != NoHit().Distance {
			t.Fatalf("[spec %d] expected miss distance to be +Inf; got %f", index, hit.Distance)
		}
	}
}

func TestBoxIntersectRandomRaysAwayFromBox(t *testing.T) {
	box := mustBox(t, types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1))
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		// Origin outside the box with a direction moving away from it on
		// every axis the origin is outside of.
		origin := types.XYZ(2+rng.Float32()*5, 2+rng.Float32()*5, 2+rng.Float32()*5)
		dir := types.XYZ(rng.Float32()+0.01, rng.Float32()+0.01, rng.Float32()+0.01)
		if rng.Intn(2) == 0 {
			origin, dir = origin.Neg(), dir.Neg()
		}

		if hit := box.Intersect(origin, dir); hit.Intersecting {
			t.Fatalf("[ray %d] expected ray from %v along %v to miss", i, origin, dir)
		}
	}
}

func TestBoxIntersectRandomCrossingRays(t *testing.T) {
	box := mustBox(t, types.XYZ(-1, -2, -0.5), types.XYZ(3, 1, 0.5))
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		// Aim from a random point on a large sphere at a random point inside the box
		target := types.XYZ(
			-1+rng.Float32()*4,
			-2+rng.Float32()*3,
			-0.5+rng.Float32(),
		)
		origin := types.XYZ(rng.Float32()*2-1, rng.Float32()*2-1, rng.Float32()*2-1).Normalize().Mul(20)
		if origin == (types.Vec3{}) {
			continue
		}
		dir := target.Sub(origin).Normalize()

		hit := box.Intersect(origin, dir)
		if !hit.Intersecting {
			t.Fatalf("[ray %d] expected ray from %v to %v to hit", i, origin, target)
		}
		if hit.Distance <= 0 {
			t.Fatalf("[ray %d] expected positive hit distance; got %f", i, hit.Distance)
		}

		nonZero := 0
		for axis := 0; axis < 3; axis++ {
			switch hit.Normal[axis] {
			case 0:
			case 1, -1:
				nonZero++
			default:
				t.Fatalf("[ray %d] expected normal components in {-1, 0, 1}; got %v", i, hit.Normal)
			}
		}
		if nonZero != 1 {
			t.Fatalf("[ray %d] expected an axis-aligned unit normal; got %v", i, hit.Normal)
		}

		// Normal must face the ray origin
		if hit.Normal.Dot(dir) >= 0 {
			t.Fatalf("[ray %d] expected normal %v to face against ray direction %v", i, hit.Normal, dir)
		}
	}
}

func TestBoxIntersectEdgeTieBreak(t *testing.T) {
	box := mustBox(t, types.XYZ(0, 0, 0), types.XYZ(1, 1, 1))

	// Hits the x and y entry planes at the same parameter value
	hit := box.Intersect(types.XYZ(-1, -1, 0.5), types.XYZ(1, 1, 0))
	if !hit.Intersecting {
		t.Fatal("expected ray through the box edge to hit")
	}
	if hit.Normal != types.XYZ(-1, 0, 0) {
		t.Fatalf("expected x face to win the tie; got normal %v", hit.Normal)
	}
}

func TestNewBoxValidation(t *testing.T) {
	mat := DefaultMaterial()

	if _, err := NewBox(types.XYZ(0, 0, 0), types.XYZ(1, 0, 1), mat); err == nil {
		t.Fatal("expected an error for a box with zero height")
	}
	if _, err := NewBox(types.XYZ(0, 0, 0), types.XYZ(1, 1, 1), nil); err == nil {
		t.Fatal("expected an error for a box without material")
	}
}

func TestBoxUV(t *testing.T) {
	box := mustBox(t, types.XYZ(-1, 0, 2), types.XYZ(1, 4, 3))

	type spec struct {
		point  types.Vec3
		normal types.Vec3
		expUV  types.Vec2
	}
	specs := []spec{
		// front face uses (x, y)
		{types.XYZ(-1, 0, 3), types.XYZ(0, 0, 1), types.XY(0, 0)},
		{types.XYZ(1, 4, 3), types.XYZ(0, 0, 1), types.XY(1, 1)},
		{types.XYZ(0, 1, 2), types.XYZ(0, 0, -1), types.XY(0.5, 0.25)},
		// side faces use (z, y)
		{types.XYZ(1, 2, 2.5), types.XYZ(1, 0, 0), types.XY(0.5, 0.5)},
		{types.XYZ(-1, 0, 2), types.XYZ(-1, 0, 0), types.XY(0, 0)},
		// top/bottom faces use (x, z)
		{types.XYZ(0.5, 4, 3), types.XYZ(0, 1, 0), types.XY(0.75, 1)},
		// overshoot is clamped
		{types.XYZ(1.0001, 4.5, 3), types.XYZ(0, 0, 1), types.XY(1, 1)},
		{types.XYZ(-1.5, -0.1, 3), types.XYZ(0, 0, 1), types.XY(0, 0)},
	}

	for index, s := range specs {
		uv := box.UV(s.point, s.normal)
		if uv != s.expUV {
			t.Fatalf("[spec %d] expected uv %v; got %v", index, s.expUV, uv)
		}
	}
}

func TestBoxUVAlwaysInRange(t *testing.T) {
	box := mustBox(t, types.XYZ(-2, -1, 0), types.XYZ(2, 1, 0.25))
	rng := rand.New(rand.NewSource(1))
	normals := []types.Vec3{
		types.XYZ(1, 0, 0), types.XYZ(-1, 0, 0),
		types.XYZ(0, 1, 0), types.XYZ(0, -1, 0),
		types.XYZ(0, 0, 1), types.XYZ(0, 0, -1),
	}

	for i := 0; i < 1000; i++ {
		point := types.XYZ(-2+rng.Float32()*4, -1+rng.Float32()*2, rng.Float32()*0.25)
		uv := box.UV(point, normals[i%len(normals)])
		if uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1 {
			t.Fatalf("[point %d] expected uv within [0, 1]; got %v", i, uv)
		}
	}
}

func TestDegenerateBoxUV(t *testing.T) {
	// Bypass NewBox validation to model a flat box
	box := &Box{Min: types.XYZ(0, 0, 0), Max: types.XYZ(2, 0, 1), Material: DefaultMaterial()}

	uv := box.UV(types.XYZ(1, 0, 1), types.XYZ(0, 0, 1))
	if uv != types.XY(0.5, 0) {
		t.Fatalf("expected flat axis to map to 0; got %v", uv)
	}
}

func mustBox(t *testing.T, min, max types.Vec3) *Box {
	box, err := NewBox(min, max, DefaultMaterial())
	if err != nil {
		t.Fatal(err)
	}
	return box
}
