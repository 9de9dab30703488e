package types

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestVec3Normalize(t *testing.T) {
	type spec struct {
		in     Vec3
		expOut Vec3
	}
	specs := []spec{
		{Vec3{3, 0, 0}, Vec3{1, 0, 0}},
		{Vec3{0, -2, 0}, Vec3{0, -1, 0}},
		{Vec3{1, 1, 1}, Vec3{0.57735, 0.57735, 0.57735}},
		{Vec3{}, Vec3{}},
	}

	for index, s := range specs {
		out := s.in.Normalize()
		if !out.ApproxEqual(s.expOut, 1e-5) {
			t.Fatalf("[spec %d] expected normalized vector to be %v; got %v", index, s.expOut, out)
		}
	}
}

func TestVec3Cross(t *testing.T) {
	x := XYZ(1, 0, 0)
	y := XYZ(0, 1, 0)

	if out := x.Cross(y); out != XYZ(0, 0, 1) {
		t.Fatalf("expected x cross y to be +Z; got %v", out)
	}
	if out := y.Cross(x); out != XYZ(0, 0, -1) {
		t.Fatalf("expected y cross x to be -Z; got %v", out)
	}
}

func TestVec3Reflect(t *testing.T) {
	in := XYZ(1, -1, 0)
	n := XYZ(0, 1, 0)

	expOut := XYZ(1, 1, 0)
	if out := in.Reflect(n); out != expOut {
		t.Fatalf("expected reflected vector to be %v; got %v", expOut, out)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(XYZ(0, 1, 0), math32.Pi/2)
	out := q.Rotate(XYZ(1, 0, 0))

	expOut := XYZ(0, 0, -1)
	if !out.ApproxEqual(expOut, 1e-5) {
		t.Fatalf("expected rotated vector to be %v; got %v", expOut, out)
	}

	back := QuatFromAxisAngle(XYZ(0, 1, 0), -math32.Pi/2).Rotate(out)
	if !back.ApproxEqual(XYZ(1, 0, 0), 1e-5) {
		t.Fatalf("expected opposite rotation to restore the input vector; got %v", back)
	}
}

func TestQuatRotateUnnormalizedAxis(t *testing.T) {
	q := QuatFromAxisAngle(XYZ(0, 0, 5), math32.Pi/2)

	out := q.Rotate(XYZ(2, 0, 0))
	if !out.ApproxEqual(XYZ(0, 2, 0), 1e-5) {
		t.Fatalf("expected rotation to map 2*X to 2*Y; got %v", out)
	}
}
