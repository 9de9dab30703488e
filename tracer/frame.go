package tracer

import (
	"github.com/achilleasa/diorama/scene"
	"github.com/achilleasa/diorama/types"
	"github.com/chewxy/math32"
)

// FrameState is an immutable snapshot of everything needed to render one
// frame. Tracers only ever read from it, so a single instance can be shared
// by all tracers working on the same frame.
type FrameState struct {
	Camera scene.Camera
	Light  scene.Light

	// The boxes to intersect. The slice and the boxes must not be modified
	// while a frame is being rendered.
	Boxes []*scene.Box

	BgColor types.Color

	// Ambient light term used for shadowed points and added to the
	// diffuse term of lit points.
	Ambient float32

	// Vertical field of view in radians.
	FOV float32

	// Boxes whose min corner lies farther than this from the ray origin
	// are skipped by the primary ray search. A value <= 0 disables culling.
	CullDistance float32
}

// Capture a snapshot of the scene state.
func NewFrameState(sc *scene.Scene, ambient, fov, cullDistance float32) *FrameState {
	boxes := make([]*scene.Box, len(sc.Boxes))
	copy(boxes, sc.Boxes)

	return &FrameState{
		Camera:       *sc.Camera,
		Light:        sc.Light,
		Boxes:        boxes,
		BgColor:      sc.BgColor,
		Ambient:      ambient,
		FOV:          fov,
		CullDistance: cullDistance,
	}
}

// PrimaryRay returns the unit world space direction of the ray that passes
// through pixel (x, y) of a frameW x frameH frame.
func (fs *FrameState) PrimaryRay(x, y, frameW, frameH uint32) types.Vec3 {
	scale := math32.Tan(fs.FOV / 2)
	aspect := float32(frameW) / float32(frameH)

	screenX := 2*float32(x)/float32(frameW) - 1
	screenY := -(2*float32(y)/float32(frameH) - 1)

	dir := types.XYZ(screenX*aspect*scale, screenY*scale, -1).Normalize()
	return fs.Camera.BaseChange(dir).Normalize()
}

// NearestHit scans all boxes and returns the closest intersection together
// with the index of the box that produced it. The index is -1 on a miss.
func (fs *FrameState) NearestHit(origin, dir types.Vec3) (scene.Hit, int) {
	nearest := scene.NoHit()
	nearestIndex := -1

	for boxIndex, box := range fs.Boxes {
		if fs.CullDistance > 0 && box.Min.Sub(origin).Len() > fs.CullDistance {
			continue
		}

		hit := box.Intersect(origin, dir)
		if hit.Intersecting && hit.Distance < nearest.Distance {
			nearest = hit
			nearestIndex = boxIndex
		}
	}

	return nearest, nearestIndex
}

// InShadow returns true if any box other than skipIndex blocks the segment
// between point and the light.
func (fs *FrameState) InShadow(point types.Vec3, skipIndex int) bool {
	toLight := fs.Light.Position.Sub(point)
	lightDist := toLight.Len()
	lightDir := toLight.Normalize()

	for boxIndex, box := range fs.Boxes {
		if boxIndex == skipIndex {
			continue
		}

		hit := box.Intersect(point, lightDir)
		if hit.Intersecting && hit.Distance < lightDist {
			return true
		}
	}

	return false
}

// Shade evaluates the color of a hit produced by the box at boxIndex for a
// ray starting at rayOrigin. Misses evaluate to the background color.
func (fs *FrameState) Shade(hit scene.Hit, boxIndex int, rayOrigin types.Vec3) types.Color {
	if !hit.Intersecting || boxIndex < 0 {
		return fs.BgColor
	}

	mat := hit.Material
	lightDir := fs.Light.Position.Sub(hit.Point).Normalize()
	diffuseIntensity := clamp01(hit.Normal.Dot(lightDir))

	baseColor := mat.Sample(fs.Boxes[boxIndex].UV(hit.Point, hit.Normal))

	if fs.InShadow(hit.Point, boxIndex) {
		return baseColor.Mul(fs.Ambient)
	}

	viewDir := rayOrigin.Sub(hit.Point).Normalize()
	reflectDir := lightDir.Neg().Reflect(hit.Normal)
	specularIntensity := math32.Pow(math32.Max(viewDir.Dot(reflectDir), 0), mat.Specular)

	specular := fs.Light.Color.Mul(mat.Albedo[1] * specularIntensity * fs.Light.Intensity)
	diffuse := baseColor.Mul(mat.Albedo[0] * (diffuseIntensity + fs.Ambient))
	return diffuse.Add(specular)
}

// CastRay traces a single ray and returns its color.
func (fs *FrameState) CastRay(origin, dir types.Vec3) types.Color {
	hit, boxIndex := fs.NearestHit(origin, dir)
	return fs.Shade(hit, boxIndex, origin)
}

// RenderRows traces rows [blockY, blockY+blockH) into fb.
func (fs *FrameState) RenderRows(fb *Framebuffer, blockY, blockH uint32) {
	origin := fs.Camera.Eye
	lastY := blockY + blockH
	if lastY > fb.Height {
		lastY = fb.Height
	}

	for y := blockY; y < lastY; y++ {
		row := fb.Row(y)
		for x := range row {
			row[x] = fs.CastRay(origin, fs.PrimaryRay(uint32(x), y, fb.Width, fb.Height)).Hex()
		}
	}
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
