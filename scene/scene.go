package scene

import (
	"fmt"

	"github.com/achilleasa/diorama/types"
)

// The sky color used when a ray misses every box.
var DefaultBgColor = types.RGB(135, 206, 235)

type Scene struct {
	Camera *Camera
	Light  Light

	Materials []*Material
	Boxes     []*Box

	BgColor types.Color
}

func NewScene() *Scene {
	return &Scene{
		Camera:    NewCamera(types.XYZ(0, 0, 5), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)),
		Light:     NewLight(types.XYZ(10, 10, 10), types.RGB(255, 255, 255), 1.0),
		Materials: make([]*Material, 0),
		Boxes:     make([]*Box, 0),
		BgColor:   DefaultBgColor,
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Add a material to the scene.
func (s *Scene) AddMaterial(material *Material) error {
	for _, mat := range s.Materials {
		if mat == material {
			return fmt.Errorf("scene: material already added")
		}
	}
	s.Materials = append(s.Materials, material)
	return nil
}

// Add a box to the scene.
func (s *Scene) AddBox(box *Box) error {
	for _, b := range s.Boxes {
		if b == box {
			return fmt.Errorf("scene: box already added")
		}
	}
	if box.Material == nil {
		return fmt.Errorf("scene: no material assigned to box")
	}
	for _, mat := range s.Materials {
		if mat == box.Material {
			s.Boxes = append(s.Boxes, box)
			return nil
		}
	}

	return fmt.Errorf("scene: box references unknown material; ensure that the material is added to the scene before adding the box")
}

// Returns the number of materials that sample a texture.
func (s *Scene) TexturedMaterials() int {
	count := 0
	for _, mat := range s.Materials {
		if mat.Texture != nil {
			count++
		}
	}
	return count
}

// Returns the number of emissive materials.
func (s *Scene) EmissiveMaterials() int {
	count := 0
	for _, mat := range s.Materials {
		if mat.IsEmissive() {
			count++
		}
	}
	return count
}

// Compute the bounding box enclosing all scene boxes.
func (s *Scene) BBox() [2]types.Vec3 {
	if len(s.Boxes) == 0 {
		return [2]types.Vec3{}
	}

	bbox := [2]types.Vec3{s.Boxes[0].Min, s.Boxes[0].Max}
	for _, b := range s.Boxes[1:] {
		bbox[0] = types.MinVec3(bbox[0], b.Min)
		bbox[1] = types.MaxVec3(bbox[1], b.Max)
	}
	return bbox
}
