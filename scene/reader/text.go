package reader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/diorama/asset"
	"github.com/achilleasa/diorama/asset/texture"
	"github.com/achilleasa/diorama/log"
	"github.com/achilleasa/diorama/scene"
	"github.com/achilleasa/diorama/types"
)

type textSceneReader struct {
	logger log.Logger

	// The parsed scene.
	sc *scene.Scene

	// Shared texture store; nil disables texture loading.
	textures *texture.Cache

	// A map of material names to materials.
	matNameToMaterial map[string]*scene.Material

	// The material whose properties are being defined and the
	// material assigned to new boxes.
	defMaterial *scene.Material
	curMaterial *scene.Material

	// Camera vectors; the camera is built once parsing completes.
	cameraEye  types.Vec3
	cameraLook types.Vec3
	cameraUp   types.Vec3

	// An error stack that provides additional error information when
	// scene files include other files.
	errStack []string
}

// Create a new text scene reader.
func newTextSceneReader(textures *texture.Cache) *textSceneReader {
	sc := scene.NewScene()
	return &textSceneReader{
		logger:            log.New("text scene reader"),
		sc:                sc,
		textures:          textures,
		matNameToMaterial: make(map[string]*scene.Material, 0),
		cameraEye:         sc.Camera.Eye,
		cameraLook:        sc.Camera.Center,
		cameraUp:          sc.Camera.Up,
		errStack:          make([]string, 0),
	}
}

// Read scene definition.
func (r *textSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	err := r.parse(sceneRes)
	if err != nil {
		return nil, err
	}

	if r.cameraLook == r.cameraEye {
		return nil, r.emitError("", 0, "camera eye and look-at points must differ")
	}
	r.sc.SetCamera(scene.NewCamera(r.cameraEye, r.cameraLook, r.cameraUp))

	r.logger.Noticef(
		"parsed scene with %d boxes and %d materials in %d ms",
		len(r.sc.Boxes), len(r.sc.Materials), time.Since(start).Nanoseconds()/1e6,
	)
	return r.sc, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *textSceneReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = strings.Trim(
			fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
			"\n",
		)
	} else {
		errMsg = strings.Trim(
			fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n")),
			"\n",
		)
	}

	return fmt.Errorf("%s", errMsg)
}

// Push a frame to the error stack.
func (r *textSceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *textSceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Create and select a default material for boxes not using one.
func (r *textSceneReader) defaultMaterial() (*scene.Material, error) {
	matName := ""

	mat, exists := r.matNameToMaterial[matName]
	if !exists {
		mat = scene.DefaultMaterial()
		if err := r.sc.AddMaterial(mat); err != nil {
			return nil, err
		}
		r.matNameToMaterial[matName] = mat
	}
	r.curMaterial = mat
	return mat, nil
}

// Parse text scene format.
func (r *textSceneReader) parse(res *asset.Resource) error {
	var lineNum int = 0
	var err error

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))

			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}

			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "newmtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "newmtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matName := lineTokens[1]
			if _, exists := r.matNameToMaterial[matName]; exists {
				return r.emitError(res.Path(), lineNum, `material "%s" already defined`, matName)
			}

			mat := &scene.Material{
				Name:   matName,
				Albedo: [2]float32{1, 0},
			}
			if err = r.sc.AddMaterial(mat); err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.matNameToMaterial[matName] = mat
			r.defMaterial = mat
		case "Kd", "Ke", "map_Kd", "Ns", "albedo", "Ke_intensity":
			if r.defMaterial == nil {
				return r.emitError(res.Path(), lineNum, `got "%s" without a "newmtl" definition`, lineTokens[0])
			}
			if err = r.parseMaterialProperty(res, lineTokens); err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "usemtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			mat, exists := r.matNameToMaterial[lineTokens[1]]
			if !exists {
				return r.emitError(res.Path(), lineNum, `undefined material with name "%s"`, lineTokens[1])
			}
			r.curMaterial = mat
		case "box", "cube":
			var min, max types.Vec3
			if lineTokens[0] == "box" {
				min, max, err = parseBoxCorners(lineTokens)
			} else {
				min, max, err = parseCube(lineTokens)
			}
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}

			mat := r.curMaterial
			if mat == nil {
				if mat, err = r.defaultMaterial(); err != nil {
					return r.emitError(res.Path(), lineNum, "%s", err.Error())
				}
			}

			box, err := scene.NewBox(min, max, mat)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			if err = r.sc.AddBox(box); err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "camera_eye":
			r.cameraEye, err = parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "camera_look":
			r.cameraLook, err = parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "camera_up":
			r.cameraUp, err = parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "light_pos":
			r.sc.Light.Position, err = parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "light_color":
			r.sc.Light.Color, err = parseColor(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "light_intensity":
			r.sc.Light.Intensity, err = parseNonNegativeFloat32(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "background":
			r.sc.BgColor, err = parseColor(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		default:
			r.logger.Warningf(`[%s: %d] skipping unknown directive "%s"`, res.Path(), lineNum, lineTokens[0])
		}
	}

	return scanner.Err()
}

// Apply a material property line to the material being defined.
func (r *textSceneReader) parseMaterialProperty(res *asset.Resource, lineTokens []string) error {
	mat := r.defMaterial

	switch lineTokens[0] {
	case "Kd":
		c, err := parseColor(lineTokens)
		if err != nil {
			return err
		}
		mat.Diffuse = &c
	case "Ke":
		c, err := parseColor(lineTokens)
		if err != nil {
			return err
		}
		mat.Emissive = &c
	case "Ke_intensity":
		v, err := parseNonNegativeFloat32(lineTokens)
		if err != nil {
			return err
		}
		mat.EmissionIntensity = v
	case "Ns":
		v, err := parseNonNegativeFloat32(lineTokens)
		if err != nil {
			return err
		}
		mat.Specular = v
	case "albedo":
		v, err := parseVec2(lineTokens)
		if err != nil {
			return err
		}
		mat.Albedo = [2]float32{v[0], v[1]}
	case "map_Kd":
		if len(lineTokens) != 2 {
			return fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
		}
		if r.textures == nil {
			return fmt.Errorf(`texture "%s" referenced but texture loading is disabled`, lineTokens[1])
		}

		tex, err := r.textures.Get(lineTokens[1], res)
		if err != nil {
			return err
		}
		mat.Texture = tex
	}

	return nil
}

// Parse the min and max corners of a box row.
func parseBoxCorners(lineTokens []string) (types.Vec3, types.Vec3, error) {
	v, err := parseFloats(lineTokens, 6)
	if err != nil {
		return types.Vec3{}, types.Vec3{}, err
	}
	return types.XYZ(v[0], v[1], v[2]), types.XYZ(v[3], v[4], v[5]), nil
}

// Parse a cube row: min corner followed by the edge length.
func parseCube(lineTokens []string) (types.Vec3, types.Vec3, error) {
	v, err := parseFloats(lineTokens, 4)
	if err != nil {
		return types.Vec3{}, types.Vec3{}, err
	}
	min := types.XYZ(v[0], v[1], v[2])
	return min, min.Add(types.XYZ(v[3], v[3], v[3])), nil
}

// Parse a float32 row.
func parseFloat32(lineTokens []string) (float32, error) {
	v, err := parseFloats(lineTokens, 1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// Parse a float32 row whose value may not be negative.
func parseNonNegativeFloat32(lineTokens []string) (float32, error) {
	v, err := parseFloat32(lineTokens)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf(`value for "%s" must not be negative; got %v`, lineTokens[0], v)
	}
	return v, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	v, err := parseFloats(lineTokens, 3)
	if err != nil {
		return types.Vec3{}, err
	}
	return types.XYZ(v[0], v[1], v[2]), nil
}

// Parse a Vec2 row.
func parseVec2(lineTokens []string) (types.Vec2, error) {
	v, err := parseFloats(lineTokens, 2)
	if err != nil {
		return types.Vec2{}, err
	}
	return types.XY(v[0], v[1]), nil
}

// Parse a row with exactly count float arguments.
func parseFloats(lineTokens []string, count int) ([]float32, error) {
	if len(lineTokens)-1 != count {
		return nil, fmt.Errorf(`unsupported syntax for "%s"; expected %d %s; got %d`, lineTokens[0], count, pluralize("argument", count), len(lineTokens)-1)
	}

	out := make([]float32, count)
	for tokIdx := 1; tokIdx <= count; tokIdx++ {
		val, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return nil, err
		}
		out[tokIdx-1] = float32(val)
	}
	return out, nil
}

// Parse an 8-bit RGB color row.
func parseColor(lineTokens []string) (types.Color, error) {
	if len(lineTokens) != 4 {
		return types.Color{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	var channels [3]uint8
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		val, err := strconv.ParseUint(lineTokens[tokIdx], 10, 8)
		if err != nil {
			return types.Color{}, fmt.Errorf(`invalid color channel "%s" for "%s"; expected an integer in [0, 255]`, lineTokens[tokIdx], lineTokens[0])
		}
		channels[tokIdx-1] = uint8(val)
	}
	return types.RGB(channels[0], channels[1], channels[2]), nil
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
