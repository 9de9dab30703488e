package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/diorama/asset"
	"github.com/achilleasa/diorama/asset/texture"
	"github.com/achilleasa/diorama/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from file. Textures referenced by the scene are fetched
// through the supplied cache.
func ReadScene(filename string, textures *texture.Cache) (*scene.Scene, error) {
	var reader Reader
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".scene", ".txt":
		reader = newTextSceneReader(textures)
	default:
		return nil, fmt.Errorf("readScene: unsupported file format")
	}

	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}

// Build the built-in diorama.
func DefaultScene() (*scene.Scene, error) {
	res := asset.NewResourceFromStream("default.scene", strings.NewReader(defaultScene))
	return newTextSceneReader(nil).Read(res)
}
