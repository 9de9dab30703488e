package texture

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/achilleasa/diorama/asset"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// A decoded texture image. Data holds Width*Height texels in row-major
// order, 4 bytes (R, G, B, A) per texel.
type Texture struct {
	Width  uint32
	Height uint32

	Data []byte
}

// Texture decoding options.
type Options struct {
	// Textures whose width or height exceed this value are downscaled
	// (preserving aspect ratio) before use. Zero disables downscaling.
	MaxSize uint32
}

// Create a new texture from a Resource.
func New(res *asset.Resource, opts Options) (*Texture, error) {
	img, format, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %s", res.Path(), err.Error())
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("texture: %s image %s has zero area", format, res.Path())
	}

	if opts.MaxSize != 0 && (uint32(bounds.Dx()) > opts.MaxSize || uint32(bounds.Dy()) > opts.MaxSize) {
		img = resize.Thumbnail(uint(opts.MaxSize), uint(opts.MaxSize), img, resize.NearestNeighbor)
	}

	return FromImage(img), nil
}

// Convert an image into an RGBA8 texture.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()

	// Non-premultiplied so that color channels of transparent texels survive
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*bounds.Dx() || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return &Texture{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Data:   nrgba.Pix,
	}
}
