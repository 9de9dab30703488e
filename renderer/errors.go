package renderer

import "errors"

var (
	ErrNoTracers        = errors.New("renderer: no tracers attached")
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrInvalidFrameSize = errors.New("renderer: frame width and height must be greater than zero")
	ErrInvalidFOV       = errors.New("renderer: field of view must be in (0, pi) radians")
	ErrInvalidAmbient   = errors.New("renderer: ambient term must not be negative")
)
