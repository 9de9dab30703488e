package renderer

import (
	"runtime"
	"time"

	"github.com/chewxy/math32"
)

type Options struct {
	// Render resolution.
	FrameW uint32
	FrameH uint32

	// Display resolution. The rendered frame is upscaled to these dims.
	DisplayW uint32
	DisplayH uint32

	// Vertical field of view in radians.
	FOV float32

	// Boxes whose min corner is farther than this from the camera are
	// skipped by primary rays. A value <= 0 disables culling.
	CullDistance float32

	// Ambient light term.
	Ambient float32

	// Number of cpu tracers.
	NumTracers int

	// Pause between two interactive frames.
	FrameDelay time.Duration
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		FrameW:       800,
		FrameH:       600,
		DisplayW:     800,
		DisplayH:     600,
		FOV:          math32.Pi / 3,
		CullDistance: 10,
		Ambient:      0.5,
		NumTracers:   runtime.NumCPU(),
		FrameDelay:   20 * time.Millisecond,
	}
}

// Validate the options and fill in display dims and tracer count when unset.
func (opts *Options) Validate() error {
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return ErrInvalidFrameSize
	}
	if opts.DisplayW == 0 {
		opts.DisplayW = opts.FrameW
	}
	if opts.DisplayH == 0 {
		opts.DisplayH = opts.FrameH
	}
	if opts.FOV <= 0 || opts.FOV >= math32.Pi {
		return ErrInvalidFOV
	}
	if opts.Ambient < 0 {
		return ErrInvalidAmbient
	}
	if opts.NumTracers <= 0 {
		opts.NumTracers = runtime.NumCPU()
	}
	if opts.FrameDelay < 0 {
		opts.FrameDelay = 0
	}
	return nil
}
