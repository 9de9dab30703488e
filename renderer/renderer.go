package renderer

import "github.com/achilleasa/diorama/tracer"

type Renderer interface {
	// Render frame.
	Render() error

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats

	// Get the last rendered frame at display resolution.
	Frame() *tracer.Framebuffer
}
