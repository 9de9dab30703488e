package cpu

import "errors"

var (
	ErrNoFrameData = errors.New("cpu tracer: block request has no frame state or target framebuffer")
	ErrTracerBusy  = errors.New("cpu tracer: a block request is already pending")
)
