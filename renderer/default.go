package renderer

import (
	"fmt"
	"time"

	"github.com/achilleasa/diorama/log"
	"github.com/achilleasa/diorama/scene"
	"github.com/achilleasa/diorama/tracer"
	"github.com/achilleasa/diorama/tracer/cpu"
	"github.com/disintegration/imaging"
)

// The Default renderer renders a single frame per Render call.
type Default struct {
	logger log.Logger

	scene   *scene.Scene
	options Options

	tracers          []tracer.Tracer
	scheduler        tracer.BlockScheduler
	blockAssignments []uint32

	// Framebuffers at render and display resolution.
	renderFb  *tracer.Framebuffer
	displayFb *tracer.Framebuffer

	doneChan chan uint32
	errChan  chan error

	stats FrameStats
}

// Create a new default renderer that splits each frame across a pool of cpu
// tracers using the specified block scheduler.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (*Default, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if scheduler == nil {
		scheduler = tracer.NaiveScheduler()
	}

	r := &Default{
		logger:    log.New("renderer"),
		scene:     sc,
		options:   opts,
		scheduler: scheduler,
		renderFb:  tracer.NewFramebuffer(opts.FrameW, opts.FrameH),
		displayFb: tracer.NewFramebuffer(opts.DisplayW, opts.DisplayH),
		doneChan:  make(chan uint32, opts.NumTracers),
		errChan:   make(chan error, opts.NumTracers),
	}

	for idx := 0; idx < opts.NumTracers; idx++ {
		r.tracers = append(r.tracers, cpu.NewTracer(fmt.Sprintf("cpu-%d", idx), cpu.DefaultSpeed))
	}
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	r.logger.Infof(
		"rendering at %dx%d (display %dx%d) using %d tracers",
		opts.FrameW, opts.FrameH, opts.DisplayW, opts.DisplayH, len(r.tracers),
	)
	return r, nil
}

// Render a single frame.
func (r *Default) Render() error {
	return r.renderFrame()
}

// Shutdown renderer and any attached tracer.
func (r *Default) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get render statistics.
func (r *Default) Stats() FrameStats {
	return r.stats
}

// Get the last rendered frame at display resolution.
func (r *Default) Frame() *tracer.Framebuffer {
	return r.displayFb
}

// Get the validated render options.
func (r *Default) Options() Options {
	return r.options
}

// Get the scene being rendered. It may be modified between Render calls.
func (r *Default) Scene() *scene.Scene {
	return r.scene
}

// Get the block height assigned to each tracer for the last frame.
func (r *Default) BlockAssignments() []uint32 {
	return r.blockAssignments
}

// Render the current scene state. The scene must not be modified while this
// method executes.
func (r *Default) renderFrame() error {
	if len(r.tracers) == 0 {
		return ErrNoTracers
	}

	start := time.Now()
	r.renderFb.Clear(r.scene.BgColor)
	frame := tracer.NewFrameState(r.scene, r.options.Ambient, r.options.FOV, r.options.CullDistance)

	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.options.FrameH)

	var blockY uint32 = 0
	pending := 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		tr.Enqueue(tracer.BlockRequest{
			BlockY:   blockY,
			BlockH:   blockH,
			Frame:    frame,
			Target:   r.renderFb,
			DoneChan: r.doneChan,
			ErrChan:  r.errChan,
		})
		blockY += blockH
		pending++
	}

	// Wait for all tracers to finish before touching the framebuffer
	var err error
	for ; pending > 0; pending-- {
		select {
		case <-r.doneChan:
		case blockErr := <-r.errChan:
			if err == nil {
				err = blockErr
			}
		}
	}
	if err != nil {
		return err
	}

	tracer.UpscaleInto(r.displayFb, r.renderFb)
	r.updateStats(time.Since(start))
	r.logger.Debugf("rendered frame in %s", r.stats.RenderTime)
	return nil
}

func (r *Default) updateStats(renderTime time.Duration) {
	r.stats.RenderTime = renderTime
	r.stats.Tracers = make([]TracerStat, 0, len(r.tracers))
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		stat := TracerStat{
			Id:           tr.Id(),
			BlockH:       blockH,
			FramePercent: 100 * float32(blockH) / float32(r.options.FrameH),
		}
		if blockH != 0 {
			stat.RenderTime = tr.Stats().RenderTime
		}
		r.stats.Tracers = append(r.stats.Tracers, stat)
	}
}

// Save a frame to an image file. The image format is selected by the file
// extension.
func SaveFrame(fb *tracer.Framebuffer, filename string) error {
	return imaging.Save(fb.NRGBA(), filename)
}
