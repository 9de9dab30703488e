package opengl

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/achilleasa/diorama/renderer"
	"github.com/achilleasa/diorama/scene"
	"github.com/achilleasa/diorama/tracer"
	"github.com/achilleasa/diorama/types"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// Height in pixels for stacked series widgets
	stackedSeriesHeight uint32 = 20
)

func init() {
	// glfw event handling must run on the main thread
	runtime.LockOSThread()
}

// An interactive opengl-based renderer.
type interactiveGLRenderer struct {
	*renderer.Default

	options renderer.Options

	// opengl handles
	window *glfw.Window

	// RGBA copy of the display framebuffer uploaded to opengl
	pixels []byte

	// state
	input     renderer.InputState
	lastFrame time.Time

	// Display options
	showUI                bool
	blockAssignmentSeries *stackedSeries
}

// Create a new interactive opengl renderer using the specified block scheduler.
func NewInteractive(sc *scene.Scene, scheduler tracer.BlockScheduler, opts renderer.Options) (renderer.Renderer, error) {
	base, err := renderer.NewDefault(sc, scheduler, opts)
	if err != nil {
		return nil, err
	}

	r := &interactiveGLRenderer{
		Default: base,
		options: base.Options(),
	}

	err = r.initGL()
	if err != nil {
		r.Close()
		return nil, err
	}

	r.initUI()
	return r, nil
}

func (r *interactiveGLRenderer) Close() {
	if r.window != nil {
		r.window.Destroy()
		r.window = nil
		glfw.Terminate()
	}
	r.Default.Close()
}

func (r *interactiveGLRenderer) initGL() error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	r.window, err = glfw.CreateWindow(int(r.options.DisplayW), int(r.options.DisplayH), "diorama", nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	r.window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}

	// Bind event callbacks
	r.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	r.window.SetKeyCallback(r.onKeyEvent)

	return nil
}

// Render frames until the window is closed. Input collected while a frame
// is displayed is applied to the scene before the next frame starts.
func (r *interactiveGLRenderer) Render() error {
	r.lastFrame = time.Now()
	for !r.window.ShouldClose() {
		glfw.PollEvents()

		now := time.Now()
		dt := now.Sub(r.lastFrame)
		r.lastFrame = now
		if r.input.Active() {
			sc := r.Scene()
			camera, light := renderer.ApplyInput(r.input, *sc.Camera, sc.Light, dt)
			*sc.Camera = camera
			sc.Light = light
		}

		err := r.Default.Render()
		if err != nil {
			return err
		}

		r.present()

		// Display tracer stats
		if r.showUI {
			r.renderUI()
		}

		r.window.SwapBuffers()
		time.Sleep(r.options.FrameDelay)
	}
	return nil
}

// Copy the display framebuffer to the window.
func (r *interactiveGLRenderer) present() {
	fb := r.Frame()
	r.pixels = fb.RGBA(r.pixels)

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.RasterPos2i(0, 0)
	gl.PixelZoom(1, -1)
	gl.DrawPixels(int32(fb.Width), int32(fb.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.pixels))
}

func (r *interactiveGLRenderer) initUI() {
	// Setup ortho projection with the origin at the top-left corner
	gl.Disable(gl.DEPTH_TEST)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(r.options.DisplayW), float64(r.options.DisplayH), 0, -1, 1)
	gl.Viewport(0, 0, int32(r.options.DisplayW), int32(r.options.DisplayH))
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	// Setup series
	r.blockAssignmentSeries = makeStackedSeries(r.options.NumTracers, int(r.options.DisplayW))
}

func (r *interactiveGLRenderer) onBeforeShowUI() {
	r.blockAssignmentSeries.Clear()
}

// Outline the block assigned to each tracer and plot the assignment history.
func (r *interactiveGLRenderer) renderUI() {
	scaleY := float32(r.options.DisplayH) / float32(r.options.FrameH)

	var y float32 = 1
	var frameW float32 = float32(r.options.DisplayW) - 1
	gl.LineWidth(2.0)
	blockAssignments := r.BlockAssignments()
	for seriesIndex, blockH := range blockAssignments {
		h := float32(blockH) * scaleY
		gl.Color3fv(&r.blockAssignmentSeries.colors[seriesIndex][0])
		gl.Begin(gl.LINE_LOOP)
		gl.Vertex2f(0, y)
		gl.Vertex2f(frameW, y)
		gl.Vertex2f(frameW, y+h)
		gl.Vertex2f(0, y+h)
		gl.End()

		y += h
	}

	for seriesIndex, blockH := range blockAssignments {
		r.blockAssignmentSeries.Append(seriesIndex, float32(blockH))
	}
	r.blockAssignmentSeries.Render(r.options.DisplayH-stackedSeriesHeight, stackedSeriesHeight)

	// Restore the color used by DrawPixels
	gl.Color3f(1, 1, 1)
}

func (r *interactiveGLRenderer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	pressed := action == glfw.Press

	switch key {
	case glfw.KeyEscape:
		if pressed {
			w.SetShouldClose(true)
		}
	case glfw.KeyTab:
		if pressed {
			r.showUI = !r.showUI
			if r.showUI {
				r.onBeforeShowUI()
			}
		}
	case glfw.KeyLeft:
		r.input.OrbitLeft = pressed
	case glfw.KeyRight:
		r.input.OrbitRight = pressed
	case glfw.KeyUp:
		r.input.OrbitUp = pressed
	case glfw.KeyDown:
		r.input.OrbitDown = pressed
	case glfw.KeyA:
		r.input.LightLeft = pressed
	case glfw.KeyD:
		r.input.LightRight = pressed
	case glfw.KeyW:
		r.input.LightForward = pressed
	case glfw.KeyS:
		r.input.LightBackward = pressed
	case glfw.KeyE:
		r.input.LightUp = pressed
	case glfw.KeyQ:
		r.input.LightDown = pressed
	case glfw.KeyEqual, glfw.KeyKPAdd:
		r.input.IntensityUp = pressed
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		r.input.IntensityDown = pressed
	}
}

type stackedSeries struct {
	series [][]float32
	colors []types.Vec3
}

func makeStackedSeries(numSeries, histCount int) *stackedSeries {
	s := &stackedSeries{
		series: make([][]float32, numSeries),
		colors: make([]types.Vec3, numSeries),
	}

	for sIndex := 0; sIndex < numSeries; sIndex++ {
		s.series[sIndex] = make([]float32, histCount)
		s.colors[sIndex] = types.Vec3{rand.Float32(), rand.Float32(), 1.0}
	}

	return s
}

// Clear series
func (s *stackedSeries) Clear() {
	for sIndex := 0; sIndex < len(s.series); sIndex++ {
		s.series[sIndex] = make([]float32, len(s.series[sIndex]))
	}
}

// Shift series values and append new value at the end.
func (s *stackedSeries) Append(seriesIndex int, val float32) {
	s.series[seriesIndex] = append(s.series[seriesIndex][1:], val)
}

func (s *stackedSeries) Render(rY, rHeight uint32) {
	if len(s.series) == 0 {
		return
	}

	gl.LineWidth(1.0)
	gl.Begin(gl.LINES)
	for x := 0; x < len(s.series[0]); x++ {
		var sum float32 = 0
		var scale float32 = 1.0
		for seriesIndex := 0; seriesIndex < len(s.series); seriesIndex++ {
			sum += s.series[seriesIndex][x]
		}
		if sum > 0.0 {
			scale = float32(rHeight) / sum
		}

		var y float32 = float32(rY)
		for seriesIndex := 0; seriesIndex < len(s.series); seriesIndex++ {
			sH := s.series[seriesIndex][x] * scale
			gl.Color3fv(&s.colors[seriesIndex][0])
			gl.Vertex2f(float32(x), y)
			gl.Vertex2f(float32(x), y+sH)
			y += sH
		}
	}
	gl.End()
}
