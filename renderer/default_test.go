package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/achilleasa/diorama/scene"
	"github.com/achilleasa/diorama/scene/reader"
	"github.com/achilleasa/diorama/tracer"
	"github.com/achilleasa/diorama/types"
	"github.com/disintegration/imaging"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.FrameW = 40
	opts.FrameH = 30
	opts.DisplayW = 80
	opts.DisplayH = 60
	opts.NumTracers = 3
	return opts
}

func TestNewDefaultErrors(t *testing.T) {
	opts := testOptions()

	if _, err := NewDefault(nil, nil, opts); err != ErrSceneNotDefined {
		t.Fatalf("expected error %v; got %v", ErrSceneNotDefined, err)
	}

	sc := scene.NewScene()
	sc.Camera = nil
	if _, err := NewDefault(sc, nil, opts); err != ErrCameraNotDefined {
		t.Fatalf("expected error %v; got %v", ErrCameraNotDefined, err)
	}

	opts.FrameW = 0
	if _, err := NewDefault(scene.NewScene(), nil, opts); err != ErrInvalidFrameSize {
		t.Fatalf("expected error %v; got %v", ErrInvalidFrameSize, err)
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := Options{FrameW: 10, FrameH: 20, FOV: 1}
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	if opts.DisplayW != 10 || opts.DisplayH != 20 {
		t.Fatalf("expected display dims to default to the frame dims; got %dx%d", opts.DisplayW, opts.DisplayH)
	}
	if opts.NumTracers <= 0 {
		t.Fatalf("expected tracer count to be filled in; got %d", opts.NumTracers)
	}

	opts.FOV = 4
	if err := opts.Validate(); err != ErrInvalidFOV {
		t.Fatalf("expected error %v; got %v", ErrInvalidFOV, err)
	}

	opts.FOV = 1
	opts.Ambient = -1
	if err := opts.Validate(); err != ErrInvalidAmbient {
		t.Fatalf("expected error %v; got %v", ErrInvalidAmbient, err)
	}
}

func TestRenderFrame(t *testing.T) {
	sc, err := reader.DefaultScene()
	if err != nil {
		t.Fatal(err)
	}

	opts := testOptions()
	r, err := NewDefault(sc, tracer.PerfectScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	// Reference render on a single goroutine
	expFb := tracer.NewFramebuffer(opts.FrameW, opts.FrameH)
	tracer.NewFrameState(sc, opts.Ambient, opts.FOV, opts.CullDistance).RenderRows(expFb, 0, expFb.Height)
	expDisplay := tracer.Upscale(expFb, opts.DisplayW, opts.DisplayH)

	// Render a few frames so the perfect scheduler rebalances the blocks
	for frame := 0; frame < 3; frame++ {
		if err = r.Render(); err != nil {
			t.Fatal(err)
		}

		fb := r.Frame()
		if fb.Width != opts.DisplayW || fb.Height != opts.DisplayH {
			t.Fatalf("[frame %d] expected frame dims %dx%d; got %dx%d", frame, opts.DisplayW, opts.DisplayH, fb.Width, fb.Height)
		}
		for i := range expDisplay.Pixels {
			if fb.Pixels[i] != expDisplay.Pixels[i] {
				t.Fatalf("[frame %d] expected pixel %d to be %06x; got %06x", frame, i, expDisplay.Pixels[i], fb.Pixels[i])
			}
		}

		stats := r.Stats()
		if len(stats.Tracers) != opts.NumTracers {
			t.Fatalf("[frame %d] expected stats for %d tracers; got %d", frame, opts.NumTracers, len(stats.Tracers))
		}
		var totalRows uint32
		var totalPercent float32
		for _, stat := range stats.Tracers {
			totalRows += stat.BlockH
			totalPercent += stat.FramePercent
		}
		if totalRows != opts.FrameH {
			t.Fatalf("[frame %d] expected block heights to add up to %d; got %d", frame, opts.FrameH, totalRows)
		}
		if totalPercent < 99.9 || totalPercent > 100.1 {
			t.Fatalf("[frame %d] expected frame percentages to add up to 100; got %f", frame, totalPercent)
		}
		if stats.RenderTime <= 0 {
			t.Fatalf("[frame %d] expected a positive frame render time", frame)
		}
	}
}

func TestRenderPicksUpSceneChanges(t *testing.T) {
	sc, err := reader.DefaultScene()
	if err != nil {
		t.Fatal(err)
	}

	opts := testOptions()
	opts.DisplayW, opts.DisplayH = opts.FrameW, opts.FrameH
	r, err := NewDefault(sc, nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err = r.Render(); err != nil {
		t.Fatal(err)
	}
	before := append([]uint32(nil), r.Frame().Pixels...)

	sc.BgColor = types.RGB(0, 0, 0)
	sc.Camera.Orbit(0.5, 0)
	if err = r.Render(); err != nil {
		t.Fatal(err)
	}

	if r.Frame().At(0, 0) != sc.BgColor {
		t.Fatalf("expected background to change to %s; got %s", sc.BgColor, r.Frame().At(0, 0))
	}

	changed := false
	for i, px := range r.Frame().Pixels {
		if px != before[i] && px != 0 {
			changed = true
			break
		}
	}
	if !changed {
		t.Fatal("expected camera orbit to change the rendered geometry")
	}
}

func TestRenderAfterClose(t *testing.T) {
	r, err := NewDefault(scene.NewScene(), nil, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	r.Close()

	if err = r.Render(); err != ErrNoTracers {
		t.Fatalf("expected error %v; got %v", ErrNoTracers, err)
	}
}

func TestSaveFrame(t *testing.T) {
	fb := tracer.NewFramebuffer(4, 2)
	fb.Clear(types.RGB(10, 20, 30))
	fb.Pixels[7] = 0xff0000

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SaveFrame(fb, path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("expected a 4x2 image; got %v", img.Bounds())
	}
	r, g, b, _ := img.At(3, 1).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Fatalf("expected pixel (3, 1) to be red; got %d %d %d", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("expected pixel (0, 0) to be (10, 20, 30); got %d %d %d", r>>8, g>>8, b>>8)
	}
}
