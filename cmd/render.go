package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/achilleasa/diorama/asset/texture"
	"github.com/achilleasa/diorama/renderer"
	"github.com/achilleasa/diorama/renderer/opengl"
	"github.com/achilleasa/diorama/scene"
	"github.com/achilleasa/diorama/scene/reader"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)
	configureS3()

	opts, err := renderOptions(ctx)
	if err != nil {
		return err
	}

	scheduler, err := selectScheduler(ctx.String("scheduler"))
	if err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	r, err := renderer.NewDefault(sc, scheduler, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Notice("rendering frame")
	err = r.Render()
	if err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	imgFile := ctx.String("out")
	start := time.Now()
	err = renderer.SaveFrame(r.Frame(), imgFile)
	if err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1e6)

	return nil
}

// Render an interactive view of the scene.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)
	configureS3()

	opts, err := renderOptions(ctx)
	if err != nil {
		return err
	}

	scheduler, err := selectScheduler(ctx.String("scheduler"))
	if err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	r, err := opengl.NewInteractive(sc, scheduler, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Notice("arrows: orbit camera, WASD/QE: move light, +/-: light intensity, tab: block overlay, esc: quit")
	err = r.Render()
	if err != nil {
		return err
	}

	// Display stats for the last frame
	displayFrameStats(r.Stats())
	return nil
}

// Load the scene named by the first command argument or the built-in
// diorama if no argument is given.
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if ctx.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one scene file argument; got %d", ctx.NArg())
	}

	if ctx.NArg() == 0 {
		logger.Notice("no scene file specified; using the built-in diorama")
		return reader.DefaultScene()
	}

	textures := texture.NewCache(texture.Options{
		MaxSize: uint32(nonNegative(ctx.Int("max-texture-size"))),
	})
	return reader.ReadScene(ctx.Args().First(), textures)
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s%s", buf.String(), hostInfoTable())
}
