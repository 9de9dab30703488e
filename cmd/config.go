package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/achilleasa/diorama/asset"
	"github.com/achilleasa/diorama/renderer"
	"github.com/achilleasa/diorama/tracer"
	"github.com/chewxy/math32"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

// The env file loaded when DIORAMA_ENV_FILE is not set.
const defaultEnvFile = ".env"

// Load settings from an env file. Variables already present in the
// environment are not overwritten. A missing default env file is not an
// error; a missing file named by DIORAMA_ENV_FILE is.
func LoadEnv() error {
	envFile := os.Getenv("DIORAMA_ENV_FILE")
	if envFile == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		envFile = defaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("could not load env file %q: %s", envFile, err.Error())
	}
	return nil
}

// Populate the s3 resource settings from the environment.
func configureS3() {
	asset.S3 = asset.S3Config{
		Endpoint:  os.Getenv("DIORAMA_S3_ENDPOINT"),
		Region:    os.Getenv("DIORAMA_S3_REGION"),
		AccessKey: os.Getenv("DIORAMA_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("DIORAMA_S3_SECRET_KEY"),
	}
}

// Flags shared by the render commands.
func RenderFlags() []cli.Flag {
	defaults := renderer.DefaultOptions()
	return []cli.Flag{
		cli.IntFlag{
			Name:   "width",
			Value:  int(defaults.FrameW),
			Usage:  "render width",
			EnvVar: "DIORAMA_WIDTH",
		},
		cli.IntFlag{
			Name:   "height",
			Value:  int(defaults.FrameH),
			Usage:  "render height",
			EnvVar: "DIORAMA_HEIGHT",
		},
		cli.IntFlag{
			Name:   "display-width",
			Value:  int(defaults.DisplayW),
			Usage:  "display width; the rendered frame is upscaled to this width",
			EnvVar: "DIORAMA_DISPLAY_WIDTH",
		},
		cli.IntFlag{
			Name:   "display-height",
			Value:  int(defaults.DisplayH),
			Usage:  "display height; the rendered frame is upscaled to this height",
			EnvVar: "DIORAMA_DISPLAY_HEIGHT",
		},
		cli.Float64Flag{
			Name:   "fov",
			Value:  float64(defaults.FOV * 180 / math32.Pi),
			Usage:  "vertical field of view in degrees",
			EnvVar: "DIORAMA_FOV",
		},
		cli.Float64Flag{
			Name:   "cull-distance",
			Value:  float64(defaults.CullDistance),
			Usage:  "skip boxes whose min corner is farther than this from the camera; 0 disables culling",
			EnvVar: "DIORAMA_CULL_DISTANCE",
		},
		cli.Float64Flag{
			Name:   "ambient",
			Value:  float64(defaults.Ambient),
			Usage:  "ambient light term",
			EnvVar: "DIORAMA_AMBIENT",
		},
		cli.IntFlag{
			Name:   "workers",
			Value:  runtime.NumCPU(),
			Usage:  "number of cpu tracers",
			EnvVar: "DIORAMA_WORKERS",
		},
		cli.DurationFlag{
			Name:   "frame-delay",
			Value:  defaults.FrameDelay,
			Usage:  "pause between interactive frames",
			EnvVar: "DIORAMA_FRAME_DELAY",
		},
		cli.IntFlag{
			Name:   "max-texture-size",
			Value:  0,
			Usage:  "downscale textures larger than this; 0 keeps the original size",
			EnvVar: "DIORAMA_MAX_TEXTURE_SIZE",
		},
		cli.StringFlag{
			Name:   "scheduler",
			Value:  "perfect",
			Usage:  "block scheduler (naive or perfect)",
			EnvVar: "DIORAMA_SCHEDULER",
		},
	}
}

// Build render options from the command flags.
func renderOptions(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.Options{
		FrameW:       uint32(nonNegative(ctx.Int("width"))),
		FrameH:       uint32(nonNegative(ctx.Int("height"))),
		DisplayW:     uint32(nonNegative(ctx.Int("display-width"))),
		DisplayH:     uint32(nonNegative(ctx.Int("display-height"))),
		FOV:          float32(ctx.Float64("fov")) * math32.Pi / 180,
		CullDistance: float32(ctx.Float64("cull-distance")),
		Ambient:      float32(ctx.Float64("ambient")),
		NumTracers:   ctx.Int("workers"),
		FrameDelay:   ctx.Duration("frame-delay"),
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Select a block scheduler by name.
func selectScheduler(name string) (tracer.BlockScheduler, error) {
	switch strings.ToLower(name) {
	case "naive":
		return tracer.NaiveScheduler(), nil
	case "perfect", "":
		return tracer.PerfectScheduler(), nil
	}
	return nil, fmt.Errorf("unknown block scheduler %q; expected naive or perfect", name)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
