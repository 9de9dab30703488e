package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/diorama/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	// Settings from the env file must be visible before flags are parsed
	if err := cmd.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}

	app := cli.NewApp()
	app.Name = "diorama"
	app.Usage = "ray trace box dioramas"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "host",
			Usage:  "list host resources available to the cpu tracers",
			Action: cmd.ShowHostInfo,
		},
		{
			Name:  "scene",
			Usage: "display scene information",
			Description: `
Parse a scene file and display its materials and a summary of its contents.
The built-in diorama is used when no scene file is given.`,
			ArgsUsage: "[scene_file]",
			Action:    cmd.ShowSceneInfo,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "max-texture-size",
					Value:  0,
					Usage:  "downscale textures larger than this; 0 keeps the original size",
					EnvVar: "DIORAMA_MAX_TEXTURE_SIZE",
				},
			},
		},
		{
			Name:  "render",
			Usage: "render scene",
			Subcommands: []cli.Command{
				{
					Name:  "frame",
					Usage: "render single frame",
					Description: `
Render a single frame and save it to an image file. The image format is
selected by the output file extension.`,
					ArgsUsage: "[scene_file]",
					Flags: append(cmd.RenderFlags(),
						cli.StringFlag{
							Name:   "out, o",
							Value:  "frame.png",
							Usage:  "image filename for the rendered frame",
							EnvVar: "DIORAMA_OUT",
						},
					),
					Action: cmd.RenderFrame,
				},
				{
					Name:  "interactive",
					Usage: "render interactive view of the scene",
					Description: `
Open a window with a continuously updated view of the scene. Use the arrow
keys to orbit the camera, WASD/QE to move the light and +/- to change the
light intensity.`,
					ArgsUsage: "[scene_file]",
					Flags:     cmd.RenderFlags(),
					Action:    cmd.RenderInteractive,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
