package main

import (
	"os"

	"github.com/df07/go-sah-raytracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-sah-raytracer"
	app.Usage = "render scenes by path tracing through an SAH bounding volume hierarchy"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "env",
			Usage: "load configuration from this .env file (default .env)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render one or more frames of a scene",
			Description: `
Render a built-in scene or a JSON scene file and write frame<N>.png files to
the output directory. With --frames the camera origin moves between frames.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.Render,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Usage: "directory to scan for JSON scene files (defaults to RAYTRACER_SCENES_DIR)",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:   "info",
			Usage:  "display host information",
			Action: cmd.Info,
		},
		{
			Name:  "serve",
			Usage: "serve renders over HTTP",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Usage: "listen address (defaults to SERVER_ADDRESS)",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
