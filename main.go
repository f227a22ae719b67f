package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-ray-optics/cmd"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "ray-optics"
	app.Usage = "trace light through 2-D optical scenes"
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
	}
	app.Commands = []cli.Command{
		{
			Name:  "trace",
			Usage: "trace a scene and save it as PNG",
			Description: `
Trace a built-in scene (see the scenes command), a json:<name> reference into the
scenes directory, or a path to a scene file. Rays are traced in time slices and
painted as each slice completes; interrupting the command keeps what was traced so far.`,
			ArgsUsage: "scene",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "trace.png",
					Usage: "image filename for the traced scene",
				},
			}, cmd.TraceFlags...),
			Action: cmd.TraceScene,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes and scene files",
			Flags:  []cli.Flag{cli.StringFlag{Name: "scenes-dir", Usage: "directory to scan for scene files"}},
			Action: cmd.ListScenes,
		},
		{
			Name:      "batch",
			Usage:     "trace several scenes in parallel",
			ArgsUsage: "scene1 scene2 ...",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out-dir, o",
					Value: "output",
					Usage: "directory receiving one <scene>.png per scene",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of scenes traced at once (0 = CPU count)",
				},
			}, cmd.TraceFlags...),
			Action: cmd.BatchTrace,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
