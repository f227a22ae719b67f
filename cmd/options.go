package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-ray-optics/pkg/observer"
	"github.com/df07/go-ray-optics/pkg/renderer"
	"github.com/df07/go-ray-optics/pkg/scene"
)

// TraceFlags are shared by the commands that trace scenes
var TraceFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scenes-dir",
		Usage: "directory searched for json:<name> scene references (default: ./scenes or ../scenes)",
	},
	cli.StringFlag{
		Name:  "mode, m",
		Usage: "override the scene mode: light, extended_light, images or observer",
	},
	cli.Float64Flag{
		Name:  "density, d",
		Usage: "override the ray density of the scene mode",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 800,
		Usage: "image width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 600,
		Usage: "image height",
	},
	cli.DurationFlag{
		Name:  "budget",
		Value: renderer.DefaultTraceConfig().TimeBudget,
		Usage: "soft time budget of each trace slice",
	},
	cli.IntFlag{
		Name:  "max-sweeps",
		Value: renderer.DefaultTraceConfig().MaxSweeps,
		Usage: "stop after this many sweeps over the ray queue (0 = no limit)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 42,
		Usage: "seed for probe jitter and reflection sampling",
	},
}

func scenesDir(ctx *cli.Context) string {
	if dir := ctx.String("scenes-dir"); dir != "" {
		return dir
	}
	return scene.ScenesDir()
}

// loadScene resolves a scene reference and applies the command line overrides
func loadScene(ctx *cli.Context, ref string) (*scene.Scene, error) {
	s, err := scene.Load(ref, scenesDir(ctx))
	if err != nil {
		return nil, err
	}

	if name := ctx.String("mode"); name != "" {
		mode, err := observer.ParseMode(name)
		if err != nil {
			return nil, err
		}
		s.Mode = mode
	}
	if density := ctx.Float64("density"); density > 0 {
		if s.Mode.UsesImageDensity() {
			s.RayDensityImages = density
		} else {
			s.RayDensityLight = density
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func traceConfig(ctx *cli.Context) renderer.TraceConfig {
	config := renderer.DefaultTraceConfig()
	config.TimeBudget = ctx.Duration("budget")
	config.MaxSweeps = ctx.Int("max-sweeps")
	return config
}

func paintConfig(ctx *cli.Context) renderer.PaintConfig {
	config := renderer.DefaultPaintConfig()
	config.Width = ctx.Int("width")
	config.Height = ctx.Int("height")
	return config
}
