package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/df07/go-ray-optics/pkg/renderer"
	"github.com/df07/go-ray-optics/pkg/scene"
)

// BatchTrace traces several scenes in parallel and saves one PNG per scene
func BatchTrace(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing scene arguments")
	}

	scenes := make([]*scene.Scene, 0, ctx.NArg())
	for _, ref := range ctx.Args() {
		s, err := loadScene(ctx, ref)
		if err != nil {
			return errors.Wrapf(err, "could not load %s", ref)
		}
		scenes = append(scenes, s)
	}

	outDir := ctx.String("out-dir")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrapf(err, "could not create %s", outDir)
	}

	bar := pb.New(len(scenes))
	bar.SetWidth(80)
	bar.Output = ctx.App.Writer
	bar.Start()
	results := renderer.TraceBatch(context.Background(), scenes, traceConfig(ctx), ctx.Int("workers"), func(renderer.BatchResult) {
		bar.Increment()
	})
	bar.Finish()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Emitted", "Processed", "Refracted", "Reflected", "Absorbed", "Escaped", "Images", "Sweeps", "Slices"})

	var failed int
	for _, result := range results {
		if result.Error != nil {
			logger.Errorf("%s: %v", result.Scene.Name, result.Error)
			failed++
			continue
		}

		painter := renderer.NewPainter(result.Scene, paintConfig(ctx))
		painter.PaintTrace(result.Trace)
		out := filepath.Join(outDir, result.Scene.Name+".png")
		if err := painter.SavePNG(out); err != nil {
			return errors.Wrapf(err, "could not save %s", out)
		}
		table.Append(statsRow(result.Scene.Name, result.Trace.Stats))
	}
	table.Render()
	logger.Noticef("batch statistics\n%s", buf.String())

	if failed > 0 {
		return errors.Errorf("%d of %d scenes failed", failed, len(results))
	}
	return nil
}
