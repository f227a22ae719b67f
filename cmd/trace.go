package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/renderer"
)

// TraceScene traces one scene progressively and saves the result as PNG
func TraceScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene argument")
	}

	s, err := loadScene(ctx, ctx.Args().First())
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	optics := core.NewContext(core.NewSeededSampler(ctx.Int64("seed")))
	tracer := renderer.NewTracer(s, traceConfig(ctx), optics, logger)
	painter := renderer.NewPainter(s, paintConfig(ctx))

	var stats renderer.TraceStats
	slices, errs := tracer.TraceProgressive(runCtx)
	for slice := range slices {
		painter.PaintSlice(slice)
		stats = slice.Stats
		if !slice.Done {
			logger.Infof("slice %d: %d rays processed, %d waiting", slice.Slice, stats.Processed, stats.Live)
		}
	}
	if err := <-errs; err != nil {
		logger.Warningf("trace interrupted: %v", err)
		stats = tracer.Stats()
	}
	painter.PaintObjects()

	out := ctx.String("out")
	if err := painter.SavePNG(out); err != nil {
		return errors.Wrapf(err, "could not save %s", out)
	}

	displayTraceStats(s.Name, stats)
	logger.Noticef("trace saved as %s", out)
	return nil
}

func displayTraceStats(name string, stats renderer.TraceStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Emitted", "Processed", "Refracted", "Reflected", "Absorbed", "Escaped", "Images", "Sweeps", "Slices"})
	table.Append(statsRow(name, stats))
	table.SetFooter([]string{"", "", "", "", "", "", "", "", "TIME", stats.Elapsed.String()})

	table.Render()
	logger.Noticef("trace statistics\n%s", buf.String())
}

func statsRow(name string, stats renderer.TraceStats) []string {
	return []string{
		name,
		fmt.Sprintf("%d", stats.Emitted),
		fmt.Sprintf("%d", stats.Processed),
		fmt.Sprintf("%d", stats.Refracted),
		fmt.Sprintf("%d", stats.Reflected),
		fmt.Sprintf("%d", stats.Absorbed),
		fmt.Sprintf("%d", stats.Escaped),
		fmt.Sprintf("%d", stats.Images),
		fmt.Sprintf("%d", stats.Sweeps),
		fmt.Sprintf("%d", stats.Slices),
	}
}
