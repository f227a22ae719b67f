package renderer

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"testing"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/scene"
)

func TestPainter_ViewTransform(t *testing.T) {
	s := scene.New("view")
	s.Origin = core.NewPoint(10, 20)
	s.Scale = 2

	p := NewPainter(s, DefaultPaintConfig())
	x, y := p.toPixel(core.NewPoint(3, 4))
	if x != 16 || y != 28 {
		t.Errorf("Expected (16, 28), got (%v, %v)", x, y)
	}
}

func TestPainter_PaintsRays(t *testing.T) {
	s := scene.NewLensBenchScene()
	trace := NewTracer(s, DefaultTraceConfig(), nil, nil).Run(context.Background())

	config := DefaultPaintConfig()
	config.ShowObjects = false
	p := NewPainter(s, config)
	p.PaintTrace(trace)

	img := p.Image()
	if img.Bounds().Dx() != config.Width || img.Bounds().Dy() != config.Height {
		t.Fatalf("Unexpected image size %v", img.Bounds())
	}

	// First beam ray runs along y = 142.5 from the source to the lens
	r, g, b, _ := img.At(200, 142).RGBA()
	if r == 0 || g == 0 {
		t.Errorf("Expected a lit ray pixel, got rgb(%d, %d, %d)", r>>8, g>>8, b>>8)
	}
	// Nothing reaches the far corner
	if r, g, b, _ := img.At(790, 590).RGBA(); r|g|b != 0 {
		t.Errorf("Expected background in the corner, got rgb(%d, %d, %d)", r>>8, g>>8, b>>8)
	}

	var buf bytes.Buffer
	if err := p.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("Encoded image is not a valid PNG: %v", err)
	}
}

func TestPainter_PaintsEveryBuiltinScene(t *testing.T) {
	config := DefaultPaintConfig()
	config.Width, config.Height = 200, 150
	trace := DefaultTraceConfig()
	trace.MaxSweeps = 20

	for _, id := range scene.BuiltinIDs() {
		t.Run(id, func(t *testing.T) {
			s, _ := scene.Builtin(id)
			p := NewPainter(s, config)
			p.PaintTrace(NewTracer(s, trace, nil, nil).Run(context.Background()))
			if p.Image() == nil {
				t.Error("Expected an image")
			}
		})
	}
}

func TestCCW(t *testing.T) {
	tests := []struct {
		a1, a2, want float64
	}{
		{0, math.Pi / 2, math.Pi / 2},
		{math.Pi / 2, 0, 3 * math.Pi / 2},
		{-math.Pi / 2, math.Pi / 2, math.Pi},
		{1, 1, 0},
	}
	for _, tt := range tests {
		if got := ccw(tt.a1, tt.a2); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ccw(%v, %v) = %v, want %v", tt.a1, tt.a2, got, tt.want)
		}
	}
}
