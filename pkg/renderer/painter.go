package renderer

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/math/f64"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/geometry"
	"github.com/df07/go-ray-optics/pkg/integrator"
	"github.com/df07/go-ray-optics/pkg/lights"
	"github.com/df07/go-ray-optics/pkg/observer"
	"github.com/df07/go-ray-optics/pkg/scene"
)

var (
	rayColor       = color.RGBA{255, 255, 128, 255}
	extensionColor = color.RGBA{255, 128, 0, 255}
	forwardColor   = color.RGBA{80, 80, 80, 255}
	sightColor     = color.RGBA{0, 0, 255, 255}
	mirrorColor    = color.RGBA{168, 168, 168, 255}
	glassColor     = color.RGBA{128, 200, 255, 255}
	absorberColor  = color.RGBA{70, 35, 10, 255}
	sourceColor    = color.RGBA{255, 64, 64, 255}
)

// PaintConfig contains configuration for painting traces
type PaintConfig struct {
	Width, Height int
	Background    color.Color
	LineWidth     float64 // In pixels
	PointRadius   float64 // Image point radius in pixels
	ShowObjects   bool    // Draw the optical elements over the rays
}

// DefaultPaintConfig returns sensible default values
func DefaultPaintConfig() PaintConfig {
	return PaintConfig{
		Width:       800,
		Height:      600,
		Background:  color.Black,
		LineWidth:   1,
		PointRadius: 2,
		ShowObjects: true,
	}
}

// Painter accumulates trace output onto an image. Rays are blended with an alpha
// equal to their brightness, so overlapping faint rays add up.
type Painter struct {
	config PaintConfig
	scene  *scene.Scene
	dc     *gg.Context
	view   f64.Aff3 // world to pixel
	reach  float64  // world length that crosses the whole canvas
}

// NewPainter creates a painter using the scene's origin and scale as the view
func NewPainter(s *scene.Scene, config PaintConfig) *Painter {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	p := &Painter{
		config: config,
		scene:  s,
		dc:     gg.NewContext(config.Width, config.Height),
		view:   f64.Aff3{scale, 0, s.Origin.X, 0, scale, s.Origin.Y},
		reach:  2 * math.Hypot(float64(config.Width), float64(config.Height)) / scale,
	}
	p.Clear()
	return p
}

// Clear fills the canvas with the background color
func (p *Painter) Clear() {
	p.dc.SetColor(p.config.Background)
	p.dc.Clear()
}

// toPixel applies the view transform
func (p *Painter) toPixel(pt core.Point) (float64, float64) {
	v := p.view
	return v[0]*pt.X + v[1]*pt.Y + v[2], v[3]*pt.X + v[4]*pt.Y + v[5]
}

func (p *Painter) line(a, b core.Point, c color.RGBA, alpha float64) {
	x1, y1 := p.toPixel(a)
	x2, y2 := p.toPixel(b)
	p.dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(255*clamp01(alpha)))
	p.dc.SetLineWidth(p.config.LineWidth)
	p.dc.DrawLine(x1, y1, x2, y2)
	p.dc.Stroke()
}

// ray draws from start through through, long enough to leave the canvas
func (p *Painter) ray(start, through core.Point, c color.RGBA, alpha float64) {
	dir := through.Subtract(start)
	if dir.LengthSquared() == 0 {
		return
	}
	p.line(start, start.Add(dir.Normalize().Multiply(p.reach)), c, alpha)
}

func (p *Painter) dot(pt core.Point, c color.RGBA, alpha float64) {
	x, y := p.toPixel(pt)
	p.dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(255*clamp01(alpha)))
	p.dc.DrawCircle(x, y, p.config.PointRadius)
	p.dc.Fill()
}

// PaintSlice draws everything one slice produced, following the scene mode
func (p *Painter) PaintSlice(r SliceResult) {
	p.paint(r.Segments, r.Images, r.Sights)
}

// PaintTrace draws a whole pass and the scene objects on top
func (p *Painter) PaintTrace(t Trace) {
	p.paint(t.Segments, t.Images, t.Sights)
	if p.config.ShowObjects {
		p.PaintObjects()
	}
}

func (p *Painter) paint(segments []integrator.Segment, images []observer.ImagePoint, sights []observer.Sight) {
	mode := p.scene.Mode
	for _, seg := range segments {
		p.paintSegment(seg, mode)
	}
	for _, img := range images {
		switch img.Kind {
		case observer.Virtual:
			p.dot(img.Point, extensionColor, img.Brightness)
		case observer.Real:
			p.dot(img.Point, rayColor, img.Brightness)
		default:
			p.dot(img.Point, forwardColor, img.Brightness)
		}
	}
	for _, s := range sights {
		if s.Infinite {
			p.ray(s.From, s.To, sightColor, 1)
		} else {
			p.line(s.From, s.To, sightColor, 1)
		}
	}
}

func (p *Painter) paintSegment(seg integrator.Segment, mode observer.Mode) {
	if mode != observer.ModeLight && mode != observer.ModeExtendedLight {
		return
	}
	if seg.Infinite {
		p.ray(seg.Start, seg.Start.Add(seg.Direction), rayColor, seg.Brightness)
	} else {
		p.line(seg.Start, seg.End, rayColor, seg.Brightness)
	}

	if mode != observer.ModeExtendedLight || seg.IsNew {
		return
	}
	// Backward extension from the start, and forward past the hit point
	p.ray(seg.Start, seg.Start.Subtract(seg.Direction), extensionColor, seg.Brightness)
	if !seg.Infinite {
		p.ray(seg.End, seg.End.Add(seg.End.Subtract(seg.Start)), forwardColor, seg.Brightness)
	}
}

// PaintObjects draws the optical elements, sources and observer
func (p *Painter) PaintObjects() {
	for _, obj := range p.scene.Objects {
		p.paintObject(obj)
	}
	for _, src := range p.scene.Sources {
		switch s := src.(type) {
		case *lights.Laser:
			p.dot(s.P1, sourceColor, 1)
		case *lights.PointSource:
			p.dot(s.Position, sourceColor, 1)
		case *lights.Beam:
			p.line(s.P1, s.P2, sourceColor, 1)
		}
	}
	if p.scene.Mode == observer.ModeObserver && p.scene.HasObserver {
		x, y := p.toPixel(p.scene.Observer.Center)
		p.dc.SetRGBA255(0, 0, 255, 160)
		p.dc.DrawCircle(x, y, p.scene.Observer.Radius()*p.view[0])
		p.dc.Fill()
	}
}

func (p *Painter) paintObject(obj geometry.Object) {
	switch o := obj.(type) {
	case *geometry.PlaneMirror:
		p.line(o.P1, o.P2, mirrorColor, 1)
	case *geometry.IdealMirror:
		p.line(o.P1, o.P2, mirrorColor, 1)
	case *geometry.ThinLens:
		p.line(o.P1, o.P2, glassColor, 1)
	case *geometry.Absorber:
		p.line(o.P1, o.P2, absorberColor, 1)
	case *geometry.HalfPlane:
		p.ray(o.P1, o.P2, glassColor, 1)
		p.ray(o.P2, o.P1, glassColor, 1)
	case *geometry.ArcMirror:
		if o.NotDone {
			return
		}
		if center := o.Center(); center.Ok() {
			p.arc(o.P1, o.P2, o.P3, center.Point, mirrorColor)
		} else {
			p.line(o.P1, o.P2, mirrorColor, 1)
		}
	case *geometry.CircleLens:
		x, y := p.toPixel(o.Center)
		p.dc.SetColor(glassColor)
		p.dc.SetLineWidth(p.config.LineWidth)
		p.dc.DrawCircle(x, y, o.Circle().Radius()*p.view[0])
		p.dc.Stroke()
	case *geometry.Refractor:
		for _, s := range o.Sections() {
			if s.Arc {
				p.arc(s.P1, s.P2, s.P3, s.Center, glassColor)
			} else {
				p.line(s.P1, s.P2, glassColor, 1)
			}
		}
	}
}

// arc strokes the circular arc from a to b that passes through via
func (p *Painter) arc(a, b, via, center core.Point, c color.RGBA) {
	angle := func(pt core.Point) float64 {
		d := pt.Subtract(center)
		return math.Atan2(d.Y, d.X)
	}
	a1, a2, a3 := angle(a), angle(b), angle(via)
	sweep := ccw(a1, a2)
	if ccw(a1, a3) > sweep {
		sweep -= 2 * math.Pi
	}

	x, y := p.toPixel(center)
	p.dc.SetColor(c)
	p.dc.SetLineWidth(p.config.LineWidth)
	p.dc.DrawArc(x, y, a.Subtract(center).Length()*p.view[0], a1, a1+sweep)
	p.dc.Stroke()
}

// ccw returns the counter-clockwise angle from a1 to a2 in [0, 2π)
func ccw(a1, a2 float64) float64 {
	d := math.Mod(a2-a1, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

// Image returns the painted canvas
func (p *Painter) Image() image.Image {
	return p.dc.Image()
}

// EncodePNG writes the canvas as PNG
func (p *Painter) EncodePNG(w io.Writer) error {
	return p.dc.EncodePNG(w)
}

// SavePNG writes the canvas to a PNG file
func (p *Painter) SavePNG(filename string) error {
	return p.dc.SavePNG(filename)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
