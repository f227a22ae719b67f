package lights

import "github.com/df07/go-ray-optics/pkg/core"

// Beam emits parallel rays from the segment P1-P2, perpendicular to it
// (the baseline direction rotated by -90 degrees)
type Beam struct {
	P1, P2     core.Point
	Brightness float64
}

// NewBeam creates a parallel beam
func NewBeam(p1, p2 core.Point, brightness float64) *Beam {
	return &Beam{P1: p1, P2: p2, Brightness: brightness}
}

func (b *Beam) Kind() Kind { return KindParallel }

// Direction returns the unnormalized direction of every ray in the beam
func (b *Beam) Direction() core.Point {
	d := b.P2.Subtract(b.P1)
	return core.NewPoint(d.Y, -d.X)
}

// Emit places rays at half-step offsets along the baseline
func (b *Beam) Emit(opts EmitOptions) []*core.LightRay {
	n := b.P2.Subtract(b.P1).Length() * opts.Density
	if n <= 0 {
		return nil
	}
	step := b.P2.Subtract(b.P1).Multiply(1 / n)
	dir := b.Direction()
	brightness := fanBrightness(b.Brightness, opts.Density)

	var rays []*core.LightRay
	for i := 0.5; i <= n; i++ {
		origin := b.P1.Add(step.Multiply(i))
		ray := core.NewLightRay(origin, origin.Add(dir), brightness)
		ray.Gap = len(rays) == 0
		rays = append(rays, ray)
	}
	return rays
}
