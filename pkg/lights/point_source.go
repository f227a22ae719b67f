package lights

import (
	"math"

	"github.com/df07/go-ray-optics/pkg/core"
)

const (
	// RaysPerDensity is the number of point source rays per unit of density
	RaysPerDensity = 500
	// fanEnd stops the fan just short of a full turn so the first angle is not repeated
	fanEnd = 2*math.Pi - 1e-5
)

// PointSource radiates uniformly in every direction from Position
type PointSource struct {
	Position   core.Point
	Brightness float64
}

// NewPointSource creates a point source
func NewPointSource(position core.Point, brightness float64) *PointSource {
	return &PointSource{Position: position, Brightness: brightness}
}

func (p *PointSource) Kind() Kind { return KindRadiant }

// AngularStep returns the angle between consecutive rays, or 0 when the density is too low
func AngularStep(density float64) float64 {
	n := int(density * RaysPerDensity)
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi / float64(n)
}

// Emit fans rays around the source. Angles are measured from +y toward +x.
func (p *PointSource) Emit(opts EmitOptions) []*core.LightRay {
	step := AngularStep(opts.Density)
	if step == 0 {
		return nil
	}

	start := 0.0
	if opts.Observer {
		start = -2*step + 1e-6
	}
	brightness := fanBrightness(p.Brightness, opts.Density)

	var rays []*core.LightRay
	for k := 0; ; k++ {
		angle := start + float64(k)*step
		if angle >= fanEnd {
			break
		}
		dir := core.NewPoint(math.Sin(angle), math.Cos(angle))
		ray := core.NewLightRay(p.Position, p.Position.Add(dir), brightness)
		ray.Gap = k == 0
		rays = append(rays, ray)
	}
	return rays
}
