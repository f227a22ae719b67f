package lights

import "github.com/df07/go-ray-optics/pkg/core"

// Kind names a light source type. Values match the scene file "type" field.
type Kind string

const (
	KindLaser    Kind = "laser"
	KindRadiant  Kind = "radiant"
	KindParallel Kind = "parallel"
)

// EmitOptions controls how densely a source fills the plane with rays
type EmitOptions struct {
	Density  float64 // Rays per unit angle or length; depends on the simulation mode
	Observer bool    // Observer mode offsets point source fans
}

// Source creates the initial rays of a trace pass
type Source interface {
	Kind() Kind
	Emit(opts EmitOptions) []*core.LightRay
}

// fanBrightness is the per-ray brightness of a source of strength p at the given density
func fanBrightness(p, density float64) float64 {
	return min(p/density, 1)
}
