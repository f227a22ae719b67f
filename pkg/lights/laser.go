package lights

import "github.com/df07/go-ray-optics/pkg/core"

// Laser emits a single full-brightness ray from P1 through P2
type Laser struct {
	P1, P2 core.Point
}

// NewLaser creates a laser
func NewLaser(p1, p2 core.Point) *Laser {
	return &Laser{P1: p1, P2: p2}
}

func (l *Laser) Kind() Kind { return KindLaser }

// Emit returns the laser ray; a laser with coincident points emits nothing
func (l *Laser) Emit(opts EmitOptions) []*core.LightRay {
	if l.P1 == l.P2 {
		return nil
	}
	ray := core.NewLightRay(l.P1, l.P2, 1)
	ray.Gap = true
	return []*core.LightRay{ray}
}
