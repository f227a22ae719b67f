package integrator

import (
	"math"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/geometry"
)

// Segment is the record of one processed ray: the piece of path from its origin
// to the object it hit, or an infinite ray when it escaped
type Segment struct {
	Start      core.Point
	End        core.Point // Hit point; unset when Infinite
	Direction  core.Point // P2 - P1 of the ray before it was processed
	Infinite   bool
	Brightness float64
	Gap        bool
	IsNew      bool
	Outcome    geometry.Outcome
	Object     int // Index of the hit object, -1 when escaped
	Index      int // Stable index of the ray in the queue
	Sweep      int
}

// Ray returns the segment's supporting ray
func (s Segment) Ray() core.Ray {
	return core.NewRay(s.Start, s.Start.Add(s.Direction))
}

// LengthSquared returns the squared length, +Inf for escaped rays
func (s Segment) LengthSquared() float64 {
	if s.Infinite {
		return math.Inf(1)
	}
	return s.Start.DistanceSquared(s.End)
}

// Integrator resolves a single ray against the scene
type Integrator interface {
	// Trace processes one ray, updating it in place. previous is the object hit
	// by the ray traced just before it in the same sweep, -1 for none. It returns
	// the recorded segment and any spawned rays.
	Trace(ray *core.LightRay, index, previous int) (Segment, []*core.LightRay)
}
