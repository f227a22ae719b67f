package integrator

import (
	"math"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/geometry"
)

// Candidate is the nearest hit found for a ray, with the boundaries merged into it
type Candidate struct {
	Object geometry.Object
	Index  int // Position of Object in the scene list, -1 when nothing was hit
	Point  core.Point
	Merged []geometry.Medium
}

// Found reports whether anything was hit
func (c Candidate) Found() bool {
	return c.Object != nil
}

// OpticsIntegrator resolves rays against an ordered list of optical objects
type OpticsIntegrator struct {
	ctx     *core.Context
	objects []geometry.Object
}

// NewOpticsIntegrator creates an integrator over objects; list order breaks ties
func NewOpticsIntegrator(ctx *core.Context, objects []geometry.Object) *OpticsIntegrator {
	return &OpticsIntegrator{ctx: ctx, objects: objects}
}

// NearestHit scans every object in list order. Hits closer than the epsilon to
// the current best are merged when either object supports merging:
//   - both merge: the new object joins the merged list
//   - only the current best merges: the new object replaces it (a blocker on a refracting edge wins)
//   - only the new object merges: it is ignored
//
// Otherwise a strictly nearer hit beyond the epsilon replaces the best, so the
// first object in list order wins exact ties.
func (oi *OpticsIntegrator) NearestHit(ray *core.LightRay) Candidate {
	best := Candidate{Index: -1}
	bestLensq := math.Inf(1)

	for i, obj := range oi.objects {
		p, ok := obj.Intersect(oi.ctx, ray)
		if !ok {
			continue
		}
		lensq := p.DistanceSquared(ray.P1)

		if best.Found() && oi.ctx.Coincident(p, best.Point) && (best.Object.SupportsMerging() || obj.SupportsMerging()) {
			if best.Object.SupportsMerging() {
				if medium, ok := obj.(geometry.Medium); ok && obj.SupportsMerging() {
					best.Merged = append(best.Merged, medium)
				} else {
					best = Candidate{Object: obj, Index: i, Point: p}
					bestLensq = lensq
				}
			}
			continue
		}

		if lensq < bestLensq && lensq > oi.ctx.MinShotLengthSquared() {
			best = Candidate{Object: obj, Index: i, Point: p}
			bestLensq = lensq
		}
	}
	return best
}

// Trace resolves the ray's nearest hit and lets the hit object respond. The
// segment records the ray as it arrived. Before the response, the ray is marked
// as starting a new bundle when it hits a different object than the previously
// traced ray, and is no longer new; rays spawned by the response inherit this.
func (oi *OpticsIntegrator) Trace(ray *core.LightRay, index, previous int) (Segment, []*core.LightRay) {
	segment := Segment{
		Start:      ray.P1,
		Direction:  ray.Direction(),
		Brightness: ray.Brightness,
		Gap:        ray.Gap,
		IsNew:      ray.IsNew,
		Object:     -1,
		Index:      index,
	}

	hit := oi.NearestHit(ray)
	if hit.Index != previous {
		ray.Gap = true
	}
	ray.IsNew = false

	if !hit.Found() {
		segment.Infinite = true
		segment.Outcome = geometry.Escaped
		return segment, nil
	}

	segment.End = hit.Point
	segment.Object = hit.Index

	response := hit.Object.Respond(oi.ctx, geometry.Hit{
		Ray:    ray,
		Index:  index,
		Point:  hit.Point,
		Merged: hit.Merged,
	})
	segment.Outcome = response.Outcome
	return segment, response.Spawned
}
