package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// PathPoint is a vertex of a free-form boundary. Arc points are the interior
// control point of a circular arc between their neighbours.
type PathPoint struct {
	core.Point
	Arc bool
}

// Refractor is a closed free-form boundary made of straight and circular-arc sections.
// The boundary must be simple; self-intersecting paths give undefined classification.
type Refractor struct {
	Path    []PathPoint
	NotDone bool // still being constructed; inert
	Medium  material.Dielectric
}

// NewRefractor creates a finished free-form refractor
func NewRefractor(path []PathPoint, refractiveIndex float64) *Refractor {
	return &Refractor{Path: path, Medium: material.NewDielectric(refractiveIndex)}
}

func (r *Refractor) Kind() Kind               { return KindRefractor }
func (r *Refractor) SupportsMerging() bool    { return true }
func (r *Refractor) RefractiveIndex() float64 { return r.Medium.RefractiveIndex }

func (r *Refractor) inert() bool {
	return r.NotDone || !r.Medium.Valid() || len(r.Path) < 2
}

// Section is one piece of the boundary. Arcs run from P1 to P2 through P3.
type Section struct {
	P1, P2, P3 core.Point
	Center     core.Point
	Arc        bool
}

// Sections expands the path into its boundary pieces in iteration order
func (r *Refractor) Sections() []Section {
	n := len(r.Path)
	sections := make([]Section, 0, n)
	for i := 0; i < n; i++ {
		cur, next, after := r.Path[i], r.Path[(i+1)%n], r.Path[(i+2)%n]
		switch {
		case next.Arc && !cur.Arc:
			center := core.Circumcenter(cur.Point, after.Point, next.Point)
			if !center.Ok() {
				sections = append(sections, Section{P1: cur.Point, P2: after.Point})
				continue
			}
			sections = append(sections, Section{P1: cur.Point, P2: after.Point, P3: next.Point, Center: center.Point, Arc: true})
		case !next.Arc && !cur.Arc:
			sections = append(sections, Section{P1: cur.Point, P2: next.Point})
		}
	}
	return sections
}

// sectionHit is the nearest hit of a ray on one section
type sectionHit struct {
	point    core.Point
	lensq    float64
	normal   core.Point
	nearEdge bool
}

func (s Section) hit(ctx *core.Context, ray *core.LightRay) (sectionHit, bool) {
	var h sectionHit
	if s.Arc {
		roots, valid, onRay := arcRoots(ctx, ray.Ray(), s.P1, s.P2, s.P3, s.Center)
		lensq := [2]float64{roots[0].DistanceSquared(ray.P1), roots[1].DistanceSquared(ray.P1)}
		k := -1
		switch {
		case valid[0] && (!valid[1] || lensq[0] < lensq[1]):
			k = 0
		case valid[1] && (!valid[0] || lensq[1] < lensq[0]):
			k = 1
		}
		if k < 0 {
			return h, false
		}
		other := 1 - k
		h.point, h.lensq = roots[k], lensq[k]
		if onRay[other] && lensq[k] < lensq[other] {
			// Ray arrives from outside the arc's circle
			h.normal = h.point.Subtract(s.Center)
		} else {
			h.normal = s.Center.Subtract(h.point)
		}
	} else {
		l := linear{P1: s.P1, P2: s.P2}
		p, ok := l.hitSegment(ctx, ray)
		if !ok {
			return h, false
		}
		h.point, h.lensq = p, p.DistanceSquared(ray.P1)
		h.normal = l.normalFacing(ray)
	}
	h.nearEdge = ctx.Coincident(h.point, s.P1) || ctx.Coincident(h.point, s.P2)
	return h, true
}

// crossings counts how many times the probe ray crosses the section
func (s Section) crossings(ctx *core.Context, probe *core.LightRay) int {
	if s.Arc {
		_, valid, _ := arcRoots(ctx, probe.Ray(), s.P1, s.P2, s.P3, s.Center)
		count := 0
		for _, v := range valid {
			if v {
				count++
			}
		}
		return count
	}
	if _, ok := (linear{P1: s.P1, P2: s.P2}).hitSegment(ctx, probe); ok {
		return 1
	}
	return 0
}

// Intersect returns the nearest hit over all sections; the first section wins ties
func (r *Refractor) Intersect(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	if r.inert() {
		return core.Point{}, false
	}
	var best sectionHit
	found := false
	for _, s := range r.Sections() {
		if h, ok := s.hit(ctx, ray); ok && (!found || h.lensq < best.lensq) {
			best, found = h, true
		}
	}
	return best.point, found
}

// shotData is the nearest hit together with its normal and crossing type
type shotData struct {
	point          core.Point
	normal         core.Point
	classification material.Classification
}

func (r *Refractor) shot(ctx *core.Context, ray *core.LightRay) (shotData, bool) {
	jitter := ctx.Sampler.Get2D().Multiply(core.ProbeJitter)
	probe := &core.LightRay{P1: ray.P1, P2: ray.P2.Add(jitter)}

	var best sectionHit
	found := false
	multiplicity := 1
	crossings := 0
	for _, s := range r.Sections() {
		crossings += s.crossings(ctx, probe)

		h, ok := s.hit(ctx, ray)
		if !ok {
			continue
		}
		if found && ctx.Coincident(h.point, best.point) {
			// Two sections of this boundary meet at the hit
			multiplicity++
		} else if !found || h.lensq < best.lensq {
			best, found = h, true
			multiplicity = 1
		}
	}
	if !found {
		return shotData{}, false
	}

	data := shotData{point: best.point, normal: best.normal}
	switch {
	case best.nearEdge:
		data.classification = material.Tangential
	case multiplicity%2 == 0:
		data.classification = material.Neutral
	case crossings%2 == 1:
		data.classification = material.Exiting
	default:
		data.classification = material.Entering
	}
	return data, true
}

// Classify uses a jittered probe ray from the same origin: an odd number of
// boundary crossings means the origin is inside
func (r *Refractor) Classify(ctx *core.Context, ray *core.LightRay) material.Classification {
	if r.inert() {
		return material.Tangential
	}
	data, ok := r.shot(ctx, ray)
	if !ok {
		return material.Tangential
	}
	return data.classification
}

func (r *Refractor) Respond(ctx *core.Context, hit Hit) Response {
	if r.inert() {
		return absorb(hit.Ray)
	}
	data, ok := r.shot(ctx, hit.Ray)
	if !ok {
		return absorb(hit.Ray)
	}
	return refractThrough(ctx, hit, r.Medium, data.classification, data.point, data.normal)
}
