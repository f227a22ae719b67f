package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// ThinLens is an ideal lens of focal length FocalLength (negative for diverging)
type ThinLens struct {
	linear
	FocalLength float64
}

// NewThinLens creates an ideal lens between p1 and p2
func NewThinLens(p1, p2 core.Point, focalLength float64) *ThinLens {
	return &ThinLens{linear: linear{P1: p1, P2: p2}, FocalLength: focalLength}
}

func (l *ThinLens) Kind() Kind            { return KindLens }
func (l *ThinLens) SupportsMerging() bool { return false }

func (l *ThinLens) Intersect(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	return l.hitSegment(ctx, ray)
}

func (l *ThinLens) Classify(ctx *core.Context, ray *core.LightRay) material.Classification {
	return l.classify(ray)
}

// Respond bends the ray with the two-focal-point construction
func (l *ThinLens) Respond(ctx *core.Context, hit Hit) Response {
	if !deflect(l.Segment(), l.FocalLength, hit.Ray, hit.Point) {
		return absorb(hit.Ray)
	}
	return Response{Outcome: Refracted}
}

// deflect maps the ray through an ideal lens on seg. Points on the 2F line on the
// incoming side are imaged through the lens center onto the 2F line on the far side.
// Returns false when the construction degenerates.
func deflect(seg core.Segment, focalLength float64, ray *core.LightRay, point core.Point) bool {
	length := seg.Direction().Length()
	if length == 0 {
		return false
	}
	axis := seg.Direction().Perpendicular().Multiply(-1 / length)
	mid := core.Midpoint(seg)

	twoF1 := mid.Add(axis.Multiply(2 * focalLength))
	twoF2 := mid.Subtract(axis.Multiply(2 * focalLength))
	near, far := core.ParallelThrough(seg.Line(), twoF1), core.ParallelThrough(seg.Line(), twoF2)
	if ray.P1.DistanceSquared(twoF1) >= ray.P1.DistanceSquared(twoF2) {
		near, far = far, near
	}

	rayLine := ray.Ray().Line()
	var target core.Intersection
	if focalLength > 0 {
		a := core.IntersectLines(near, rayLine)
		if !a.Ok() {
			return false
		}
		target = core.IntersectLines(far, core.NewLine(mid, a.Point))
	} else {
		b := core.IntersectLines(far, rayLine)
		if !b.Ok() {
			return false
		}
		c := core.IntersectLines(near, core.NewLine(mid, b.Point))
		if !c.Ok() {
			return false
		}
		target = core.IntersectLines(far, core.NewLine(point, c.Point))
	}
	if !target.Ok() || target.Point == point {
		return false
	}

	ray.P1 = point
	ray.P2 = target.Point
	return true
}
