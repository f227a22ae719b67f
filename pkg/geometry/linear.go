package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// linear is the shared shape of every element defined by two endpoints
type linear struct {
	P1, P2 core.Point
}

// Segment returns the element as a segment
func (l linear) Segment() core.Segment {
	return core.NewSegment(l.P1, l.P2)
}

// hitSegment intersects the ray with the bounded segment
func (l linear) hitSegment(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	seg := l.Segment()
	hit := core.IntersectLines(ray.Ray().Line(), seg.Line())
	if !hit.Ok() || !core.OnSegment(hit.Point, seg) {
		return core.Point{}, false
	}
	return forward(ctx, ray, hit.Point)
}

// hitLine intersects the ray with the infinite supporting line
func (l linear) hitLine(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	hit := core.IntersectLines(ray.Ray().Line(), core.NewLine(l.P1, l.P2))
	if !hit.Ok() {
		return core.Point{}, false
	}
	return forward(ctx, ray, hit.Point)
}

// classify uses the side of the element the ray comes from. The medium
// side is to the left of P1 -> P2.
func (l linear) classify(ray *core.LightRay) material.Classification {
	cross := ray.Direction().Cross(l.P2.Subtract(l.P1))
	switch {
	case cross > 0:
		return material.Exiting
	case cross < 0:
		return material.Entering
	default:
		return material.Tangential
	}
}

// normalFacing returns the normal of the line that points against the ray direction
func (l linear) normalFacing(ray *core.LightRay) core.Point {
	d := ray.Direction()
	s := l.P2.Subtract(l.P1)
	return s.Multiply(d.Dot(s)).Subtract(d.Multiply(s.LengthSquared()))
}

// forward accepts a candidate on the ray strictly beyond the minimum shot length
func forward(ctx *core.Context, ray *core.LightRay, p core.Point) (core.Point, bool) {
	if !core.OnRay(p, ray.Ray()) || p.DistanceSquared(ray.P1) <= ctx.MinShotLengthSquared() {
		return core.Point{}, false
	}
	return p, true
}

// reflectAcross mirrors the ray at point about the line through p1 and p2
func reflectAcross(ray *core.LightRay, point, p1, p2 core.Point) {
	r := ray.P1.Subtract(point)
	m := p2.Subtract(p1)
	ray.P1 = point
	ray.P2 = point.Add(core.NewPoint(
		r.X*(m.Y*m.Y-m.X*m.X)-2*r.Y*m.X*m.Y,
		r.Y*(m.X*m.X-m.Y*m.Y)-2*r.X*m.X*m.Y,
	))
}
