package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// ArcMirror is a circular-arc mirror from P1 to P2 passing through P3.
// If the three points are collinear it behaves as a plane mirror P1-P2.
type ArcMirror struct {
	P1, P2, P3 core.Point
	NotDone    bool // still being constructed; inert
}

// NewArcMirror creates a finished arc mirror
func NewArcMirror(p1, p2, p3 core.Point) *ArcMirror {
	return &ArcMirror{P1: p1, P2: p2, P3: p3}
}

func (a *ArcMirror) Kind() Kind            { return KindArcMirror }
func (a *ArcMirror) SupportsMerging() bool { return false }

// Center returns the center of the arc's circle
func (a *ArcMirror) Center() core.Intersection {
	return core.Circumcenter(a.P1, a.P2, a.P3)
}

func (a *ArcMirror) chord() linear {
	return linear{P1: a.P1, P2: a.P2}
}

// Intersect returns the nearest root of the circle lying on the arc
func (a *ArcMirror) Intersect(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	if a.NotDone {
		return core.Point{}, false
	}
	center := a.Center()
	if !center.Ok() {
		return a.chord().hitSegment(ctx, ray)
	}
	return nearestArcRoot(ctx, ray, a.P1, a.P2, a.P3, center.Point)
}

// Classify reports the side of the chord the ray arrives from
func (a *ArcMirror) Classify(ctx *core.Context, ray *core.LightRay) material.Classification {
	return a.chord().classify(ray)
}

// Respond reflects the ray about the radius through the hit point
func (a *ArcMirror) Respond(ctx *core.Context, hit Hit) Response {
	center := a.Center()
	if !center.Ok() {
		reflectAcross(hit.Ray, hit.Point, a.P1, a.P2)
		return Response{Outcome: Reflected}
	}

	r := hit.Ray.P1.Subtract(hit.Point)
	c := center.Point.Subtract(hit.Point)
	hit.Ray.P1 = hit.Point
	hit.Ray.P2 = hit.Point.Subtract(r.Multiply(c.LengthSquared())).Add(c.Multiply(2 * r.Dot(c)))
	return Response{Outcome: Reflected}
}

// onArc reports whether a root of the circle through p1, p2, p3 lies on the arc
// from p1 to p2 containing p3: the chord must not separate it from p3
func onArc(root, p1, p2, p3 core.Point) bool {
	cut := core.IntersectLines(core.NewLine(p1, p2), core.NewLine(p3, root))
	return !cut.Ok() || !core.OnSegment(cut.Point, core.NewSegment(p3, root))
}

// arcRoots returns both circle roots with their validity for the arc
func arcRoots(ctx *core.Context, ray core.Ray, p1, p2, p3, center core.Point) (roots [2]core.Point, valid [2]bool, onRay [2]bool) {
	hits := core.IntersectLineCircle(ray.Line(), core.NewCircleThrough(center, p2))
	for i, h := range hits {
		if !h.Ok() {
			continue
		}
		roots[i] = h.Point
		onRay[i] = core.OnRay(h.Point, ray)
		valid[i] = onRay[i] && onArc(h.Point, p1, p2, p3) && h.Point.DistanceSquared(ray.P1) > ctx.MinShotLengthSquared()
	}
	return roots, valid, onRay
}

// nearestArcRoot picks the closer valid root
func nearestArcRoot(ctx *core.Context, ray *core.LightRay, p1, p2, p3, center core.Point) (core.Point, bool) {
	roots, valid, _ := arcRoots(ctx, ray.Ray(), p1, p2, p3, center)
	switch {
	case valid[0] && valid[1]:
		if roots[0].DistanceSquared(ray.P1) < roots[1].DistanceSquared(ray.P1) {
			return roots[0], true
		}
		return roots[1], true
	case valid[0]:
		return roots[0], true
	case valid[1]:
		return roots[1], true
	}
	return core.Point{}, false
}
