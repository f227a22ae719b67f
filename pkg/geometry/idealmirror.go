package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// IdealMirror is a curved mirror of focal length FocalLength, modelled as an
// ideal lens combined with a plane mirror on the same segment
type IdealMirror struct {
	linear
	FocalLength float64
}

// NewIdealMirror creates an ideal curved mirror between p1 and p2
func NewIdealMirror(p1, p2 core.Point, focalLength float64) *IdealMirror {
	return &IdealMirror{linear: linear{P1: p1, P2: p2}, FocalLength: focalLength}
}

func (m *IdealMirror) Kind() Kind            { return KindIdealMirror }
func (m *IdealMirror) SupportsMerging() bool { return false }

func (m *IdealMirror) Intersect(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	return m.hitSegment(ctx, ray)
}

func (m *IdealMirror) Classify(ctx *core.Context, ray *core.LightRay) material.Classification {
	return m.classify(ray)
}

// Respond applies the lens mapping, pulls the ray back through the hit point,
// then reflects it about the mirror line
func (m *IdealMirror) Respond(ctx *core.Context, hit Hit) Response {
	if !deflect(m.Segment(), m.FocalLength, hit.Ray, hit.Point) {
		return absorb(hit.Ray)
	}
	hit.Ray.P1 = hit.Ray.P1.Multiply(2).Subtract(hit.Ray.P2)
	reflectAcross(hit.Ray, hit.Point, m.P1, m.P2)
	return Response{Outcome: Reflected}
}
