package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// PlaneMirror is a flat two-sided mirror segment
type PlaneMirror struct {
	linear
}

// NewPlaneMirror creates a mirror between p1 and p2
func NewPlaneMirror(p1, p2 core.Point) *PlaneMirror {
	return &PlaneMirror{linear{P1: p1, P2: p2}}
}

func (m *PlaneMirror) Kind() Kind            { return KindMirror }
func (m *PlaneMirror) SupportsMerging() bool { return false }

// Intersect tests the mirror segment
func (m *PlaneMirror) Intersect(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	return m.hitSegment(ctx, ray)
}

// Classify reports the side the ray arrives from
func (m *PlaneMirror) Classify(ctx *core.Context, ray *core.LightRay) material.Classification {
	return m.classify(ray)
}

// Respond reflects the ray about the mirror line
func (m *PlaneMirror) Respond(ctx *core.Context, hit Hit) Response {
	reflectAcross(hit.Ray, hit.Point, m.P1, m.P2)
	return Response{Outcome: Reflected}
}
