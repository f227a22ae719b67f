package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// HalfPlane is a refracting medium filling everything to the left of P1 -> P2
type HalfPlane struct {
	linear
	Medium material.Dielectric
}

// NewHalfPlane creates a half-plane refractor
func NewHalfPlane(p1, p2 core.Point, refractiveIndex float64) *HalfPlane {
	return &HalfPlane{linear: linear{P1: p1, P2: p2}, Medium: material.NewDielectric(refractiveIndex)}
}

func (h *HalfPlane) Kind() Kind               { return KindHalfPlane }
func (h *HalfPlane) SupportsMerging() bool    { return true }
func (h *HalfPlane) RefractiveIndex() float64 { return h.Medium.RefractiveIndex }

// Intersect tests the infinite boundary line
func (h *HalfPlane) Intersect(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	if !h.Medium.Valid() {
		return core.Point{}, false
	}
	return h.hitLine(ctx, ray)
}

func (h *HalfPlane) Classify(ctx *core.Context, ray *core.LightRay) material.Classification {
	return h.classify(ray)
}

func (h *HalfPlane) Respond(ctx *core.Context, hit Hit) Response {
	return refractThrough(ctx, hit, h.Medium, h.classify(hit.Ray), hit.Point, h.normalFacing(hit.Ray))
}
