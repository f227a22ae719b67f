package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// Absorber is a segment that stops every ray reaching it
type Absorber struct {
	linear
}

// NewAbsorber creates an absorbing segment
func NewAbsorber(p1, p2 core.Point) *Absorber {
	return &Absorber{linear{P1: p1, P2: p2}}
}

func (a *Absorber) Kind() Kind            { return KindBlackline }
func (a *Absorber) SupportsMerging() bool { return false }

func (a *Absorber) Intersect(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	return a.hitSegment(ctx, ray)
}

func (a *Absorber) Classify(ctx *core.Context, ray *core.LightRay) material.Classification {
	return a.classify(ray)
}

func (a *Absorber) Respond(ctx *core.Context, hit Hit) Response {
	return absorb(hit.Ray)
}
