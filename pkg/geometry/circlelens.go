package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// CircleLens is a disc of refracting medium centered at Center with Rim on its boundary
type CircleLens struct {
	Center, Rim core.Point
	Medium      material.Dielectric
}

// NewCircleLens creates a circular refractor
func NewCircleLens(center, rim core.Point, refractiveIndex float64) *CircleLens {
	return &CircleLens{Center: center, Rim: rim, Medium: material.NewDielectric(refractiveIndex)}
}

func (c *CircleLens) Kind() Kind               { return KindCircleLens }
func (c *CircleLens) SupportsMerging() bool    { return true }
func (c *CircleLens) RefractiveIndex() float64 { return c.Medium.RefractiveIndex }

// Circle returns the boundary circle
func (c *CircleLens) Circle() core.Circle {
	return core.NewCircleThrough(c.Center, c.Rim)
}

// Intersect returns the nearer forward root
func (c *CircleLens) Intersect(ctx *core.Context, ray *core.LightRay) (core.Point, bool) {
	if !c.Medium.Valid() {
		return core.Point{}, false
	}
	var best core.Point
	found := false
	for _, root := range core.IntersectLineCircle(ray.Ray().Line(), c.Circle()) {
		if !root.Ok() {
			continue
		}
		p, ok := forward(ctx, ray, root.Point)
		if !ok {
			continue
		}
		if !found || p.DistanceSquared(ray.P1) < best.DistanceSquared(ray.P1) {
			best, found = p, true
		}
	}
	return best, found
}

// Classify intersects the ray and classifies the crossing at that point
func (c *CircleLens) Classify(ctx *core.Context, ray *core.LightRay) material.Classification {
	p, ok := c.Intersect(ctx, ray)
	if !ok {
		return material.Tangential
	}
	classification, _ := c.crossing(ray, p)
	return classification
}

// crossing decides inside/outside from the midpoint between the ray origin and the hit
func (c *CircleLens) crossing(ray *core.LightRay, p core.Point) (material.Classification, core.Point) {
	mid := core.Midpoint(core.NewSegment(ray.P1, p))
	d := c.Circle().RadiusSquared() - c.Center.DistanceSquared(mid)
	switch {
	case d > 0:
		return material.Exiting, c.Center.Subtract(p)
	case d < 0:
		return material.Entering, p.Subtract(c.Center)
	default:
		return material.Tangential, core.Point{}
	}
}

func (c *CircleLens) Respond(ctx *core.Context, hit Hit) Response {
	classification, normal := c.crossing(hit.Ray, hit.Point)
	return refractThrough(ctx, hit, c.Medium, classification, hit.Point, normal)
}
