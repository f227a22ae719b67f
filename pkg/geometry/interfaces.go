package geometry

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
)

// Kind names an optical element type. Values match the scene file "type" field.
type Kind string

const (
	KindMirror      Kind = "mirror"
	KindArcMirror   Kind = "arcmirror"
	KindIdealMirror Kind = "idealmirror"
	KindLens        Kind = "lens"
	KindHalfPlane   Kind = "halfplane"
	KindCircleLens  Kind = "circlelens"
	KindRefractor   Kind = "refractor"
	KindBlackline   Kind = "blackline"
)

// Outcome is the terminal state of a ray after resolving one hit
type Outcome int

const (
	Escaped Outcome = iota
	Reflected
	Refracted
	Absorbed
)

func (o Outcome) String() string {
	switch o {
	case Reflected:
		return "reflected"
	case Refracted:
		return "refracted"
	case Absorbed:
		return "absorbed"
	default:
		return "escaped"
	}
}

// Hit is a resolved nearest intersection handed to the object that was hit
type Hit struct {
	Ray    *core.LightRay
	Index  int        // Stable index of the ray in the queue for this pass
	Point  core.Point // Intersection point
	Merged []Medium   // Coincident boundaries merged into this one
}

// Response is what an object did with a ray
type Response struct {
	Outcome Outcome
	Spawned []*core.LightRay // New rays to enqueue (partial reflections)
}

// Object is an optical element rays can interact with
type Object interface {
	Kind() Kind
	// Intersect returns the nearest point where the ray meets the object, strictly
	// further than the minimum shot length from the ray origin
	Intersect(ctx *core.Context, ray *core.LightRay) (core.Point, bool)
	// Classify reports how the ray crosses the object at its nearest hit
	Classify(ctx *core.Context, ray *core.LightRay) material.Classification
	// Respond updates the ray in place at the hit and returns any spawned rays
	Respond(ctx *core.Context, hit Hit) Response
	// SupportsMerging reports whether coincident boundaries of this object compose
	SupportsMerging() bool
}

// Medium is a merge-capable refracting object
type Medium interface {
	Object
	RefractiveIndex() float64
}

func absorb(ray *core.LightRay) Response {
	ray.Absorb()
	return Response{Outcome: Absorbed}
}

// refractThrough applies the solver using the object's own crossing plus every merged boundary
func refractThrough(ctx *core.Context, hit Hit, medium material.Dielectric, c material.Classification, point, normal core.Point) Response {
	n1, ok := medium.RelativeIndex(c)
	if !ok {
		return absorb(hit.Ray)
	}

	// Merged boundaries are classified against the incoming ray before it is bent
	crossings := make([]material.Crossing, 0, len(hit.Merged))
	for _, m := range hit.Merged {
		crossings = append(crossings, material.Crossing{
			Classification: m.Classify(ctx, hit.Ray),
			Index:          m.RefractiveIndex(),
		})
	}
	if n1, ok = material.ComposeIndex(n1, crossings); !ok {
		return absorb(hit.Ray)
	}

	result := material.Refract(ctx, hit.Ray, hit.Index, point, normal, n1)
	response := Response{Outcome: Refracted}
	if result.TotalInternal {
		response.Outcome = Reflected
	}
	if result.Reflected != nil {
		response.Spawned = append(response.Spawned, result.Reflected)
	}
	return response
}
