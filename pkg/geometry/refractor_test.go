package geometry

import (
	"testing"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/material"
	"gonum.org/v1/gonum/floats/scalar"
)

func square(n float64) *Refractor {
	return NewRefractor([]PathPoint{
		{Point: core.NewPoint(0, 0)},
		{Point: core.NewPoint(10, 0)},
		{Point: core.NewPoint(10, 10)},
		{Point: core.NewPoint(0, 10)},
	}, n)
}

func TestHalfPlane(t *testing.T) {
	ctx := core.NewContext(nil)
	glass := NewHalfPlane(core.NewPoint(0, 0), core.NewPoint(10, 0), 1.5)

	ray := core.NewLightRay(core.NewPoint(50, -10), core.NewPoint(50, -9), 1)
	p, ok := glass.Intersect(ctx, ray)
	if !ok || !p.Equals(core.NewPoint(50, 0), 1e-12) {
		t.Fatalf("Expected hit on the infinite boundary at (50, 0), got %v (%v)", p, ok)
	}
	if c := glass.Classify(ctx, ray); c != material.Entering {
		t.Errorf("Expected entering, got %v", c)
	}

	response := glass.Respond(ctx, Hit{Ray: ray, Point: p})
	if response.Outcome != Refracted || len(response.Spawned) != 1 {
		t.Fatalf("Expected refraction with one reflection, got %+v", response)
	}
	if !scalar.EqualWithinAbs(ray.Brightness, 0.96, 1e-12) {
		t.Errorf("Expected transmitted brightness 0.96, got %v", ray.Brightness)
	}
	if !scalar.EqualWithinAbs(response.Spawned[0].Brightness, 0.04, 1e-12) {
		t.Errorf("Expected reflected brightness 0.04, got %v", response.Spawned[0].Brightness)
	}
	if dir := ray.Direction().Normalize(); !dir.Equals(core.NewPoint(0, 1), 1e-12) {
		t.Errorf("Expected undeviated transmission at normal incidence, got %v", dir)
	}

	back := core.NewLightRay(core.NewPoint(0, 5), core.NewPoint(0, 4), 1)
	if c := glass.Classify(ctx, back); c != material.Exiting {
		t.Errorf("Expected exiting, got %v", c)
	}
}

func TestHalfPlane_InvalidIndexIsInert(t *testing.T) {
	ctx := core.NewContext(nil)
	for _, n := range []float64{0, -1.5} {
		glass := NewHalfPlane(core.NewPoint(0, 0), core.NewPoint(10, 0), n)
		if _, ok := glass.Intersect(ctx, core.NewLightRay(core.NewPoint(0, -1), core.NewPoint(0, 1), 1)); ok {
			t.Errorf("Expected index %v to be inert", n)
		}
	}
}

func TestRefractors_InvalidIndexIsInert(t *testing.T) {
	ctx := core.NewContext(nil)
	square := func(n float64) *Refractor {
		return NewRefractor([]PathPoint{
			{Point: core.NewPoint(-10, -10)},
			{Point: core.NewPoint(10, -10)},
			{Point: core.NewPoint(10, 10)},
			{Point: core.NewPoint(-10, 10)},
		}, n)
	}

	tests := []struct {
		name   string
		object Object
	}{
		{"circle lens n=0", NewCircleLens(core.NewPoint(0, 0), core.NewPoint(10, 0), 0)},
		{"circle lens n=-1.5", NewCircleLens(core.NewPoint(0, 0), core.NewPoint(10, 0), -1.5)},
		{"refractor n=0", square(0)},
		{"refractor n=-1", square(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewLightRay(core.NewPoint(-20, 0), core.NewPoint(-19, 0), 1)
			if p, ok := tt.object.Intersect(ctx, ray); ok {
				t.Errorf("Expected no intersection, got %v", p)
			}
		})
	}

	// The same shapes with a physical index are hit
	ray := core.NewLightRay(core.NewPoint(-20, 0), core.NewPoint(-19, 0), 1)
	if _, ok := square(1.5).Intersect(ctx, ray); !ok {
		t.Error("Expected a refractor with n=1.5 to be hit")
	}
}

func TestCircleLens(t *testing.T) {
	ctx := core.NewContext(nil)
	lens := NewCircleLens(core.NewPoint(0, 0), core.NewPoint(10, 0), 1.5)

	ray := core.NewLightRay(core.NewPoint(-20, 0), core.NewPoint(-19, 0), 1)
	p, ok := lens.Intersect(ctx, ray)
	if !ok || !p.Equals(core.NewPoint(-10, 0), 1e-9) {
		t.Fatalf("Expected near hit at (-10, 0), got %v (%v)", p, ok)
	}
	if c := lens.Classify(ctx, ray); c != material.Entering {
		t.Errorf("Expected entering, got %v", c)
	}
	response := lens.Respond(ctx, Hit{Ray: ray, Point: p})
	if len(response.Spawned) != 1 {
		t.Fatalf("Expected one reflected ray, got %d", len(response.Spawned))
	}
	if dir := response.Spawned[0].Direction().Normalize(); !dir.Equals(core.NewPoint(-1, 0), 1e-9) {
		t.Errorf("Expected reflection back toward the source, got %v", dir)
	}

	// The transmitted ray now travels inside the disc
	p, ok = lens.Intersect(ctx, ray)
	if !ok || !p.Equals(core.NewPoint(10, 0), 1e-9) {
		t.Fatalf("Expected far hit at (10, 0), got %v (%v)", p, ok)
	}
	if c := lens.Classify(ctx, ray); c != material.Exiting {
		t.Errorf("Expected exiting, got %v", c)
	}

	miss := core.NewLightRay(core.NewPoint(-20, 20), core.NewPoint(-19, 20), 1)
	if c := lens.Classify(ctx, miss); c != material.Tangential {
		t.Errorf("Expected tangential for a miss, got %v", c)
	}
}

func TestRefractor_Classification(t *testing.T) {
	ctx := core.NewContext(core.NewSeededSampler(3))
	prism := square(1.5)

	tests := []struct {
		name     string
		ray      *core.LightRay
		hit      core.Point
		expected material.Classification
	}{
		{"from outside", core.NewLightRay(core.NewPoint(5, -5), core.NewPoint(5, -4), 1), core.NewPoint(5, 0), material.Entering},
		{"from inside", core.NewLightRay(core.NewPoint(5, 5), core.NewPoint(5, 6), 1), core.NewPoint(5, 10), material.Exiting},
		{"oblique from inside", core.NewLightRay(core.NewPoint(2, 3), core.NewPoint(3, 4), 1), core.NewPoint(9, 10), material.Exiting},
		{"at a corner", core.NewLightRay(core.NewPoint(-5, -5), core.NewPoint(-4, -4), 1), core.NewPoint(0, 0), material.Tangential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := prism.Intersect(ctx, tt.ray)
			if !ok || !p.Equals(tt.hit, 1e-9) {
				t.Fatalf("Expected hit %v, got %v (%v)", tt.hit, p, ok)
			}
			if c := prism.Classify(ctx, tt.ray); c != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestRefractor_CornerAbsorbs(t *testing.T) {
	ctx := core.NewContext(nil)
	prism := square(1.5)
	ray := core.NewLightRay(core.NewPoint(-5, -5), core.NewPoint(-4, -4), 1)

	p, _ := prism.Intersect(ctx, ray)
	if response := prism.Respond(ctx, Hit{Ray: ray, Point: p}); response.Outcome != Absorbed || ray.Exists {
		t.Errorf("Expected corner hit to absorb, got %v", response.Outcome)
	}
}

func TestRefractor_SelfOverlapIsNeutral(t *testing.T) {
	ctx := core.NewContext(nil)
	// The closing edge (5,0)->(0,0) doubles back over the first edge
	shape := NewRefractor([]PathPoint{
		{Point: core.NewPoint(0, 0)},
		{Point: core.NewPoint(10, 0)},
		{Point: core.NewPoint(10, 10)},
		{Point: core.NewPoint(5, 0)},
	}, 1.5)

	ray := core.NewLightRay(core.NewPoint(2, -5), core.NewPoint(2, -4), 1)
	if c := shape.Classify(ctx, ray); c != material.Neutral {
		t.Fatalf("Expected neutral for overlapping sections, got %v", c)
	}

	p, _ := shape.Intersect(ctx, ray)
	response := shape.Respond(ctx, Hit{Ray: ray, Point: p})
	if response.Outcome != Refracted || len(response.Spawned) != 0 {
		t.Errorf("Expected a lossless pass-through, got %+v", response)
	}
	if !scalar.EqualWithinAbs(ray.Brightness, 1, 1e-12) {
		t.Errorf("Expected full brightness, got %v", ray.Brightness)
	}
}

func TestRefractor_ArcSections(t *testing.T) {
	ctx := core.NewContext(nil)
	// Upper half disc of radius 10
	half := NewRefractor([]PathPoint{
		{Point: core.NewPoint(-10, 0)},
		{Point: core.NewPoint(0, 10), Arc: true},
		{Point: core.NewPoint(10, 0)},
	}, 1.5)

	sections := half.Sections()
	if len(sections) != 2 || !sections[0].Arc || sections[1].Arc {
		t.Fatalf("Expected one arc and one segment, got %+v", sections)
	}

	ray := core.NewLightRay(core.NewPoint(3, -5), core.NewPoint(3, -4), 1)
	p, ok := half.Intersect(ctx, ray)
	if !ok || !p.Equals(core.NewPoint(3, 0), 1e-9) {
		t.Fatalf("Expected flat side hit, got %v (%v)", p, ok)
	}
	if c := half.Classify(ctx, ray); c != material.Entering {
		t.Errorf("Expected entering, got %v", c)
	}
	half.Respond(ctx, Hit{Ray: ray, Point: p})

	p, ok = half.Intersect(ctx, ray)
	if !ok || !scalar.EqualWithinAbs(p.Length(), 10, 1e-9) || p.Y <= 0 {
		t.Fatalf("Expected hit on the arc, got %v (%v)", p, ok)
	}
	if c := half.Classify(ctx, ray); c != material.Exiting {
		t.Errorf("Expected exiting through the arc, got %v", c)
	}
}

func TestRefractor_CollinearArcIsSegment(t *testing.T) {
	flat := NewRefractor([]PathPoint{
		{Point: core.NewPoint(0, 0)},
		{Point: core.NewPoint(5, 0), Arc: true},
		{Point: core.NewPoint(10, 0)},
		{Point: core.NewPoint(5, 8)},
	}, 1.5)

	sections := flat.Sections()
	if len(sections) != 3 || sections[0].Arc {
		t.Fatalf("Expected degenerate arc as a straight section, got %+v", sections)
	}
	if sections[0].P1 != core.NewPoint(0, 0) || sections[0].P2 != core.NewPoint(10, 0) {
		t.Errorf("Expected segment (0,0)-(10,0), got %+v", sections[0])
	}
}

func TestRefractor_NotDoneIsInert(t *testing.T) {
	ctx := core.NewContext(nil)
	prism := square(1.5)
	prism.NotDone = true

	if _, ok := prism.Intersect(ctx, core.NewLightRay(core.NewPoint(5, -5), core.NewPoint(5, -4), 1)); ok {
		t.Error("Expected unfinished refractor to be inert")
	}
}
