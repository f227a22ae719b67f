package integrator

import (
	"testing"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/geometry"
	"gonum.org/v1/gonum/floats/scalar"
)

func upward() *core.LightRay {
	return core.NewLightRay(core.NewPoint(5, -10), core.NewPoint(5, -9), 1)
}

func TestNearestHit_Nearest(t *testing.T) {
	ctx := core.NewContext(nil)
	far := geometry.NewPlaneMirror(core.NewPoint(0, 10), core.NewPoint(10, 10))
	near := geometry.NewPlaneMirror(core.NewPoint(0, 2), core.NewPoint(10, 2))
	oi := NewOpticsIntegrator(ctx, []geometry.Object{far, near})

	hit := oi.NearestHit(upward())
	if hit.Object != near || hit.Index != 1 {
		t.Errorf("Expected the nearer mirror at index 1, got index %d", hit.Index)
	}
	if !hit.Point.Equals(core.NewPoint(5, 2), 1e-12) {
		t.Errorf("Expected hit at (5, 2), got %v", hit.Point)
	}
}

func TestNearestHit_FirstObjectWinsTies(t *testing.T) {
	ctx := core.NewContext(nil)
	first := geometry.NewPlaneMirror(core.NewPoint(0, 0), core.NewPoint(10, 0))
	second := geometry.NewAbsorber(core.NewPoint(0, 0), core.NewPoint(10, 0))
	oi := NewOpticsIntegrator(ctx, []geometry.Object{first, second})

	if hit := oi.NearestHit(upward()); hit.Index != 0 {
		t.Errorf("Expected first object to win the tie, got index %d", hit.Index)
	}
}

func TestNearestHit_Merging(t *testing.T) {
	ctx := core.NewContext(nil)
	// Two glass blocks sharing the edge y = 0, plus a blocker on the same edge
	below := geometry.NewHalfPlane(core.NewPoint(10, 0), core.NewPoint(0, 0), 1.2)
	above := geometry.NewHalfPlane(core.NewPoint(0, 0), core.NewPoint(10, 0), 1.3)
	blocker := geometry.NewAbsorber(core.NewPoint(0, 0), core.NewPoint(10, 0))

	tests := []struct {
		name    string
		objects []geometry.Object
		index   int
		merged  int
	}{
		{"both merge", []geometry.Object{below, above}, 0, 1},
		{"blocker after refractor replaces it", []geometry.Object{below, blocker}, 1, 0},
		{"refractor after blocker is ignored", []geometry.Object{blocker, below}, 0, 0},
		{"blocker clears merged list", []geometry.Object{below, above, blocker}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := NewOpticsIntegrator(ctx, tt.objects).NearestHit(upward())
			if hit.Index != tt.index {
				t.Errorf("Expected object %d, got %d", tt.index, hit.Index)
			}
			if len(hit.Merged) != tt.merged {
				t.Errorf("Expected %d merged boundaries, got %d", tt.merged, len(hit.Merged))
			}
		})
	}
}

func TestTrace_MergedBoundaryActsAsSingleInterface(t *testing.T) {
	ctx := core.NewContext(nil)
	// Leaving n=1.2 (below) into n=1.3 (above) equals one boundary with relative index 1.2/1.3
	below := geometry.NewHalfPlane(core.NewPoint(10, 0), core.NewPoint(0, 0), 1.2)
	above := geometry.NewHalfPlane(core.NewPoint(0, 0), core.NewPoint(10, 0), 1.3)
	merged := NewOpticsIntegrator(ctx, []geometry.Object{below, above})

	single := geometry.NewHalfPlane(core.NewPoint(0, 0), core.NewPoint(10, 0), 1.3/1.2)
	reference := NewOpticsIntegrator(ctx, []geometry.Object{single})

	r1 := core.NewLightRay(core.NewPoint(0, -10), core.NewPoint(1, -8), 1)
	r2 := core.NewLightRay(core.NewPoint(0, -10), core.NewPoint(1, -8), 1)

	s1, spawned1 := merged.Trace(r1, 0, 0)
	s2, spawned2 := reference.Trace(r2, 0, 0)

	if s1.Outcome != geometry.Refracted || s2.Outcome != geometry.Refracted {
		t.Fatalf("Expected refraction, got %v and %v", s1.Outcome, s2.Outcome)
	}
	if !r1.Direction().Normalize().Equals(r2.Direction().Normalize(), 1e-12) {
		t.Errorf("Expected identical direction, got %v and %v", r1.Direction(), r2.Direction())
	}
	if !scalar.EqualWithinAbs(r1.Brightness, r2.Brightness, 1e-12) {
		t.Errorf("Expected identical brightness, got %v and %v", r1.Brightness, r2.Brightness)
	}
	if len(spawned1) != len(spawned2) {
		t.Errorf("Expected identical reflections, got %d and %d", len(spawned1), len(spawned2))
	}
}

func TestTrace_Escape(t *testing.T) {
	ctx := core.NewContext(nil)
	oi := NewOpticsIntegrator(ctx, []geometry.Object{
		geometry.NewPlaneMirror(core.NewPoint(100, 0), core.NewPoint(110, 0)),
	})

	ray := upward()
	segment, spawned := oi.Trace(ray, 7, -1)
	if !segment.Infinite || segment.Outcome != geometry.Escaped || segment.Object != -1 {
		t.Errorf("Expected escaped infinite segment, got %+v", segment)
	}
	if len(spawned) != 0 {
		t.Errorf("Expected no spawned rays, got %d", len(spawned))
	}
	if segment.Index != 7 || !segment.IsNew || segment.Brightness != 1 {
		t.Errorf("Expected segment to record the incoming ray, got %+v", segment)
	}
}

func TestTrace_MarksBundleStart(t *testing.T) {
	ctx := core.NewContext(nil)
	oi := NewOpticsIntegrator(ctx, []geometry.Object{
		geometry.NewAbsorber(core.NewPoint(-10, 10), core.NewPoint(10, 10)),
	})

	same := upward()
	segment, _ := oi.Trace(same, 0, 0)
	if same.Gap || same.IsNew {
		t.Errorf("Expected ray hitting the previous object to continue the bundle, got gap=%v new=%v", same.Gap, same.IsNew)
	}
	if !segment.IsNew || segment.Gap {
		t.Errorf("Expected segment to record the ray before tracing, got %+v", segment)
	}

	other := upward()
	segment, _ = oi.Trace(other, 1, -1)
	if !other.Gap {
		t.Error("Expected ray hitting a different object to start a new bundle")
	}
	if segment.Gap {
		t.Error("Expected segment to keep the incoming gap flag")
	}
}
