package material

import (
	"testing"

	"github.com/df07/go-ray-optics/pkg/core"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestComposeIndex(t *testing.T) {
	tests := []struct {
		name      string
		n1        float64
		crossings []Crossing
		expected  float64
		ok        bool
	}{
		{"no merged boundaries", 1.5, nil, 1.5, true},
		{"two exiting", 1.2, []Crossing{{Exiting, 1.3}}, 1.56, true},
		{"exit then enter", 1.5, []Crossing{{Entering, 1.5}}, 1, true},
		{"neutral ignored", 2, []Crossing{{Neutral, 9}}, 2, true},
		{"tangential absorbs", 1.5, []Crossing{{Exiting, 1.1}, {Tangential, 1.2}}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n1, ok := ComposeIndex(tt.n1, tt.crossings)
			if ok != tt.ok {
				t.Fatalf("Expected ok %v, got %v", tt.ok, ok)
			}
			if ok && !scalar.EqualWithinAbs(n1, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, n1)
			}
		})
	}
}

func TestComposeIndex_MatchesSingleBoundary(t *testing.T) {
	ctx := core.NewContext(nil)

	// Two coincident exiting boundaries behave like one boundary with the product index
	merged, ok := ComposeIndex(1.2, []Crossing{{Exiting, 1.3}})
	if !ok {
		t.Fatal("Expected merge to succeed")
	}

	a := core.NewLightRay(core.NewPoint(-0.3, -1), core.NewPoint(0, 0), 1)
	b := core.NewLightRay(core.NewPoint(-0.3, -1), core.NewPoint(0, 0), 1)
	ra := Refract(ctx, a, 0, core.NewPoint(0, 0), core.NewPoint(0, -1), merged)
	rb := Refract(ctx, b, 0, core.NewPoint(0, 0), core.NewPoint(0, -1), 1.2*1.3)

	if ra.TotalInternal != rb.TotalInternal {
		t.Fatalf("Expected identical TIR outcome, got %v and %v", ra.TotalInternal, rb.TotalInternal)
	}
	if !a.P2.Equals(b.P2, 1e-12) || !scalar.EqualWithinAbs(a.Brightness, b.Brightness, 1e-12) {
		t.Errorf("Expected identical refraction, got %v/%v and %v/%v", a.P2, a.Brightness, b.P2, b.Brightness)
	}
}
