package lights

import (
	"math"
	"testing"

	"github.com/df07/go-ray-optics/pkg/core"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestLaser_Emit(t *testing.T) {
	laser := NewLaser(core.NewPoint(0, 0), core.NewPoint(3, 4))
	rays := laser.Emit(EmitOptions{Density: 0.1})

	if len(rays) != 1 {
		t.Fatalf("Expected 1 ray, got %d", len(rays))
	}
	ray := rays[0]
	if ray.Brightness != 1 || !ray.Gap || !ray.IsNew || !ray.Exists {
		t.Errorf("Expected a new full-brightness ray with gap, got %+v", ray)
	}
	if ray.P1 != laser.P1 || ray.P2 != laser.P2 {
		t.Errorf("Expected ray along the laser, got %v -> %v", ray.P1, ray.P2)
	}

	if rays := NewLaser(core.NewPoint(1, 1), core.NewPoint(1, 1)).Emit(EmitOptions{Density: 1}); len(rays) != 0 {
		t.Errorf("Expected degenerate laser to emit nothing, got %d", len(rays))
	}
}

func TestPointSource_Emit(t *testing.T) {
	tests := []struct {
		name       string
		brightness float64
		density    float64
		count      int
		rayBright  float64
	}{
		{"default light density", 0.5, 0.1, 50, 1},
		{"dim source", 0.05, 0.1, 50, 0.5},
		{"image density", 0.5, 1, 500, 0.5},
		{"fractional count", 1, 0.0333, 16, 1},
		{"too sparse", 1, 0.001, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := NewPointSource(core.NewPoint(10, -3), tt.brightness)
			rays := source.Emit(EmitOptions{Density: tt.density})

			if len(rays) != tt.count {
				t.Fatalf("Expected %d rays, got %d", tt.count, len(rays))
			}
			for i, ray := range rays {
				if !scalar.EqualWithinAbs(ray.Brightness, tt.rayBright, 1e-12) {
					t.Errorf("Ray %d: expected brightness %v, got %v", i, tt.rayBright, ray.Brightness)
				}
				if ray.Gap != (i == 0) {
					t.Errorf("Ray %d: expected gap only on the first ray, got %v", i, ray.Gap)
				}
				if !ray.IsNew || ray.P1 != source.Position {
					t.Errorf("Ray %d: expected new ray from the source, got %+v", i, ray)
				}
			}
		})
	}
}

func TestPointSource_Angles(t *testing.T) {
	source := NewPointSource(core.NewPoint(0, 0), 1)
	rays := source.Emit(EmitOptions{Density: 0.008}) // 4 rays

	expected := []core.Point{
		core.NewPoint(0, 1),
		core.NewPoint(1, 0),
		core.NewPoint(0, -1),
		core.NewPoint(-1, 0),
	}
	if len(rays) != len(expected) {
		t.Fatalf("Expected %d rays, got %d", len(expected), len(rays))
	}
	for i, ray := range rays {
		if !ray.Direction().Equals(expected[i], 1e-12) {
			t.Errorf("Ray %d: expected direction %v, got %v", i, expected[i], ray.Direction())
		}
	}

	// Observer mode starts two steps early
	observed := source.Emit(EmitOptions{Density: 0.008, Observer: true})
	first := observed[0].Direction()
	angle := math.Atan2(first.X, first.Y)
	if !scalar.EqualWithinAbs(angle, -math.Pi+1e-6, 1e-9) {
		t.Errorf("Expected observer fan to start at -pi, got %v", angle)
	}
	if len(observed) != 6 {
		t.Errorf("Expected 6 observer rays, got %d", len(observed))
	}
}

func TestBeam_Emit(t *testing.T) {
	beam := NewBeam(core.NewPoint(0, 0), core.NewPoint(0, 10), 0.5)
	rays := beam.Emit(EmitOptions{Density: 1})

	if len(rays) != 10 {
		t.Fatalf("Expected 10 rays, got %d", len(rays))
	}
	for i, ray := range rays {
		expectedOrigin := core.NewPoint(0, float64(i)+0.5)
		if !ray.P1.Equals(expectedOrigin, 1e-12) {
			t.Errorf("Ray %d: expected origin %v, got %v", i, expectedOrigin, ray.P1)
		}
		if dir := ray.Direction().Normalize(); !dir.Equals(core.NewPoint(1, 0), 1e-12) {
			t.Errorf("Ray %d: expected direction (1, 0), got %v", i, dir)
		}
		if ray.Gap != (i == 0) {
			t.Errorf("Ray %d: expected gap only on the first ray", i)
		}
		if ray.Brightness != 0.5 {
			t.Errorf("Ray %d: expected brightness 0.5, got %v", i, ray.Brightness)
		}
	}

	if rays := NewBeam(core.NewPoint(1, 1), core.NewPoint(1, 1), 1).Emit(EmitOptions{Density: 1}); len(rays) != 0 {
		t.Errorf("Expected zero-width beam to emit nothing, got %d", len(rays))
	}
}
