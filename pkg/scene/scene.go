package scene

import (
	"github.com/pkg/errors"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/geometry"
	"github.com/df07/go-ray-optics/pkg/lights"
	"github.com/df07/go-ray-optics/pkg/observer"
)

const (
	// DefaultRayDensityLight is the density used by the light modes
	DefaultRayDensityLight = 0.1
	// DefaultRayDensityImages is the density used by the image and observer modes
	DefaultRayDensityImages = 1.0
	// DefaultObserverRadius is the aperture radius of a newly placed observer
	DefaultObserverRadius = 20.0
)

var (
	errNoObserver = errors.New("observer mode needs an observer")
	errNoDensity  = errors.New("ray density must be positive")
)

// Scene contains everything a trace pass needs
type Scene struct {
	Name    string
	Objects []geometry.Object // Order matters: earlier objects win exact ties
	Sources []lights.Source
	Mode    observer.Mode

	RayDensityLight  float64
	RayDensityImages float64

	Observer    core.Circle // Only used in observer mode
	HasObserver bool

	// View transform for painting: screen = world*Scale + Origin
	Origin core.Point
	Scale  float64
}

// New creates an empty scene with default densities in light mode
func New(name string) *Scene {
	return &Scene{
		Name:             name,
		Objects:          make([]geometry.Object, 0),
		Sources:          make([]lights.Source, 0),
		Mode:             observer.ModeLight,
		RayDensityLight:  DefaultRayDensityLight,
		RayDensityImages: DefaultRayDensityImages,
		Scale:            1,
	}
}

// Add appends optical objects in order
func (s *Scene) Add(objects ...geometry.Object) {
	s.Objects = append(s.Objects, objects...)
}

// AddSource appends light sources in order
func (s *Scene) AddSource(sources ...lights.Source) {
	s.Sources = append(s.Sources, sources...)
}

// SetObserver places the observer aperture
func (s *Scene) SetObserver(center core.Point, radius float64) {
	s.Observer = core.NewCircle(center, radius)
	s.HasObserver = true
}

// RayDensity returns the density for the current mode
func (s *Scene) RayDensity() float64 {
	if s.Mode.UsesImageDensity() {
		return s.RayDensityImages
	}
	return s.RayDensityLight
}

// Emit collects the initial rays of every source, in source order
func (s *Scene) Emit() []*core.LightRay {
	opts := lights.EmitOptions{
		Density:  s.RayDensity(),
		Observer: s.Mode == observer.ModeObserver,
	}
	var rays []*core.LightRay
	for _, source := range s.Sources {
		rays = append(rays, source.Emit(opts)...)
	}
	return rays
}

// Validate reports configuration problems that would make a trace meaningless
func (s *Scene) Validate() error {
	if s.Mode == observer.ModeObserver && !s.HasObserver {
		return errNoObserver
	}
	if s.RayDensity() <= 0 {
		return errNoDensity
	}
	return nil
}
