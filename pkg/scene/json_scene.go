package scene

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/geometry"
	"github.com/df07/go-ray-optics/pkg/lights"
	"github.com/df07/go-ray-optics/pkg/loaders"
	"github.com/df07/go-ray-optics/pkg/observer"
)

// NewJSONScene creates a scene from a scene file
func NewJSONScene(filename string) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, err
	}
	name := sf.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return FromSceneFile(name, sf)
}

// FromSceneFile converts decoded scene file content. Objects keep their file
// order, which decides ties between equidistant hits.
func FromSceneFile(name string, sf *loaders.SceneFile) (*Scene, error) {
	s := New(name)

	mode, err := observer.ParseMode(sf.Mode)
	if err != nil {
		return nil, err
	}
	s.Mode = mode

	if sf.RayDensityLight != nil {
		s.RayDensityLight = *sf.RayDensityLight
	}
	if sf.RayDensityImages != nil {
		s.RayDensityImages = *sf.RayDensityImages
	}
	if sf.Origin != nil {
		s.Origin = point(*sf.Origin)
	}
	if sf.Scale > 0 {
		s.Scale = sf.Scale
	}
	if sf.Observer != nil {
		r, err := sf.Observer.Radius()
		if err != nil {
			return nil, err
		}
		s.SetObserver(point(sf.Observer.C), r)
	}

	for i, spec := range sf.Objs {
		if err := s.addSpec(spec); err != nil {
			return nil, errors.Wrapf(err, "object %d (%s)", i, spec.Type)
		}
	}
	return s, nil
}

func (s *Scene) addSpec(spec loaders.ObjectSpec) error {
	switch spec.Type {
	case "laser":
		p1, p2, err := endpoints(spec)
		if err != nil {
			return err
		}
		s.AddSource(lights.NewLaser(p1, p2))
	case "radiant":
		s.AddSource(lights.NewPointSource(core.NewPoint(spec.X, spec.Y), param(spec, 0.5)))
	case "parallel":
		p1, p2, err := endpoints(spec)
		if err != nil {
			return err
		}
		s.AddSource(lights.NewBeam(p1, p2, param(spec, 0.5)))
	case "mirror":
		p1, p2, err := endpoints(spec)
		if err != nil {
			return err
		}
		s.Add(geometry.NewPlaneMirror(p1, p2))
	case "blackline":
		p1, p2, err := endpoints(spec)
		if err != nil {
			return err
		}
		s.Add(geometry.NewAbsorber(p1, p2))
	case "lens":
		p1, p2, err := endpoints(spec)
		if err != nil {
			return err
		}
		s.Add(geometry.NewThinLens(p1, p2, param(spec, 100)))
	case "idealmirror":
		p1, p2, err := endpoints(spec)
		if err != nil {
			return err
		}
		s.Add(geometry.NewIdealMirror(p1, p2, param(spec, 100)))
	case "halfplane":
		p1, p2, err := endpoints(spec)
		if err != nil {
			return err
		}
		s.Add(geometry.NewHalfPlane(p1, p2, param(spec, 1.5)))
	case "circlelens":
		p1, p2, err := endpoints(spec)
		if err != nil {
			return err
		}
		s.Add(geometry.NewCircleLens(p1, p2, param(spec, 1.5)))
	case "arcmirror":
		p1, p2, err := endpoints(spec)
		if err != nil {
			return err
		}
		arc := &geometry.ArcMirror{P1: p1, P2: p2, NotDone: spec.P3 == nil}
		if spec.P3 != nil {
			arc.P3 = point(*spec.P3)
		}
		s.Add(arc)
	case "refractor":
		path := make([]geometry.PathPoint, len(spec.Path))
		for i, p := range spec.Path {
			path[i] = geometry.PathPoint{Point: point(p), Arc: p.Arc}
		}
		r := geometry.NewRefractor(path, param(spec, 1.5))
		r.NotDone = spec.NotDone
		s.Add(r)
	default:
		return errors.Errorf("unknown object type %q", spec.Type)
	}
	return nil
}

func endpoints(spec loaders.ObjectSpec) (core.Point, core.Point, error) {
	if spec.P1 == nil || spec.P2 == nil {
		return core.Point{}, core.Point{}, errors.New("missing p1 or p2")
	}
	return point(*spec.P1), point(*spec.P2), nil
}

func param(spec loaders.ObjectSpec, fallback float64) float64 {
	if spec.P == nil {
		return fallback
	}
	return *spec.P
}

func point(p loaders.PointSpec) core.Point {
	return core.NewPoint(p.X, p.Y)
}
