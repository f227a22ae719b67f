package scene

import (
	"sort"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/geometry"
	"github.com/df07/go-ray-optics/pkg/lights"
	"github.com/df07/go-ray-optics/pkg/observer"
)

type builtin struct {
	info SceneInfo
	make func() *Scene
}

var builtins = map[string]builtin{
	"prism": {
		info: SceneInfo{Name: "Prism", Description: "Laser dispersed through a glass triangle"},
		make: NewPrismScene,
	},
	"lens-bench": {
		info: SceneInfo{Name: "Lens Bench", Description: "Parallel beam focused by a thin lens onto a screen"},
		make: NewLensBenchScene,
	},
	"fiber": {
		info: SceneInfo{Name: "Fiber", Description: "Total internal reflection along a glass slab"},
		make: NewFiberScene,
	},
	"mirror-triangle": {
		info: SceneInfo{Name: "Mirror Triangle", Description: "Laser bouncing inside three plane mirrors"},
		make: NewMirrorTriangleScene,
	},
	"images": {
		info: SceneInfo{Name: "Lens Images", Description: "Real and virtual images of point sources near a lens"},
		make: NewLensImagesScene,
	},
	"observer": {
		info: SceneInfo{Name: "Observer", Description: "A point source seen in a plane mirror"},
		make: NewObserverScene,
	},
}

// Builtin creates the named built-in scene
func Builtin(id string) (*Scene, bool) {
	b, ok := builtins[id]
	if !ok {
		return nil, false
	}
	return b.make(), true
}

// BuiltinIDs returns the built-in scene identifiers in sorted order
func BuiltinIDs() []string {
	ids := make([]string, 0, len(builtins))
	for id := range builtins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewPrismScene creates a laser refracted twice by a glass prism
func NewPrismScene() *Scene {
	s := New("prism")
	s.Add(geometry.NewRefractor([]geometry.PathPoint{
		{Point: core.NewPoint(200, 300)},
		{Point: core.NewPoint(300, 127)},
		{Point: core.NewPoint(400, 300)},
	}, 1.5))
	s.Add(geometry.NewAbsorber(core.NewPoint(600, 0), core.NewPoint(600, 400)))
	s.AddSource(lights.NewLaser(core.NewPoint(40, 260), core.NewPoint(60, 250)))
	return s
}

// NewLensBenchScene creates a parallel beam focused by a thin lens onto a screen
// one focal length behind it
func NewLensBenchScene() *Scene {
	s := New("lens-bench")
	s.Add(geometry.NewThinLens(core.NewPoint(300, 100), core.NewPoint(300, 300), 150))
	s.Add(geometry.NewAbsorber(core.NewPoint(450, 50), core.NewPoint(450, 350)))
	s.AddSource(lights.NewBeam(core.NewPoint(100, 140), core.NewPoint(100, 260), 0.5))
	s.RayDensityLight = 0.2
	return s
}

// NewFiberScene creates a laser trapped in a glass slab by total internal reflection
func NewFiberScene() *Scene {
	s := New("fiber")
	s.Add(geometry.NewRefractor([]geometry.PathPoint{
		{Point: core.NewPoint(100, 180)},
		{Point: core.NewPoint(700, 180)},
		{Point: core.NewPoint(700, 220)},
		{Point: core.NewPoint(100, 220)},
	}, 1.5))
	s.Add(geometry.NewCircleLens(core.NewPoint(760, 200), core.NewPoint(760, 230), 1.5))
	s.AddSource(lights.NewLaser(core.NewPoint(60, 170), core.NewPoint(80, 178)))
	return s
}

// NewMirrorTriangleScene creates a laser reflecting inside a triangle of mirrors
func NewMirrorTriangleScene() *Scene {
	s := New("mirror-triangle")
	a := core.NewPoint(100, 400)
	b := core.NewPoint(500, 400)
	c := core.NewPoint(300, 54)
	s.Add(
		geometry.NewPlaneMirror(a, b),
		geometry.NewPlaneMirror(b, c),
		geometry.NewPlaneMirror(c, a),
	)
	s.AddSource(lights.NewLaser(core.NewPoint(250, 300), core.NewPoint(270, 290)))
	return s
}

// NewLensImagesScene shows a real image from a source beyond the focal length
// and a virtual one from a source inside it
func NewLensImagesScene() *Scene {
	s := New("images")
	s.Mode = observer.ModeImages
	s.Add(geometry.NewThinLens(core.NewPoint(400, 100), core.NewPoint(400, 500), 100))
	s.AddSource(
		lights.NewPointSource(core.NewPoint(200, 200), 0.5),
		lights.NewPointSource(core.NewPoint(340, 400), 0.5),
	)
	return s
}

// NewObserverScene places an observer looking at a point source in a plane mirror
func NewObserverScene() *Scene {
	s := New("observer")
	s.Mode = observer.ModeObserver
	s.Add(geometry.NewPlaneMirror(core.NewPoint(200, 100), core.NewPoint(200, 500)))
	s.Add(geometry.NewAbsorber(core.NewPoint(320, 240), core.NewPoint(320, 260)))
	s.AddSource(lights.NewPointSource(core.NewPoint(300, 200), 0.5))
	s.SetObserver(core.NewPoint(400, 350), DefaultObserverRadius)
	return s
}
