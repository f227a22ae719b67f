package observer

import (
	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/integrator"
)

const (
	// convergenceSquared bounds how far consecutive ray intersections may drift
	// while still describing the same image point
	convergenceSquared = 25
	minSightSquared    = 1e-5
)

// ImageKind classifies a detected image point
type ImageKind int

const (
	Real ImageKind = iota
	Virtual
	Void // rays would meet beyond where they were stopped
)

func (k ImageKind) String() string {
	switch k {
	case Real:
		return "real"
	case Virtual:
		return "virtual"
	default:
		return "void"
	}
}

// ImagePoint is a point where neighbouring rays (or their extensions) meet
type ImagePoint struct {
	Point      core.Point
	Kind       ImageKind
	Brightness float64
}

// Sight is a line of sight from the observer. Finite sights end at an image
// point; infinite sights extend from From through To.
type Sight struct {
	From, To core.Point
	Infinite bool
}

// Detector consumes processed segments in queue order and reports image points
type Detector struct {
	mode     Mode
	observer core.Circle

	lastRay          *core.Ray
	lastBrightness   float64
	lastIntersection *core.Point

	images []ImagePoint
	sights []Sight
}

// NewDetector creates a detector; the observer circle is only used in ModeObserver
func NewDetector(mode Mode, observer core.Circle) *Detector {
	return &Detector{mode: mode, observer: observer}
}

// BeginSweep forgets the neighbour state at the start of a sweep over the queue
func (d *Detector) BeginSweep() {
	d.lastRay = nil
	d.lastIntersection = nil
}

// Observe processes the next segment
func (d *Detector) Observe(seg integrator.Segment) {
	ray := seg.Ray()
	defer func() {
		d.lastRay = &ray
		d.lastBrightness = seg.Brightness
	}()

	if d.lastRay == nil {
		return
	}

	switch d.mode {
	case ModeImages:
		if seg.Gap {
			return
		}
		x, ok := meet(ray, *d.lastRay)
		if ok && d.converged(x) {
			d.images = append(d.images, ImagePoint{Point: x, Kind: classify(x, seg), Brightness: d.average(seg)})
		}
		d.remember(x, ok)

	case ModeObserver:
		if seg.Gap {
			d.lastIntersection = nil
			return
		}
		x, ok := meet(ray, *d.lastRay)
		if eye, seen := d.sees(seg); seen {
			d.observe(seg, eye, x, ok)
		}
		d.remember(x, ok)
	}
}

func (d *Detector) observe(seg integrator.Segment, eye, x core.Point, ok bool) {
	switch {
	case ok && d.converged(x):
		if core.OnRay(x, core.NewRay(eye, seg.Start)) && eye.DistanceSquared(seg.Start) > minSightSquared {
			if kind := classify(x, seg); kind != Void {
				d.images = append(d.images, ImagePoint{Point: x, Kind: kind, Brightness: d.average(seg)})
			}
			d.sights = append(d.sights, Sight{From: eye, To: x})
			return
		}
		d.sights = append(d.sights, Sight{From: eye, To: seg.Start, Infinite: true})
	case d.lastIntersection != nil:
		d.sights = append(d.sights, Sight{From: eye, To: seg.Start, Infinite: true})
	}
}

// sees returns where the segment enters the observer circle, if it does
func (d *Detector) sees(seg integrator.Segment) (core.Point, bool) {
	ray := seg.Ray()
	entry := core.IntersectLineCircle(ray.Line(), d.observer)[1]
	if !entry.Ok() {
		return core.Point{}, false
	}
	if seg.Infinite {
		return entry.Point, core.OnRay(entry.Point, ray)
	}
	return entry.Point, core.OnSegment(entry.Point, core.NewSegment(seg.Start, seg.End))
}

func (d *Detector) converged(x core.Point) bool {
	return d.lastIntersection != nil && d.lastIntersection.DistanceSquared(x) < convergenceSquared
}

func (d *Detector) remember(x core.Point, ok bool) {
	if !ok {
		d.lastIntersection = nil
		return
	}
	d.lastIntersection = &x
}

func (d *Detector) average(seg integrator.Segment) float64 {
	return (seg.Brightness + d.lastBrightness) / 2
}

// Flush returns and clears everything detected since the last call
func (d *Detector) Flush() ([]ImagePoint, []Sight) {
	images, sights := d.images, d.sights
	d.images, d.sights = nil, nil
	return images, sights
}

func meet(a, b core.Ray) (core.Point, bool) {
	x := core.IntersectLines(a.Line(), b.Line())
	return x.Point, x.Ok()
}

// classify locates x relative to the segment: behind its start is virtual,
// within it is real, past its end is void
func classify(x core.Point, seg integrator.Segment) ImageKind {
	var rpd float64
	if seg.Infinite {
		rpd = x.Subtract(seg.Start).Dot(seg.Direction)
	} else {
		rpd = x.Subtract(seg.Start).Dot(seg.End.Subtract(seg.Start))
	}
	switch {
	case rpd < 0:
		return Virtual
	case rpd < seg.LengthSquared():
		return Real
	default:
		return Void
	}
}
