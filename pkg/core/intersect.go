package core

import "math"

// IntersectionStatus describes how an intersection query resolved
type IntersectionStatus int

const (
	// Found means the point is a valid finite intersection
	Found IntersectionStatus = iota
	// Parallel means the lines never meet (or coincide)
	Parallel
	// Miss means the line passes outside the circle
	Miss
	// Degenerate means an input had zero length
	Degenerate
)

func (s IntersectionStatus) String() string {
	switch s {
	case Found:
		return "found"
	case Parallel:
		return "parallel"
	case Miss:
		return "miss"
	case Degenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// Intersection is the typed result of a kernel query. Point is only meaningful when Ok().
type Intersection struct {
	Point  Point
	Status IntersectionStatus
}

// Ok reports whether the intersection point can be used
func (i Intersection) Ok() bool {
	return i.Status == Found
}

func failed(status IntersectionStatus) Intersection {
	return Intersection{Point: NaNPoint(), Status: status}
}

// IntersectLines returns the intersection of two infinite lines
func IntersectLines(l1, l2 Line) Intersection {
	a := l1.P2.X*l1.P1.Y - l1.P1.X*l1.P2.Y
	b := l2.P2.X*l2.P1.Y - l2.P1.X*l2.P2.Y
	xa := l1.P2.X - l1.P1.X
	xb := l2.P2.X - l2.P1.X
	ya := l1.P2.Y - l1.P1.Y
	yb := l2.P2.Y - l2.P1.Y

	den := xa*yb - xb*ya
	if den == 0 {
		return failed(Parallel)
	}
	p := Point{(a*xb - b*xa) / den, (a*yb - b*ya) / den}
	if !p.IsFinite() {
		return failed(Parallel)
	}
	return Intersection{Point: p, Status: Found}
}

// IntersectLineCircle returns both roots of a line and a circle.
// The first root lies further along the line direction (P1 toward P2) than the second.
func IntersectLineCircle(l Line, c Circle) [2]Intersection {
	dir := l.Direction()
	length := dir.Length()
	if length == 0 {
		return [2]Intersection{failed(Degenerate), failed(Degenerate)}
	}
	u := dir.Multiply(1 / length)

	foot := l.P1.Add(u.Multiply(c.Center.Subtract(l.P1).Dot(u)))
	h2 := c.RadiusSquared() - c.Center.DistanceSquared(foot)
	if h2 < 0 {
		return [2]Intersection{failed(Miss), failed(Miss)}
	}
	d := math.Sqrt(h2)

	return [2]Intersection{
		{Point: foot.Add(u.Multiply(d)), Status: Found},
		{Point: foot.Subtract(u.Multiply(d)), Status: Found},
	}
}

// OnRay reports whether p lies on the forward side of the ray origin
func OnRay(p Point, r Ray) bool {
	return p.Subtract(r.P1).Dot(r.Direction()) >= 0
}

// OnSegment reports whether the projection of p falls within the segment, endpoints included
func OnSegment(p Point, s Segment) bool {
	d := s.Direction()
	return p.Subtract(s.P1).Dot(d) >= 0 && p.Subtract(s.P2).Dot(d.Multiply(-1)) >= 0
}

// Midpoint returns the middle of the segment
func Midpoint(s Segment) Point {
	return Point{(s.P1.X + s.P2.X) / 2, (s.P1.Y + s.P2.Y) / 2}
}

// PerpendicularBisector returns the line through the midpoint of s, perpendicular to it
func PerpendicularBisector(s Segment) Line {
	mid := Midpoint(s)
	return Line{P1: mid, P2: mid.Add(s.Direction().Perpendicular())}
}

// ParallelThrough returns the line through p parallel to l
func ParallelThrough(l Line, p Point) Line {
	return Line{P1: p, P2: p.Add(l.Direction())}
}

// Circumcenter returns the center of the circle through a, b and c.
// Collinear inputs report Parallel.
func Circumcenter(a, b, c Point) Intersection {
	return IntersectLines(PerpendicularBisector(Segment{a, c}), PerpendicularBisector(Segment{b, c}))
}
