package core

import "math"

// Line is the infinite line through P1 and P2
type Line struct {
	P1, P2 Point
}

// Ray starts at P1 and extends through P2 to infinity
type Ray struct {
	P1, P2 Point
}

// Segment is the bounded piece of line between P1 and P2
type Segment struct {
	P1, P2 Point
}

// NewLine creates a new Line
func NewLine(p1, p2 Point) Line {
	return Line{P1: p1, P2: p2}
}

// NewRay creates a new Ray
func NewRay(p1, p2 Point) Ray {
	return Ray{P1: p1, P2: p2}
}

// NewSegment creates a new Segment
func NewSegment(p1, p2 Point) Segment {
	return Segment{P1: p1, P2: p2}
}

// Direction returns P2 - P1
func (l Line) Direction() Point { return l.P2.Subtract(l.P1) }

// Direction returns P2 - P1
func (r Ray) Direction() Point { return r.P2.Subtract(r.P1) }

// Line returns the supporting line of the ray
func (r Ray) Line() Line { return Line(r) }

// Direction returns P2 - P1
func (s Segment) Direction() Point { return s.P2.Subtract(s.P1) }

// Line returns the supporting line of the segment
func (s Segment) Line() Line { return Line(s) }

// LengthSquared returns the squared length of the segment
func (s Segment) LengthSquared() float64 { return s.P1.DistanceSquared(s.P2) }

// Circle is defined by its center and either a scalar radius or a point on the rim.
// Consumers must go through Radius/RadiusSquared so both forms behave the same.
type Circle struct {
	Center Point
	radius float64
	rim    Point
	hasRim bool
}

// NewCircle creates a circle with a scalar radius
func NewCircle(center Point, radius float64) Circle {
	return Circle{Center: center, radius: radius}
}

// NewCircleThrough creates a circle whose radius is the distance from center to rim
func NewCircleThrough(center, rim Point) Circle {
	return Circle{Center: center, rim: rim, hasRim: true}
}

// RadiusSquared returns the squared radius
func (c Circle) RadiusSquared() float64 {
	if c.hasRim {
		return c.Center.DistanceSquared(c.rim)
	}
	return c.radius * c.radius
}

// Radius returns the radius
func (c Circle) Radius() float64 {
	return math.Sqrt(c.RadiusSquared())
}
