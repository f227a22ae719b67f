package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Point represents a position or a direction on the plane
type Point struct {
	X, Y float64
}

// NewPoint creates a new Point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Subtract returns the difference of two points
func (p Point) Subtract(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Multiply returns the point scaled by a scalar
func (p Point) Multiply(scalar float64) Point {
	return Point{p.X * scalar, p.Y * scalar}
}

// Dot returns the dot product of two vectors
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Cross returns the z component of the 3D cross product
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - p.Y*other.X
}

// Length returns the magnitude of the vector
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LengthSquared returns the squared magnitude of the vector
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// DistanceSquared returns the squared distance between two points
func (p Point) DistanceSquared(other Point) float64 {
	return p.Subtract(other).LengthSquared()
}

// Normalize returns a unit vector in the same direction
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{0, 0}
	}
	return Point{p.X / length, p.Y / length}
}

// Perpendicular returns the vector rotated by +90 degrees
func (p Point) Perpendicular() Point {
	return Point{-p.Y, p.X}
}

// Equals checks if two points are equal within tolerance
func (p Point) Equals(other Point, tolerance float64) bool {
	return scalar.EqualWithinAbs(p.X, other.X, tolerance) && scalar.EqualWithinAbs(p.Y, other.Y, tolerance)
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// NaNPoint is the placeholder carried by failed intersections
func NaNPoint() Point {
	return Point{math.NaN(), math.NaN()}
}
