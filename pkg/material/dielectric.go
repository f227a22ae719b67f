package material

import (
	"math"

	"github.com/df07/go-ray-optics/pkg/core"
)

// Dielectric represents a transparent medium like glass bounded by an optical surface
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction relative to the surroundings (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) Dielectric {
	return Dielectric{RefractiveIndex: refractiveIndex}
}

// Valid reports whether the medium is physical. Media with an index <= 0 are inert.
func (d Dielectric) Valid() bool {
	return d.RefractiveIndex > 0
}

// RelativeIndex returns the relative index n1 for a crossing of the given kind.
// ok is false when the crossing is indeterminate and the ray must be absorbed.
func (d Dielectric) RelativeIndex(c Classification) (n1 float64, ok bool) {
	switch c {
	case Exiting:
		return d.RefractiveIndex, true // from inside the medium to the outside
	case Entering:
		return 1 / d.RefractiveIndex, true
	case Neutral:
		return 1, true
	default:
		return 0, false
	}
}

// Result describes what happened to a ray at a refracting boundary
type Result struct {
	Reflected     *core.LightRay // partially reflected ray to enqueue, nil when not emitted
	Reflectance   float64        // Fresnel reflectance R
	TotalInternal bool
}

// Refract bends ray at point according to Snell's law with relative index n1.
// The normal may have any length but must face the incoming ray.
// The ray is updated in place to continue as the transmitted ray (or the mirrored
// ray on total internal reflection) and a partially reflected ray may be returned.
func Refract(ctx *core.Context, ray *core.LightRay, rayIndex int, point, normal core.Point, n1 float64) Result {
	n := normal.Normalize()
	d := ray.Direction().Normalize()

	cos1 := -n.Dot(d)
	sin2Theta2 := 1 - n1*n1*(1-cos1*cos1)

	if sin2Theta2 < 0 {
		// Total internal reflection keeps the full brightness
		ray.P1 = point
		ray.P2 = point.Add(reflectVector(d, n))
		return Result{Reflectance: 1, TotalInternal: true}
	}

	cos2 := math.Sqrt(sin2Theta2)
	r := Reflectance(n1, cos1, cos2)
	result := Result{Reflectance: r}

	reflected := &core.LightRay{
		P1:         point,
		P2:         point.Add(reflectVector(d, n)),
		Brightness: ray.Brightness * r,
		Exists:     true,
		Gap:        ray.Gap,
	}
	if reflected.Brightness > ctx.BrightnessThreshold {
		result.Reflected = reflected
	} else if !ray.Gap && reflected.Brightness > 0 {
		// Keep one in k faint reflections, amplified by k, so the mean brightness is preserved
		if amp, ok := amplification(ctx.BrightnessThreshold, reflected.Brightness); ok && rayIndex%amp == 0 {
			reflected.Brightness *= float64(amp)
			result.Reflected = reflected
		}
	}

	ray.P1 = point
	ray.P2 = point.Add(refractVector(d, n, n1, cos1, cos2))
	ray.Brightness *= 1 - r

	return result
}

// amplification returns k = ceil(threshold / brightness)
func amplification(threshold, brightness float64) (int, bool) {
	k := math.Ceil(threshold / brightness)
	if k < 1 || k > math.MaxInt32 {
		return 0, false
	}
	return int(k), true
}

// reflectVector calculates the reflection of a vector v off a surface with normal n
func reflectVector(v, n core.Point) core.Point {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refractVector calculates the transmitted direction using the vector form of Snell's law
func refractVector(d, n core.Point, n1, cos1, cos2 float64) core.Point {
	return d.Multiply(n1).Add(n.Multiply(n1*cos1 - cos2))
}

// Reflectance calculates the unpolarized Fresnel reflectance, the mean of the s and p terms
func Reflectance(n1, cos1, cos2 float64) float64 {
	sDen := n1*cos1 + cos2
	pDen := n1*cos2 + cos1
	if sDen == 0 || pDen == 0 {
		return 1 // grazing incidence
	}
	rs := (n1*cos1 - cos2) / sDen
	rp := (n1*cos2 - cos1) / pDen
	return 0.5 * (rs*rs + rp*rp)
}
