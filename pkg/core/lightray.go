package core

// LightRay is a single ray of light travelling from P1 through P2.
// Exists turns false once the ray is absorbed and never becomes true again.
type LightRay struct {
	P1, P2     Point
	Brightness float64
	Exists     bool
	// Gap marks a discontinuity with the previous ray in the queue
	Gap bool
	// IsNew is set until the ray has been processed once
	IsNew bool
}

// NewLightRay creates a live ray that has not been processed yet
func NewLightRay(p1, p2 Point, brightness float64) *LightRay {
	return &LightRay{P1: p1, P2: p2, Brightness: brightness, Exists: true, IsNew: true}
}

// Ray returns the geometric ray
func (r *LightRay) Ray() Ray {
	return Ray{P1: r.P1, P2: r.P2}
}

// Direction returns P2 - P1
func (r *LightRay) Direction() Point {
	return r.P2.Subtract(r.P1)
}

// Absorb kills the ray
func (r *LightRay) Absorb() {
	r.Exists = false
}
