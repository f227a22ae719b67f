package core

const (
	// DefaultMinShotLength is the minimum distance between a ray origin and its next hit
	DefaultMinShotLength = 1e-6
	// DefaultBrightnessThreshold is the brightness below which reflected rays are sampled
	DefaultBrightnessThreshold = 0.01
	// ProbeJitter scales the perturbation of classification probe rays
	ProbeJitter = 1e-5
)

// Context carries the numeric tolerances and the random source shared by every
// object query and solver call during a trace.
type Context struct {
	MinShotLength       float64
	BrightnessThreshold float64
	Sampler             Sampler
}

// NewContext creates a context with default tolerances
func NewContext(sampler Sampler) *Context {
	if sampler == nil {
		sampler = NewSeededSampler(42)
	}
	return &Context{
		MinShotLength:       DefaultMinShotLength,
		BrightnessThreshold: DefaultBrightnessThreshold,
		Sampler:             sampler,
	}
}

// MinShotLengthSquared returns the squared epsilon used for distance comparisons
func (c *Context) MinShotLengthSquared() float64 {
	return c.MinShotLength * c.MinShotLength
}

// Coincident reports whether two points are closer than the epsilon
func (c *Context) Coincident(a, b Point) bool {
	return a.DistanceSquared(b) < c.MinShotLengthSquared()
}
