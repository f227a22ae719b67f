package material

// Classification describes how a ray crosses a refractive boundary
type Classification int

const (
	// Tangential means the crossing is indeterminate (grazing, boundary point); the ray is absorbed
	Tangential Classification = iota
	// Entering means the ray goes from outside the medium to inside
	Entering
	// Exiting means the ray goes from inside the medium to outside
	Exiting
	// Neutral means coincident boundaries cancel and the ray is unaffected
	Neutral
)

func (c Classification) String() string {
	switch c {
	case Entering:
		return "entering"
	case Exiting:
		return "exiting"
	case Neutral:
		return "neutral"
	default:
		return "tangential"
	}
}

// Crossing is one boundary crossed at a shared hit point
type Crossing struct {
	Classification Classification
	Index          float64
}

// ComposeIndex folds the crossings of coincident boundaries into the relative index n1
// of the primary boundary. ok is false when any crossing is indeterminate.
func ComposeIndex(n1 float64, crossings []Crossing) (float64, bool) {
	for _, c := range crossings {
		switch c.Classification {
		case Exiting:
			n1 *= c.Index
		case Entering:
			n1 /= c.Index
		case Neutral:
		default:
			return 0, false
		}
	}
	return n1, true
}
