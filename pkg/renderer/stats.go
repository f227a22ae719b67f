package renderer

import (
	"time"

	"github.com/df07/go-ray-optics/pkg/geometry"
)

// TraceStats contains statistics about a trace pass
type TraceStats struct {
	Slices    int // Number of Step calls
	Sweeps    int // Number of passes over the ray queue
	Emitted   int // Rays created by the sources
	Processed int // Rays resolved against the scene, counting each hop
	Spawned   int // Partial reflections added to the queue
	Escaped   int
	Reflected int
	Refracted int
	Absorbed  int
	Images    int           // Image points found (image and observer modes)
	Live      int           // Rays still waiting after the last slice
	Queued    int           // Current queue length, including terminated entries
	Elapsed   time.Duration // Wall time since the pass started
}

// record counts one processed ray
func (s *TraceStats) record(outcome geometry.Outcome, spawned int) {
	s.Processed++
	s.Spawned += spawned
	switch outcome {
	case geometry.Escaped:
		s.Escaped++
	case geometry.Reflected:
		s.Reflected++
	case geometry.Refracted:
		s.Refracted++
	case geometry.Absorbed:
		s.Absorbed++
	}
}

// RaysPerSecond returns the processing rate over the elapsed time
func (s TraceStats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Processed) / s.Elapsed.Seconds()
}
