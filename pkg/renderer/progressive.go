package renderer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/geometry"
	"github.com/df07/go-ray-optics/pkg/integrator"
	"github.com/df07/go-ray-optics/pkg/log"
	"github.com/df07/go-ray-optics/pkg/observer"
	"github.com/df07/go-ray-optics/pkg/scene"
)

// TraceConfig contains configuration for progressive tracing
type TraceConfig struct {
	TimeBudget  time.Duration // Soft budget per slice; a slice always completes at least one sweep
	ResumeDelay time.Duration // Pause between slices when tracing progressively
	MaxSweeps   int           // Stop after this many sweeps (0 = until every ray terminates)
}

// DefaultTraceConfig returns sensible default values
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		TimeBudget:  200 * time.Millisecond,
		ResumeDelay: 10 * time.Millisecond,
		MaxSweeps:   1000, // Closed mirror cavities never settle
	}
}

// SliceResult is everything produced by one time slice of a trace pass
type SliceResult struct {
	Slice     int
	Segments  []integrator.Segment
	Images    []observer.ImagePoint
	Sights    []observer.Sight
	Done      bool // No further Step will produce anything
	Cancelled bool
	Truncated bool // Stopped by MaxSweeps with rays still live
	Stats     TraceStats
}

// Tracer propagates the rays of one scene. A pass is driven by calling Step
// until it reports Done. Objects must not change while a pass is in progress.
type Tracer struct {
	scene      *scene.Scene
	optics     *core.Context
	config     TraceConfig
	integrator integrator.Integrator
	detector   *observer.Detector // nil unless the mode looks for images
	logger     log.Logger

	queue   []*core.LightRay // Indices are stable for the whole pass
	live    int
	started bool
	done    bool

	cancelled atomic.Bool
	stats     TraceStats
	begin     time.Time
}

// NewTracer creates a tracer for s. A nil optics context uses the defaults.
func NewTracer(s *scene.Scene, config TraceConfig, optics *core.Context, logger log.Logger) *Tracer {
	if optics == nil {
		optics = core.NewContext(nil)
	}
	if logger == nil {
		logger = log.New("tracer")
	}

	t := &Tracer{
		scene:      s,
		optics:     optics,
		config:     config,
		integrator: integrator.NewOpticsIntegrator(optics, s.Objects),
		logger:     logger,
	}
	if s.Mode.UsesImageDensity() {
		t.detector = observer.NewDetector(s.Mode, s.Observer)
	}
	return t
}

// Reset discards the current pass so the next Step starts over with fresh source rays
func (t *Tracer) Reset() {
	t.queue = nil
	t.live = 0
	t.started = false
	t.done = false
	t.cancelled.Store(false)
	t.stats = TraceStats{}
	if t.detector != nil {
		t.detector.Flush()
	}
}

// Cancel asks the tracer to stop. It is safe to call from any goroutine and
// takes effect at the next sweep boundary.
func (t *Tracer) Cancel() {
	t.cancelled.Store(true)
}

// Stats returns the statistics of the current pass
func (t *Tracer) Stats() TraceStats {
	return t.stats
}

func (t *Tracer) start() {
	t.queue = t.scene.Emit()
	t.live = len(t.queue)
	t.started = true
	t.begin = time.Now()
	t.stats.Emitted = len(t.queue)
	t.logger.Infof("Tracing %s: %d rays emitted in %s mode", t.scene.Name, len(t.queue), t.scene.Mode)
}

func (t *Tracer) drain() {
	t.queue = nil
	t.live = 0
}

// Step runs sweeps over the ray queue until every ray has terminated, the soft
// time budget is used up, or cancellation is observed. Cancellation is checked
// before each sweep and drains the queue.
func (t *Tracer) Step(ctx context.Context) SliceResult {
	if !t.started {
		t.start()
	}
	if t.done {
		return SliceResult{Slice: t.stats.Slices, Done: true, Stats: t.stats}
	}

	t.stats.Slices++
	result := SliceResult{Slice: t.stats.Slices}

	sliceStart := time.Now()
	swept := 0
	for t.live != 0 {
		if t.cancelled.Load() || ctx.Err() != nil {
			t.logger.Noticef("Trace of %s cancelled after %d sweeps", t.scene.Name, t.stats.Sweeps)
			t.drain()
			result.Cancelled = true
			break
		}
		if t.config.MaxSweeps > 0 && t.stats.Sweeps >= t.config.MaxSweeps {
			t.logger.Warningf("Trace of %s stopped at %d sweeps with %d rays live", t.scene.Name, t.stats.Sweeps, t.live)
			t.drain()
			result.Truncated = true
			break
		}
		if swept > 0 && time.Since(sliceStart) > t.config.TimeBudget {
			t.logger.Debugf("Slice %d yielding: %d rays processed (%d waiting)", result.Slice, t.stats.Processed, t.live)
			t.finish(&result)
			return result
		}
		t.sweep(&result)
		swept++
	}

	t.done = true
	t.finish(&result)
	result.Done = true
	t.logger.Infof("Trace of %s finished: %d rays processed in %d sweeps (%v)",
		t.scene.Name, t.stats.Processed, t.stats.Sweeps, t.stats.Elapsed.Round(time.Millisecond))
	return result
}

// sweep processes every live ray once, in queue order. Rays spawned during the
// sweep are appended to the queue and processed later in the same sweep.
func (t *Tracer) sweep(result *SliceResult) {
	t.stats.Sweeps++
	if t.detector != nil {
		t.detector.BeginSweep()
	}

	previous := -1
	live := 0
	for j := 0; j < len(t.queue); j++ {
		ray := t.queue[j]
		if ray == nil || !ray.Exists {
			continue
		}

		segment, spawned := t.integrator.Trace(ray, j, previous)
		segment.Sweep = t.stats.Sweeps
		previous = segment.Object

		if t.detector != nil {
			t.detector.Observe(segment)
		}
		result.Segments = append(result.Segments, segment)
		t.stats.record(segment.Outcome, len(spawned))

		t.queue = append(t.queue, spawned...)
		if segment.Outcome == geometry.Escaped {
			t.queue[j] = nil
		} else if ray.Exists {
			live++
		}
	}
	t.live = live
}

func (t *Tracer) finish(result *SliceResult) {
	t.stats.Live = t.live
	t.stats.Queued = len(t.queue)
	t.stats.Elapsed = time.Since(t.begin)
	if t.detector != nil {
		result.Images, result.Sights = t.detector.Flush()
		t.stats.Images += len(result.Images)
	}
	result.Stats = t.stats
}

// Trace is the accumulated output of a whole pass
type Trace struct {
	Segments  []integrator.Segment
	Images    []observer.ImagePoint
	Sights    []observer.Sight
	Cancelled bool
	Truncated bool
	Stats     TraceStats
}

func (tr *Trace) add(r SliceResult) {
	tr.Segments = append(tr.Segments, r.Segments...)
	tr.Images = append(tr.Images, r.Images...)
	tr.Sights = append(tr.Sights, r.Sights...)
	tr.Cancelled = tr.Cancelled || r.Cancelled
	tr.Truncated = tr.Truncated || r.Truncated
	tr.Stats = r.Stats
}

// Run steps the tracer back to back until the pass is done and returns
// everything it produced. Slices are not separated by ResumeDelay.
func (t *Tracer) Run(ctx context.Context) Trace {
	var trace Trace
	for {
		r := t.Step(ctx)
		trace.add(r)
		if r.Done {
			return trace
		}
	}
}

// TraceProgressive runs the pass on its own goroutine and hands each slice to the
// caller, pausing ResumeDelay between slices. The error channel receives the
// context error if ctx ends before the pass is done. Both channels are closed
// when tracing stops.
func (t *Tracer) TraceProgressive(ctx context.Context) (<-chan SliceResult, <-chan error) {
	sliceChan := make(chan SliceResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(sliceChan)
		defer close(errChan)

		for {
			result := t.Step(ctx)
			if result.Cancelled && ctx.Err() != nil {
				errChan <- ctx.Err()
				return
			}

			select {
			case sliceChan <- result:
			case <-ctx.Done():
				t.drain()
				errChan <- ctx.Err()
				return
			}
			if result.Done {
				return
			}

			select {
			case <-time.After(t.config.ResumeDelay):
			case <-ctx.Done():
				// The next Step observes the context and drains the queue
			}
		}
	}()

	return sliceChan, errChan
}
