package renderer

import (
	"context"
	"testing"

	"github.com/df07/go-ray-optics/pkg/observer"
	"github.com/df07/go-ray-optics/pkg/scene"
)

func TestTraceBatch(t *testing.T) {
	var scenes []*scene.Scene
	for _, id := range []string{"lens-bench", "prism", "fiber"} {
		s, _ := scene.Builtin(id)
		scenes = append(scenes, s)
	}

	finished := 0
	results := TraceBatch(context.Background(), scenes, DefaultTraceConfig(), 2, func(BatchResult) {
		finished++
	})

	if finished != len(scenes) {
		t.Errorf("Expected %d progress callbacks, got %d", len(scenes), finished)
	}
	for i, result := range results {
		if result.TaskID != i || result.Scene != scenes[i] {
			t.Errorf("Result %d out of order: task %d", i, result.TaskID)
		}
		if result.Error != nil {
			t.Errorf("Scene %s failed: %v", scenes[i].Name, result.Error)
		}
		if result.Trace.Stats.Processed == 0 {
			t.Errorf("Scene %s traced no rays", scenes[i].Name)
		}
	}

	// Lens bench is deterministic: 24 rays, two hops each
	if got := results[0].Trace.Stats.Processed; got != 48 {
		t.Errorf("Expected 48 processed rays for the lens bench, got %d", got)
	}
}

func TestTraceBatch_InvalidScene(t *testing.T) {
	broken := scene.New("broken")
	broken.Mode = observer.ModeObserver // no observer placed

	results := TraceBatch(context.Background(), []*scene.Scene{broken}, DefaultTraceConfig(), 1, nil)
	if results[0].Error == nil {
		t.Error("Expected an error for an observer scene without an observer")
	}
}

func TestBatchPool_Workers(t *testing.T) {
	pool := NewBatchPool(DefaultTraceConfig(), 0, 1)
	if pool.GetNumWorkers() <= 0 {
		t.Errorf("Expected CPU count workers, got %d", pool.GetNumWorkers())
	}
}
