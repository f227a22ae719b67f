package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-ray-optics/pkg/scene"
)

// BatchTask is one scene to trace in a batch
type BatchTask struct {
	TaskID int // Position in the submitted batch, for deterministic ordering
	Scene  *scene.Scene
}

// BatchResult contains the finished trace of one scene
type BatchResult struct {
	TaskID int
	Scene  *scene.Scene
	Trace  Trace
	Error  error
}

// BatchPool traces independent scenes in parallel. Each worker owns its tracer;
// nothing is shared between scenes.
type BatchPool struct {
	taskQueue   chan BatchTask
	resultQueue chan BatchResult
	numWorkers  int
	config      TraceConfig
	wg          sync.WaitGroup
}

// NewBatchPool creates a pool with the specified number of workers (0 = CPU count)
// able to hold maxTasks pending tasks and results
func NewBatchPool(config TraceConfig, numWorkers, maxTasks int) *BatchPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &BatchPool{
		taskQueue:   make(chan BatchTask, maxTasks),
		resultQueue: make(chan BatchResult, maxTasks),
		numWorkers:  numWorkers,
		config:      config,
	}
}

// Start begins all workers
func (bp *BatchPool) Start(ctx context.Context) {
	for i := 0; i < bp.numWorkers; i++ {
		bp.wg.Add(1)
		go bp.run(ctx)
	}
}

// Stop waits for submitted tasks to finish, then closes the result queue
func (bp *BatchPool) Stop() {
	close(bp.taskQueue)
	bp.wg.Wait()
	close(bp.resultQueue)
}

// SubmitTask queues a scene for tracing
func (bp *BatchPool) SubmitTask(task BatchTask) {
	bp.taskQueue <- task
}

// GetResult retrieves a finished trace
func (bp *BatchPool) GetResult() (BatchResult, bool) {
	result, ok := <-bp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (bp *BatchPool) GetNumWorkers() int {
	return bp.numWorkers
}

func (bp *BatchPool) run(ctx context.Context) {
	defer bp.wg.Done()

	for task := range bp.taskQueue {
		result := BatchResult{TaskID: task.TaskID, Scene: task.Scene}
		if err := task.Scene.Validate(); err != nil {
			result.Error = err
		} else {
			tracer := NewTracer(task.Scene, bp.config, nil, nil)
			result.Trace = tracer.Run(ctx)
			if result.Trace.Cancelled {
				result.Error = ctx.Err()
			}
		}
		bp.resultQueue <- result
	}
}

// TraceBatch traces every scene with a pool and returns the results in input
// order. progress is called once per finished scene.
func TraceBatch(ctx context.Context, scenes []*scene.Scene, config TraceConfig, numWorkers int, progress func(BatchResult)) []BatchResult {
	pool := NewBatchPool(config, numWorkers, len(scenes))
	pool.Start(ctx)
	for i, s := range scenes {
		pool.SubmitTask(BatchTask{TaskID: i, Scene: s})
	}

	results := make([]BatchResult, len(scenes))
	for range scenes {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		results[result.TaskID] = result
		if progress != nil {
			progress(result)
		}
	}
	pool.Stop()
	return results
}
