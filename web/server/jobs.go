package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/loaders"
	"github.com/df07/go-ray-optics/pkg/renderer"
	"github.com/df07/go-ray-optics/pkg/scene"
)

const maxSceneBytes = 1 << 20

// DefaultJobTTL is how long a finished job stays queryable
const DefaultJobTTL = 10 * time.Minute

// Job states
const (
	JobRunning   = "running"
	JobDone      = "done"
	JobCancelled = "cancelled"
	JobTruncated = "truncated"
)

// JobInfo is the JSON view of a job
type JobInfo struct {
	ID        string       `json:"id"`
	Scene     string       `json:"scene"`
	Mode      string       `json:"mode"`
	Status    string       `json:"status"`
	Created   time.Time    `json:"created"`
	Last      *SliceUpdate `json:"last,omitempty"`
	ElapsedMs int64        `json:"elapsedMs"`
}

// Message is the envelope of every websocket message
type Message struct {
	Type string      `json:"type"` // "slice" or "complete"
	Data interface{} `json:"data"`
}

// Job is a scene traced in the background. Slice updates are published to the
// hub under the job id, and the topic is closed when the job stops.
type Job struct {
	ID      string
	Scene   *scene.Scene
	Created time.Time

	tracer  *renderer.Tracer
	painter *renderer.Painter
	cancel  context.CancelFunc

	mu     sync.Mutex
	status string
	last   *SliceUpdate
	done   chan struct{}
}

// Info returns a snapshot of the job
func (j *Job) Info() JobInfo {
	j.mu.Lock()
	defer j.mu.Unlock()
	info := JobInfo{
		ID:      j.ID,
		Scene:   j.Scene.Name,
		Mode:    string(j.Scene.Mode),
		Status:  j.status,
		Created: j.Created,
		Last:    j.last,
	}
	if j.last != nil {
		info.ElapsedMs = j.last.ElapsedMs
	}
	return info
}

// Done is closed when the job stops
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel stops the job at the next sweep boundary
func (j *Job) Cancel() {
	j.tracer.Cancel()
}

func (j *Job) run(ctx context.Context, hub *Hub) {
	defer close(j.done)
	defer hub.Close(j.ID)
	defer j.cancel()

	startTime := time.Now()
	slices, errs := j.tracer.TraceProgressive(ctx)
	for result := range slices {
		update, err := newSliceUpdate(j.painter, result, startTime)
		if err != nil {
			logger.Errorf("job %s: %v", j.ID, err)
			continue
		}

		j.mu.Lock()
		j.last = &update
		switch {
		case result.Cancelled:
			j.status = JobCancelled
		case result.Truncated:
			j.status = JobTruncated
		case result.Done:
			j.status = JobDone
		}
		j.mu.Unlock()

		if msg, err := json.Marshal(Message{Type: "slice", Data: update}); err == nil {
			hub.Publish(j.ID, msg)
		}
	}

	if err := <-errs; err != nil {
		j.mu.Lock()
		j.status = JobCancelled
		j.mu.Unlock()
	}

	logger.Infof("job %s finished: %s", j.ID, j.Info().Status)
}

// JobStore keeps the jobs created through the API. Finished jobs are
// evicted ttl after they stop.
type JobStore struct {
	hub  *Hub
	ttl  time.Duration
	mu   sync.Mutex
	jobs map[string]*Job
}

// NewJobStore creates a store publishing job progress to hub
func NewJobStore(hub *Hub, ttl time.Duration) *JobStore {
	return &JobStore{hub: hub, ttl: ttl, jobs: make(map[string]*Job)}
}

// Start creates a job for sc and starts tracing it
func (js *JobStore) Start(sc *scene.Scene, req *TraceRequest) *Job {
	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{
		ID:      uuid.NewV4().String(),
		Scene:   sc,
		Created: time.Now(),
		status:  JobRunning,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	optics := core.NewContext(core.NewSeededSampler(req.Seed))
	job.tracer = renderer.NewTracer(sc, req.traceConfig(), optics, logger)
	job.painter = renderer.NewPainter(sc, req.paintConfig())

	js.mu.Lock()
	js.jobs[job.ID] = job
	js.mu.Unlock()

	go job.run(ctx, js.hub)
	go func() {
		<-job.Done()
		time.AfterFunc(js.ttl, func() { js.Remove(job.ID) })
	}()
	return job
}

// Remove forgets a job and its hub topic. Running jobs are cancelled first.
func (js *JobStore) Remove(id string) {
	js.mu.Lock()
	job, ok := js.jobs[id]
	delete(js.jobs, id)
	js.mu.Unlock()

	if !ok {
		return
	}
	job.Cancel()
	<-job.Done()
	js.hub.Forget(id)
	logger.Debugf("job %s evicted", id)
}

// Len returns the number of jobs kept
func (js *JobStore) Len() int {
	js.mu.Lock()
	defer js.mu.Unlock()
	return len(js.jobs)
}

// Get returns the job with the given id
func (js *JobStore) Get(id string) (*Job, bool) {
	js.mu.Lock()
	defer js.mu.Unlock()
	job, ok := js.jobs[id]
	return job, ok
}

// CancelAll cancels every job still running
func (js *JobStore) CancelAll() {
	js.mu.Lock()
	defer js.mu.Unlock()
	for _, job := range js.jobs {
		job.Cancel()
	}
}

// handleCreateJob starts tracing the scene file in the request body. Query
// parameters are the same as for /api/trace; "scene" is ignored.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	req, err := parseTraceRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sf, err := loaders.ParseSceneFile(http.MaxBytesReader(w, r.Body, maxSceneBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := sf.Name
	if name == "" {
		name = "untitled"
	}
	sc, err := scene.FromSceneFile(name, sf)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid scene").Error())
		return
	}
	if err := applyOverrides(sc, req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := s.jobs.Start(sc, req)
	logger.Noticef("job %s started for scene %s", job.ID, sc.Name)
	writeJSON(w, http.StatusCreated, job.Info())
}

func (s *Server) jobFromRequest(w http.ResponseWriter, r *http.Request) (*Job, bool) {
	id := mux.Vars(r)["id"]
	job, ok := s.jobs.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown job: "+id)
	}
	return job, ok
}

// handleJobStatus returns the job state and its latest slice
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if job, ok := s.jobFromRequest(w, r); ok {
		writeJSON(w, http.StatusOK, job.Info())
	}
}

// handleCancelJob cancels a running job, or removes a finished one
func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobFromRequest(w, r)
	if !ok {
		return
	}

	select {
	case <-job.Done():
		s.jobs.Remove(job.ID)
		writeJSON(w, http.StatusOK, map[string]string{"id": job.ID, "status": "removed"})
	default:
		job.Cancel()
		writeJSON(w, http.StatusAccepted, map[string]string{"id": job.ID, "status": "cancelling"})
	}
}
