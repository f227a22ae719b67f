package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/observer"
	"github.com/df07/go-ray-optics/pkg/renderer"
)

// SliceStats is the JSON form of the trace statistics after a slice
type SliceStats struct {
	Emitted   int `json:"emitted"`
	Processed int `json:"processed"`
	Spawned   int `json:"spawned"`
	Escaped   int `json:"escaped"`
	Reflected int `json:"reflected"`
	Refracted int `json:"refracted"`
	Absorbed  int `json:"absorbed"`
	Images    int `json:"images"`
	Live      int `json:"live"`
	Sweeps    int `json:"sweeps"`
}

// ImageUpdate is an image point found during a slice
type ImageUpdate struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Kind       string  `json:"kind"`
	Brightness float64 `json:"brightness"`
}

// SliceUpdate is sent to the client after every slice
type SliceUpdate struct {
	Slice     int           `json:"slice"`
	ImageData string        `json:"imageData"` // Base64 encoded PNG of everything traced so far
	Images    []ImageUpdate `json:"images,omitempty"`
	Stats     SliceStats    `json:"stats"`
	Done      bool          `json:"done"`
	Cancelled bool          `json:"cancelled"`
	Truncated bool          `json:"truncated"`
	ElapsedMs int64         `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "slice", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// newSliceUpdate paints the slice and packs it for the client
func newSliceUpdate(painter *renderer.Painter, result renderer.SliceResult, startTime time.Time) (SliceUpdate, error) {
	painter.PaintSlice(result)
	painter.PaintObjects()

	imageData, err := encodeImage(painter)
	if err != nil {
		return SliceUpdate{}, errors.Wrap(err, "failed to encode image")
	}

	update := SliceUpdate{
		Slice:     result.Slice,
		ImageData: imageData,
		Stats:     sliceStats(result.Stats),
		Done:      result.Done,
		Cancelled: result.Cancelled,
		Truncated: result.Truncated,
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	for _, img := range result.Images {
		update.Images = append(update.Images, imageUpdate(img))
	}
	return update, nil
}

func sliceStats(stats renderer.TraceStats) SliceStats {
	return SliceStats{
		Emitted:   stats.Emitted,
		Processed: stats.Processed,
		Spawned:   stats.Spawned,
		Escaped:   stats.Escaped,
		Reflected: stats.Reflected,
		Refracted: stats.Refracted,
		Absorbed:  stats.Absorbed,
		Images:    stats.Images,
		Live:      stats.Live,
		Sweeps:    stats.Sweeps,
	}
}

func imageUpdate(img observer.ImagePoint) ImageUpdate {
	return ImageUpdate{X: img.Point.X, Y: img.Point.Y, Kind: img.Kind.String(), Brightness: img.Brightness}
}

// handleTrace traces a scene progressively and streams every slice via SSE
func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Every write goes through one goroutine; the handler waits for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(w, ctx, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseTraceRequest(r.URL.Query())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, err := s.loadScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(fmt.Sprintf("trace-%d", time.Now().UnixNano()), consoleChan)
	consoleCtx, stopConsole := context.WithCancel(ctx)
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
		close(consoleDone)
	}()

	optics := core.NewContext(core.NewSeededSampler(req.Seed))
	tracer := renderer.NewTracer(sc, req.traceConfig(), optics, webLogger)
	painter := renderer.NewPainter(sc, req.paintConfig())

	startTime := time.Now()
	slices, errs := tracer.TraceProgressive(ctx)
	for result := range slices {
		update, err := newSliceUpdate(painter, result, startTime)
		if err != nil {
			logger.Errorf("Error building slice update: %v", err)
			continue
		}
		s.sendEvent(ctx, sseEventChan, "slice", update)
	}

	traceErr := <-errs
	// Forward what the tracer logged before the stream closes
	stopConsole()
	<-consoleDone
	if traceErr != nil {
		// Client disconnected
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Tracing completed"}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write; keep draining so senders never block
				continue
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected; drain until the handler closes the channel
			for range sseEventChan {
			}
			return
		}
	}
}

// streamConsoleMessages forwards console messages until ctx ends, then flushes what is buffered
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	forward := func(consoleMsg ConsoleMessage) {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			logger.Warningf("Error marshaling console message: %v", err)
			return
		}
		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		default:
			// Channel full, skip message to avoid blocking
		}
	}

	for {
		select {
		case consoleMsg := <-consoleChan:
			forward(consoleMsg)
		case <-ctx.Done():
			for {
				select {
				case consoleMsg := <-consoleChan:
					forward(consoleMsg)
				default:
					return
				}
			}
		}
	}
}

// sendEvent marshals data and queues it for the SSE writer
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, eventType string, data interface{}) {
	encoded, err := json.Marshal(data)
	if err != nil {
		logger.Errorf("Error marshaling %s event: %v", eventType, err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(encoded)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}
