package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/df07/go-ray-optics/pkg/log"
	"github.com/df07/go-ray-optics/pkg/observer"
	"github.com/df07/go-ray-optics/pkg/renderer"
	"github.com/df07/go-ray-optics/pkg/scene"
)

var logger = log.New("web")

// Server handles web requests for the ray optics tracer
type Server struct {
	port      int
	scenesDir string
	jobs      *JobStore
	hub       *Hub
}

// NewServer creates a new web server. Scene files are read from scenesDir.
func NewServer(port int, scenesDir string) *Server {
	hub := NewHub()
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		hub:       hub,
		jobs:      NewJobStore(hub, DefaultJobTTL),
	}
}

// Router returns the HTTP handler with every route registered
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/scenes", s.handleScenes).Methods("GET")
	api.HandleFunc("/trace", s.handleTrace).Methods("GET")
	api.HandleFunc("/inspect", s.handleInspect).Methods("GET")
	api.HandleFunc("/jobs", s.handleCreateJob).Methods("POST")
	api.HandleFunc("/jobs/{id:[a-f0-9\\-]+}", s.handleJobStatus).Methods("GET")
	api.HandleFunc("/jobs/{id:[a-f0-9\\-]+}", s.handleCancelJob).Methods("DELETE")
	api.HandleFunc("/jobs/{id:[a-f0-9\\-]+}/ws", s.handleJobSocket).Methods("GET")

	router.PathPrefix("/").Handler(http.FileServer(http.Dir("static/")))
	return router
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, handlers.CombinedLoggingHandler(os.Stdout, s.Router()))
}

// Close cancels every running job
func (s *Server) Close() {
	s.jobs.CancelAll()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// TraceRequest holds the query parameters shared by the trace endpoints
type TraceRequest struct {
	Scene    string
	Width    int
	Height   int
	Mode     string
	Density  float64
	BudgetMs int
	Sweeps   int
	Seed     int64
}

func (req *TraceRequest) traceConfig() renderer.TraceConfig {
	config := renderer.DefaultTraceConfig()
	config.TimeBudget = time.Duration(req.BudgetMs) * time.Millisecond
	config.MaxSweeps = req.Sweeps
	return config
}

func (req *TraceRequest) paintConfig() renderer.PaintConfig {
	config := renderer.DefaultPaintConfig()
	config.Width = req.Width
	config.Height = req.Height
	return config
}

// parseTraceRequest parses request parameters
func parseTraceRequest(values url.Values) (*TraceRequest, error) {
	req := &TraceRequest{Scene: values.Get("scene"), Mode: values.Get("mode")}
	if req.Scene == "" {
		req.Scene = "prism"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 800, 100, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 600, 100, 2000); err != nil {
		return nil, err
	}
	if req.Density, err = parseFloatParam(values, "density", 0, 0, 10); err != nil {
		return nil, err
	}
	budget := int(renderer.DefaultTraceConfig().TimeBudget.Milliseconds())
	if req.BudgetMs, err = parseIntParam(values, "budget", budget, 1, 10000); err != nil {
		return nil, err
	}
	if req.Sweeps, err = parseIntParam(values, "maxSweeps", renderer.DefaultTraceConfig().MaxSweeps, 0, 100000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)
	return req, nil
}

// loadScene resolves the requested scene and applies the mode and density overrides
func (s *Server) loadScene(req *TraceRequest) (*scene.Scene, error) {
	sc, err := scene.Load(req.Scene, s.scenesDir)
	if err != nil {
		return nil, err
	}
	return sc, applyOverrides(sc, req)
}

func applyOverrides(sc *scene.Scene, req *TraceRequest) error {
	if req.Mode != "" {
		mode, err := observer.ParseMode(req.Mode)
		if err != nil {
			return err
		}
		sc.Mode = mode
	}
	if req.Density > 0 {
		if sc.Mode.UsesImageDensity() {
			sc.RayDensityImages = req.Density
		} else {
			sc.RayDensityLight = req.Density
		}
	}
	return sc.Validate()
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, errors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, errors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, errors.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// encodeImage converts the painter canvas to base64-encoded PNG
func encodeImage(p *renderer.Painter) (string, error) {
	var buf bytes.Buffer
	if err := p.EncodePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("could not write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
