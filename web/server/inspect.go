package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/df07/go-ray-optics/pkg/core"
	"github.com/df07/go-ray-optics/pkg/geometry"
	"github.com/df07/go-ray-optics/pkg/integrator"
	"github.com/df07/go-ray-optics/pkg/scene"
)

// InspectResponse represents the JSON response for a probe ray
type InspectResponse struct {
	Hit            bool                   `json:"hit"`
	Kind           string                 `json:"kind,omitempty"`
	Object         int                    `json:"object"` // Index in the scene, -1 when nothing was hit
	Point          [2]float64             `json:"point"`
	Distance       float64                `json:"distance"`
	Classification string                 `json:"classification,omitempty"`
	Merged         []string               `json:"merged,omitempty"` // Coincident boundaries merged into the hit
	Properties     map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the nearest hit of a probe ray
type InspectResult struct {
	Candidate integrator.Candidate
	Ray       *core.LightRay
}

// inspectRay resolves a probe ray against the scene exactly as the tracer would
func inspectRay(sc *scene.Scene, optics *core.Context, p1, p2 core.Point) InspectResult {
	ray := core.NewLightRay(p1, p2, 1)
	oi := integrator.NewOpticsIntegrator(optics, sc.Objects)
	return InspectResult{Candidate: oi.NearestHit(ray), Ray: ray}
}

// objectProperties extracts element parameters with type assertions
func objectProperties(obj geometry.Object) map[string]interface{} {
	properties := make(map[string]interface{})

	switch o := obj.(type) {
	case *geometry.ThinLens:
		properties["focalLength"] = o.FocalLength
	case *geometry.IdealMirror:
		properties["focalLength"] = o.FocalLength
	case *geometry.ArcMirror:
		if center := o.Center(); center.Ok() {
			properties["center"] = [2]float64{center.Point.X, center.Point.Y}
			properties["radius"] = o.P1.Subtract(center.Point).Length()
		}
	case *geometry.CircleLens:
		properties["center"] = [2]float64{o.Center.X, o.Center.Y}
		properties["radius"] = o.Circle().Radius()
	case *geometry.Refractor:
		properties["sections"] = len(o.Sections())
	}

	if medium, ok := obj.(geometry.Medium); ok {
		properties["refractiveIndex"] = medium.RefractiveIndex()
	}
	return properties
}

// handleInspect reports what a probe ray from (x1,y1) through (x2,y2) hits first
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	req, err := parseTraceRequest(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sc, err := scene.Load(req.Scene, s.scenesDir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p1, err := parsePointParam(values, "x1", "y1")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p2, err := parsePointParam(values, "x2", "y2")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p1.Equals(p2, 0) {
		writeError(w, http.StatusBadRequest, "probe ray needs two distinct points")
		return
	}

	optics := core.NewContext(core.NewSeededSampler(req.Seed))
	result := inspectRay(sc, optics, p1, p2)
	hit := result.Candidate
	if !hit.Found() {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Object: -1})
		return
	}

	response := InspectResponse{
		Hit:            true,
		Kind:           string(hit.Object.Kind()),
		Object:         hit.Index,
		Point:          [2]float64{hit.Point.X, hit.Point.Y},
		Distance:       hit.Point.Subtract(p1).Length(),
		Classification: hit.Object.Classify(optics, result.Ray).String(),
		Properties:     objectProperties(hit.Object),
	}
	for _, m := range hit.Merged {
		response.Merged = append(response.Merged, string(m.Kind()))
	}
	writeJSON(w, http.StatusOK, response)
}

func parsePointParam(values url.Values, xKey, yKey string) (core.Point, error) {
	x, err := strconv.ParseFloat(values.Get(xKey), 64)
	if err != nil {
		return core.Point{}, errors.Errorf("invalid %s: %q", xKey, values.Get(xKey))
	}
	y, err := strconv.ParseFloat(values.Get(yKey), 64)
	if err != nil {
		return core.Point{}, errors.Errorf("invalid %s: %q", yKey, values.Get(yKey))
	}
	return core.NewPoint(x, y), nil
}
