package loaders

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/df07/go-ray-optics/pkg/log"
)

// CurrentVersion is the newest scene file version this reader understands
const CurrentVersion = 2

var logger = log.New("loaders")

// PointSpec is a point as stored in scene files. Arc is only meaningful on
// refractor path points.
type PointSpec struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Arc bool    `json:"arc,omitempty"`
}

// ObjectSpec is one entry of the "objs" array. Which fields are used depends on Type.
type ObjectSpec struct {
	Type    string      `json:"type"`
	P1      *PointSpec  `json:"p1,omitempty"`
	P2      *PointSpec  `json:"p2,omitempty"`
	P3      *PointSpec  `json:"p3,omitempty"`
	X       float64     `json:"x,omitempty"` // radiant source position
	Y       float64     `json:"y,omitempty"`
	P       *float64    `json:"p,omitempty"` // brightness, focal length or refractive index
	Path    []PointSpec `json:"path,omitempty"`
	NotDone bool        `json:"notDone,omitempty"`
}

// ObserverSpec is the observer aperture: a centre and either a numeric radius
// or a point on the rim
type ObserverSpec struct {
	C PointSpec       `json:"c"`
	R json.RawMessage `json:"r"`
}

// Radius resolves R against the centre
func (o ObserverSpec) Radius() (float64, error) {
	var r float64
	if err := json.Unmarshal(o.R, &r); err == nil {
		return r, nil
	}
	var rim PointSpec
	if err := json.Unmarshal(o.R, &rim); err != nil {
		return 0, errors.Wrap(err, "observer radius is neither a number nor a point")
	}
	return math.Hypot(rim.X-o.C.X, rim.Y-o.C.Y), nil
}

// SceneFile is the decoded content of a scene file after version upgrades
type SceneFile struct {
	Version          int           `json:"version"`
	Name             string        `json:"name,omitempty"`
	Description      string        `json:"description,omitempty"`
	Group            string        `json:"group,omitempty"`
	Objs             []ObjectSpec  `json:"objs"`
	Mode             string        `json:"mode"`
	RayDensityLight  *float64      `json:"rayDensity_light,omitempty"`
	RayDensityImages *float64      `json:"rayDensity_images,omitempty"`
	Observer         *ObserverSpec `json:"observer,omitempty"`
	Origin           *PointSpec    `json:"origin,omitempty"`
	Scale            float64       `json:"scale,omitempty"`
}

// Keys and values renamed by the 1.1 file format. Older files are rewritten
// before decoding.
var legacyReplacer = strings.NewReplacer(
	`"point"`, `1`, `"xxa"`, `1`, `"aH"`, `1`,
	`"circle"`, `5`, `"xxf"`, `5`,
	`"k"`, `"objs"`,
	`"L"`, `"p1"`, `"G"`, `"p2"`, `"F"`, `"p3"`,
	`"bA"`, `"exist"`,
	`"aa"`, `"parallel"`, `"ba"`, `"mirror"`, `"bv"`, `"lens"`,
	`"av"`, `"notDone"`,
	`"bP"`, `"lightAlpha"`,
	`"ab"`, `"observer"`, `"observed_light"`, `"observer"`, `"observed_images"`, `"observer"`,
)

// LoadSceneFile reads and decodes a scene file from disk
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open scene file %s", filename)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse scene file %s", filename)
	}
	return sf, nil
}

// ParseSceneFile decodes a scene, upgrading files written before versioning
// and rejecting versions newer than CurrentVersion
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scene")
	}

	var probe struct {
		Version int `json:"version"`
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, errors.Wrap(err, "invalid scene json")
		}
	}

	var sf *SceneFile
	if probe.Version == 0 {
		sf, err = parseUnversioned(trimmed)
	} else {
		sf = &SceneFile{}
		err = json.Unmarshal(trimmed, sf)
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid scene json")
	}

	if sf.Version > CurrentVersion {
		return nil, errors.Errorf("scene version %d is newer than supported version %d", sf.Version, CurrentVersion)
	}
	if sf.Version == 1 {
		sf.Origin = &PointSpec{}
	}
	if sf.Scale == 0 {
		sf.Scale = 1
	}
	sf.Objs = supported(sf.Objs)
	return sf, nil
}

// parseUnversioned handles the oldest format, which may be a bare object array
// and uses abbreviated keys
func parseUnversioned(data []byte) (*SceneFile, error) {
	data = []byte(legacyReplacer.Replace(string(data)))

	sf := &SceneFile{}
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &sf.Objs); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(data, sf); err != nil {
		return nil, err
	}

	one := 1.0
	if sf.Mode == "" {
		sf.Mode = "light"
	}
	if sf.RayDensityLight == nil || *sf.RayDensityLight == 0 {
		sf.RayDensityLight = &one
	}
	if sf.RayDensityImages == nil || *sf.RayDensityImages == 0 {
		sf.RayDensityImages = &one
	}
	sf.Version = 1
	return sf, nil
}

// supported drops editor-only tools, which take no part in tracing
func supported(objs []ObjectSpec) []ObjectSpec {
	kept := objs[:0]
	for _, obj := range objs {
		switch obj.Type {
		case "ruler", "protractor":
			logger.Warningf("skipping %s: measuring tools are not traced", obj.Type)
			continue
		}
		kept = append(kept, obj)
	}
	return kept
}
