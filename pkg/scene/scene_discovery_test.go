package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"lens-bench", "Lens Bench"},
		{"glass_prism", "Glass Prism"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return path
}

func TestParseJSONMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		file     string
		content  string
		expected SceneInfo
	}{
		{
			file:    "complete.json",
			content: `{"version":2,"name":"Periscope","description":"Two mirrors","group":"Mirrors","mode":"light","objs":[]}`,
			expected: SceneInfo{
				ID:          "json:complete",
				Name:        "Periscope",
				DisplayName: "Periscope",
				Description: "Two mirrors",
				Group:       "Mirrors",
				Type:        "json",
				Mode:        "light",
			},
		},
		{
			file:    "glass-block.json",
			content: `{"version":2,"mode":"images","objs":[]}`,
			expected: SceneInfo{
				ID:          "json:glass-block",
				Name:        "Glass Block",
				DisplayName: "Glass Block",
				Group:       "Scene Files",
				Type:        "json",
				Mode:        "images",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := writeScene(t, dir, tc.file, tc.content)
			tc.expected.FilePath = path

			result, err := ParseJSONMetadata(path)
			if err != nil {
				t.Fatalf("ParseJSONMetadata() error: %v", err)
			}
			if result != tc.expected {
				t.Errorf("ParseJSONMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseJSONMetadata_InvalidFile(t *testing.T) {
	path := writeScene(t, t.TempDir(), "broken.json", `{"version":2,`)

	result, err := ParseJSONMetadata(path)
	if err == nil {
		t.Error("ParseJSONMetadata() should fail on malformed json")
	}
	if result.ID != "json:broken" {
		t.Errorf("fallback ID = %q, want json:broken", result.ID)
	}
}

func TestListJSONScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "zeta.json", `{"version":2,"objs":[]}`)
	writeScene(t, dir, "alpha.json", `{"version":2,"objs":[]}`)
	writeScene(t, dir, "broken.json", `not json`)
	writeScene(t, dir, "notes.txt", `ignored`)

	scenes, err := ListJSONScenes(dir)
	if err != nil {
		t.Fatalf("ListJSONScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("ListJSONScenes() found %d scenes, want 2", len(scenes))
	}
	if scenes[0].DisplayName != "Alpha" || scenes[1].DisplayName != "Zeta" {
		t.Errorf("scenes not sorted by display name: %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListJSONScenes_NoDirectory(t *testing.T) {
	scenes, err := ListJSONScenes("")
	if err != nil {
		t.Errorf("ListJSONScenes() error: %v", err)
	}
	if scenes == nil {
		t.Error("ListJSONScenes() returned nil, expected empty slice")
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "bench.json", `{"version":2,"group":"Benches","objs":[]}`)

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}
	if len(response.Groups) != 2 {
		t.Fatalf("ListAllScenes() returned %d groups, want 2", len(response.Groups))
	}

	builtIn := response.Groups[0]
	if builtIn.Name != "Built-in Scenes" {
		t.Errorf("first group = %q, want Built-in Scenes", builtIn.Name)
	}
	if len(builtIn.Scenes) != len(BuiltinIDs()) {
		t.Errorf("Built-in scenes count = %d, want %d", len(builtIn.Scenes), len(BuiltinIDs()))
	}
	for _, s := range builtIn.Scenes {
		if s.ID == "" || s.DisplayName == "" || s.Type != "builtin" {
			t.Errorf("incomplete built-in scene info: %+v", s)
		}
	}

	files := response.Groups[1]
	if files.Name != "Benches" || len(files.Scenes) != 1 {
		t.Fatalf("unexpected file group: %+v", files)
	}
	if !strings.HasPrefix(files.Scenes[0].ID, "json:") {
		t.Errorf("file scene ID should start with 'json:': %s", files.Scenes[0].ID)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "single.json", `{"version":2,"objs":[{"type":"mirror","p1":{"x":0,"y":0},"p2":{"x":0,"y":10}}]}`)

	s, err := Load("prism", dir)
	if err != nil || s.Name != "prism" {
		t.Errorf("Load(prism) = %v, %v", s, err)
	}

	s, err = Load("json:single", dir)
	if err != nil {
		t.Fatalf("Load(json:single) error: %v", err)
	}
	if s.Name != "single" || len(s.Objects) != 1 {
		t.Errorf("Load(json:single) = %+v", s)
	}

	if _, err := Load(path, ""); err != nil {
		t.Errorf("Load(path) error: %v", err)
	}
	if _, err := Load("json:single", ""); err == nil {
		t.Error("Load should fail without a scenes directory")
	}
	if _, err := Load("nonexistent", dir); err == nil {
		t.Error("Load should fail for unknown scenes")
	}
}
