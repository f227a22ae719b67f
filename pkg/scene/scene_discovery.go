package scene

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/df07/go-ray-optics/pkg/loaders"
	"github.com/df07/go-ray-optics/pkg/log"
)

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
	jsonPrefix   = "json:"
)

var logger = log.New("scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	Mode        string `json:"mode"`        // Simulation mode stored with the scene
	FilePath    string `json:"filePath"`    // Path to scene file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ScenesDir returns the first existing scenes directory, or "" if there is none
func ScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans dir for scene files. An empty dir means no scenes.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan scenes directory")
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseJSONMetadata(filePath)
		if err != nil {
			logger.Warningf("failed to parse metadata for %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseJSONMetadata reads a scene file's name, description and group, falling
// back to values derived from the file name
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          jsonPrefix + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       fileGroup,
		Type:        "json",
		FilePath:    filePath,
	}

	sf, err := loaders.LoadSceneFile(filePath)
	if err != nil {
		return info, err
	}
	if sf.Name != "" {
		info.Name = sf.Name
		info.DisplayName = sf.Name
	}
	if sf.Group != "" {
		info.Group = sf.Group
	}
	info.Description = sf.Description
	info.Mode = sf.Mode
	return info, nil
}

// ListAllScenes returns built-in and file scenes from dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	var allScenes []SceneInfo
	for _, id := range BuiltinIDs() {
		b := builtins[id]
		info := b.info
		info.ID = id
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		info.Mode = string(b.make().Mode)
		allScenes = append(allScenes, info)
	}

	fileScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, errors.Wrap(err, "failed to list scene files")
	}
	allScenes = append(allScenes, fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtInGroup, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: builtInGroup})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return response, nil
}

// Load resolves a scene reference: a built-in id, "json:<name>" within dir, or
// a path to a scene file
func Load(ref, dir string) (*Scene, error) {
	if s, ok := Builtin(ref); ok {
		return s, nil
	}
	if name, ok := strings.CutPrefix(ref, jsonPrefix); ok {
		if dir == "" {
			return nil, errors.Errorf("no scenes directory for %s", ref)
		}
		return NewJSONScene(filepath.Join(dir, name+".json"))
	}
	if strings.HasSuffix(ref, ".json") {
		return NewJSONScene(ref)
	}
	return nil, errors.Errorf("unknown scene %q", ref)
}

// titleCase converts a filename-style string to title case
// e.g., "lens-bench" -> "Lens Bench"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
