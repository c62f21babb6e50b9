package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned for a scene name that is not built in
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to scene file (json type only)
}

type builtinScene struct {
	info    SceneInfo
	factory func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Three spheres over a checkerboard plane",
			Type:        "builtin",
		},
		factory: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "apex",
			DisplayName: "Apex",
			Description: "Single red sphere lit from directly above",
			Type:        "builtin",
		},
		factory: NewApexScene,
	},
	{
		info: SceneInfo{
			ID:          "sphere-grid",
			DisplayName: "Sphere Grid",
			Description: "5x5 grid of reflective spheres",
			Type:        "builtin",
		},
		factory: NewSphereGridScene,
	},
}

// ListBuiltinScenes returns the built-in scenes in a stable order
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		infos = append(infos, b.info)
	}
	return infos
}

// NewBuiltinScene creates a fresh copy of the named built-in scene
func NewBuiltinScene(name string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.factory(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// ListJSONScenes scans dir for *.json scene descriptions
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	sort.Strings(files)

	scenes := make([]SceneInfo, 0, len(files))
	for _, file := range files {
		id := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Type:        "json",
			FilePath:    file,
		})
	}
	return scenes, nil
}

// titleCase converts "my-scene_name" to "My Scene Name"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
