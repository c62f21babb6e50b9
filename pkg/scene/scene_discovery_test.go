package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"sphere-grid", "Sphere Grid"},
		{"mirror_hall", "Mirror Hall"},
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

func TestNewBuiltinScene(t *testing.T) {
	for _, info := range ListBuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltinScene(info.ID)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Built-in scene %q should be valid: %v", info.ID, err)
			}
			if len(s.Spheres) == 0 {
				t.Errorf("Built-in scene %q should contain spheres", info.ID)
			}
		})
	}

	if _, err := NewBuiltinScene("nonexistent"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestNewBuiltinScene_FreshCopies(t *testing.T) {
	a, _ := NewBuiltinScene("default")
	b, _ := NewBuiltinScene("default")
	a.Spheres[0].Radius = 100
	if b.Spheres[0].Radius == 100 {
		t.Error("Built-in scenes must not share sphere values")
	}
}

func TestListJSONScenes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b-scene.json", "a_scene.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	scenes, err := ListJSONScenes(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].ID != "a_scene" || scenes[0].DisplayName != "A Scene" {
		t.Errorf("Unexpected first scene: %+v", scenes[0])
	}
	if scenes[1].Type != "json" {
		t.Errorf("Expected json type, got %q", scenes[1].Type)
	}

	missing, err := ListJSONScenes(filepath.Join(dir, "missing"))
	if err != nil || len(missing) != 0 {
		t.Errorf("Expected empty list for missing directory, got %v, %v", missing, err)
	}
}
