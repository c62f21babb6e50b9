package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("Expected defaults %+v, got %+v", Defaults(), cfg)
	}
	if cfg.S3Enabled() {
		t.Error("Expected S3 disabled by default")
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("RAYTRACER_SCENE", "apex")
	t.Setenv("RAYTRACER_WIDTH", "320")
	t.Setenv("RAYTRACER_HEIGHT", "200")
	t.Setenv("RAYTRACER_DEPTH", "2")
	t.Setenv("RAYTRACER_S3_BUCKET", "renders")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scene != "apex" || cfg.Width != 320 || cfg.Height != 200 || cfg.MaxDepth != 2 {
		t.Errorf("Environment not applied: %+v", cfg)
	}
	if !cfg.S3Enabled() || cfg.S3.Bucket != "renders" {
		t.Errorf("Expected S3 bucket renders, got %+v", cfg.S3)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "RAYTRACER_WIDTH=640\nRAYTRACER_SUPERSAMPLE=3\nRAYTRACER_SCENE=sphere-grid\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	// The process environment wins over the file
	t.Setenv("RAYTRACER_SCENE", "apex")
	// godotenv sets variables in the process; register them so they are restored
	t.Setenv("RAYTRACER_WIDTH", "")
	t.Setenv("RAYTRACER_SUPERSAMPLE", "")
	os.Unsetenv("RAYTRACER_WIDTH")
	os.Unsetenv("RAYTRACER_SUPERSAMPLE")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Width != 640 || cfg.Supersample != 3 {
		t.Errorf("Env file not applied: %+v", cfg)
	}
	if cfg.Scene != "apex" {
		t.Errorf("Expected process environment to take precedence, got scene %q", cfg.Scene)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"not a number", "RAYTRACER_WIDTH", "wide"},
		{"zero height", "RAYTRACER_HEIGHT", "0"},
		{"supersample below one", "RAYTRACER_SUPERSAMPLE", "0"},
		{"depth below minus one", "RAYTRACER_DEPTH", "-2"},
		{"negative workers", "RAYTRACER_WORKERS", "-4"},
		{"target width without height", "RAYTRACER_TARGET_WIDTH", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(""); !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
