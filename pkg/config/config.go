// Package config loads renderer settings from a .env file and RAYTRACER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/export"
	"github.com/joho/godotenv"
)

// Config holds every setting the front ends read from the environment
type Config struct {
	Scene     string // Builtin scene name
	SceneFile string // JSON scene path, overrides Scene when set

	Width        int
	Height       int
	TargetWidth  int // Nearest-neighbor upscale target, 0 keeps the render size
	TargetHeight int
	Supersample  int // Render at k times the size, then filter down
	MaxDepth     int // -1 uses the scene's depth

	Workers  int
	TileSize int

	OutputDir string
	Port      int

	S3 export.S3Options
}

// Defaults returns the settings used when nothing is configured
func Defaults() Config {
	return Config{
		Scene:       "default",
		Width:       960,
		Height:      540,
		Supersample: 1,
		MaxDepth:    -1,
		TileSize:    64,
		OutputDir:   "output",
		Port:        8080,
		S3:          export.S3Options{Region: "us-east-1"},
	}
}

// Load reads envFile if it exists, then overlays RAYTRACER_* variables on the defaults.
// Variables already set in the process environment take precedence over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment
func FromEnv() (Config, error) {
	cfg := Defaults()

	cfg.Scene = getEnv("RAYTRACER_SCENE", cfg.Scene)
	cfg.SceneFile = getEnv("RAYTRACER_SCENE_FILE", cfg.SceneFile)
	cfg.OutputDir = getEnv("RAYTRACER_OUTPUT", cfg.OutputDir)

	ints := []struct {
		key string
		dst *int
	}{
		{"RAYTRACER_WIDTH", &cfg.Width},
		{"RAYTRACER_HEIGHT", &cfg.Height},
		{"RAYTRACER_TARGET_WIDTH", &cfg.TargetWidth},
		{"RAYTRACER_TARGET_HEIGHT", &cfg.TargetHeight},
		{"RAYTRACER_SUPERSAMPLE", &cfg.Supersample},
		{"RAYTRACER_DEPTH", &cfg.MaxDepth},
		{"RAYTRACER_WORKERS", &cfg.Workers},
		{"RAYTRACER_TILE_SIZE", &cfg.TileSize},
		{"RAYTRACER_PORT", &cfg.Port},
	}
	for _, v := range ints {
		if err := getEnvInt(v.key, v.dst); err != nil {
			return Config{}, err
		}
	}

	cfg.S3.Bucket = getEnv("RAYTRACER_S3_BUCKET", cfg.S3.Bucket)
	cfg.S3.Region = getEnv("RAYTRACER_S3_REGION", cfg.S3.Region)
	cfg.S3.Endpoint = getEnv("RAYTRACER_S3_ENDPOINT", cfg.S3.Endpoint)
	cfg.S3.AccessKey = getEnv("RAYTRACER_S3_ACCESS_KEY", cfg.S3.AccessKey)
	cfg.S3.SecretKey = getEnv("RAYTRACER_S3_SECRET_KEY", cfg.S3.SecretKey)
	cfg.S3.Prefix = getEnv("RAYTRACER_S3_PREFIX", cfg.S3.Prefix)

	return cfg, cfg.Validate()
}

// Validate checks the numeric settings
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d: %w", c.Width, c.Height, core.ErrInvalidConfig)
	}
	if c.TargetWidth < 0 || c.TargetHeight < 0 {
		return fmt.Errorf("target size must not be negative: %w", core.ErrInvalidConfig)
	}
	if (c.TargetWidth == 0) != (c.TargetHeight == 0) {
		return fmt.Errorf("target width and height must be set together: %w", core.ErrInvalidConfig)
	}
	if c.Supersample < 1 {
		return fmt.Errorf("supersample factor must be at least 1, got %d: %w", c.Supersample, core.ErrInvalidConfig)
	}
	if c.MaxDepth < -1 {
		return fmt.Errorf("depth must be -1 (scene default) or greater, got %d: %w", c.MaxDepth, core.ErrInvalidConfig)
	}
	if c.TileSize < 0 || c.Workers < 0 {
		return fmt.Errorf("workers and tile size must not be negative: %w", core.ErrInvalidConfig)
	}
	return nil
}

// S3Enabled reports whether uploads are configured
func (c Config) S3Enabled() bool {
	return c.S3.Bucket != ""
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, dst *int) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, core.ErrInvalidConfig)
	}
	*dst = n
	return nil
}
