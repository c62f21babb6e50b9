package renderer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func renderDefault(t *testing.T, width, height, workers, tileSize int) *Image {
	t.Helper()
	s := scene.NewDefaultScene()
	opts := DefaultOptions(s, width, height)
	opts.NumWorkers = workers
	opts.TileSize = tileSize

	rt, err := NewRaytracer(s, opts, nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	img, _, err := rt.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return img
}

func TestRaytracer_ImageShapeAndRange(t *testing.T) {
	img := renderDefault(t, 48, 27, 0, 16)

	if img.Width != 48 || img.Height != 27 {
		t.Fatalf("Expected 48x27, got %dx%d", img.Width, img.Height)
	}
	if len(img.Pix) != 48*27*3 {
		t.Fatalf("Expected %d channel values, got %d", 48*27*3, len(img.Pix))
	}
	for i, v := range img.Pix {
		if v < 0 || v > 1 {
			t.Fatalf("channel %d out of [0,1]: %f", i, v)
		}
	}
	if img.AverageLuminance() == 0 {
		t.Error("Expected a non-black render of the default scene")
	}
}

func TestRaytracer_Deterministic(t *testing.T) {
	reference := renderDefault(t, 40, 30, 1, 64)

	variants := []struct {
		name              string
		workers, tileSize int
	}{
		{"repeat", 1, 64},
		{"many workers", 8, 64},
		{"small tiles", 4, 7},
		{"single pixel tiles", 3, 1},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			img := renderDefault(t, 40, 30, v.workers, v.tileSize)
			for i := range img.Pix {
				if img.Pix[i] != reference.Pix[i] {
					t.Fatalf("channel %d differs: %v vs %v", i, img.Pix[i], reference.Pix[i])
				}
			}
		})
	}
}

func TestRaytracer_TinyImages(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {1, 5}, {5, 1}} {
		img := renderDefault(t, size[0], size[1], 2, 64)
		if img.Width != size[0] || img.Height != size[1] {
			t.Errorf("Expected %dx%d, got %dx%d", size[0], size[1], img.Width, img.Height)
		}
	}
}

func TestRaytracer_StatsAndCallbacks(t *testing.T) {
	s := scene.NewDefaultScene()
	opts := DefaultOptions(s, 32, 18)
	opts.TileSize = 8

	rt, err := NewRaytracer(s, opts, nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	var results []TileCompletionResult
	_, stats, err := rt.Render(context.Background(), func(r TileCompletionResult) {
		results = append(results, r)
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if stats.TotalPixels != 32*18 {
		t.Errorf("Expected %d pixels in stats, got %d", 32*18, stats.TotalPixels)
	}
	if stats.MaxBouncesUsed > s.MaxDepth {
		t.Errorf("Bounces %d exceed max depth %d", stats.MaxBouncesUsed, s.MaxDepth)
	}

	if len(results) != 12 {
		t.Fatalf("Expected 12 tile callbacks, got %d", len(results))
	}
	for i, r := range results {
		if r.TileNumber != i+1 || r.TotalTiles != 12 {
			t.Errorf("callback %d: unexpected numbering %d/%d", i, r.TileNumber, r.TotalTiles)
		}
		if i > 0 && r.Progress < results[i-1].Progress {
			t.Errorf("callback %d: progress went backwards", i)
		}
	}
	if last := results[len(results)-1].Progress; last != 1 {
		t.Errorf("Expected final progress 1, got %f", last)
	}
}

func TestRaytracer_CustomIntegrator(t *testing.T) {
	s := scene.NewDefaultScene()
	rt, err := NewRaytracer(s, DefaultOptions(s, 4, 4), nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	rt.SetIntegrator(&MockIntegrator{returnColor: core.NewVec3(0.5, 0.5, 0.5), bounces: 1})

	img, _, err := rt.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, v := range img.Pix {
		if v != 0.5 {
			t.Fatalf("Expected 0.5 everywhere, got %f", v)
		}
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	s := scene.NewDefaultScene()
	rt, err := NewRaytracer(s, DefaultOptions(s, 64, 64), nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, _, err := rt.Render(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a cancelled render")
	}
}

func TestNewRaytracer_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*scene.Scene, *Options)
	}{
		{"zero width", func(s *scene.Scene, o *Options) { o.Width = 0 }},
		{"negative height", func(s *scene.Scene, o *Options) { o.Height = -3 }},
		{"negative depth", func(s *scene.Scene, o *Options) { o.MaxDepth = -1 }},
		{"negative tile size", func(s *scene.Scene, o *Options) { o.TileSize = -8 }},
		{"invalid scene", func(s *scene.Scene, o *Options) { s.Spheres[0].Radius = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.NewDefaultScene()
			opts := DefaultOptions(s, 16, 16)
			tt.modify(s, &opts)

			_, err := NewRaytracer(s, opts, nil)
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if _, err := NewRaytracer(nil, Options{Width: 1, Height: 1}, nil); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil scene, got %v", err)
	}
}

func TestRaytracer_DepthZeroIsBlack(t *testing.T) {
	s := scene.NewDefaultScene()
	opts := DefaultOptions(s, 8, 8)
	opts.MaxDepth = 0

	rt, err := NewRaytracer(s, opts, nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	img, _, err := rt.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatalf("Expected black image at depth 0, got %f", v)
		}
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestRaytracer_LogsRenderBanner(t *testing.T) {
	s := scene.NewDefaultScene()
	opts := DefaultOptions(s, 16, 8)
	opts.TileSize = 8
	opts.NumWorkers = 2

	logger := &recordingLogger{}
	rt, err := NewRaytracer(s, opts, logger)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	if _, _, err := rt.Render(context.Background(), nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := "Rendering 16x8 (4 primitives, 2 tiles, depth 5) using 2 workers...\n"
	if len(logger.lines) == 0 || logger.lines[0] != expected {
		t.Errorf("Expected banner %q, got %q", expected, strings.Join(logger.lines, ""))
	}
}
