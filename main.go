package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/export"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/resample"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/nfnt/resize"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags, defaulting to the loaded configuration
	sceneType := flag.String("scene", cfg.Scene, "Built-in scene name")
	sceneFile := flag.String("scene-file", cfg.SceneFile, "JSON scene file (overrides -scene)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels")
	flag.IntVar(&cfg.TargetWidth, "target-width", cfg.TargetWidth, "Nearest-neighbor upscale width (0 = no upscale)")
	flag.IntVar(&cfg.TargetHeight, "target-height", cfg.TargetHeight, "Nearest-neighbor upscale height (0 = no upscale)")
	flag.IntVar(&cfg.Supersample, "supersample", cfg.Supersample, "Render at k times the size and filter down")
	flag.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, "Maximum reflection bounces (-1 = scene default)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of parallel workers (0 = auto)")
	flag.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "Tile size in pixels")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory")
	uploadS3 := flag.Bool("s3", cfg.S3Enabled(), "Also upload the render to S3 (requires RAYTRACER_S3_BUCKET)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	cfg.Scene = *sceneType
	cfg.SceneFile = *sceneFile

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid options: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, sceneName, err := createScene(cfg.Scene, cfg.SceneFile)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}

	exporter, err := createExporter(cfg, sceneName, *uploadS3)
	if err != nil {
		fmt.Printf("Error configuring output: %v\n", err)
		os.Exit(1)
	}

	logger := core.NewDefaultLogger()
	ctx := context.Background()

	startTime := time.Now()
	img, stats, err := renderImage(ctx, selectedScene, cfg, logger, printProgress())
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Bounces per pixel: %.2f (max %d), %d of %d primary rays missed\n",
		stats.AverageBounces, stats.MaxBouncesUsed, stats.MissedPixels, stats.TotalPixels)

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("render_%s.png", timestamp)

	if err := exporter.Export(ctx, img.ToRGBA(), filename); err != nil {
		fmt.Printf("Error saving render: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-12s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Settings are also read from .env and RAYTRACER_* environment variables.")
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
}

// createScene returns the scene to render and the name used for its output directory
func createScene(sceneType, sceneFile string) (*scene.Scene, string, error) {
	if sceneFile != "" {
		s, err := loaders.LoadScene(sceneFile)
		if err != nil {
			return nil, "", err
		}
		name := filepath.Base(sceneFile)
		return s, name[:len(name)-len(filepath.Ext(name))], nil
	}

	s, err := scene.NewBuiltinScene(sceneType)
	if err != nil {
		return nil, "", err
	}
	return s, sceneType, nil
}

// createExporter writes to <output>/<scene>/ and optionally uploads under the scene name
func createExporter(cfg config.Config, sceneName string, uploadS3 bool) (export.Exporter, error) {
	logger := core.NewDefaultLogger()
	exporters := export.Multi{export.NewFileExporter(filepath.Join(cfg.OutputDir, sceneName), logger)}

	if uploadS3 {
		opts := cfg.S3
		opts.Prefix = filepath.ToSlash(filepath.Join(opts.Prefix, sceneName))
		s3Exporter, err := export.NewS3Exporter(opts, logger)
		if err != nil {
			return nil, err
		}
		exporters = append(exporters, s3Exporter)
	}
	return exporters, nil
}

// renderImage renders at the supersampled size, filters down to the configured size, then
// optionally upscales to the target size
func renderImage(ctx context.Context, s *scene.Scene, cfg config.Config, logger core.Logger, onTile func(renderer.TileCompletionResult)) (*renderer.Image, renderer.RenderStats, error) {
	renderWidth, renderHeight := resample.Supersampled(cfg.Width, cfg.Height, cfg.Supersample)

	// The screen rectangle follows the output aspect, not the supersampled size
	opts := renderer.DefaultOptions(s, renderWidth, renderHeight)
	opts.Screen = s.CameraConfig.ScreenFor(cfg.Width, cfg.Height)
	opts.NumWorkers = cfg.Workers
	opts.TileSize = cfg.TileSize
	if cfg.MaxDepth >= 0 {
		opts.MaxDepth = cfg.MaxDepth
	}

	raytracer, err := renderer.NewRaytracer(s, opts, logger)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	img, stats, err := raytracer.Render(ctx, onTile)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	if cfg.Supersample > 1 {
		img, err = resample.Downsample(img, cfg.Width, cfg.Height, resize.Lanczos3)
		if err != nil {
			return nil, renderer.RenderStats{}, err
		}
	}

	if cfg.TargetWidth > 0 && cfg.TargetHeight > 0 {
		img, err = resample.NearestNeighbor(img, cfg.TargetWidth, cfg.TargetHeight)
		if err != nil {
			return nil, renderer.RenderStats{}, err
		}
	}

	return img, stats, nil
}

// printProgress returns a tile callback that prints every 10% of finished pixels
func printProgress() func(renderer.TileCompletionResult) {
	nextDecile := 1
	return func(result renderer.TileCompletionResult) {
		for nextDecile <= 10 && result.Progress*10 >= float64(nextDecile) {
			fmt.Printf("Progress: %d%% (%d/%d tiles)\n", nextDecile*10, result.TileNumber, result.TotalTiles)
			nextDecile++
		}
	}
}
