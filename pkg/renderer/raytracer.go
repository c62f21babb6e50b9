package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Options contains the render parameters
type Options struct {
	Width        int          // Image width in pixels
	Height       int          // Image height in pixels
	Screen       scene.Screen // Screen rectangle on the z=0 plane
	CameraOrigin core.Vec3    // Eye position
	MaxDepth     int          // Maximum reflection bounces per pixel
	TileSize     int          // Size of each tile (64x64 recommended)
	NumWorkers   int          // Number of parallel workers (0 = use CPU count)
}

// DefaultOptions returns options taking the camera, screen and depth from the scene
func DefaultOptions(s *scene.Scene, width, height int) Options {
	return Options{
		Width:        width,
		Height:       height,
		Screen:       s.CameraConfig.ScreenFor(width, height),
		CameraOrigin: s.CameraConfig.Origin,
		MaxDepth:     s.MaxDepth,
		TileSize:     64,
		NumWorkers:   0, // Auto-detect CPU count
	}
}

// Validate rejects options the renderer is not defined for
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d: %w", o.Width, o.Height, core.ErrInvalidConfig)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d: %w", o.MaxDepth, core.ErrInvalidConfig)
	}
	if o.TileSize < 0 {
		return fmt.Errorf("tile size must not be negative, got %d: %w", o.TileSize, core.ErrInvalidConfig)
	}
	return nil
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	Bounds     image.Rectangle // Pixel bounds of the tile in the output image
	TileNumber int             // Completed tile count so far (1-based)
	TotalTiles int             // Total number of tiles in the image
	Progress   float64         // Finished share of all pixels
}

// Raytracer renders a scene into an Image using a pool of tile workers
type Raytracer struct {
	scene      *scene.Scene
	options    Options
	camera     *Camera
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer validates the scene and options and prepares a renderer
func NewRaytracer(s *scene.Scene, options Options, logger core.Logger) (*Raytracer, error) {
	if s == nil {
		return nil, fmt.Errorf("scene is nil: %w", core.ErrInvalidConfig)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if options.TileSize == 0 {
		options.TileSize = 64
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		scene:      s,
		options:    options,
		camera:     NewCamera(options.CameraOrigin, options.Screen, options.Width, options.Height),
		integrator: integrator.NewWhittedIntegrator(s, options.MaxDepth),
		logger:     logger,
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Render renders the full frame. tileCallback, if not nil, is called from the calling
// goroutine once per finished tile in completion order.
func (rt *Raytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*Image, RenderStats, error) {
	width, height := rt.options.Width, rt.options.Height
	img := NewImage(width, height)
	tiles := NewTileGrid(width, height, rt.options.TileSize)
	progress := NewProgress(width * height)

	tileRenderer := NewTileRenderer(rt.camera, rt.integrator, progress)
	workerPool := NewWorkerPool(tileRenderer, rt.options.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %dx%d (%d primitives, %d tiles, depth %d) using %d workers...\n",
		width, height, rt.scene.GetPrimitiveCount(), len(tiles), rt.options.MaxDepth, workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Image: img})
	}

	var stats RenderStats
	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.merge(result.Stats)

		if tileCallback != nil && renderErr == nil {
			tileCallback(TileCompletionResult{
				Bounds:     tiles[result.TaskID].Bounds,
				TileNumber: i + 1,
				TotalTiles: len(tiles),
				Progress:   progress.Fraction(),
			})
		}
	}
	workerPool.Stop()

	if renderErr != nil {
		return nil, RenderStats{}, fmt.Errorf("render aborted: %w", renderErr)
	}

	stats.finalize()
	return img, stats, nil
}
