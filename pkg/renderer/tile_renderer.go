package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	camera     *Camera
	integrator integrator.Integrator
	progress   *Progress
}

// NewTileRenderer creates a new tile renderer. progress may be nil.
func NewTileRenderer(camera *Camera, integratorInst integrator.Integrator, progress *Progress) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		integrator: integratorInst,
		progress:   progress,
	}
}

// RenderTileBounds renders pixels within bounds into img. Callers must give concurrent calls
// non-overlapping bounds.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *Image) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Screen rows run bottom to top, image rows top to bottom
		j := img.Height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := tr.camera.GetRay(x, j)
			color, bounces := tr.integrator.RayColor(ray)
			img.SetPixel(x, y, color.Clamp(0.0, 1.0))
			tr.updateStats(&stats, bounces)
		}
		if tr.progress != nil {
			tr.progress.Add(bounds.Dx())
		}
	}

	return stats
}

// updateStats updates the render statistics with data from a single pixel
func (tr *TileRenderer) updateStats(stats *RenderStats, bounces int) {
	stats.TotalBounces += bounces
	stats.MaxBouncesUsed = max(stats.MaxBouncesUsed, bounces)
	if bounces == 0 {
		stats.MissedPixels++
	}
}
