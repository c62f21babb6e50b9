// Package resample changes the resolution of rendered images.
package resample

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/nfnt/resize"
)

// NearestNeighbor scales img to width x height. Target pixel (x, y) copies source pixel
// (floor(x*srcW/width), floor(y*srcH/height)).
func NearestNeighbor(img *renderer.Image, width, height int) (*renderer.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("target size must be positive, got %dx%d: %w", width, height, core.ErrInvalidConfig)
	}
	if img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("cannot resample an empty image: %w", core.ErrInvalidConfig)
	}

	out := renderer.NewImage(width, height)
	for y := 0; y < height; y++ {
		sy := y * img.Height / height
		for x := 0; x < width; x++ {
			sx := x * img.Width / width
			out.SetPixel(x, y, img.Pixel(sx, sy))
		}
	}
	return out, nil
}

// Downsample filters img down to width x height, used to turn a supersampled render into an
// anti-aliased one. Precision is 16 bits per channel.
func Downsample(img *renderer.Image, width, height int, filter resize.InterpolationFunction) (*renderer.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("target size must be positive, got %dx%d: %w", width, height, core.ErrInvalidConfig)
	}
	if width == img.Width && height == img.Height {
		return img, nil
	}

	scaled := resize.Resize(uint(width), uint(height), img.ToRGBA64(), filter)
	return renderer.ImageFromImage(scaled), nil
}

// Supersampled returns the render size for a target size and supersample factor
func Supersampled(width, height, factor int) (int, int) {
	if factor < 1 {
		factor = 1
	}
	return width * factor, height * factor
}
