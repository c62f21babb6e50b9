package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Camera generates primary rays from a fixed eye through a screen rectangle on the z=0 plane
type Camera struct {
	origin  core.Vec3
	screenX []float64 // Screen X coordinate for each pixel column
	screenY []float64 // Screen Y coordinate for each pixel index, bottom to top
}

// NewCamera creates a camera for a width x height image
func NewCamera(origin core.Vec3, screen scene.Screen, width, height int) *Camera {
	return &Camera{
		origin:  origin,
		screenX: linspace(screen.Left, screen.Right, width),
		screenY: linspace(screen.Bottom, screen.Top, height),
	}
}

// ScreenPoint returns the screen-space point for column i and row index j, where j=0 is the
// bottom of the screen
func (c *Camera) ScreenPoint(i, j int) core.Vec3 {
	return core.NewVec3(c.screenX[i], c.screenY[j], 0)
}

// GetRay returns the normalized primary ray through pixel (i, j)
func (c *Camera) GetRay(i, j int) core.Ray {
	direction := c.ScreenPoint(i, j).Subtract(c.origin).Normalize()
	return core.NewRay(c.origin, direction)
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// linspace returns n evenly spaced values from start to stop inclusive
func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	values := make([]float64, n)
	if n == 1 {
		values[0] = start
		return values
	}
	step := (stop - start) / float64(n-1)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	values[n-1] = stop
	return values
}
