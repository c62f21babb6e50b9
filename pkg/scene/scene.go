package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering. It is built once and must not be
// modified while a render is running.
type Scene struct {
	Spheres      []*geometry.Sphere // Checked in order; the first sphere wins an exact tie
	Plane        *geometry.Plane    // Ground plane
	Light        Light
	Shading      ShadingConfig
	MaxDepth     int // Maximum number of reflection bounces per pixel
	CameraConfig CameraConfig
}

// Light is a point light
type Light struct {
	Position core.Vec3
	Color    core.Vec3
}

// ShadingConfig holds the Blinn-Phong coefficients shared by every surface
type ShadingConfig struct {
	Ambient          float64
	Diffuse          float64
	Specular         float64
	SpecularExponent float64
}

// CameraConfig places the eye and the screen rectangle it looks through
type CameraConfig struct {
	Origin          core.Vec3 // Eye position
	ScreenCenterX   float64   // Screen rectangle center on the z=0 plane
	ScreenCenterY   float64
	ScreenHalfWidth float64 // Half-height is derived from the image aspect ratio
}

// Screen is the rectangle on the z=0 plane that the image is mapped onto
type Screen struct {
	Left, Bottom, Right, Top float64
}

// ScreenFor returns the screen rectangle for an image of the given size
func (c CameraConfig) ScreenFor(width, height int) Screen {
	aspect := float64(width) / float64(height)
	halfHeight := c.ScreenHalfWidth / aspect
	return Screen{
		Left:   c.ScreenCenterX - c.ScreenHalfWidth,
		Bottom: c.ScreenCenterY - halfHeight,
		Right:  c.ScreenCenterX + c.ScreenHalfWidth,
		Top:    c.ScreenCenterY + halfHeight,
	}
}

// ToLight returns the unit direction used for every shading and shadow computation.
// The light is static, so this is computed once per render.
func (s *Scene) ToLight() core.Vec3 {
	return s.Light.Position.Normalize()
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := len(s.Spheres)
	if s.Plane != nil {
		count++
	}
	return count
}

// Validate rejects scenes the renderer is not defined for
func (s *Scene) Validate() error {
	for i, sphere := range s.Spheres {
		if sphere == nil {
			return fmt.Errorf("sphere %d is nil: %w", i, core.ErrInvalidConfig)
		}
		if !(sphere.Radius > 0) {
			return fmt.Errorf("sphere %d radius must be positive, got %f: %w", i, sphere.Radius, core.ErrInvalidConfig)
		}
		if !sphere.Center.IsFinite() {
			return fmt.Errorf("sphere %d center must be finite, got %v: %w", i, sphere.Center, core.ErrInvalidConfig)
		}
	}
	if s.Plane == nil {
		return fmt.Errorf("scene has no plane: %w", core.ErrInvalidConfig)
	}
	if s.Plane.Normal.LengthSquared() == 0 || !s.Plane.Normal.IsFinite() {
		return fmt.Errorf("plane normal must be a non-zero finite vector, got %v: %w", s.Plane.Normal, core.ErrInvalidConfig)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d: %w", s.MaxDepth, core.ErrInvalidConfig)
	}
	if s.Shading.SpecularExponent < 0 {
		return fmt.Errorf("specular exponent must not be negative, got %f: %w", s.Shading.SpecularExponent, core.ErrInvalidConfig)
	}
	if !s.Light.Position.IsFinite() || !s.Light.Color.IsFinite() {
		return fmt.Errorf("light must be finite: %w", core.ErrInvalidConfig)
	}
	return nil
}
