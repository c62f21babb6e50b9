package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere with a solid color
func NewSphere(center core.Vec3, radius float64, color core.Vec3) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material.NewSphereMaterial(color),
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	return IntersectSphere(ray.Origin, ray.Direction, s.Center, s.Radius)
}

// NormalAt returns the outward normal at point
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() material.Material {
	return s.Material
}

// IntersectSphere solves |O + tD - S|² = R² for the smallest non-negative t.
// When the origin is inside the sphere the far root is returned.
func IntersectSphere(origin, direction, center core.Vec3, radius float64) (float64, bool) {
	// Quadratic equation coefficients: at² + bt + c = 0
	a := direction.Dot(direction)
	oc := origin.Subtract(center)
	b := 2 * direction.Dot(oc)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return 0, false
	}

	// Pick the sign that adds magnitudes so q never cancels toward zero
	sqrtD := math.Sqrt(discriminant)
	var q float64
	if b < 0 {
		q = (-b + sqrtD) / 2
	} else {
		q = (-b - sqrtD) / 2
	}

	t0 := q / a
	t1 := c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}
