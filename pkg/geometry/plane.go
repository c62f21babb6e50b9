package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelEpsilon is the |D·N| below which a ray counts as parallel to a plane
const parallelEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Unit normal
	Material material.Material // Material of the plane
}

// NewPlane creates a new checkerboard plane
func NewPlane(point, normal core.Vec3, parity material.Parity) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Material: material.NewPlaneMaterial(parity),
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	return IntersectPlane(ray.Origin, ray.Direction, p.Point, p.Normal)
}

// NormalAt returns the plane normal, which is the same everywhere
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() material.Material {
	return p.Material
}

// IntersectPlane returns the distance from origin along direction to the plane through
// point with the given normal. Parallel rays and hits behind the origin are misses.
func IntersectPlane(origin, direction, point, normal core.Vec3) (float64, bool) {
	denominator := direction.Dot(normal)
	if math.Abs(denominator) < parallelEpsilon {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := point.Subtract(origin).Dot(normal) / denominator
	if t < 0 {
		return 0, false
	}
	return t, true
}
