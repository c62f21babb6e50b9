package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Intersect returns the distance along the ray to the nearest forward hit.
	// ok is false when the ray misses.
	Intersect(ray core.Ray) (t float64, ok bool)
	// NormalAt returns the unit surface normal at a point on the shape
	NormalAt(point core.Vec3) core.Vec3
	// GetMaterial returns the surface material
	GetMaterial() material.Material
}
