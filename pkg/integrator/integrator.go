package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the unclamped color seen along a primary ray and the number of
	// surfaces the ray chain hit
	RayColor(ray core.Ray) (core.Vec3, int)
}
