package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Reflection coefficients for the two surface kinds
const (
	SphereReflection = 0.5
	PlaneReflection  = 0.2
)

// Material describes how a surface is colored and how much of the next bounce it keeps
type Material struct {
	Color      ColorSource
	Reflection float64 // Weight applied to the following reflection bounce
}

// NewSphereMaterial creates the solid-colored material used by spheres
func NewSphereMaterial(color core.Vec3) Material {
	return Material{Color: NewSolidColor(color), Reflection: SphereReflection}
}

// NewPlaneMaterial creates the checkerboard material used by the ground plane
func NewPlaneMaterial(parity Parity) Material {
	return Material{Color: NewCheckerboard(parity), Reflection: PlaneReflection}
}
