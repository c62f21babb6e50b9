package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// surfaceEpsilon offsets secondary ray origins along the normal to avoid self-intersection
const surfaceEpsilon = 1e-4

// Shade evaluates ambient, Lambert diffuse and Blinn-Phong specular light at an unoccluded
// surface point. toLight and toViewer must be unit vectors.
func Shade(cfg scene.ShadingConfig, light scene.Light, normal, surfaceColor, toLight, toViewer core.Vec3) core.Vec3 {
	color := light.Color.Multiply(cfg.Ambient)

	// Lambert shading (diffuse)
	lambert := math.Max(normal.Dot(toLight), 0)
	color = color.Add(surfaceColor.Multiply(cfg.Diffuse * lambert))

	// Blinn-Phong shading (specular)
	halfVector := toLight.Add(toViewer).Normalize()
	highlight := math.Pow(math.Max(normal.Dot(halfVector), 0), cfg.SpecularExponent)
	return color.Add(light.Color.Multiply(cfg.Specular * highlight))
}

// InShadow reports whether any sphere blocks the way from point toward the light.
// The plane never casts shadows.
func InShadow(spheres []*geometry.Sphere, point, normal, toLight core.Vec3) bool {
	shadowRay := core.NewRay(point.Add(normal.Multiply(surfaceEpsilon)), toLight)
	for _, sphere := range spheres {
		if _, isHit := sphere.Intersect(shadowRay); isHit {
			return true
		}
	}
	return false
}
