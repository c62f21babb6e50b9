package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Hit is the result of tracing one ray segment
type Hit struct {
	Point      core.Vec3
	Normal     core.Vec3
	Color      core.Vec3 // Local shaded color, black when in shadow
	Reflection float64   // Weight for the next bounce, reported even in shadow
	Shape      geometry.Shape
}

// WhittedIntegrator traces mirror reflections with direct lighting and hard shadows
type WhittedIntegrator struct {
	scene    *scene.Scene
	maxDepth int
	toLight  core.Vec3
}

// NewWhittedIntegrator creates an integrator that follows at most maxDepth bounces.
// The scene is read but never modified.
func NewWhittedIntegrator(s *scene.Scene, maxDepth int) *WhittedIntegrator {
	return &WhittedIntegrator{
		scene:    s,
		maxDepth: maxDepth,
		toLight:  s.ToLight(),
	}
}

// nearestShape finds the closest shape along the ray. Spheres are checked in scene order and
// then the plane; a later shape only wins with a strictly smaller distance.
func (w *WhittedIntegrator) nearestShape(ray core.Ray) (geometry.Shape, float64, bool) {
	var closest geometry.Shape
	closestSoFar := 0.0
	hitAnything := false

	for _, sphere := range w.scene.Spheres {
		if t, isHit := sphere.Intersect(ray); isHit && (!hitAnything || t < closestSoFar) {
			closest, closestSoFar, hitAnything = sphere, t, true
		}
	}

	if plane := w.scene.Plane; plane != nil {
		if t, isHit := plane.Intersect(ray); isHit && (!hitAnything || t < closestSoFar) {
			closest, closestSoFar, hitAnything = plane, t, true
		}
	}

	return closest, closestSoFar, hitAnything
}

// Trace casts a single ray segment and shades the nearest surface it hits
func (w *WhittedIntegrator) Trace(ray core.Ray) (Hit, bool) {
	shape, t, isHit := w.nearestShape(ray)
	if !isHit {
		return Hit{}, false
	}

	point := ray.At(t)
	normal := shape.NormalAt(point)
	mat := shape.GetMaterial()

	hit := Hit{
		Point:      point,
		Normal:     normal,
		Reflection: mat.Reflection,
		Shape:      shape,
	}

	if InShadow(w.scene.Spheres, point, normal, w.toLight) {
		return hit, true
	}

	toViewer := ray.Origin.Subtract(point).Normalize()
	hit.Color = Shade(w.scene.Shading, w.scene.Light, normal, mat.Color.Evaluate(point), w.toLight, toViewer)
	return hit, true
}

// RayColor follows the reflection chain from a primary ray, accumulating each bounce's
// shaded color weighted by the product of the reflection coefficients before it
func (w *WhittedIntegrator) RayColor(ray core.Ray) (core.Vec3, int) {
	color := core.Vec3{X: 0, Y: 0, Z: 0}
	reflection := 1.0
	bounces := 0

	for depth := 0; depth < w.maxDepth; depth++ {
		hit, isHit := w.Trace(ray)
		if !isHit {
			break
		}
		bounces++

		color = color.Add(hit.Color.Multiply(reflection))
		reflection *= hit.Reflection

		ray = NextRay(ray, hit)
	}

	return color, bounces
}

// NextRay builds the mirror reflection of ray about the hit normal, starting just off the surface
func NextRay(ray core.Ray, hit Hit) core.Ray {
	origin := hit.Point.Add(hit.Normal.Multiply(surfaceEpsilon))
	direction := ray.Direction.Reflect(hit.Normal).Normalize()
	return core.NewRay(origin, direction)
}
