package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// gridPalette cycles across the grid so neighbouring spheres differ
var gridPalette = []core.Vec3{
	{X: 0.9, Y: 0.2, Z: 0.2},
	{X: 0.2, Y: 0.7, Z: 0.3},
	{X: 0.2, Y: 0.3, Z: 0.9},
	{X: 0.95, Y: 0.75, Z: 0.2},
}

// NewSphereGridScene creates a size x size grid of small spheres resting on the plane
func NewSphereGridScene() *Scene {
	const (
		size    = 5
		radius  = 0.2
		spacing = 0.6
		floorY  = -0.5
	)

	s := &Scene{
		Plane: geometry.NewPlane(core.NewVec3(0, floorY, 0), core.NewVec3(0, 1, 0), material.TruncatedParity),
		Light: Light{
			Position: core.NewVec3(-4, 8, -6),
			Color:    core.NewVec3(1, 1, 1),
		},
		Shading:  DefaultShading(),
		MaxDepth: 5,
		CameraConfig: CameraConfig{
			Origin:          core.NewVec3(0, 1.2, -2),
			ScreenCenterX:   0,
			ScreenCenterY:   0.55,
			ScreenHalfWidth: 1,
		},
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			center := core.NewVec3(
				(float64(col)-float64(size-1)/2)*spacing,
				floorY+radius,
				1.0+float64(row)*spacing,
			)
			color := gridPalette[(row+col)%len(gridPalette)]
			s.Spheres = append(s.Spheres, geometry.NewSphere(center, radius, color))
		}
	}

	return s
}
