package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultShading returns the coefficients used by the built-in scenes
func DefaultShading() ShadingConfig {
	return ShadingConfig{
		Ambient:          0.05,
		Diffuse:          1.0,
		Specular:         1.0,
		SpecularExponent: 50,
	}
}

// NewDefaultScene creates three spheres over a checkerboard, lit from the upper left
func NewDefaultScene() *Scene {
	return &Scene{
		Spheres: []*geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0.75, 0.1, 1.0), 0.6, core.NewVec3(0, 0, 1)),
			geometry.NewSphere(core.NewVec3(-0.75, 0.1, 2.25), 0.6, core.NewVec3(0.5, 0.223, 0.5)),
			geometry.NewSphere(core.NewVec3(-2.75, 0.1, 3.5), 0.6, core.NewVec3(1.0, 0.572, 0.184)),
		},
		Plane: geometry.NewPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), material.TruncatedParity),
		Light: Light{
			Position: core.NewVec3(5, 5, -10),
			Color:    core.NewVec3(1, 1, 1),
		},
		Shading:  DefaultShading(),
		MaxDepth: 5,
		CameraConfig: CameraConfig{
			Origin:          core.NewVec3(0, 0.35, -1),
			ScreenCenterX:   0,
			ScreenCenterY:   0.25,
			ScreenHalfWidth: 1,
		},
	}
}

// NewApexScene creates a single red unit sphere at the origin, lit from directly above
func NewApexScene() *Scene {
	return &Scene{
		Spheres: []*geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, core.NewVec3(1, 0, 0)),
		},
		Plane: geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), material.TruncatedParity),
		Light: Light{
			Position: core.NewVec3(0, 10, 0),
			Color:    core.NewVec3(1, 1, 1),
		},
		Shading:  DefaultShading(),
		MaxDepth: 3,
		CameraConfig: CameraConfig{
			Origin:          core.NewVec3(0, 1.5, -4),
			ScreenCenterX:   0,
			ScreenCenterY:   0.6,
			ScreenHalfWidth: 1.2,
		},
	}
}
