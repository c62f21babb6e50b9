package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestShade(t *testing.T) {
	cfg := scene.ShadingConfig{Ambient: 0.05, Diffuse: 1, Specular: 1, SpecularExponent: 50}
	light := scene.Light{Position: core.NewVec3(0, 10, 0), Color: core.NewVec3(1, 1, 1)}
	red := core.NewVec3(1, 0, 0)
	up := core.NewVec3(0, 1, 0)

	tests := []struct {
		name     string
		normal   core.Vec3
		toLight  core.Vec3
		toViewer core.Vec3
		expected core.Vec3
	}{
		{
			name:     "light and viewer along the normal",
			normal:   up,
			toLight:  up,
			toViewer: up,
			expected: core.NewVec3(2.05, 1.05, 1.05),
		},
		{
			name:     "light behind the surface gives ambient only",
			normal:   up,
			toLight:  core.NewVec3(0, -1, 0),
			toViewer: up,
			// Half vector is zero length, so the highlight term is pow(0, 50)
			expected: core.NewVec3(0.05, 0.05, 0.05),
		},
		{
			name:     "grazing light",
			normal:   up,
			toLight:  core.NewVec3(1, 0, 0),
			toViewer: core.NewVec3(-1, 0, 0),
			expected: core.NewVec3(0.05, 0.05, 0.05),
		},
		{
			name:     "45 degree light, mirrored viewer",
			normal:   up,
			toLight:  core.NewVec3(1, 1, 0).Normalize(),
			toViewer: core.NewVec3(-1, 1, 0).Normalize(),
			expected: core.NewVec3(0.05+1/math.Sqrt2+1, 0.05+1, 0.05+1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := Shade(cfg, light, tt.normal, red, tt.toLight, tt.toViewer)
			if !vecNear(color, tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestShade_NeverNegative(t *testing.T) {
	cfg := scene.ShadingConfig{Ambient: 0, Diffuse: 1, Specular: 1, SpecularExponent: 3}
	light := scene.Light{Color: core.NewVec3(1, 1, 1)}
	color := Shade(cfg, light, core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1),
		core.NewVec3(0, -1, 0.2).Normalize(), core.NewVec3(0.1, -1, 0).Normalize())
	if color.X < 0 || color.Y < 0 || color.Z < 0 {
		t.Errorf("Expected no negative light contribution, got %v", color)
	}
}

func TestInShadow(t *testing.T) {
	spheres := []*geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, core.NewVec3(1, 0, 0)),
	}
	up := core.NewVec3(0, 1, 0)

	tests := []struct {
		name     string
		point    core.Vec3
		normal   core.Vec3
		toLight  core.Vec3
		expected bool
	}{
		{"below the sphere", core.NewVec3(0.3, -1, 0.3), up, up, true},
		{"beside the sphere", core.NewVec3(3, -1, 0), up, up, false},
		{"on top of the sphere", core.NewVec3(0, 1, 0), up, up, false},
		{"far side of the sphere self-shadows", core.NewVec3(0, -1, 0), core.NewVec3(0, -1, 0), up, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InShadow(spheres, tt.point, tt.normal, tt.toLight); got != tt.expected {
				t.Errorf("Expected in shadow=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestInShadow_PlaneDoesNotOcclude(t *testing.T) {
	// A point below the ground plane still sees the light: only spheres are tested
	if InShadow(nil, core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)) {
		t.Error("Expected no shadow without spheres")
	}
}
