package loaders

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// vec3JSON is a vector written as [x, y, z]
type vec3JSON [3]float64

func (v vec3JSON) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func fromVec3(v core.Vec3) vec3JSON {
	return vec3JSON{v.X, v.Y, v.Z}
}

type sphereJSON struct {
	Center vec3JSON `json:"center"`
	Radius float64  `json:"radius"`
	Color  vec3JSON `json:"color"`
}

type planeJSON struct {
	Point  vec3JSON `json:"point"`
	Normal vec3JSON `json:"normal"`
	Parity string   `json:"parity"` // "truncated" (default) or "floored"
}

type lightJSON struct {
	Position vec3JSON `json:"position"`
	Color    vec3JSON `json:"color"`
}

type shadingJSON struct {
	Ambient          float64 `json:"ambient"`
	Diffuse          float64 `json:"diffuse"`
	Specular         float64 `json:"specular"`
	SpecularExponent float64 `json:"specular_exponent"`
}

type cameraJSON struct {
	Origin          vec3JSON   `json:"origin"`
	ScreenCenter    [2]float64 `json:"screen_center"`
	ScreenHalfWidth float64    `json:"screen_half_width"`
}

// sceneJSON is the file layout. Omitted plane, light, shading, camera and max_depth
// sections keep the default scene's values; omitted spheres leave the scene empty.
type sceneJSON struct {
	Spheres  []sphereJSON `json:"spheres"`
	Plane    planeJSON    `json:"plane"`
	Light    lightJSON    `json:"light"`
	Shading  shadingJSON  `json:"shading"`
	MaxDepth int          `json:"max_depth"`
	Camera   cameraJSON   `json:"camera"`
}

// LoadScene reads a JSON scene description and validates it
func LoadScene(filename string) (*scene.Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}

	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseScene decodes and validates a JSON scene description
func ParseScene(data []byte) (*scene.Scene, error) {
	doc := defaultSceneJSON()
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	parity, err := parseParity(doc.Plane.Parity)
	if err != nil {
		return nil, err
	}

	spheres := make([]*geometry.Sphere, 0, len(doc.Spheres))
	for _, sj := range doc.Spheres {
		spheres = append(spheres, geometry.NewSphere(sj.Center.toVec3(), sj.Radius, sj.Color.toVec3()))
	}

	s := &scene.Scene{
		Spheres: spheres,
		Plane:   geometry.NewPlane(doc.Plane.Point.toVec3(), doc.Plane.Normal.toVec3(), parity),
		Light: scene.Light{
			Position: doc.Light.Position.toVec3(),
			Color:    doc.Light.Color.toVec3(),
		},
		Shading: scene.ShadingConfig{
			Ambient:          doc.Shading.Ambient,
			Diffuse:          doc.Shading.Diffuse,
			Specular:         doc.Shading.Specular,
			SpecularExponent: doc.Shading.SpecularExponent,
		},
		MaxDepth: doc.MaxDepth,
		CameraConfig: scene.CameraConfig{
			Origin:          doc.Camera.Origin.toVec3(),
			ScreenCenterX:   doc.Camera.ScreenCenter[0],
			ScreenCenterY:   doc.Camera.ScreenCenter[1],
			ScreenHalfWidth: doc.Camera.ScreenHalfWidth,
		},
	}

	if !(s.CameraConfig.ScreenHalfWidth > 0) {
		return nil, fmt.Errorf("screen half width must be positive, got %f: %w", s.CameraConfig.ScreenHalfWidth, core.ErrInvalidConfig)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// defaultSceneJSON mirrors scene.NewDefaultScene so omitted fields fall back to it
func defaultSceneJSON() sceneJSON {
	d := scene.NewDefaultScene()
	doc := sceneJSON{
		Plane: planeJSON{
			Point:  fromVec3(d.Plane.Point),
			Normal: fromVec3(d.Plane.Normal),
			Parity: "truncated",
		},
		Light: lightJSON{
			Position: fromVec3(d.Light.Position),
			Color:    fromVec3(d.Light.Color),
		},
		Shading: shadingJSON{
			Ambient:          d.Shading.Ambient,
			Diffuse:          d.Shading.Diffuse,
			Specular:         d.Shading.Specular,
			SpecularExponent: d.Shading.SpecularExponent,
		},
		MaxDepth: d.MaxDepth,
		Camera: cameraJSON{
			Origin:          fromVec3(d.CameraConfig.Origin),
			ScreenCenter:    [2]float64{d.CameraConfig.ScreenCenterX, d.CameraConfig.ScreenCenterY},
			ScreenHalfWidth: d.CameraConfig.ScreenHalfWidth,
		},
	}
	return doc
}

func parseParity(name string) (material.Parity, error) {
	switch name {
	case "", "truncated":
		return material.TruncatedParity, nil
	case "floored":
		return material.FlooredParity, nil
	default:
		return 0, fmt.Errorf("unknown checker parity %q: %w", name, core.ErrInvalidConfig)
	}
}
