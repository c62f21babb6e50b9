package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"`      // Local shaded color before reflections
	Reflection   float64                `json:"reflection"` // Weight of the next bounce
	Properties   map[string]interface{} `json:"properties"`
}

// inspectPixel casts the primary ray through image pixel (pixelX, pixelY) and returns the
// first surface it shades
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) (integrator.Hit, core.Ray, bool) {
	opts := renderer.DefaultOptions(sceneObj, width, height)
	camera := renderer.NewCamera(opts.CameraOrigin, opts.Screen, width, height)

	// Image rows run top to bottom, screen rows bottom to top
	ray := camera.GetRay(pixelX, height-1-pixelY)

	hit, isHit := integrator.NewWhittedIntegrator(sceneObj, opts.MaxDepth).Trace(ray)
	return hit, ray, isHit
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		if solid, ok := geom.Material.Color.(*material.SolidColor); ok {
			properties["surfaceColor"] = [3]float64{solid.Color.X, solid.Color.Y, solid.Color.Z}
		}
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = [3]float64{geom.Point.X, geom.Point.Y, geom.Point.Z}
		properties["normal"] = [3]float64{geom.Normal.X, geom.Normal.Y, geom.Normal.Z}
		if checker, ok := geom.Material.Color.(*material.Checkerboard); ok {
			if checker.Parity == material.FlooredParity {
				properties["parity"] = "floored"
			} else {
				properties["parity"] = "truncated"
			}
		}
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sceneObj.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	hit, ray, isHit := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)

	w.Header().Set("Content-Type", "application/json")
	if !isHit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false})
		return
	}

	geometryType, properties := extractGeometryInfo(hit.Shape)
	response := InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.Point.Subtract(ray.Origin).Length(),
		Color:        [3]float64{hit.Color.X, hit.Color.Y, hit.Color.Z},
		Reflection:   hit.Reflection,
		Properties:   properties,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
