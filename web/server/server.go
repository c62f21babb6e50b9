package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/resample"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// DefaultRenderTimeout bounds a single render request
const DefaultRenderTimeout = 20 * time.Second

// Server handles web requests for the raytracer
type Server struct {
	port          int
	scenesDir     string // Directory of JSON scenes offered next to the built-in ones
	renderTimeout time.Duration
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	return &Server{
		port:          port,
		scenesDir:     scenesDir,
		renderTimeout: DefaultRenderTimeout,
	}
}

// SetRenderTimeout changes how long a render may run before it is aborted
func (s *Server) SetRenderTimeout(timeout time.Duration) {
	s.renderTimeout = timeout
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string `json:"scene"`       // Scene ID (e.g., "default")
	Width       int    `json:"width"`       // Image width
	Height      int    `json:"height"`      // Image height
	MaxDepth    int    `json:"maxDepth"`    // Reflection depth, -1 keeps the scene's value
	Supersample int    `json:"supersample"` // Supersample factor
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	AverageBounces float64 `json:"averageBounces"`
	MaxBouncesUsed int     `json:"maxBouncesUsed"`
	MissedPixels   int     `json:"missedPixels"`
}

func toStats(rs renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    rs.TotalPixels,
		AverageBounces: rs.AverageBounces,
		MaxBouncesUsed: rs.MaxBouncesUsed,
		MissedPixels:   rs.MissedPixels,
	}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes followed by any JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	scenes := scene.ListBuiltinScenes()
	if s.scenesDir != "" {
		jsonScenes, err := scene.ListJSONScenes(s.scenesDir)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		scenes = append(scenes, jsonScenes...)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scenes)
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	startTime := time.Now()
	img, stats, err := s.runRenderWithTimeout(r.Context(), sceneObj, req, log.Default(), nil)
	if err != nil {
		writeRenderError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img.ToRGBA(), imaging.PNG); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	log.Printf("Render of %s (%dx%d) finished in %v, %.2f bounces per pixel",
		req.Scene, req.Width, req.Height, time.Since(startTime), stats.AverageBounces)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// runRenderWithTimeout renders req under the server's deadline, supersampling when asked
func (s *Server) runRenderWithTimeout(ctx context.Context, sceneObj *scene.Scene, req *RenderRequest,
	logger core.Logger, onTile func(renderer.TileCompletionResult)) (*renderer.Image, renderer.RenderStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	renderWidth, renderHeight := resample.Supersampled(req.Width, req.Height, req.Supersample)
	opts := renderer.DefaultOptions(sceneObj, renderWidth, renderHeight)
	opts.Screen = sceneObj.CameraConfig.ScreenFor(req.Width, req.Height)
	if req.MaxDepth >= 0 {
		opts.MaxDepth = req.MaxDepth
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, opts, logger)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	img, stats, err := raytracer.Render(ctx, onTile)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	if req.Supersample > 1 {
		img, err = resample.Downsample(img, req.Width, req.Height, resize.Lanczos3)
		if err != nil {
			return nil, renderer.RenderStats{}, err
		}
	}
	return img, stats, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	query := r.URL.Query()

	// Parse scene name (string parameter, validated when the scene is created)
	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = "default" // Default scene
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 1, 2000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", -1, -1, 50); err != nil {
		return nil, err
	}
	if req.Supersample, err = parseIntParam(query, "supersample", 1, 1, 4); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height*req.Supersample*req.Supersample > 1920*1080 {
		log.Printf("Render warning: %dx%d at %dx supersampling may render slowly", req.Width, req.Height, req.Supersample)
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves a built-in scene ID, then a JSON scene ID from the scenes directory
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	sceneObj, err := scene.NewBuiltinScene(sceneName)
	if err == nil {
		return sceneObj, nil
	}
	if !errors.Is(err, scene.ErrUnknownScene) || s.scenesDir == "" {
		return nil, err
	}

	jsonScenes, listErr := scene.ListJSONScenes(s.scenesDir)
	if listErr != nil {
		return nil, listErr
	}
	for _, info := range jsonScenes {
		if info.ID == sceneName {
			return loaders.LoadScene(info.FilePath)
		}
	}
	return nil, err
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeRenderError maps render failures to status codes
func writeRenderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		writeJSONError(w, http.StatusServiceUnavailable, "render timed out")
	case errors.Is(err, core.ErrInvalidConfig):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
