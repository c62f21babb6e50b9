package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// TileUpdate represents a single finished tile sent via SSE
type TileUpdate struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	TileNumber int     `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int     `json:"totalTiles"` // Total number of tiles in the image
	Progress   float64 `json:"progress"`   // Finished share of all pixels
}

// CompleteUpdate carries the final image
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRenderStream renders with tile progress and console output streamed via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// All writes to w go through one goroutine; done closes once it has drained the channel
	sseEventChan := make(chan SSEEvent, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-done
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}

	// Setup console logging and streaming
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), consoleChan)

	startTime := time.Now()
	img, stats, err := s.runRenderWithTimeout(ctx, sceneObj, req, webLogger, func(result renderer.TileCompletionResult) {
		s.forwardConsoleMessages(ctx, consoleChan, sseEventChan)
		s.handleTileUpdate(ctx, sseEventChan, result, req.Supersample)
	})
	s.forwardConsoleMessages(ctx, consoleChan, sseEventChan)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Render error: %v", err))
		return
	}

	imageData, err := imageToBase64PNG(img.ToRGBA())
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(CompleteUpdate{
		ImageData: imageData,
		Stats:     toStats(stats),
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		log.Printf("Error marshaling completion: %v", err)
		return
	}
	s.sendEvent(ctx, sseEventChan, "complete", string(data))
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for event := range sseEventChan {
		// Check if client is still connected before writing
		if ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			// Client disconnected during write
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// forwardConsoleMessages moves pending log lines onto the SSE channel without blocking
func (s *Server) forwardConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}
			s.sendEvent(ctx, sseEventChan, "console", string(data))
		default:
			return
		}
	}
}

// outputBounds maps tile bounds in the supersampled render onto the final image,
// widening to whole output pixels
func outputBounds(bounds image.Rectangle, factor int) image.Rectangle {
	if factor <= 1 {
		return bounds
	}
	return image.Rect(
		bounds.Min.X/factor, bounds.Min.Y/factor,
		(bounds.Max.X+factor-1)/factor, (bounds.Max.Y+factor-1)/factor,
	)
}

// handleTileUpdate sends a tile completion event in final image coordinates
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, result renderer.TileCompletionResult, supersample int) {
	bounds := outputBounds(result.Bounds, supersample)
	data, err := json.Marshal(TileUpdate{
		X:          bounds.Min.X,
		Y:          bounds.Min.Y,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		TileNumber: result.TileNumber,
		TotalTiles: result.TotalTiles,
		Progress:   result.Progress,
	})
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}
	s.sendEvent(ctx, sseEventChan, "tile", string(data))
}

// sendEvent queues an event unless the client has gone away
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}
