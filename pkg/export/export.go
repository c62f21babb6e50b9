// Package export writes finished renders to their destinations.
package export

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/disintegration/imaging"
)

// Exporter stores an encoded image under name
type Exporter interface {
	Export(ctx context.Context, img image.Image, name string) error
}

// FileExporter saves images below a directory. The format follows the file extension;
// names without one are written as PNG.
type FileExporter struct {
	Dir    string
	Logger core.Logger
}

// NewFileExporter creates an exporter writing into dir
func NewFileExporter(dir string, logger core.Logger) *FileExporter {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &FileExporter{Dir: dir, Logger: logger}
}

// Export writes img to Dir/name, creating the directory if needed
func (fe *FileExporter) Export(ctx context.Context, img image.Image, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filename := filepath.Join(fe.Dir, withDefaultExt(name))
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, filename); err != nil {
		return fmt.Errorf("failed to save image %s: %w", filename, err)
	}

	fe.Logger.Printf("Render saved as %s\n", filename)
	return nil
}

// Multi sends each image to every exporter in order and stops at the first failure
type Multi []Exporter

// Export implements Exporter
func (m Multi) Export(ctx context.Context, img image.Image, name string) error {
	for _, e := range m {
		if err := e.Export(ctx, img, name); err != nil {
			return err
		}
	}
	return nil
}

func withDefaultExt(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".png"
	}
	return name
}
