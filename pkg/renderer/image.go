package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Image is a height x width buffer of RGB float channels. Row 0 is the top of the picture.
type Image struct {
	Width  int
	Height int
	Pix    []float64 // Row-major, 3 values per pixel
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*3),
	}
}

func (img *Image) offset(x, y int) int {
	return (y*img.Width + x) * 3
}

// Pixel returns the color at column x, row y
func (img *Image) Pixel(x, y int) core.Vec3 {
	o := img.offset(x, y)
	return core.NewVec3(img.Pix[o], img.Pix[o+1], img.Pix[o+2])
}

// SetPixel stores the color at column x, row y
func (img *Image) SetPixel(x, y int, c core.Vec3) {
	o := img.offset(x, y)
	img.Pix[o] = c.X
	img.Pix[o+1] = c.Y
	img.Pix[o+2] = c.Z
}

// Bounds returns the image rectangle
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// AverageLuminance returns the mean perceptual luminance over all pixels
func (img *Image) AverageLuminance() float64 {
	if img.Width == 0 || img.Height == 0 {
		return 0
	}
	total := 0.0
	for o := 0; o < len(img.Pix); o += 3 {
		total += 0.2126*img.Pix[o] + 0.7152*img.Pix[o+1] + 0.0722*img.Pix[o+2]
	}
	return total / float64(img.Width*img.Height)
}

// ToRGBA converts to 8-bit color with clamping and no gamma correction
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Pixel(x, y).Clamp(0.0, 1.0)
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}
	return out
}

// ToRGBA64 converts to 16-bit color, keeping more precision for resampling
func (img *Image) ToRGBA64() *image.RGBA64 {
	out := image.NewRGBA64(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Pixel(x, y).Clamp(0.0, 1.0)
			out.SetRGBA64(x, y, color.RGBA64{
				R: uint16(65535 * c.X),
				G: uint16(65535 * c.Y),
				B: uint16(65535 * c.Z),
				A: 65535,
			})
		}
	}
	return out
}

// ImageFromImage converts any image.Image into a float image
func ImageFromImage(src image.Image) *Image {
	bounds := src.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, _ := src.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			img.SetPixel(x, y, core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			))
		}
	}
	return img
}
