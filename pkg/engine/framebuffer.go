package engine

import (
	"image"
	"image/color"

	"github.com/lumentrace/lumen/pkg/geom"
)

// Framebuffer is the width × height grid of linear color values produced
// by a render. During rendering each cell is written by exactly one row
// task; the buffer itself needs no locking.
type Framebuffer struct {
	Width  int
	Height int
	pixels []geom.Vec3
}

// NewFramebuffer allocates a zeroed framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pixels: make([]geom.Vec3, width*height),
	}
}

// Set writes the pixel at (x, y), with y=0 at the top row.
func (f *Framebuffer) Set(x, y int, c geom.Vec3) {
	f.pixels[y*f.Width+x] = c
}

// At returns the pixel at (x, y).
func (f *Framebuffer) At(x, y int) geom.Vec3 {
	return f.pixels[y*f.Width+x]
}

// ToImage converts the linear buffer to an 8-bit RGBA image with gamma 2
// correction, ready for PNG encoding.
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y).GammaCorrect(2.0).Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}
	return img
}
