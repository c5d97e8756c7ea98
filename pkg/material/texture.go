// Package material implements the surface models evaluated during light
// transport: diffuse, metallic, dielectric, and emissive surfaces, with
// albedo supplied by solid colors or decoded image textures.
package material

import (
	"image"

	"github.com/lumentrace/lumen/pkg/geom"
)

// ColorSource supplies the albedo at a surface coordinate. Solid colors
// ignore the coordinates; image textures sample the decoded asset.
type ColorSource interface {
	Evaluate(u, v float64) geom.Vec3
}

// SolidColor is a constant color source.
type SolidColor struct {
	Color geom.Vec3
}

// NewSolidColor creates a constant color source.
func NewSolidColor(c geom.Vec3) SolidColor {
	return SolidColor{Color: c}
}

// Evaluate returns the constant color.
func (s SolidColor) Evaluate(u, v float64) geom.Vec3 {
	return s.Color
}

// ImageTexture samples a decoded image by surface coordinates.
type ImageTexture struct {
	img    image.Image
	width  int
	height int
}

// NewImageTexture wraps a decoded image as a color source.
func NewImageTexture(img image.Image) *ImageTexture {
	b := img.Bounds()
	return &ImageTexture{img: img, width: b.Dx(), height: b.Dy()}
}

// Evaluate samples the image at (u, v) with v flipped so v=0 is the bottom
// row, matching the convention of the scene camera.
func (t *ImageTexture) Evaluate(u, v float64) geom.Vec3 {
	if t.width == 0 || t.height == 0 {
		return geom.Vec3{}
	}

	u = clamp01(u)
	v = 1.0 - clamp01(v)

	x := int(u * float64(t.width))
	y := int(v * float64(t.height))
	if x >= t.width {
		x = t.width - 1
	}
	if y >= t.height {
		y = t.height - 1
	}

	b := t.img.Bounds()
	r, g, bl, _ := t.img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	const scale = 1.0 / 65535.0
	return geom.NewVec3(float64(r)*scale, float64(g)*scale, float64(bl)*scale)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
