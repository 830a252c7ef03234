// Package frame composites one raster frame: it filters an object table to
// what is visible, then draws each object as a soft point of light over the
// sky background.
package frame

import (
	"image"
	"image/color"

	"github.com/litescript/ls-skysim/internal/colour"
)

// Image is a fixed-size raster of normalized RGB pixels in row-major order.
// It implements image.Image.
type Image struct {
	Width, Height int
	Background    colour.RGB // colour the frame was last filled with
	Pix           []colour.RGB
}

// NewImage returns a width x height image filled with bg.
func NewImage(width, height int, bg colour.RGB) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	img := &Image{
		Width:  width,
		Height: height,
		Pix:    make([]colour.RGB, width*height),
	}
	img.Fill(bg)
	return img
}

// Fill sets every pixel, and the background, to c.
func (m *Image) Fill(c colour.RGB) {
	c = c.Clamped()
	m.Background = c
	for i := range m.Pix {
		m.Pix[i] = c
	}
}

// RGBAt returns the pixel at (x, y), or black outside the image.
func (m *Image) RGBAt(x, y int) colour.RGB {
	if !PixelInFrame(x, y, m.Width, m.Height) {
		return colour.Black
	}
	return m.Pix[y*m.Width+x]
}

// SetRGB sets the pixel at (x, y). Points outside the image are ignored.
func (m *Image) SetRGB(x, y int, c colour.RGB) {
	if !PixelInFrame(x, y, m.Width, m.Height) {
		return
	}
	m.Pix[y*m.Width+x] = c.Clamped()
}

// Clone returns a deep copy of m.
func (m *Image) Clone() *Image {
	out := *m
	out.Pix = make([]colour.RGB, len(m.Pix))
	copy(out.Pix, m.Pix)
	return &out
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return rgbModel
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	return m.RGBAt(x, y)
}

var rgbModel = color.ModelFunc(func(c color.Color) color.Color {
	if rgb, ok := c.(colour.RGB); ok {
		return rgb
	}
	return colour.FromColor(c)
})

// PixelInFrame reports whether (x, y) lies inside a width x height raster.
func PixelInFrame(x, y, width, height int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}
