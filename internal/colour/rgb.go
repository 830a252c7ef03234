// Package colour converts the colour representations found in settings and
// catalogs into a canonical normalized RGB value and blends them.
package colour

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a colour with each component in [0, 1].
type RGB struct {
	R, G, B float64
}

// Common colours.
var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
)

// Clamped returns c with every component forced into [0, 1].
// NaN components become 0.
func (c RGB) Clamped() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Valid reports whether every component already lies in [0, 1].
func (c RGB) Valid() bool {
	return in01(c.R) && in01(c.G) && in01(c.B)
}

// Lerp blends from a toward b by t (0 gives a, 1 gives b). t is clamped to
// [0, 1] and the result is always a valid colour.
func Lerp(a, b RGB, t float64) RGB {
	t = clamp01(t)
	switch t {
	case 0:
		return a.Clamped()
	case 1:
		return b.Clamped()
	}
	blended := a.colorful().BlendRgb(b.colorful(), t)
	return fromColorful(blended)
}

// Max returns the per-channel maximum of a and b.
func Max(a, b RGB) RGB {
	return RGB{math.Max(a.R, b.R), math.Max(a.G, b.G), math.Max(a.B, b.B)}
}

// Luminance returns the Rec. 709 relative luminance of c.
func (c RGB) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return c.Clamped().colorful().Hex()
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	v := c.Clamped()
	return uint32(math.Round(v.R * 0xffff)),
		uint32(math.Round(v.G * 0xffff)),
		uint32(math.Round(v.B * 0xffff)),
		0xffff
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%.3f, %.3f, %.3f)", c.R, c.G, c.B)
}

// FromColor converts any color.Color, dropping alpha.
func FromColor(c color.Color) RGB {
	cf, _ := colorful.MakeColor(c)
	return fromColorful(cf)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) RGB {
	c = c.Clamped()
	return RGB{R: c.R, G: c.G, B: c.B}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func in01(v float64) bool {
	return v >= 0 && v <= 1
}
