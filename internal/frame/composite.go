package frame

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/litescript/ls-skysim/internal/catalog"
	"github.com/litescript/ls-skysim/internal/colour"
	"github.com/litescript/ls-skysim/internal/photometry"
)

// ErrNonFinite is returned when an object's brightness cannot be computed.
var ErrNonFinite = errors.New("non-finite brightness")

// Stats summarizes one FillObjects call.
type Stats struct {
	Objects   int      // objects drawn
	Pixels    int      // pixel writes
	Fallbacks []string // IDs drawn with the fallback spectral colour
}

// Falloff returns the fraction of an object's light that reaches a pixel at
// distance d. It is a Gaussian with sigma airy, shifted and rescaled so that
// Falloff(0) is 1 and every distance at or beyond spread gets 0.
func Falloff(d, airy, spread float64) float64 {
	d = math.Abs(d)
	if d >= spread {
		return 0
	}
	if airy <= 0 {
		if d == 0 {
			return 1
		}
		return 0
	}
	edge := gaussian(spread, airy)
	return (gaussian(d, airy) - edge) / (1 - edge)
}

func gaussian(d, sigma float64) float64 {
	return math.Exp(-d * d / (2 * sigma * sigma))
}

// AddObject draws a point of light of colour c centred on pixel (x, y).
// Every pixel closer than spread is blended from the background toward c by
// brightness times the falloff, and keeps the brighter of that value and
// what it already holds, channel by channel. It returns the number of pixels
// written.
func (m *Image) AddObject(x, y int, brightness float64, c colour.RGB, airy, spread float64) int {
	brightness = math.Max(0, math.Min(1, brightness))
	c = c.Clamped()
	r := int(math.Ceil(spread))
	written := 0
	for dy := -r; dy <= r; dy++ {
		py := y + dy
		if py < 0 || py >= m.Height {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			px := x + dx
			if px < 0 || px >= m.Width {
				continue
			}
			f := Falloff(math.Hypot(float64(dx), float64(dy)), airy, spread)
			if f <= 0 {
				continue
			}
			candidate := colour.Lerp(m.Background, c, brightness*f)
			i := py*m.Width + px
			m.Pix[i] = colour.Max(m.Pix[i], candidate)
			written++
		}
	}
	return written
}

// FillObjects draws every object of t into m, brightest first. limit is the
// frame's limiting magnitude. Colours are resolved with cfg.Spectral; an
// unknown spectral type falls back to the table's default colour and is
// reported in Stats, while any other colour error stops the frame.
func FillObjects(m *Image, t catalog.Table, cfg RenderConfig, limit float64) (Stats, error) {
	var stats Stats
	if len(t) == 0 {
		return stats, nil
	}

	ordered := slices.Clone(t)
	slices.SortStableFunc(ordered, func(a, b catalog.Object) int {
		if c := cmp.Compare(a.Magnitude, b.Magnitude); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	brightness := brightnessFunc(ordered, cfg, limit)
	conv := colour.NewConverter(cfg.Spectral)

	for i, o := range ordered {
		c, err := conv.Convert(o.Colour)
		if colour.IsFatal(err) {
			return stats, fmt.Errorf("object %q: %w", o.ID, err)
		}
		if err != nil {
			stats.Fallbacks = append(stats.Fallbacks, o.ID)
		}

		b := brightness(i)
		if !finite(b) {
			return stats, fmt.Errorf("object %q (magnitude %g): %w", o.ID, o.Magnitude, ErrNonFinite)
		}

		x, y := o.Pixel()
		stats.Pixels += m.AddObject(x, y, b, c, cfg.AiryDiskRadius, cfg.MaxSpreadRadius)
		stats.Objects++
	}
	return stats, nil
}

func brightnessFunc(t catalog.Table, cfg RenderConfig, limit float64) func(i int) float64 {
	if cfg.Scale == ScaleTable {
		scaled := photometry.TableBrightness(t.Magnitudes(), cfg.MinimumBrightness)
		for i, o := range t {
			if !finite(o.Magnitude) {
				scaled[i] = math.NaN()
			}
		}
		return func(i int) float64 { return scaled[i] }
	}
	return func(i int) float64 {
		m := t[i].Magnitude
		if !finite(m) || !finite(limit) {
			return math.NaN()
		}
		return photometry.ScaledBrightness(m, limit, cfg.BrightestMagnitude, cfg.MinimumBrightness)
	}
}
