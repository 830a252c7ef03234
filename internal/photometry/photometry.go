// Package photometry converts apparent magnitudes into the normalized
// brightness used when drawing objects.
package photometry

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinimumBrightness is the brightness given to the faintest object that
	// is still drawn.
	MinimumBrightness = 0.2

	// DefaultBrightestMagnitude is the magnitude mapped to full brightness
	// (roughly Venus at its brightest).
	DefaultBrightestMagnitude = -4.6
)

// ErrDegenerateRange is returned when a rescale input range is empty.
var ErrDegenerateRange = errors.New("degenerate range")

// DegenerateRangeError records the range that could not be rescaled.
type DegenerateRangeError struct {
	Min, Max float64
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("cannot rescale from [%g, %g]: %v", e.Min, e.Max, ErrDegenerateRange)
}

func (e *DegenerateRangeError) Unwrap() error { return ErrDegenerateRange }

// MagnitudeToFlux returns the flux relative to a magnitude-zero source,
// 10^(-m/2.5). Brighter (smaller) magnitudes give larger flux.
func MagnitudeToFlux(m float64) float64 {
	return math.Pow(10, -0.4*m)
}

// LogFlux returns log10(MagnitudeToFlux(m)) computed as -0.4*m, which stays
// finite for every finite m where the flux itself would underflow to zero.
func LogFlux(m float64) float64 {
	return -0.4 * m
}

// LinearRescale maps v from [inMin, inMax] onto [outMin, outMax] without
// clamping. Either range may be reversed.
func LinearRescale(v, inMin, inMax, outMin, outMax float64) (float64, error) {
	if inMin == inMax {
		return 0, &DegenerateRangeError{Min: inMin, Max: inMax}
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin), nil
}

// ScaledBrightness returns the drawing brightness of an object of magnitude m
// when objects fainter than limit are hidden and brightest is the magnitude
// that saturates. The result lies in [minimum, 1] and does not increase as m
// increases.
//
// Brightness is perceptual: log10 of the flux, rescaled linearly. When the
// limit is not fainter than brightest (bright daylight skies) the scale falls
// back to one decade of flux above the limit.
func ScaledBrightness(m, limit, brightest, minimum float64) float64 {
	lo := LogFlux(limit)
	hi := LogFlux(brightest)
	if !(hi > lo) {
		hi = lo + 1
	}
	b, _ := LinearRescale(LogFlux(m), lo, hi, minimum, 1)
	return clamp(b, minimum, 1)
}

// Visible reports whether an object of magnitude m shows against a sky whose
// limiting magnitude is limit.
func Visible(m, limit float64) bool {
	return m <= limit
}

// TableBrightness scales each magnitude relative to the faintest and
// brightest entries of mags, mapping them onto minimum and 1. A table whose
// entries all share one magnitude gets minimum throughout.
func TableBrightness(mags []float64, minimum float64) []float64 {
	out := make([]float64, len(mags))
	if len(mags) == 0 {
		return out
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, m := range mags {
		l := LogFlux(m)
		lo = math.Min(lo, l)
		hi = math.Max(hi, l)
	}
	for i, m := range mags {
		b, err := LinearRescale(LogFlux(m), lo, hi, minimum, 1)
		if err != nil {
			b = minimum
		}
		out[i] = clamp(b, minimum, 1)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
