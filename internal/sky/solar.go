package sky

import (
	"fmt"
	"slices"
	"sort"

	"github.com/litescript/ls-skysim/internal/astro"
	"github.com/litescript/ls-skysim/internal/colour"
)

// Solar elevation thresholds in degrees.
const (
	SunriseElevation     = -0.833
	CivilTwilight        = -6.0
	NauticalTwilight     = -12.0
	AstronomicalTwilight = -18.0
)

// TwilightPhase names the state of the sky for a solar elevation.
func TwilightPhase(elevation float64) string {
	switch {
	case elevation >= SunriseElevation:
		return "day"
	case elevation >= CivilTwilight:
		return "civil twilight"
	case elevation >= NauticalTwilight:
		return "nautical twilight"
	case elevation >= AstronomicalTwilight:
		return "astronomical twilight"
	default:
		return "night"
	}
}

// SolarEntry is a sky state pinned to a solar elevation.
type SolarEntry struct {
	Name           string
	Elevation      float64 // degrees
	Colour         colour.RGB
	MagnitudeLimit float64
}

// SolarPalette interpolates sky state by the Sun's elevation above the
// frame's observer. Below the lowest entry and above the highest the end
// values hold.
type SolarPalette struct {
	entries []SolarEntry
}

// NewSolarPalette sorts entries by elevation. Two entries at the same
// elevation are rejected.
func NewSolarPalette(entries ...SolarEntry) (*SolarPalette, error) {
	sorted := make([]SolarEntry, len(entries))
	for i, e := range entries {
		e.Colour = e.Colour.Clamped()
		sorted[i] = e
	}
	slices.SortStableFunc(sorted, func(a, b SolarEntry) int {
		switch {
		case a.Elevation < b.Elevation:
			return -1
		case a.Elevation > b.Elevation:
			return 1
		}
		return 0
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Elevation == sorted[i-1].Elevation {
			return nil, &PaletteError{
				Palette: "solar",
				Err:     fmt.Errorf("entries %q and %q share elevation %g°", sorted[i-1].Name, sorted[i].Name, sorted[i].Elevation),
			}
		}
	}
	return &SolarPalette{entries: sorted}, nil
}

// Entries returns a copy of the palette's entries in elevation order.
func (p *SolarPalette) Entries() []SolarEntry {
	return slices.Clone(p.entries)
}

// ColourAt returns the background colour for a solar elevation in degrees.
func (p *SolarPalette) ColourAt(elevation float64) (colour.RGB, error) {
	i, j, frac, err := p.bracket(elevation)
	if err != nil {
		return colour.Black, err
	}
	if frac == 0 {
		return p.entries[i].Colour, nil
	}
	return colour.Lerp(p.entries[i].Colour, p.entries[j].Colour, frac), nil
}

// MagnitudeAt returns the limiting magnitude for a solar elevation.
func (p *SolarPalette) MagnitudeAt(elevation float64) (float64, error) {
	i, j, frac, err := p.bracket(elevation)
	if err != nil {
		return 0, err
	}
	if frac == 0 {
		return p.entries[i].MagnitudeLimit, nil
	}
	a, b := p.entries[i].MagnitudeLimit, p.entries[j].MagnitudeLimit
	return a + (b-a)*frac, nil
}

// Background implements Model.
func (p *SolarPalette) Background(ft FrameTime) (colour.RGB, error) {
	return p.ColourAt(sunElevation(ft))
}

// MagnitudeLimit implements Model.
func (p *SolarPalette) MagnitudeLimit(ft FrameTime) (float64, error) {
	return p.MagnitudeAt(sunElevation(ft))
}

// Phase implements Phaser using the twilight definitions.
func (p *SolarPalette) Phase(ft FrameTime) string {
	return TwilightPhase(sunElevation(ft))
}

func (p *SolarPalette) bracket(el float64) (i, j int, frac float64, err error) {
	n := len(p.entries)
	if n == 0 {
		return 0, 0, 0, &PaletteError{Palette: "solar", Err: ErrEmptyPalette}
	}
	if el <= p.entries[0].Elevation {
		return 0, 0, 0, nil
	}
	if el >= p.entries[n-1].Elevation {
		return n - 1, n - 1, 0, nil
	}
	j = sort.Search(n, func(k int) bool { return p.entries[k].Elevation > el })
	i = j - 1
	lo, hi := p.entries[i].Elevation, p.entries[j].Elevation
	return i, j, (el - lo) / (hi - lo), nil
}

func sunElevation(ft FrameTime) float64 {
	return astro.SunElevation(ft.Observer, ft.Instant)
}

// DefaultSolarPalette returns a fresh solar palette following the standard
// twilight boundaries.
func DefaultSolarPalette() *SolarPalette {
	p, err := NewSolarPalette(
		SolarEntry{Name: "night", Elevation: AstronomicalTwilight, Colour: colour.RGB{R: 0.01, G: 0.01, B: 0.04}, MagnitudeLimit: 6.5},
		SolarEntry{Name: "deep twilight", Elevation: NauticalTwilight, Colour: colour.RGB{R: 0.04, G: 0.06, B: 0.16}, MagnitudeLimit: 5.5},
		SolarEntry{Name: "twilight", Elevation: CivilTwilight, Colour: colour.RGB{R: 0.12, G: 0.21, B: 0.40}, MagnitudeLimit: 3.5},
		SolarEntry{Name: "horizon glow", Elevation: SunriseElevation, Colour: colour.RGB{R: 0.36, G: 0.50, B: 0.72}, MagnitudeLimit: 0},
		SolarEntry{Name: "day", Elevation: 10, Colour: colour.RGB{R: 0.53, G: 0.81, B: 0.92}, MagnitudeLimit: -4},
	)
	if err != nil {
		panic(err)
	}
	return p
}
