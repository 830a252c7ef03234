package sky

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/litescript/ls-skysim/internal/colour"
)

// ErrEmptyPalette is returned when a palette has no entries to interpolate.
var ErrEmptyPalette = errors.New("palette has no entries")

// PaletteError describes an unusable palette.
type PaletteError struct {
	Palette string // "clock" or "solar"
	Err     error
}

func (e *PaletteError) Error() string {
	return fmt.Sprintf("%s palette: %v", e.Palette, e.Err)
}

func (e *PaletteError) Unwrap() error { return e.Err }

// Model supplies the per-frame sky state.
type Model interface {
	Background(ft FrameTime) (colour.RGB, error)
	MagnitudeLimit(ft FrameTime) (float64, error)
}

// Phaser is implemented by models that can name the sky state of a frame.
type Phaser interface {
	Phase(ft FrameTime) string
}

// Entry is one named sky state pinned to a local time of day.
type Entry struct {
	Name           string
	Seconds        float64 // seconds from local midnight
	Colour         colour.RGB
	MagnitudeLimit float64
}

// Palette interpolates sky state on a circular 24 hour axis. Between two
// entries colour and magnitude limit change linearly; after the last entry of
// the day they head back toward the first entry of the next day.
type Palette struct {
	entries []Entry
}

// NewPalette sorts entries by time of day, folding times into [0, 86400).
// Two entries at the same time are rejected.
func NewPalette(entries ...Entry) (*Palette, error) {
	sorted := make([]Entry, len(entries))
	for i, e := range entries {
		e.Seconds = wrapSeconds(e.Seconds)
		e.Colour = e.Colour.Clamped()
		sorted[i] = e
	}
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		switch {
		case a.Seconds < b.Seconds:
			return -1
		case a.Seconds > b.Seconds:
			return 1
		}
		return 0
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Seconds == sorted[i-1].Seconds {
			return nil, &PaletteError{
				Palette: "clock",
				Err:     fmt.Errorf("entries %q and %q share time %gs", sorted[i-1].Name, sorted[i].Name, sorted[i].Seconds),
			}
		}
	}
	return &Palette{entries: sorted}, nil
}

// Entries returns a copy of the palette's entries in time order.
func (p *Palette) Entries() []Entry {
	return slices.Clone(p.entries)
}

// ColourAt returns the background colour at seconds from midnight.
func (p *Palette) ColourAt(seconds float64) (colour.RGB, error) {
	i, j, frac, err := p.bracket(seconds)
	if err != nil {
		return colour.Black, err
	}
	if frac == 0 {
		return p.entries[i].Colour, nil
	}
	return colour.Lerp(p.entries[i].Colour, p.entries[j].Colour, frac), nil
}

// MagnitudeAt returns the limiting magnitude at seconds from midnight.
func (p *Palette) MagnitudeAt(seconds float64) (float64, error) {
	i, j, frac, err := p.bracket(seconds)
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
func (p *Palette) Background(ft FrameTime) (colour.RGB, error) {
	return p.ColourAt(SecondsFromMidnight(ft))
}

// MagnitudeLimit implements Model.
func (p *Palette) MagnitudeLimit(ft FrameTime) (float64, error) {
	return p.MagnitudeAt(SecondsFromMidnight(ft))
}

// Phase names the most recent entry at or before ft.
func (p *Palette) Phase(ft FrameTime) string {
	i, _, _, err := p.bracket(SecondsFromMidnight(ft))
	if err != nil {
		return ""
	}
	return p.entries[i].Name
}

// bracket finds the entries either side of seconds on the circular axis.
// frac is 0 when seconds falls exactly on entry i.
func (p *Palette) bracket(seconds float64) (i, j int, frac float64, err error) {
	n := len(p.entries)
	if n == 0 {
		return 0, 0, 0, &PaletteError{Palette: "clock", Err: ErrEmptyPalette}
	}
	if n == 1 {
		return 0, 0, 0, nil
	}
	s := wrapSeconds(seconds)

	// First entry strictly after s; the one before it is the lower bracket.
	j = sort.Search(n, func(k int) bool { return p.entries[k].Seconds > s })
	i = (j - 1 + n) % n
	j %= n

	start := p.entries[i].Seconds
	end := p.entries[j].Seconds
	if s < start {
		start -= SecondsPerDay
	}
	if end <= start {
		end += SecondsPerDay
	}
	if s == start {
		return i, j, 0, nil
	}
	return i, j, (s - start) / (end - start), nil
}

func wrapSeconds(s float64) float64 {
	s = math.Mod(s, SecondsPerDay)
	if s < 0 {
		s += SecondsPerDay
	}
	return s
}

// Hours converts hours from midnight to seconds.
func Hours(h float64) float64 {
	return h * 3600
}

// DefaultPalette returns a fresh clock palette for a mid-latitude sky.
func DefaultPalette() *Palette {
	p, err := NewPalette(
		Entry{Name: "night", Seconds: Hours(1), Colour: colour.RGB{R: 0.02, G: 0.02, B: 0.08}, MagnitudeLimit: 6},
		Entry{Name: "dawn", Seconds: Hours(6), Colour: colour.RGB{R: 0.29, G: 0.35, B: 0.54}, MagnitudeLimit: 3},
		Entry{Name: "day", Seconds: Hours(12), Colour: colour.RGB{R: 0.53, G: 0.81, B: 0.92}, MagnitudeLimit: -4},
		Entry{Name: "dusk", Seconds: Hours(18), Colour: colour.RGB{R: 0.29, G: 0.23, B: 0.42}, MagnitudeLimit: 3},
		Entry{Name: "evening", Seconds: Hours(21), Colour: colour.RGB{R: 0.04, G: 0.04, B: 0.14}, MagnitudeLimit: 5.5},
	)
	if err != nil {
		panic(err)
	}
	return p
}
