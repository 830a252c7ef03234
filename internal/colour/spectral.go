package colour

import (
	"maps"
	"strings"
)

// SpectralTable maps spectral classes to display colours. Keys are either full
// labels ("G2V") or single class letters ("G"); Fallback is used for anything
// that matches neither.
type SpectralTable struct {
	Colours  map[string]RGB
	Fallback RGB
}

// DefaultSpectralTable returns a fresh table with approximate colours for the
// OBAFGKM classes and white as the fallback.
func DefaultSpectralTable() SpectralTable {
	return SpectralTable{
		Colours: map[string]RGB{
			"O": mustHex("#9bb0ff"),
			"B": mustHex("#aabfff"),
			"A": mustHex("#cad7ff"),
			"F": mustHex("#f8f7ff"),
			"G": mustHex("#fff4ea"),
			"K": mustHex("#ffd2a1"),
			"M": mustHex("#ffcc6f"),
		},
		Fallback: White,
	}
}

// Clone returns a deep copy of t.
func (t SpectralTable) Clone() SpectralTable {
	return SpectralTable{Colours: maps.Clone(t.Colours), Fallback: t.Fallback}
}

// Lookup returns the colour for label, trying the exact label first and then
// its upper-cased first letter. ok is false when the fallback was used.
func (t SpectralTable) Lookup(label string) (c RGB, ok bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return t.Fallback, false
	}
	if c, ok := t.Colours[label]; ok {
		return c, true
	}
	if c, ok := t.Colours[ClassOf(label)]; ok {
		return c, true
	}
	return t.Fallback, false
}

// ClassOf returns the spectral class letter of label ("k1.5III" -> "K"),
// or "" for an empty label.
func ClassOf(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1])
}

func mustHex(s string) RGB {
	c, err := convertHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
