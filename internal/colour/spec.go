package colour

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Kind identifies which variant a Spec holds.
type Kind int

const (
	KindNone Kind = iota
	KindNamed
	KindHex
	KindTuple
	KindSpectral
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNamed:
		return "named"
	case KindHex:
		return "hex"
	case KindTuple:
		return "tuple"
	case KindSpectral:
		return "spectral"
	default:
		return "unknown"
	}
}

// Spec is an unresolved colour as written in a settings file or catalog:
// a colour name, a hex string, an explicit tuple or a spectral-type label.
// The zero value is a spectral spec with an empty label, which resolves to the
// spectral fallback colour.
type Spec struct {
	Kind  Kind
	Text  string // name, hex string or spectral label
	Tuple [3]float64
}

// Named returns a spec for a CSS/SVG colour name such as "skyblue".
func Named(name string) Spec { return Spec{Kind: KindNamed, Text: name} }

// Hex returns a spec for "#rgb" or "#rrggbb".
func Hex(s string) Spec { return Spec{Kind: KindHex, Text: s} }

// Tuple returns a spec for explicit components in [0,1].
func Tuple(r, g, b float64) Spec { return Spec{Kind: KindTuple, Tuple: [3]float64{r, g, b}} }

// Spectral returns a spec for a spectral classification label ("G2V", "M").
func Spectral(label string) Spec { return Spec{Kind: KindSpectral, Text: label} }

// FromRGB wraps an already resolved colour.
func FromRGB(c RGB) Spec { return Tuple(c.R, c.G, c.B) }

func (s Spec) String() string {
	switch s.Kind {
	case KindTuple:
		return fmt.Sprintf("(%g, %g, %g)", s.Tuple[0], s.Tuple[1], s.Tuple[2])
	case KindNone:
		return "spectral:"
	default:
		return s.Kind.String() + ":" + s.Text
	}
}

// ErrInvalidColour is matched by every InvalidColourError.
var ErrInvalidColour = errors.New("invalid colour")

// ErrUnknownSpectralType marks a spectral label that fell back to the default
// colour. It is recoverable: the colour returned alongside it is usable.
var ErrUnknownSpectralType = errors.New("unknown spectral type")

// InvalidColourError reports an input that matches no colour variant.
type InvalidColourError struct {
	Input  string
	Reason string
}

func (e *InvalidColourError) Error() string {
	return fmt.Sprintf("invalid colour %q: %s", e.Input, e.Reason)
}

func (e *InvalidColourError) Unwrap() error { return ErrInvalidColour }

// UnknownSpectralError carries the label that fell back.
type UnknownSpectralError struct {
	Label string
}

func (e *UnknownSpectralError) Error() string {
	return fmt.Sprintf("unknown spectral type %q, using fallback colour", e.Label)
}

func (e *UnknownSpectralError) Unwrap() error { return ErrUnknownSpectralType }

// ParseSpec converts a loosely typed value (from TOML or similar) into a Spec.
// Strings beginning with '#' are hex; strings naming a known colour are named;
// any other string is a spectral label. Numeric lists of length 3 or 4 are
// tuples (alpha dropped); if any component exceeds 1 the list is read as 0-255.
func ParseSpec(v any) (Spec, error) {
	switch x := v.(type) {
	case Spec:
		return x, nil
	case RGB:
		return FromRGB(x), nil
	case string:
		s := strings.TrimSpace(x)
		switch {
		case strings.HasPrefix(s, "#"):
			return Hex(s), nil
		case isColourName(s):
			return Named(s), nil
		default:
			return Spectral(s), nil
		}
	case []float64:
		return tupleFrom(x)
	case []any:
		vals := make([]float64, len(x))
		for i, e := range x {
			f, ok := toFloat(e)
			if !ok {
				return Spec{}, &InvalidColourError{Input: fmt.Sprint(v), Reason: fmt.Sprintf("component %d is not a number", i)}
			}
			vals[i] = f
		}
		return tupleFrom(vals)
	default:
		return Spec{}, &InvalidColourError{Input: fmt.Sprint(v), Reason: fmt.Sprintf("unsupported type %T", v)}
	}
}

func tupleFrom(vals []float64) (Spec, error) {
	if len(vals) != 3 && len(vals) != 4 {
		return Spec{}, &InvalidColourError{Input: fmt.Sprint(vals), Reason: "need 3 or 4 components"}
	}
	scale := 1.0
	for _, v := range vals[:3] {
		if v > 1 {
			scale = 255
			break
		}
	}
	return Tuple(vals[0]/scale, vals[1]/scale, vals[2]/scale), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}

func isColourName(s string) bool {
	_, ok := colornames.Map[strings.ToLower(s)]
	return ok
}

// Converter resolves Specs to RGB using an injected spectral table.
type Converter struct {
	Spectral SpectralTable
}

// NewConverter returns a converter using table for spectral labels.
func NewConverter(table SpectralTable) Converter {
	return Converter{Spectral: table}
}

// Convert resolves s. For spectral labels that are not in the table the
// fallback colour is returned together with an *UnknownSpectralError; callers
// that only care about fatal problems should test with IsFatal.
func (c Converter) Convert(s Spec) (RGB, error) {
	switch s.Kind {
	case KindNamed:
		return convertNamed(s.Text)
	case KindHex:
		return convertHex(s.Text)
	case KindTuple:
		return RGB{s.Tuple[0], s.Tuple[1], s.Tuple[2]}.Clamped(), nil
	case KindSpectral, KindNone:
		rgb, ok := c.Spectral.Lookup(s.Text)
		if !ok {
			return rgb, &UnknownSpectralError{Label: s.Text}
		}
		return rgb, nil
	default:
		return Black, &InvalidColourError{Input: s.String(), Reason: "unknown colour kind"}
	}
}

// IsFatal reports whether err from Convert must stop processing. Unknown
// spectral types are not fatal.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrUnknownSpectralType)
}

func convertNamed(name string) (RGB, error) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Black, &InvalidColourError{Input: name, Reason: "unknown colour name"}
	}
	return FromColor(c), nil
}

func convertHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return Black, &InvalidColourError{Input: s, Reason: "hex colour must look like #rgb or #rrggbb"}
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return Black, &InvalidColourError{Input: s, Reason: fmt.Sprintf("%q is not a hex digit", r)}
		}
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Black, &InvalidColourError{Input: s, Reason: err.Error()}
	}
	return fromColorful(c), nil
}
