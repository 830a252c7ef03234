package colour

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertRGB(t *testing.T, want, got RGB) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 1e-6, "R")
	assert.InDelta(t, want.G, got.G, 1e-6, "G")
	assert.InDelta(t, want.B, got.B, 1e-6, "B")
}

func TestClamped(t *testing.T) {
	got := RGB{-0.5, 0.25, 3}.Clamped()
	assert.Equal(t, RGB{0, 0.25, 1}, got)
	assert.True(t, got.Valid())

	got = RGB{math.NaN(), 1, 0}.Clamped()
	assert.Equal(t, RGB{0, 1, 0}, got)
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name string
		a, b RGB
		t    float64
		want RGB
	}{
		{"start", Black, White, 0, Black},
		{"end", Black, White, 1, White},
		{"midpoint", Black, White, 0.5, RGB{0.5, 0.5, 0.5}},
		{"clamped above", Black, White, 7, White},
		{"clamped below", White, Black, -1, White},
		{"channels", RGB{0.2, 0.4, 0.6}, RGB{0.6, 0.4, 0.2}, 0.25, RGB{0.3, 0.4, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertRGB(t, tt.want, Lerp(tt.a, tt.b, tt.t))
		})
	}
}

func TestMax(t *testing.T) {
	assert.Equal(t, RGB{0.5, 0.7, 0.3}, Max(RGB{0.5, 0.1, 0.3}, RGB{0.2, 0.7, 0.3}))
}

func TestRGBAImplementsColor(t *testing.T) {
	var c color.Color = RGB{1, 0, 0.5}
	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0x8000), b)
	assert.Equal(t, uint32(0xffff), a)

	back := FromColor(color.RGBA{R: 255, G: 0, B: 0, A: 255})
	assertRGB(t, RGB{1, 0, 0}, back)
}

func TestHexString(t *testing.T) {
	assert.Equal(t, "#ff8000", RGB{1, 128.0 / 255, 0}.Hex())
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Spec
	}{
		{"hex", "#ff0000", Hex("#ff0000")},
		{"named", "SkyBlue", Named("SkyBlue")},
		{"spectral", "K1.5III", Spectral("K1.5III")},
		{"unit tuple", []any{0.1, 0.2, 0.3}, Tuple(0.1, 0.2, 0.3)},
		{"byte tuple", []any{int64(255), int64(0), int64(51)}, Tuple(1, 0, 0.2)},
		{"rgba tuple", []float64{255, 255, 255, 128}, Tuple(1, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpec(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.Text, got.Text)
			for i := range got.Tuple {
				assert.InDelta(t, tt.want.Tuple[i], got.Tuple[i], eps)
			}
		})
	}
}

func TestParseSpecInvalid(t *testing.T) {
	for _, in := range []any{42, []any{1, 2}, []any{"a", "b", "c"}} {
		_, err := ParseSpec(in)
		assert.ErrorIs(t, err, ErrInvalidColour, "input %v", in)
	}
}

func TestConvert(t *testing.T) {
	conv := NewConverter(DefaultSpectralTable())

	tests := []struct {
		name string
		spec Spec
		want RGB
	}{
		{"named", Named("skyblue"), RGB{135.0 / 255, 206.0 / 255, 235.0 / 255}},
		{"named case", Named("White"), White},
		{"hex long", Hex("#ff0000"), RGB{1, 0, 0}},
		{"hex short", Hex("#0f0"), RGB{0, 1, 0}},
		{"hex upper", Hex("#0000FF"), RGB{0, 0, 1}},
		{"tuple", Tuple(0.1, 0.2, 0.3), RGB{0.1, 0.2, 0.3}},
		{"tuple clamped", Tuple(-1, 0.5, 2), RGB{0, 0.5, 1}},
		{"spectral class", Spectral("M"), mustHex("#ffcc6f")},
		{"spectral full label", Spectral("g2V"), mustHex("#fff4ea")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.Convert(tt.spec)
			require.NoError(t, err)
			assertRGB(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestConvertInvalid(t *testing.T) {
	conv := NewConverter(DefaultSpectralTable())
	for _, s := range []Spec{Named("not-a-colour"), Hex("#12345"), Hex("#gg0000"), Hex("ff0000"), {Kind: Kind(99)}} {
		_, err := conv.Convert(s)
		var ice *InvalidColourError
		require.ErrorAs(t, err, &ice, "spec %v", s)
		assert.True(t, IsFatal(err))
	}
}

func TestConvertUnknownSpectral(t *testing.T) {
	table := DefaultSpectralTable()
	table.Fallback = RGB{0.9, 0.9, 0.9}
	conv := NewConverter(table)

	for _, label := range []string{"", "Q9", "  "} {
		got, err := conv.Convert(Spectral(label))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownSpectralType))
		assert.False(t, IsFatal(err))
		assert.Equal(t, table.Fallback, got)
	}

	var zero Spec
	got, err := conv.Convert(zero)
	assert.ErrorIs(t, err, ErrUnknownSpectralType)
	assert.Equal(t, table.Fallback, got)
}

func TestSpectralTableExactLabelWins(t *testing.T) {
	table := DefaultSpectralTable()
	table.Colours["K5III"] = RGB{1, 0, 0}

	c, ok := table.Lookup("K5III")
	assert.True(t, ok)
	assert.Equal(t, RGB{1, 0, 0}, c)

	c, ok = table.Lookup("K0V")
	assert.True(t, ok)
	assert.Equal(t, table.Colours["K"], c)
}

func TestDefaultSpectralTableIsFresh(t *testing.T) {
	a := DefaultSpectralTable()
	a.Colours["G"] = Black
	b := DefaultSpectralTable()
	assert.NotEqual(t, Black, b.Colours["G"])

	c := b.Clone()
	c.Colours["G"] = Black
	assert.NotEqual(t, Black, b.Colours["G"])
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, "K", ClassOf("k1.5III"))
	assert.Equal(t, "", ClassOf(""))
	assert.Equal(t, "B", ClassOf(" B8Ia"))
}
