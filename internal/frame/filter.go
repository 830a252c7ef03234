package frame

import (
	"image"
	"math"

	"github.com/litescript/ls-skysim/internal/catalog"
	"github.com/litescript/ls-skysim/internal/photometry"
)

// FilterFOV keeps the projected objects whose nearest pixel lies inside a
// width x height raster.
func FilterFOV(t catalog.Table, width, height int) catalog.Table {
	return FilterBounds(t, image.Rect(0, 0, width, height))
}

// FilterBounds keeps the projected objects whose nearest pixel lies inside r.
// Order is preserved and t is not modified.
func FilterBounds(t catalog.Table, r image.Rectangle) catalog.Table {
	out := make(catalog.Table, 0, len(t))
	for _, o := range t {
		if !o.Projected || !onRaster(o.X) || !onRaster(o.Y) {
			continue
		}
		x, y := o.Pixel()
		if image.Pt(x, y).In(r) {
			out = append(out, o)
		}
	}
	return out
}

// FilterBrightness keeps the objects no fainter than limit.
// Order is preserved and t is not modified.
func FilterBrightness(t catalog.Table, limit float64) catalog.Table {
	out := make(catalog.Table, 0, len(t))
	for _, o := range t {
		if photometry.Visible(o.Magnitude, limit) {
			out = append(out, o)
		}
	}
	return out
}

// PrepareTable reduces raw to the objects drawn in a frame: those inside the
// configured field of view and bright enough for limit.
func PrepareTable(raw catalog.Table, cfg RenderConfig, limit float64) catalog.Table {
	return FilterBrightness(FilterBounds(raw, cfg.Field()), limit)
}

// onRaster rejects coordinates that cannot be converted to a pixel index.
func onRaster(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) < maxCoordinate
}

const maxCoordinate = 1 << 30

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
