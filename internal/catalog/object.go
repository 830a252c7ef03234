// Package catalog supplies the tables of celestial objects drawn into each
// frame: the built-in bright star list, user catalogs loaded from TOML, and the
// projection that places them on the raster.
package catalog

import (
	"context"
	"math"

	"github.com/litescript/ls-skysim/internal/colour"
	"github.com/litescript/ls-skysim/internal/sky"
)

// Object is one entry of a frame's object table.
type Object struct {
	ID        string
	X, Y      float64 // raster position, column and row
	Projected bool    // false when the object has no raster position
	Magnitude float64
	Colour    colour.Spec
}

// Pixel returns the nearest raster pixel to the object's position.
func (o Object) Pixel() (x, y int) {
	return int(math.Round(o.X)), int(math.Round(o.Y))
}

// Table is an ordered set of objects. Tables are treated as read-only once
// built; filters return new tables.
type Table []Object

// Magnitudes returns the magnitude column.
func (t Table) Magnitudes() []float64 {
	out := make([]float64, len(t))
	for i, o := range t {
		out[i] = o.Magnitude
	}
	return out
}

// Provider produces the object table for a frame.
type Provider interface {
	Objects(ctx context.Context, ft sky.FrameTime) (Table, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, ft sky.FrameTime) (Table, error)

// Objects implements Provider.
func (f ProviderFunc) Objects(ctx context.Context, ft sky.FrameTime) (Table, error) {
	return f(ctx, ft)
}

// StaticProvider returns the same pre-projected table for every frame.
type StaticProvider struct {
	Table Table
}

// Objects implements Provider. The returned table is a copy.
func (p StaticProvider) Objects(ctx context.Context, _ sky.FrameTime) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(Table, len(p.Table))
	copy(out, p.Table)
	return out, nil
}

// Merge returns a provider that concatenates the tables of ps in order.
func Merge(ps ...Provider) Provider {
	return ProviderFunc(func(ctx context.Context, ft sky.FrameTime) (Table, error) {
		var out Table
		for _, p := range ps {
			t, err := p.Objects(ctx, ft)
			if err != nil {
				return nil, err
			}
			out = append(out, t...)
		}
		return out, nil
	})
}
