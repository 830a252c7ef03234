package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/litescript/ls-skysim/internal/colour"
)

// Catalog is a user-supplied object list. Entries with ra/dec become stars
// projected per frame; entries with x/y are fixed raster positions.
type Catalog struct {
	Stars   []Star
	Colours map[string]colour.Spec // explicit colours for Stars, by name
	Fixed   Table
}

type fileCatalog struct {
	Objects []fileObject `toml:"object"`
}

type fileObject struct {
	ID        string   `toml:"id"`
	RA        *float64 `toml:"ra"`
	Dec       *float64 `toml:"dec"`
	X         *float64 `toml:"x"`
	Y         *float64 `toml:"y"`
	Magnitude *float64 `toml:"magnitude"`
	Spectral  string   `toml:"spectral"`
	Colour    any      `toml:"colour"`
}

// ErrInvalidEntry is wrapped by every per-entry catalog error.
var ErrInvalidEntry = errors.New("invalid catalog entry")

// LoadFile reads a TOML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	cat, err := LoadTOML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// LoadTOML decodes a catalog of [[object]] tables. Unknown keys are rejected.
func LoadTOML(r io.Reader) (*Catalog, error) {
	var fc fileCatalog
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	cat := &Catalog{Colours: make(map[string]colour.Spec)}
	for i, o := range fc.Objects {
		if err := cat.add(o); err != nil {
			return nil, fmt.Errorf("object %d (%q): %w", i, o.ID, err)
		}
	}
	return cat, nil
}

func (c *Catalog) add(o fileObject) error {
	if o.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if o.Magnitude == nil {
		return fmt.Errorf("%w: missing magnitude", ErrInvalidEntry)
	}

	spec := colour.Spectral(o.Spectral)
	explicit := o.Colour != nil
	if explicit {
		var err error
		if spec, err = colour.ParseSpec(o.Colour); err != nil {
			return err
		}
	}

	equatorial := o.RA != nil || o.Dec != nil
	fixed := o.X != nil || o.Y != nil
	switch {
	case equatorial && fixed:
		return fmt.Errorf("%w: give either ra/dec or x/y, not both", ErrInvalidEntry)
	case equatorial:
		if o.RA == nil || o.Dec == nil {
			return fmt.Errorf("%w: ra and dec must both be set", ErrInvalidEntry)
		}
		if *o.Dec < -90 || *o.Dec > 90 {
			return fmt.Errorf("%w: dec %g out of range", ErrInvalidEntry, *o.Dec)
		}
		c.Stars = append(c.Stars, Star{
			Name:     o.ID,
			RAdeg:    *o.RA,
			DecDeg:   *o.Dec,
			Mag:      *o.Magnitude,
			Spectral: o.Spectral,
		})
		if explicit {
			c.Colours[o.ID] = spec
		}
	case fixed:
		if o.X == nil || o.Y == nil {
			return fmt.Errorf("%w: x and y must both be set", ErrInvalidEntry)
		}
		c.Fixed = append(c.Fixed, Object{
			ID:        o.ID,
			X:         *o.X,
			Y:         *o.Y,
			Projected: true,
			Magnitude: *o.Magnitude,
			Colour:    spec,
		})
	default:
		return fmt.Errorf("%w: no position (ra/dec or x/y)", ErrInvalidEntry)
	}
	return nil
}

// Provider returns a provider for the catalog's stars through proj followed
// by its fixed objects.
func (c *Catalog) Provider(proj Projector) Provider {
	stars := NewStarProvider(c.Stars, proj)
	stars.Colours = c.Colours
	return Merge(stars, StaticProvider{Table: c.Fixed})
}
