package catalog

import (
	"context"
	"fmt"
	"math"

	"github.com/litescript/ls-skysim/internal/astro"
	"github.com/litescript/ls-skysim/internal/colour"
	"github.com/litescript/ls-skysim/internal/sky"
)

// Projector maps horizontal coordinates onto the raster around a camera
// direction. Azimuth runs left to right and elevation bottom to top, each
// scaled linearly across its field of view.
type Projector struct {
	Width, Height int
	CamAz, CamEl  float64 // camera direction in degrees
	FOVAz, FOVEl  float64 // field of view in degrees
}

// NewProjector returns a projector with a horizontal field of view of fovDeg
// and a vertical one matching the raster's aspect ratio.
func NewProjector(width, height int, camAz, camEl, fovDeg float64) Projector {
	fovEl := fovDeg
	if width > 0 {
		fovEl = fovDeg * float64(height) / float64(width)
	}
	return Projector{
		Width:  width,
		Height: height,
		CamAz:  math.Mod(camAz, 360),
		CamEl:  camEl,
		FOVAz:  fovDeg,
		FOVEl:  fovEl,
	}
}

// Validate checks the projector geometry.
func (p Projector) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("projector: raster %dx%d must be positive", p.Width, p.Height)
	}
	if p.FOVAz <= 0 || p.FOVAz > 360 || p.FOVEl <= 0 || p.FOVEl > 180 {
		return fmt.Errorf("projector: field of view %gx%g out of range", p.FOVAz, p.FOVEl)
	}
	return nil
}

// Project converts az/el (degrees) to raster coordinates. Directions outside
// the field of view land outside [0,Width)x[0,Height).
func (p Projector) Project(az, el float64) (x, y float64) {
	// Angular offset from camera center
	dAz := normalizeAngle(az - p.CamAz)
	dEl := el - p.CamEl

	// X: -FOVAz/2..+FOVAz/2 -> 0..Width
	// Y: +FOVEl/2..-FOVEl/2 -> 0..Height (higher el = higher on screen)
	x = (dAz + p.FOVAz/2) / p.FOVAz * float64(p.Width)
	y = (p.FOVEl/2 - dEl) / p.FOVEl * float64(p.Height)
	return x, y
}

// normalizeAngle wraps angle to the -180..+180 range.
func normalizeAngle(a float64) float64 {
	return math.Remainder(a, 360)
}

// StarProvider projects a star list for each frame's observer and instant.
// Stars below the horizon are returned unprojected.
type StarProvider struct {
	Stars     []Star
	Projector Projector
	// Colours overrides the spectral colour of stars by name.
	Colours map[string]colour.Spec
}

// NewStarProvider returns a provider for stars seen through proj.
func NewStarProvider(stars []Star, proj Projector) *StarProvider {
	return &StarProvider{Stars: stars, Projector: proj}
}

// Objects implements Provider.
func (p *StarProvider) Objects(ctx context.Context, ft sky.FrameTime) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(Table, 0, len(p.Stars))
	for _, s := range p.Stars {
		eq := astro.SkyCoord{RAdeg: s.RAdeg, DecDeg: s.DecDeg}
		horiz := astro.EquatorialToHorizontal(eq, ft.Observer, ft.Instant)

		obj := Object{
			ID:        s.Name,
			Magnitude: s.Mag,
			Colour:    colour.Spectral(s.Spectral),
		}
		if c, ok := p.Colours[s.Name]; ok {
			obj.Colour = c
		}
		if horiz.ElDeg > 0 {
			obj.X, obj.Y = p.Projector.Project(horiz.AzDeg, horiz.ElDeg)
			obj.Projected = true
		}
		out = append(out, obj)
	}
	return out, nil
}
