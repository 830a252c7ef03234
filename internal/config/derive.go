package config

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
	"time"
	_ "time/tzdata"

	"github.com/litescript/ls-skysim/internal/astro"
	"github.com/litescript/ls-skysim/internal/catalog"
	"github.com/litescript/ls-skysim/internal/colour"
	"github.com/litescript/ls-skysim/internal/frame"
	"github.com/litescript/ls-skysim/internal/render"
	"github.com/litescript/ls-skysim/internal/sky"
)

// Error names the setting that is invalid.
type Error struct {
	Field string // dotted TOML path, e.g. "image.width"
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fieldErr(field string, format string, args ...any) *Error {
	return &Error{Field: field, Err: fmt.Errorf(format, args...)}
}

// Validate reports the first invalid setting as an *Error.
func (c *Config) Validate() error {
	o := c.Observation
	switch {
	case !inRange(o.Latitude, -90, 90):
		return fieldErr("observation.latitude", "%g is not in [-90, 90]", o.Latitude)
	case !inRange(o.Longitude, -180, 180):
		return fieldErr("observation.longitude", "%g is not in [-180, 180]", o.Longitude)
	case o.Duration < 0:
		return fieldErr("observation.duration", "must not be negative")
	case o.Interval < 0:
		return fieldErr("observation.interval", "must not be negative")
	case !inRange(o.Altitude, -90, 90):
		return fieldErr("observation.altitude", "%g is not in [-90, 90]", o.Altitude)
	case !(o.FieldOfView > 0 && o.FieldOfView <= 360):
		return fieldErr("observation.field-of-view", "%g is not in (0, 360]", o.FieldOfView)
	case math.IsNaN(o.Azimuth) || math.IsInf(o.Azimuth, 0):
		return fieldErr("observation.azimuth", "must be finite")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Start(); err != nil {
		return err
	}
	if _, err := c.RenderConfig(); err != nil {
		return err
	}
	if err := c.Projector().Validate(); err != nil {
		return &Error{Field: "observation.field-of-view", Err: err}
	}
	if _, err := c.SkyModel(); err != nil {
		return err
	}

	out := c.Output
	switch {
	case out.Filename == "":
		return fieldErr("output.filename", "must be set")
	case !(out.FPS > 0):
		return fieldErr("output.fps", "must be positive")
	case out.Workers < 0:
		return fieldErr("output.workers", "must not be negative")
	}
	return nil
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// Location loads the observation time zone. An empty name means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Observation.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Observation.Timezone)
	if err != nil {
		return nil, &Error{Field: "observation.timezone", Err: err}
	}
	return loc, nil
}

// Observer returns the observing site.
func (c *Config) Observer() astro.Observer {
	return astro.Observer{
		LatDeg: c.Observation.Latitude,
		LonDeg: c.Observation.Longitude,
		Name:   c.Observation.Location,
	}
}

// Start returns the first observation instant in local time.
func (c *Config) Start() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	d, t := c.Observation.Date, c.Observation.Time
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return time.Time{}, fieldErr("observation.date", "%s is not a valid date", d)
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, t.Hour, t.Minute, t.Second, t.Nanosecond, loc), nil
}

// Times returns the frame times of the run.
func (c *Config) Times() ([]sky.FrameTime, error) {
	start, err := c.Start()
	if err != nil {
		return nil, err
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return render.Timeline(start, c.Observation.Interval.Std(), c.Observation.Duration.Std(), loc, c.Observer()), nil
}

// Projector returns the projection for the configured camera direction.
func (c *Config) Projector() catalog.Projector {
	return catalog.NewProjector(c.Image.Width, c.Image.Height,
		c.Observation.Azimuth, c.Observation.Altitude, c.Observation.FieldOfView)
}

// Provider builds the object source: the built-in bright stars when enabled
// plus the user catalog when one is named.
func (c *Config) Provider() (catalog.Provider, error) {
	proj := c.Projector()
	var ps []catalog.Provider
	if c.Image.Stars {
		ps = append(ps, catalog.NewStarProvider(catalog.BrightStars(), proj))
	}
	if c.Image.Catalog != "" {
		cat, err := catalog.LoadFile(c.Image.Catalog)
		if err != nil {
			return nil, &Error{Field: "image.catalog", Err: err}
		}
		ps = append(ps, cat.Provider(proj))
	}
	return catalog.Merge(ps...), nil
}

var renderFields = map[string]string{
	"Width":              "image.width",
	"Height":             "image.height",
	"AiryDiskRadius":     "image.airy-disk-radius",
	"MaxSpreadRadius":    "image.max-spread-radius",
	"MinimumBrightness":  "image.minimum-brightness",
	"BrightestMagnitude": "image.brightest-magnitude",
	"FOV":                "image.fov",
	"Scale":              "image.scale",
}

// RenderConfig derives and validates the drawing parameters.
func (c *Config) RenderConfig() (frame.RenderConfig, error) {
	im := c.Image
	scale, err := frame.ParseScaleMode(im.Scale)
	if err != nil {
		return frame.RenderConfig{}, &Error{Field: "image.scale", Err: err}
	}

	var fov image.Rectangle
	switch len(im.FOV) {
	case 0:
	case 4:
		fov = image.Rect(im.FOV[0], im.FOV[1], im.FOV[2], im.FOV[3])
	default:
		return frame.RenderConfig{}, fieldErr("image.fov", "want [x0, y0, x1, y1], got %d values", len(im.FOV))
	}

	table, err := c.spectralTable()
	if err != nil {
		return frame.RenderConfig{}, err
	}

	rc := frame.RenderConfig{
		Width:              im.Width,
		Height:             im.Height,
		AiryDiskRadius:     im.AiryDiskRadius,
		MaxSpreadRadius:    im.MaxSpreadRadius,
		MinimumBrightness:  im.MinimumBrightness,
		BrightestMagnitude: im.BrightestMagnitude,
		FOV:                fov,
		Spectral:           table,
		Scale:              scale,
	}
	if err := rc.Validate(); err != nil {
		var ce *frame.ConfigError
		if errors.As(err, &ce) {
			return frame.RenderConfig{}, &Error{Field: renderFields[ce.Field], Err: errors.New(ce.Reason)}
		}
		return frame.RenderConfig{}, err
	}
	return rc, nil
}

func (c *Config) spectralTable() (colour.SpectralTable, error) {
	table := colour.DefaultSpectralTable()
	conv := colour.NewConverter(colour.DefaultSpectralTable())

	keys := make([]string, 0, len(c.Image.ObjectColours))
	for k := range c.Image.ObjectColours {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rgb, err := resolveColour(conv, c.Image.ObjectColours[k])
		if err != nil {
			return table, &Error{Field: "image.object-colours." + k, Err: err}
		}
		table.Colours[k] = rgb
	}
	if c.Image.FallbackColour != nil {
		rgb, err := resolveColour(conv, c.Image.FallbackColour)
		if err != nil {
			return table, &Error{Field: "image.fallback-colour", Err: err}
		}
		table.Fallback = rgb
	}
	return table, nil
}

// resolveColour converts a settings value to RGB. Unlike catalog colours,
// settings must resolve exactly: a spectral fallback is an error here.
func resolveColour(conv colour.Converter, v any) (colour.RGB, error) {
	spec, err := colour.ParseSpec(v)
	if err != nil {
		return colour.Black, err
	}
	return conv.Convert(spec)
}

// SkyModel builds the configured sky model. With no states the default
// palette for the mode is used.
func (c *Config) SkyModel() (sky.Model, error) {
	conv := colour.NewConverter(colour.DefaultSpectralTable())
	switch c.Sky.Mode {
	case SkyModeClock:
		if len(c.Sky.States) == 0 {
			return sky.DefaultPalette(), nil
		}
		entries := make([]sky.Entry, len(c.Sky.States))
		for i, st := range c.Sky.States {
			field := fmt.Sprintf("sky.state[%d]", i)
			if st.Hour == nil {
				return nil, fieldErr(field+".hour", "required in clock mode")
			}
			if !inRange(*st.Hour, 0, 24) {
				return nil, fieldErr(field+".hour", "%g is not in [0, 24]", *st.Hour)
			}
			rgb, err := resolveColour(conv, st.Colour)
			if err != nil {
				return nil, &Error{Field: field + ".colour", Err: err}
			}
			entries[i] = sky.Entry{
				Name:           stateName(st, i),
				Seconds:        sky.Hours(*st.Hour),
				Colour:         rgb,
				MagnitudeLimit: st.MaximumMagnitude,
			}
		}
		p, err := sky.NewPalette(entries...)
		if err != nil {
			return nil, &Error{Field: "sky.state", Err: err}
		}
		return p, nil

	case SkyModeSolar:
		if len(c.Sky.States) == 0 {
			return sky.DefaultSolarPalette(), nil
		}
		entries := make([]sky.SolarEntry, len(c.Sky.States))
		for i, st := range c.Sky.States {
			field := fmt.Sprintf("sky.state[%d]", i)
			if st.Elevation == nil {
				return nil, fieldErr(field+".elevation", "required in solar mode")
			}
			if !inRange(*st.Elevation, -90, 90) {
				return nil, fieldErr(field+".elevation", "%g is not in [-90, 90]", *st.Elevation)
			}
			rgb, err := resolveColour(conv, st.Colour)
			if err != nil {
				return nil, &Error{Field: field + ".colour", Err: err}
			}
			entries[i] = sky.SolarEntry{
				Name:           stateName(st, i),
				Elevation:      *st.Elevation,
				Colour:         rgb,
				MagnitudeLimit: st.MaximumMagnitude,
			}
		}
		p, err := sky.NewSolarPalette(entries...)
		if err != nil {
			return nil, &Error{Field: "sky.state", Err: err}
		}
		return p, nil

	default:
		return nil, fieldErr("sky.mode", "unknown mode %q (want %q or %q)", c.Sky.Mode, SkyModeClock, SkyModeSolar)
	}
}

func stateName(st SkyState, i int) string {
	if st.Name != "" {
		return st.Name
	}
	return fmt.Sprintf("state %d", i)
}
