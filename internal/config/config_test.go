package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skysim/internal/colour"
	"github.com/litescript/ls-skysim/internal/frame"
	"github.com/litescript/ls-skysim/internal/sky"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	times, err := cfg.Times()
	require.NoError(t, err)
	require.Len(t, times, 1)
	assert.Equal(t, 20, times[0].Local().Hour())
	assert.Equal(t, "Europe/London", times[0].Location.String())
	assert.Equal(t, "Greenwich", times[0].Observer.Name)
}

func TestDecode(t *testing.T) {
	const doc = `
[observation]
location = "Kitt Peak"
latitude = 31.96
longitude = -111.6
timezone = "UTC"
date = 2025-03-01
time = 03:30:00
duration = "1h"
interval = "10m"
altitude = 60
azimuth = 90
field-of-view = 70

[image]
width = 64
height = 48
scale = "table"
fov = [8, 8, 56, 40]
stars = false

[image.object-colours]
G = "#ffee00"
K = [255, 128, 0]

[sky]
mode = "clock"

[[sky.state]]
name = "night"
hour = 0
colour = "black"
maximum-magnitude = 6

[[sky.state]]
name = "day"
hour = 12
colour = [0.5, 0.7, 1.0]
maximum-magnitude = -2

[output]
filename = "out.mp4"
fps = 24
`
	cfg, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "Kitt Peak", cfg.Observation.Location)
	assert.Equal(t, time.Hour, cfg.Observation.Duration.Std())
	assert.Equal(t, 10*time.Minute, cfg.Observation.Interval.Std())
	assert.Equal(t, 1.2, cfg.Image.AiryDiskRadius, "unset keys keep defaults")

	times, err := cfg.Times()
	require.NoError(t, err)
	assert.Len(t, times, 6)
	assert.Equal(t, time.Date(2025, 3, 1, 3, 30, 0, 0, time.UTC), times[0].Instant)

	rc, err := cfg.RenderConfig()
	require.NoError(t, err)
	assert.Equal(t, frame.ScaleTable, rc.Scale)
	assert.Equal(t, 64, rc.Width)
	assert.Equal(t, [4]int{8, 8, 56, 40}, [4]int{rc.FOV.Min.X, rc.FOV.Min.Y, rc.FOV.Max.X, rc.FOV.Max.Y})
	assert.Equal(t, "#ffee00", rc.Spectral.Colours["G"].Hex())
	assert.Equal(t, "#ff8000", rc.Spectral.Colours["K"].Hex())
	assert.Equal(t, "#9bb0ff", rc.Spectral.Colours["O"].Hex(), "untouched classes keep defaults")

	model, err := cfg.SkyModel()
	require.NoError(t, err)
	p, ok := model.(*sky.Palette)
	require.True(t, ok)
	require.Len(t, p.Entries(), 2)
	noon, err := p.ColourAt(sky.Hours(12))
	require.NoError(t, err)
	assert.InDelta(t, 0.7, noon.G, 1e-9)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[image]\nwidht = 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SKYSIM_IMAGE_WIDTH", "200")
	t.Setenv("SKYSIM_OBSERVATION_DURATION", "30m")
	t.Setenv("SKYSIM_SKY_MODE", "clock")

	cfg, err := Decode(strings.NewReader("[image]\nwidth = 100\n"))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Image.Width, "environment wins over the file")
	assert.Equal(t, 30*time.Minute, cfg.Observation.Duration.Std())
	assert.Equal(t, SkyModeClock, cfg.Sky.Mode)
}

func TestEnvOverrideBadValue(t *testing.T) {
	t.Setenv("SKYSIM_IMAGE_WIDTH", "wide")
	_, err := Decode(strings.NewReader(""))
	require.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	hour := func(h float64) *float64 { return &h }

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"latitude", func(c *Config) { c.Observation.Latitude = 91 }, "observation.latitude"},
		{"longitude", func(c *Config) { c.Observation.Longitude = -181 }, "observation.longitude"},
		{"negative duration", func(c *Config) { c.Observation.Duration = Duration(-time.Second) }, "observation.duration"},
		{"fov angle", func(c *Config) { c.Observation.FieldOfView = 0 }, "observation.field-of-view"},
		{"vertical fov", func(c *Config) {
			c.Observation.FieldOfView = 360
			c.Image.Height = 480
		}, "observation.field-of-view"},
		{"timezone", func(c *Config) { c.Observation.Timezone = "Mars/Olympus" }, "observation.timezone"},
		{"width", func(c *Config) { c.Image.Width = 0 }, "image.width"},
		{"airy", func(c *Config) { c.Image.AiryDiskRadius = -1 }, "image.airy-disk-radius"},
		{"spread below airy", func(c *Config) { c.Image.MaxSpreadRadius = 1 }, "image.max-spread-radius"},
		{"minimum brightness", func(c *Config) { c.Image.MinimumBrightness = 1 }, "image.minimum-brightness"},
		{"scale", func(c *Config) { c.Image.Scale = "log" }, "image.scale"},
		{"fov length", func(c *Config) { c.Image.FOV = []int{1, 2} }, "image.fov"},
		{"fov outside", func(c *Config) { c.Image.FOV = []int{1000, 1000, 1100, 1100} }, "image.fov"},
		{"object colour", func(c *Config) { c.Image.ObjectColours = map[string]any{"G": "#12"} }, "image.object-colours.G"},
		{"fallback colour", func(c *Config) { c.Image.FallbackColour = []any{1.0, 2.0} }, "image.fallback-colour"},
		{"mode", func(c *Config) { c.Sky.Mode = "lunar" }, "sky.mode"},
		{"clock state without hour", func(c *Config) {
			c.Sky.Mode = SkyModeClock
			c.Sky.States = []SkyState{{Colour: "black"}}
		}, "sky.state[0].hour"},
		{"clock state hour range", func(c *Config) {
			c.Sky.Mode = SkyModeClock
			c.Sky.States = []SkyState{{Hour: hour(25), Colour: "black"}}
		}, "sky.state[0].hour"},
		{"solar state without elevation", func(c *Config) {
			c.Sky.States = []SkyState{{Hour: hour(1), Colour: "black"}}
		}, "sky.state[0].elevation"},
		{"state colour", func(c *Config) {
			c.Sky.Mode = SkyModeClock
			c.Sky.States = []SkyState{{Hour: hour(1), Colour: "Q9"}}
		}, "sky.state[0].colour"},
		{"duplicate hours", func(c *Config) {
			c.Sky.Mode = SkyModeClock
			c.Sky.States = []SkyState{{Hour: hour(1), Colour: "black"}, {Hour: hour(1), Colour: "white"}}
		}, "sky.state"},
		{"fps", func(c *Config) { c.Output.FPS = 0 }, "output.fps"},
		{"workers", func(c *Config) { c.Output.Workers = -1 }, "output.workers"},
		{"filename", func(c *Config) { c.Output.Filename = "" }, "output.filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var ce *Error
			require.True(t, errors.As(err, &ce), "got %T: %v", err, err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestUnknownSpectralSettingIsRejected(t *testing.T) {
	cfg := Default()
	cfg.Image.FallbackColour = "Z9"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, colour.ErrUnknownSpectralType))
}

func TestDefaultSkyModels(t *testing.T) {
	cfg := Default()
	m, err := cfg.SkyModel()
	require.NoError(t, err)
	assert.IsType(t, &sky.SolarPalette{}, m)

	cfg.Sky.Mode = SkyModeClock
	m, err = cfg.SkyModel()
	require.NoError(t, err)
	assert.IsType(t, &sky.Palette{}, m)
}

func TestProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[object]]
id = "beacon"
x = 10
y = 12
magnitude = 1.0
colour = "red"
`), 0o644))

	cfg := Default()
	cfg.Image.Stars = false
	cfg.Image.Catalog = path
	p, err := cfg.Provider()
	require.NoError(t, err)

	times, err := cfg.Times()
	require.NoError(t, err)
	table, err := p.Objects(t.Context(), times[0])
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "beacon", table[0].ID)

	cfg.Image.Catalog = filepath.Join(dir, "missing.toml")
	_, err = cfg.Provider()
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "image.catalog", ce.Field)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1h30m")))
	assert.Equal(t, 90*time.Minute, d.Std())
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1h30m0s", string(b))
	assert.Error(t, d.UnmarshalText([]byte("soon")))
}

func TestShippedConfigs(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "configs", "*.toml"))
	require.NoError(t, err)
	for _, path := range paths {
		if filepath.Base(path) == "extra-objects.toml" {
			continue
		}
		t.Run(filepath.Base(path), func(t *testing.T) {
			cfg, err := Load(path)
			require.NoError(t, err)
			_, err = cfg.Times()
			require.NoError(t, err)
		})
	}
}
