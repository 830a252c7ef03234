// Package config loads run settings from a TOML file and SKYSIM_* environment
// variables and derives the values the renderer needs from them.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "SKYSIM_"

// Sky model modes.
const (
	SkyModeClock = "clock"
	SkyModeSolar = "solar"
)

// Config is the complete set of run settings.
type Config struct {
	Observation Observation `toml:"observation" envPrefix:"OBSERVATION_"`
	Image       Image       `toml:"image" envPrefix:"IMAGE_"`
	Sky         Sky         `toml:"sky" envPrefix:"SKY_"`
	Output      Output      `toml:"output" envPrefix:"OUTPUT_"`
}

// Observation describes where, when and in which direction to look.
type Observation struct {
	Location    string         `toml:"location" env:"LOCATION"`
	Latitude    float64        `toml:"latitude" env:"LATITUDE"`
	Longitude   float64        `toml:"longitude" env:"LONGITUDE"`
	Timezone    string         `toml:"timezone" env:"TIMEZONE"`
	Date        toml.LocalDate `toml:"date" env:"DATE"`
	Time        toml.LocalTime `toml:"time" env:"TIME"`
	Duration    Duration       `toml:"duration" env:"DURATION"`
	Interval    Duration       `toml:"interval" env:"INTERVAL"`
	Altitude    float64        `toml:"altitude" env:"ALTITUDE"`
	Azimuth     float64        `toml:"azimuth" env:"AZIMUTH"`
	FieldOfView float64        `toml:"field-of-view" env:"FIELD_OF_VIEW"`
}

// Image holds the raster and drawing settings.
type Image struct {
	Width              int            `toml:"width" env:"WIDTH"`
	Height             int            `toml:"height" env:"HEIGHT"`
	AiryDiskRadius     float64        `toml:"airy-disk-radius" env:"AIRY_DISK_RADIUS"`
	MaxSpreadRadius    float64        `toml:"max-spread-radius" env:"MAX_SPREAD_RADIUS"`
	MinimumBrightness  float64        `toml:"minimum-brightness" env:"MINIMUM_BRIGHTNESS"`
	BrightestMagnitude float64        `toml:"brightest-magnitude" env:"BRIGHTEST_MAGNITUDE"`
	Scale              string         `toml:"scale" env:"SCALE"`
	FOV                []int          `toml:"fov"` // x0, y0, x1, y1
	ObjectColours      map[string]any `toml:"object-colours"`
	FallbackColour     any            `toml:"fallback-colour"`
	Stars              bool           `toml:"stars" env:"STARS"`
	Catalog            string         `toml:"catalog" env:"CATALOG"`
}

// Sky selects and parameterizes the sky model.
type Sky struct {
	Mode   string     `toml:"mode" env:"MODE"`
	States []SkyState `toml:"state"`
}

// SkyState is one palette entry. Hour is used by the clock model and
// Elevation by the solar model.
type SkyState struct {
	Name             string   `toml:"name"`
	Hour             *float64 `toml:"hour"`
	Elevation        *float64 `toml:"elevation"`
	Colour           any      `toml:"colour"`
	MaximumMagnitude float64  `toml:"maximum-magnitude"`
}

// Output controls where rendered frames go.
type Output struct {
	Filename    string  `toml:"filename" env:"FILENAME"`
	FPS         float64 `toml:"fps" env:"FPS"`
	Overwrite   bool    `toml:"overwrite" env:"OVERWRITE"`
	Workers     int     `toml:"workers" env:"WORKERS"`
	MetricsFile string  `toml:"metrics-file" env:"METRICS_FILE"`
	FFmpeg      string  `toml:"ffmpeg" env:"FFMPEG"`
}

// Default returns settings for a single still frame looking south from
// Greenwich on an evening at the winter solstice.
func Default() *Config {
	return &Config{
		Observation: Observation{
			Location:    "Greenwich",
			Latitude:    51.4769,
			Longitude:   0,
			Timezone:    "Europe/London",
			Date:        toml.LocalDate{Year: 2024, Month: 12, Day: 21},
			Time:        toml.LocalTime{Hour: 20},
			Altitude:    35,
			Azimuth:     180,
			FieldOfView: 90,
		},
		Image: Image{
			Width:              480,
			Height:             320,
			AiryDiskRadius:     1.2,
			MaxSpreadRadius:    5,
			MinimumBrightness:  0.2,
			BrightestMagnitude: -4.6,
			Scale:              "absolute",
			FallbackColour:     "white",
			Stars:              true,
		},
		Sky: Sky{
			Mode: SkyModeSolar,
		},
		Output: Output{
			Filename: "sky.png",
			FPS:      10,
			FFmpeg:   "ffmpeg",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML settings from r over the defaults, applies environment
// overrides and validates the result. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown settings:\n%s", strict.String())
		}
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from SKYSIM_* environment variables, for
// example SKYSIM_IMAGE_WIDTH or SKYSIM_OBSERVATION_DURATION.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Duration is a time.Duration written as a string such as "90m" or "1h30m".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
