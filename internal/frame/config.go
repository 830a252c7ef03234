package frame

import (
	"fmt"
	"image"
	"strings"

	"github.com/litescript/ls-skysim/internal/colour"
	"github.com/litescript/ls-skysim/internal/photometry"
)

// ScaleMode selects how magnitudes map to brightness.
type ScaleMode int

const (
	// ScaleAbsolute scales between the frame's magnitude limit and a fixed
	// brightest magnitude, so an object keeps its brightness across frames.
	ScaleAbsolute ScaleMode = iota
	// ScaleTable scales between the faintest and brightest objects drawn in
	// the frame.
	ScaleTable
)

func (s ScaleMode) String() string {
	switch s {
	case ScaleAbsolute:
		return "absolute"
	case ScaleTable:
		return "table"
	default:
		return fmt.Sprintf("ScaleMode(%d)", int(s))
	}
}

// ParseScaleMode parses "absolute" or "table".
func ParseScaleMode(s string) (ScaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute":
		return ScaleAbsolute, nil
	case "table":
		return ScaleTable, nil
	default:
		return 0, fmt.Errorf("unknown scale mode %q", s)
	}
}

// RenderConfig holds the per-run drawing parameters.
type RenderConfig struct {
	Width, Height      int
	AiryDiskRadius     float64 // pixels; width of the bright core
	MaxSpreadRadius    float64 // pixels; light never reaches this distance
	MinimumBrightness  float64
	BrightestMagnitude float64
	FOV                image.Rectangle // empty means the whole raster
	Spectral           colour.SpectralTable
	Scale              ScaleMode
}

// DefaultRenderConfig returns a configuration for a width x height raster.
func DefaultRenderConfig(width, height int) RenderConfig {
	return RenderConfig{
		Width:              width,
		Height:             height,
		AiryDiskRadius:     1.5,
		MaxSpreadRadius:    6,
		MinimumBrightness:  photometry.MinimumBrightness,
		BrightestMagnitude: photometry.DefaultBrightestMagnitude,
		Spectral:           colour.DefaultSpectralTable(),
	}
}

// ConfigError names the invalid field of a RenderConfig.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("render config: %s: %s", e.Field, e.Reason)
}

// Validate reports the first invalid field.
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{Field: "Width", Reason: fmt.Sprintf("must be positive, got %d", c.Width)}
	case c.Height <= 0:
		return &ConfigError{Field: "Height", Reason: fmt.Sprintf("must be positive, got %d", c.Height)}
	case !finite(c.AiryDiskRadius) || c.AiryDiskRadius <= 0:
		return &ConfigError{Field: "AiryDiskRadius", Reason: fmt.Sprintf("must be positive, got %g", c.AiryDiskRadius)}
	case !finite(c.MaxSpreadRadius) || c.MaxSpreadRadius <= 0:
		return &ConfigError{Field: "MaxSpreadRadius", Reason: fmt.Sprintf("must be positive, got %g", c.MaxSpreadRadius)}
	case c.MaxSpreadRadius < c.AiryDiskRadius:
		return &ConfigError{Field: "MaxSpreadRadius", Reason: fmt.Sprintf("%g is smaller than the airy disk radius %g", c.MaxSpreadRadius, c.AiryDiskRadius)}
	case !(c.MinimumBrightness >= 0 && c.MinimumBrightness < 1):
		return &ConfigError{Field: "MinimumBrightness", Reason: fmt.Sprintf("must be in [0, 1), got %g", c.MinimumBrightness)}
	case !finite(c.BrightestMagnitude):
		return &ConfigError{Field: "BrightestMagnitude", Reason: "must be finite"}
	case c.Scale != ScaleAbsolute && c.Scale != ScaleTable:
		return &ConfigError{Field: "Scale", Reason: fmt.Sprintf("unknown mode %d", int(c.Scale))}
	}
	if !c.FOV.Empty() && !c.FOV.Overlaps(c.Bounds()) {
		return &ConfigError{Field: "FOV", Reason: fmt.Sprintf("%v lies outside the %dx%d raster", c.FOV, c.Width, c.Height)}
	}
	return nil
}

// Bounds returns the raster rectangle.
func (c RenderConfig) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// Field returns the region objects must fall in to be drawn.
func (c RenderConfig) Field() image.Rectangle {
	if c.FOV.Empty() {
		return c.Bounds()
	}
	return c.FOV.Intersect(c.Bounds())
}
