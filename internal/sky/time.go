// Package sky models how the sky background colour and the limiting
// magnitude change over the course of a day.
package sky

import (
	"time"

	"github.com/litescript/ls-skysim/internal/astro"
)

// SecondsPerDay is the period of the clock-keyed palette axis.
const SecondsPerDay = 24 * 60 * 60

// FrameTime is the instant a frame depicts together with the observer it is
// depicted for.
type FrameTime struct {
	Instant  time.Time
	Location *time.Location // local time zone; nil means UTC
	Observer astro.Observer
}

// Local returns the instant in the frame's time zone.
func (ft FrameTime) Local() time.Time {
	if ft.Location == nil {
		return ft.Instant.UTC()
	}
	return ft.Instant.In(ft.Location)
}

// SecondsFromMidnight returns the local time of day of ft in seconds,
// in [0, 86400).
func SecondsFromMidnight(ft FrameTime) float64 {
	t := ft.Local()
	return float64(t.Hour()*3600+t.Minute()*60+t.Second()) +
		float64(t.Nanosecond())/1e9
}
