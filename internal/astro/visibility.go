package astro

import (
	"errors"
	"math"
	"time"
)

// Crossing is a moment the Sun's elevation passes a threshold.
type Crossing struct {
	Time      time.Time
	Threshold float64 // degrees
	Rising    bool
}

// ErrInvalidWindow is returned for an empty or reversed search window.
var ErrInvalidWindow = errors.New("invalid search window")

// SunCrossings finds every time in [from, to] that the Sun's elevation at obs
// crosses threshold. Elevation is sampled every step and crossings are
// located by linear interpolation between samples, so events closer together
// than step can be missed.
func SunCrossings(obs Observer, from, to time.Time, step time.Duration, threshold float64) ([]Crossing, error) {
	if step <= 0 || to.Before(from) {
		return nil, ErrInvalidWindow
	}

	var out []Crossing
	prevT := from
	prevEl := SunElevation(obs, from)
	for t := from.Add(step); ; t = t.Add(step) {
		if t.After(to) {
			t = to
		}
		el := SunElevation(obs, t)
		if (prevEl < threshold) != (el < threshold) {
			out = append(out, Crossing{
				Time:      interpolateCrossing(prevT, t, prevEl, el, threshold),
				Threshold: threshold,
				Rising:    el > prevEl,
			})
		}
		if !t.Before(to) {
			break
		}
		prevT, prevEl = t, el
	}
	return out, nil
}

// interpolateCrossing finds the time when elevation crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if math.Abs(el2-el1) < 0.0001 {
		return t1
	}

	// Linear interpolation: find t where el = threshold
	fraction := (threshold - el1) / (el2 - el1)

	// Clamp to valid range
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}
