// Package astro provides the small amount of positional astronomy the
// renderer needs outside its core: sidereal time, equatorial to horizontal
// conversion and the position of the Sun.
package astro

import (
	"math"
	"time"
)

// SkyCoord holds celestial coordinates with both equatorial (RA/Dec)
// and horizontal (Az/El) components.
type SkyCoord struct {
	// Equatorial coordinates (J2000)
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)

	// Horizontal coordinates (observer-relative)
	AzDeg float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	ElDeg float64 // Elevation in degrees (0=horizon, 90=zenith)
}

// Observer is a ground-based observing site.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// EquatorialToHorizontal fills in Az/El for eq as seen by obs at t.
// RA/Dec are carried through unchanged.
//
// Conventions:
//   - Azimuth: 0° = North, 90° = East, 180° = South, 270° = West
//   - Elevation: 0° = horizon, 90° = zenith
func EquatorialToHorizontal(eq SkyCoord, obs Observer, t time.Time) SkyCoord {
	lat := degToRad(obs.LatDeg)
	dec := degToRad(eq.DecDeg)
	ha := degToRad(LocalSiderealTime(t, obs.LonDeg) - eq.RAdeg)

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(clampUnit(sinAlt))

	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))
	az := math.Acos(clampUnit(cosAz))

	// Positive hour angle: the object is west of the meridian.
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return SkyCoord{
		RAdeg:  eq.RAdeg,
		DecDeg: eq.DecDeg,
		AzDeg:  radToDeg(az),
		ElDeg:  radToDeg(alt),
	}
}

// LocalSiderealTime returns LST in degrees (0-360) for a UTC instant and an
// east-positive longitude.
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	return NormalizeDegrees(greenwichMeanSiderealTime(t) + lonDeg)
}

// greenwichMeanSiderealTime uses the IAU 1982 expression in degrees.
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := JulianDate(t)
	T := (jd - 2451545.0) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return NormalizeDegrees(gmst)
}

// JulianDate returns the Julian Date of t (converted to UTC).
func JulianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0

	// January and February count as months 13 and 14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
