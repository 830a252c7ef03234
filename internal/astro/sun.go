package astro

import (
	"math"
	"time"
)

// SunPosition returns the apparent equatorial coordinates of the Sun using the
// low-precision solar ephemeris of the Astronomical Almanac (~0.01° in RA).
// Only RAdeg and DecDeg are set.
func SunPosition(t time.Time) SkyCoord {
	T := (JulianDate(t) - 2451545.0) / 36525.0

	// Mean longitude and mean anomaly (degrees)
	L0 := NormalizeDegrees(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := degToRad(NormalizeDegrees(357.52911 + 35999.05029*T - 0.0001537*T*T))

	// Equation of center
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	// Apparent longitude, corrected for aberration and nutation
	omega := degToRad(125.04 - 1934.136*T)
	lambda := degToRad(L0 + C - 0.00569 - 0.00478*math.Sin(omega))

	// Obliquity of the ecliptic
	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	eps := degToRad(eps0 + 0.00256*math.Cos(omega))

	ra := math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))
	dec := math.Asin(math.Sin(eps) * math.Sin(lambda))

	return SkyCoord{
		RAdeg:  NormalizeDegrees(radToDeg(ra)),
		DecDeg: radToDeg(dec),
	}
}

// SunElevation returns the Sun's elevation in degrees above the horizon for
// obs at t. Negative values are below the horizon; refraction is ignored.
func SunElevation(obs Observer, t time.Time) float64 {
	return EquatorialToHorizontal(SunPosition(t), obs, t).ElDeg
}
