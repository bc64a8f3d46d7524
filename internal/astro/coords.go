package astro

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SkyCoord is an equatorial direction (J2000).
type SkyCoord struct {
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)
}

// Vec returns the unit vector for c in viewer space: +Y toward the north
// celestial pole, +X toward RA 0h, +Z toward RA 6h.
func (c SkyCoord) Vec() mgl64.Vec3 {
	sinDec, cosDec := math.Sincos(degToRad(c.DecDeg))
	sinRA, cosRA := math.Sincos(degToRad(c.RAdeg))
	return mgl64.Vec3{cosDec * cosRA, sinDec, cosDec * sinRA}
}

// Star places a star of magnitude mag on the unit sphere at c.
func (c SkyCoord) Star(mag float64) Star {
	v := c.Vec()
	return Star{Mag: mag, X: v[0], Y: v[1], Z: v[2]}
}

// SkyCoordOf returns the direction of v. The zero vector maps to RA 0,
// Dec 0.
func SkyCoordOf(v mgl64.Vec3) SkyCoord {
	r := v.Len()
	if r == 0 {
		return SkyCoord{}
	}
	ra := radToDeg(math.Atan2(v[2], v[0]))
	if ra < 0 {
		ra += 360
	}
	return SkyCoord{RAdeg: ra, DecDeg: radToDeg(math.Asin(v[1] / r))}
}

// AngularSeparation returns the angle between two directions in degrees.
func AngularSeparation(a, b SkyCoord) float64 {
	ra1, dec1 := degToRad(a.RAdeg), degToRad(a.DecDeg)
	ra2, dec2 := degToRad(b.RAdeg), degToRad(b.DecDeg)

	// Haversine formula
	dRA := ra2 - ra1
	dDec := dec2 - dec1
	h := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1)*math.Cos(dec2)*math.Sin(dRA/2)*math.Sin(dRA/2)

	// Clamp to avoid numerical errors with asin
	if h > 1 {
		h = 1
	}
	return radToDeg(2 * math.Asin(math.Sqrt(h)))
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
