// Package astro holds the star record and the sky math of the viewer:
// camera rotation, the three screen projections, and the magnitude to
// opacity ramp.
package astro

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ProjectionMode selects the screen mapping applied to rotated points.
type ProjectionMode int

const (
	FishEye           ProjectionMode = iota // gnomonic, forward hemisphere only
	Spherical                               // equirectangular, observer inside the sphere
	SphericalExternal                       // orthographic unit direction, observer outside
)

var modeNames = [...]string{
	FishEye:           "Fish eye",
	Spherical:         "Spherical",
	SphericalExternal: "Spherical (external observer)",
}

// String returns the display name used in the projection label.
func (m ProjectionMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "Unknown"
	}
	return modeNames[m]
}

// Valid reports whether m is a known mode.
func (m ProjectionMode) Valid() bool {
	return m >= FishEye && m <= SphericalExternal
}

// ParseMode parses a mode name as accepted on the command line.
func ParseMode(s string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fisheye", "fish-eye", "fish eye", "gnomonic":
		return FishEye, nil
	case "spherical", "equirectangular":
		return Spherical, nil
	case "external", "spherical-external", "spherical (external observer)", "orthographic":
		return SphericalExternal, nil
	default:
		return FishEye, fmt.Errorf("unknown projection mode %q", s)
	}
}

// Rotate applies the camera orientation to a world position.
// Pitch turns the original y/z about the horizontal axis, then yaw turns
// the pitched x/z about the vertical axis. Roll is never modeled.
func Rotate(p mgl64.Vec3, yaw, pitch float64) mgl64.Vec3 {
	x, y, z := p[0], p[1], p[2]

	sp, cp := math.Sincos(pitch)
	y1 := y*cp - z*sp
	z1 := y*sp + z*cp

	sy, cy := math.Sincos(yaw)
	x2 := x*cy + z1*sy
	z2 := -x*sy + z1*cy

	return mgl64.Vec3{x2, y1, z2}
}

// ToScreen maps a rotated point to pixel coordinates around (cx, cy).
// ok is false when the point must not be drawn in this mode, or when the
// result is not finite (an overflowed scale, for one).
func ToScreen(p mgl64.Vec3, mode ProjectionMode, scale, cx, cy float64) (x, y float64, ok bool) {
	x, y, ok = project(p, mode, scale, cx, cy)
	if !ok || !finite(x) || !finite(y) {
		return 0, 0, false
	}
	return x, y, true
}

func project(p mgl64.Vec3, mode ProjectionMode, scale, cx, cy float64) (x, y float64, ok bool) {
	switch mode {
	case Spherical:
		if p[2] <= 0 {
			return 0, 0, false
		}
		r := p.Len()
		if r == 0 {
			return 0, 0, false
		}
		azimuth := math.Atan2(p[0], p[2])
		elevation := math.Asin(p[1] / r)
		return cx + azimuth*scale, cy - elevation*scale, true

	case SphericalExternal:
		r := p.Len()
		if r == 0 {
			return 0, 0, false
		}
		return cx - (p[0]/r)*scale, cy - (p[1]/r)*scale, true

	default: // FishEye
		if p[2] <= 0 {
			return 0, 0, false
		}
		return cx - (p[0]/p[2])*scale, cy - (p[1]/p[2])*scale, true
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
