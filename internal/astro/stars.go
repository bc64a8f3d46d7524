package astro

import "github.com/go-gl/mathgl/mgl64"

// Star is one catalog entry in world coordinates.
type Star struct {
	Mag float64 // Apparent visual magnitude (lower = brighter)
	X   float64
	Y   float64
	Z   float64
}

// Vec returns the star position as a vector.
func (s Star) Vec() mgl64.Vec3 {
	return mgl64.Vec3{s.X, s.Y, s.Z}
}

// Catalog is the ordered star list of a viewer session.
// Insertion order is draw order.
type Catalog struct {
	Stars []Star
}

// Len returns the number of stars.
func (c Catalog) Len() int {
	return len(c.Stars)
}

// Empty reports whether the catalog holds no stars.
func (c Catalog) Empty() bool {
	return len(c.Stars) == 0
}
