package catalog

import (
	"context"

	"github.com/litescript/ls-starfield/internal/astro"
)

// brightStar is a catalog entry in equatorial coordinates (J2000, degrees).
type brightStar struct {
	name string
	ra   float64
	dec  float64
	mag  float64
}

// Builtin serves a compiled-in list of bright stars placed on the unit
// sphere. It needs no network or files.
type Builtin struct{}

// Name implements Source.
func (Builtin) Name() string {
	return "builtin"
}

// Load implements Source.
func (Builtin) Load(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	stars := make([]astro.Star, 0, len(brightStars))
	for _, b := range brightStars {
		stars = append(stars, astro.SkyCoord{RAdeg: b.ra, DecDeg: b.dec}.Star(b.mag))
	}
	return Result{Stars: stars}, nil
}

// BuiltinNames returns the star names in draw order.
func BuiltinNames() []string {
	names := make([]string, len(brightStars))
	for i, b := range brightStars {
		names[i] = b.name
	}
	return names
}

// Ordered by magnitude, brightest first.
var brightStars = []brightStar{
	{"Sirius", 101.287, -16.716, -1.46},
	{"Canopus", 95.988, -52.696, -0.74},
	{"Arcturus", 213.915, 19.182, -0.05},
	{"Vega", 279.235, 38.784, 0.03},
	{"Capella", 79.172, 45.998, 0.08},
	{"Rigel", 78.634, -8.202, 0.13},
	{"Procyon", 114.826, 5.225, 0.34},
	{"Achernar", 24.429, -57.237, 0.46},
	{"Betelgeuse", 88.793, 7.407, 0.50},
	{"Hadar", 210.956, -60.373, 0.61},
	{"Altair", 297.696, 8.868, 0.76},
	{"Acrux", 186.650, -63.099, 0.76},
	{"Aldebaran", 68.980, 16.509, 0.85},
	{"Antares", 247.352, -26.432, 0.96},
	{"Spica", 201.298, -11.161, 0.97},
	{"Pollux", 116.329, 28.026, 1.14},
	{"Fomalhaut", 344.413, -29.622, 1.16},
	{"Deneb", 310.358, 45.280, 1.25},
	{"Mimosa", 191.930, -59.689, 1.25},
	{"Regulus", 152.093, 11.967, 1.35},
	{"Adhara", 104.656, -28.972, 1.50},
	{"Castor", 113.650, 31.889, 1.58},
	{"Shaula", 263.402, -37.104, 1.63},
	{"Bellatrix", 81.283, 6.350, 1.64},
	{"Elnath", 81.573, 28.608, 1.65},
	{"Alnilam", 84.053, -1.202, 1.69},
	{"Alnitak", 85.190, -1.943, 1.77},
	{"Alioth", 193.507, 55.960, 1.77},
	{"Dubhe", 165.932, 61.751, 1.79},
	{"Mirfak", 51.081, 49.861, 1.79},
	{"Wezen", 107.098, -26.393, 1.84},
	{"Alkaid", 206.885, 49.313, 1.86},
	{"Polaris", 37.954, 89.264, 2.02},
	{"Alphard", 141.897, -8.659, 2.00},
	{"Hamal", 31.793, 23.463, 2.00},
	{"Mizar", 200.981, 54.925, 2.04},
	{"Alpheratz", 2.097, 29.091, 2.06},
	{"Saiph", 86.939, -9.670, 2.09},
	{"Kochab", 222.676, 74.156, 2.08},
	{"Algol", 47.042, 40.957, 2.12},
	{"Denebola", 177.265, 14.572, 2.13},
	{"Mintaka", 83.002, -0.299, 2.23},
	{"Sadr", 305.557, 40.257, 2.23},
	{"Schedar", 10.127, 56.537, 2.23},
	{"Caph", 2.295, 59.150, 2.27},
	{"Merak", 165.460, 56.382, 2.37},
	{"Enif", 326.046, 9.875, 2.39},
	{"Phecda", 178.458, 53.695, 2.44},
	{"Markab", 346.190, 15.205, 2.49},
	{"Megrez", 183.857, 57.033, 3.31},
	{"Alcor", 201.306, 54.988, 3.99},
	{"Zeta Reticuli", 49.552, -62.575, 5.24},
	{"Theta Persei", 41.050, 49.229, 4.10},
	{"HR 8832", 348.321, 57.168, 5.57},
	{"61 Cygni", 316.725, 38.749, 5.21},
}
