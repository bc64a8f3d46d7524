// Package render draws star frames onto 2D surfaces.
package render

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Surface is a 2D drawable with a known pixel size. Coordinates are in
// pixels with the origin at the top-left.
type Surface interface {
	// Size returns the current width and height in pixels.
	Size() (w, h int)
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c color.Color)
	// FillCircle fills a disc centred on (cx, cy).
	FillCircle(cx, cy, r float64, c color.Color)
	// Text draws s with its top-left corner at (x, y).
	Text(x, y float64, s string, c color.Color)
}

var (
	background = colornames.Black
	starColor  = colornames.White
	labelColor = colornames.White
)

// starRGBA returns white with the given straight alpha in [0, 1].
func starRGBA(alpha float64) color.NRGBA {
	c := color.NRGBA(starColor)
	c.A = uint8(alpha*255 + 0.5)
	return c
}
