// Package window provides the desktop star-field viewer on Ebitengine.
package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Canvas draws frames onto an ebiten image. The target is swapped each
// Draw call since Ebitengine hands over the screen per frame.
type Canvas struct {
	img  *ebiten.Image
	face text.Face
}

// NewCanvas creates a canvas with the fixed 7x13 label font.
func NewCanvas() *Canvas {
	return &Canvas{face: text.NewGoXFace(basicfont.Face7x13)}
}

// SetImage sets the draw target.
func (c *Canvas) SetImage(img *ebiten.Image) {
	c.img = img
}

// Size implements render.Surface.
func (c *Canvas) Size() (int, int) {
	if c.img == nil {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// FillRect implements render.Surface.
func (c *Canvas) FillRect(x, y, w, h float64, clr color.Color) {
	if c.img == nil {
		return
	}
	vector.DrawFilledRect(c.img, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// FillCircle implements render.Surface.
func (c *Canvas) FillCircle(cx, cy, r float64, clr color.Color) {
	if c.img == nil {
		return
	}
	vector.DrawFilledCircle(c.img, float32(cx), float32(cy), float32(r), clr, true)
}

// Text implements render.Surface. (x, y) is the top-left of the line.
func (c *Canvas) Text(x, y float64, s string, clr color.Color) {
	if c.img == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(c.img, s, c.face, op)
}
