package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Coverage samples per pixel axis for disc edges.
const discSamples = 4

// Raster is an in-memory RGBA surface, used for snapshots and tests.
type Raster struct {
	img  *image.RGBA
	face font.Face
}

// NewRaster creates a w x h surface.
func NewRaster(w, h int) *Raster {
	return &Raster{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		face: basicfont.Face7x13,
	}
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Size implements Surface.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// FillRect implements Surface.
func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	rect := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

// FillCircle implements Surface. Edge pixels are blended by the fraction
// of sub-samples inside the disc.
func (r *Raster) FillCircle(cx, cy, rad float64, c color.Color) {
	if rad <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(cx-rad)), int(math.Floor(cy-rad)),
		int(math.Ceil(cx+rad)), int(math.Ceil(cy+rad)),
	).Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}

	sr, sg, sb, sa := c.RGBA()
	r2 := rad * rad
	step := 1.0 / discSamples

	for py := box.Min.Y; py < box.Max.Y; py++ {
		for px := box.Min.X; px < box.Max.X; px++ {
			inside := 0
			for j := 0; j < discSamples; j++ {
				dy := float64(py) + (float64(j)+0.5)*step - cy
				for i := 0; i < discSamples; i++ {
					dx := float64(px) + (float64(i)+0.5)*step - cx
					if dx*dx+dy*dy <= r2 {
						inside++
					}
				}
			}
			if inside == 0 {
				continue
			}
			cov := float64(inside) / (discSamples * discSamples)
			r.blend(px, py, cov, sr, sg, sb, sa)
		}
	}
}

// blend composites a premultiplied source colour over the pixel at (x, y)
// scaled by coverage.
func (r *Raster) blend(x, y int, cov float64, sr, sg, sb, sa uint32) {
	i := r.img.PixOffset(x, y)
	pix := r.img.Pix[i : i+4 : i+4]

	a := float64(sa) / 0xffff * cov
	inv := 1 - a
	pix[0] = blendChannel(float64(sr)/0xffff*cov, pix[0], inv)
	pix[1] = blendChannel(float64(sg)/0xffff*cov, pix[1], inv)
	pix[2] = blendChannel(float64(sb)/0xffff*cov, pix[2], inv)
	pix[3] = blendChannel(a, pix[3], inv)
}

func blendChannel(src float64, dst uint8, inv float64) uint8 {
	v := src*255 + float64(dst)*inv
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Text implements Surface using a fixed 7x13 bitmap face.
func (r *Raster) Text(x, y float64, s string, c color.Color) {
	ascent := r.face.Metrics().Ascent.Ceil()
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(int(x), int(y)+ascent),
	}
	d.DrawString(s)
}

// At returns the pixel at (x, y).
func (r *Raster) At(x, y int) color.RGBA {
	return r.img.RGBAAt(x, y)
}

// EncodePNG writes the surface as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG writes the surface to a PNG file at path.
func (r *Raster) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
