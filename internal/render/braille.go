package render

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Each terminal cell holds a 2x4 braille dot matrix.
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
	brailleBase  = 0x2800
)

// brailleBits maps a dot (column, row) inside a cell to its bit.
var brailleBits = [dotsPerCellX][dotsPerCellY]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Grayscale ramp of the 256-colour palette (232 = darkest, 255 = white).
const (
	grayFirst = 232
	grayLast  = 255
)

// Braille is a terminal surface: one pixel per braille dot, so a cols x rows
// character area is 2*cols x 4*rows pixels. Each cell keeps the brightest
// intensity drawn into it.
type Braille struct {
	cols, rows int
	dots       []uint8
	level      []float64
	text       []rune
	textLevel  []float64
}

// NewBraille creates a surface covering cols x rows terminal cells.
func NewBraille(cols, rows int) *Braille {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	n := cols * rows
	return &Braille{
		cols:      cols,
		rows:      rows,
		dots:      make([]uint8, n),
		level:     make([]float64, n),
		text:      make([]rune, n),
		textLevel: make([]float64, n),
	}
}

// Cells returns the character dimensions.
func (b *Braille) Cells() (cols, rows int) {
	return b.cols, b.rows
}

// Size implements Surface.
func (b *Braille) Size() (int, int) {
	return b.cols * dotsPerCellX, b.rows * dotsPerCellY
}

// FillRect implements Surface. Filling with a colour of zero intensity
// clears dots and text in the covered cells.
func (b *Braille) FillRect(x, y, w, h float64, c color.Color) {
	lvl := intensity(c)
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	for py := max(y0, 0); py < y1; py++ {
		for px := max(x0, 0); px < x1; px++ {
			idx, bit, ok := b.dot(px, py)
			if !ok {
				continue
			}
			b.text[idx] = 0
			b.textLevel[idx] = 0
			if lvl <= 0 {
				b.dots[idx] = 0
				b.level[idx] = 0
				continue
			}
			b.dots[idx] |= bit
			b.level[idx] = math.Max(b.level[idx], lvl)
		}
	}
}

// FillCircle implements Surface. A dot is set when its centre lies inside
// the disc.
func (b *Braille) FillCircle(cx, cy, r float64, c color.Color) {
	lvl := intensity(c)
	if lvl <= 0 || r <= 0 {
		return
	}
	r2 := r * r
	for py := int(math.Floor(cy - r)); py <= int(math.Ceil(cy+r)); py++ {
		for px := int(math.Floor(cx - r)); px <= int(math.Ceil(cx+r)); px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			idx, bit, ok := b.dot(px, py)
			if !ok {
				continue
			}
			b.dots[idx] |= bit
			b.level[idx] = math.Max(b.level[idx], lvl)
		}
	}
}

// Text implements Surface. Text is placed on the cell grid and hides the
// dots underneath it.
func (b *Braille) Text(x, y float64, s string, c color.Color) {
	col := int(math.Floor(x / dotsPerCellX))
	row := int(math.Floor(y / dotsPerCellY))
	if row < 0 || row >= b.rows {
		return
	}
	lvl := intensity(c)
	for i, r := range []rune(s) {
		cc := col + i
		if cc < 0 || cc >= b.cols {
			continue
		}
		idx := row*b.cols + cc
		b.text[idx] = r
		b.textLevel[idx] = lvl
	}
}

// Cell returns the glyph at a cell and its intensity in [0, 1].
func (b *Braille) Cell(col, row int) (rune, float64) {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return ' ', 0
	}
	idx := row*b.cols + col
	if b.text[idx] != 0 {
		return b.text[idx], b.textLevel[idx]
	}
	if b.dots[idx] == 0 {
		return ' ', 0
	}
	return rune(brailleBase + int(b.dots[idx])), b.level[idx]
}

// String renders the surface as styled terminal lines.
func (b *Braille) String() string {
	styles := make(map[int]lipgloss.Style)
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			glyph, lvl := b.Cell(col, row)
			if glyph == ' ' {
				sb.WriteByte(' ')
				continue
			}
			shade := grayShade(lvl)
			st, ok := styles[shade]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(shade)))
				styles[shade] = st
			}
			sb.WriteString(st.Render(string(glyph)))
		}
		if row < b.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// dot locates pixel (px, py) in the cell grid.
func (b *Braille) dot(px, py int) (idx int, bit uint8, ok bool) {
	if px < 0 || py < 0 {
		return 0, 0, false
	}
	col, row := px/dotsPerCellX, py/dotsPerCellY
	if col >= b.cols || row >= b.rows {
		return 0, 0, false
	}
	return row*b.cols + col, brailleBits[px%dotsPerCellX][py%dotsPerCellY], true
}

// intensity returns the perceived brightness of c scaled by its alpha.
func intensity(c color.Color) float64 {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	lum := (0.299*float64(nc.R) + 0.587*float64(nc.G) + 0.114*float64(nc.B)) / 255
	return lum * float64(nc.A) / 255
}

// grayShade maps an intensity to a 256-colour grayscale index.
func grayShade(lvl float64) int {
	lvl = math.Max(0, math.Min(1, lvl))
	return grayFirst + int(math.Round(lvl*float64(grayLast-grayFirst)))
}
