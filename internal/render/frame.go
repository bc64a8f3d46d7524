package render

import (
	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/state"
)

const (
	// StarRadius is the marker radius in pixels.
	StarRadius = 1.5

	// Label position (top-left, 10px inset).
	labelX = 10
	labelY = 10

	labelPrefix = "Projection: "
)

// Options controls per-frame rendering choices.
type Options struct {
	Brightness astro.Brightness
	ShowLabel  bool
}

// Stats counts what happened to the stars of one frame.
type Stats struct {
	Drawn  int // markers drawn
	Culled int // no screen point in the current projection
	Faint  int // alpha rounded to zero
}

// Frame draws one complete frame: black background, every visible star as
// a white disc with magnitude-derived alpha, then the projection label.
// The centre is taken from the surface size on every call.
func Frame(dst Surface, cat astro.Catalog, cam state.Camera, opts Options) Stats {
	var st Stats

	w, h := dst.Size()
	dst.FillRect(0, 0, float64(w), float64(h), background)

	cx := float64(w) / 2
	cy := float64(h) / 2

	for _, star := range cat.Stars {
		p := astro.Rotate(star.Vec(), cam.Yaw, cam.Pitch)

		x, y, ok := astro.ToScreen(p, cam.Mode, cam.Scale, cx, cy)
		if !ok {
			st.Culled++
			continue
		}

		alpha := opts.Brightness.Alpha(star.Mag)
		if alpha <= 0 {
			st.Faint++
			continue
		}

		dst.FillCircle(x, y, StarRadius, starRGBA(alpha))
		st.Drawn++
	}

	if opts.ShowLabel {
		dst.Text(labelX, labelY, Label(cam.Mode), labelColor)
	}

	return st
}

// FrameSnapshot renders a session snapshot with the options its profile
// implies.
func FrameSnapshot(dst Surface, snap state.Snapshot) Stats {
	return Frame(dst, snap.Catalog, snap.Camera, Options{
		Brightness: snap.Brightness,
		ShowLabel:  snap.Switchable,
	})
}

// Label returns the overlay text for a projection mode.
func Label(m astro.ProjectionMode) string {
	return labelPrefix + m.String()
}
