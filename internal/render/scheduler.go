package render

import (
	"github.com/litescript/ls-starfield/internal/state"
)

// Scheduler redraws a surface when its session is dirty. Bursts of input
// between two ticks collapse into a single frame.
type Scheduler struct {
	session *state.Session
	surface Surface

	frames int
	last   Stats
}

// NewScheduler binds a session to a surface.
func NewScheduler(sess *state.Session, surf Surface) *Scheduler {
	return &Scheduler{session: sess, surface: surf}
}

// SetSurface swaps the target surface (e.g. after a resize) and requests a
// redraw.
func (s *Scheduler) SetSurface(surf Surface) {
	s.surface = surf
	s.session.Invalidate()
}

// Surface returns the current target.
func (s *Scheduler) Surface() Surface {
	return s.surface
}

// Tick renders a frame if one is pending and reports whether it did.
func (s *Scheduler) Tick() bool {
	if s.surface == nil {
		return false
	}
	if !s.session.TakeDirty() {
		return false
	}
	s.last = FrameSnapshot(s.surface, s.session.Snapshot())
	s.frames++
	return true
}

// Frames returns the number of frames rendered.
func (s *Scheduler) Frames() int {
	return s.frames
}

// LastStats returns the statistics of the most recent frame.
func (s *Scheduler) LastStats() Stats {
	return s.last
}
