package render

import (
	"testing"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/state"
)

func TestScheduler_CoalescesBursts(t *testing.T) {
	sess := state.NewSession(state.CycleProfile())
	rec := &recorder{w: 100, h: 100}
	s := NewScheduler(sess, rec)

	if !s.Tick() {
		t.Fatal("first tick should draw the initial frame")
	}
	if s.Tick() {
		t.Error("tick without changes should not draw")
	}

	sess.BeginDrag(0, 0)
	for i := 1; i <= 10; i++ {
		sess.PointerMove(float64(i), 0)
	}
	sess.Zoom(-1)
	if !s.Tick() {
		t.Fatal("tick after input should draw")
	}
	if s.Frames() != 2 {
		t.Errorf("frames = %d, want 2", s.Frames())
	}
	if rec.rects != 2 {
		t.Errorf("background fills = %d, want 2", rec.rects)
	}
}

func TestScheduler_BackgroundOnlyUntilLoaded(t *testing.T) {
	sess := state.NewSession(state.CycleProfile())
	rec := &recorder{w: 100, h: 100}
	s := NewScheduler(sess, rec)

	s.Tick()
	if len(rec.circles) != 0 {
		t.Error("no stars should be drawn before the catalog loads")
	}

	sess.SetCatalog(astro.Catalog{Stars: []astro.Star{{Mag: -1, Z: 1}}})
	if !s.Tick() {
		t.Fatal("catalog load should trigger a frame")
	}
	if s.LastStats().Drawn != 1 {
		t.Errorf("drawn = %d, want 1", s.LastStats().Drawn)
	}
}

func TestScheduler_SetSurface(t *testing.T) {
	sess := state.NewSession(state.CycleProfile())
	s := NewScheduler(sess, nil)
	if s.Tick() {
		t.Error("tick without a surface should not draw")
	}

	rec := &recorder{w: 10, h: 10}
	s.SetSurface(rec)
	if s.Surface() != Surface(rec) {
		t.Error("Surface() should return the new target")
	}
	if !s.Tick() {
		t.Error("new surface should be drawn")
	}
}
