package ui

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/state"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func newReady(t *testing.T, p state.Profile) (Model, *state.Session) {
	t.Helper()
	sess := state.NewSession(p)
	m := New(sess, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 12})
	return m, sess
}

func loaded(stars ...astro.Star) CatalogLoadedMsg {
	return CatalogLoadedMsg{Result: catalog.Result{Source: "test", Stars: stars}}
}

func press(x, y int, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: b}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_NotReady(t *testing.T) {
	m := New(state.NewSession(state.CycleProfile()), nil)
	if m.View() != "Initializing..." {
		t.Errorf("View() = %q", m.View())
	}
}

func TestView_Layout(t *testing.T) {
	m, _ := newReady(t, state.CycleProfile())
	view := m.View()

	lines := strings.Split(view, "\n")
	if len(lines) != 12 {
		t.Errorf("view has %d lines, want 12", len(lines))
	}
	if !strings.Contains(lines[0], "ls-starfield") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(view, "Loading catalog...") {
		t.Error("status should show loading before the catalog arrives")
	}
	cols, rows := m.surface.Cells()
	if cols != 80 || rows != 9 {
		t.Errorf("surface = %dx%d cells, want 80x9", cols, rows)
	}
}

func TestCatalogLoaded(t *testing.T) {
	m, sess := newReady(t, state.CycleProfile())
	m = update(t, m, loaded(astro.Star{Mag: -1, Z: 10}, astro.Star{Mag: 1, Z: -10}))
	m = update(t, m, TickMsg{})

	if !sess.Snapshot().Loaded {
		t.Fatal("session should hold the catalog")
	}
	if got := m.sched.LastStats(); got.Drawn != 1 || got.Culled != 1 {
		t.Errorf("stats = %+v, want 1 drawn 1 culled", got)
	}
	if !strings.Contains(m.View(), "2 stars") {
		t.Errorf("status missing star count:\n%s", m.View())
	}
	if g, _ := m.surface.Cell(40, 4); g == ' ' {
		t.Error("star should be drawn at the centre cell")
	}
}

func TestLoadFailed(t *testing.T) {
	m, sess := newReady(t, state.CycleProfile())
	m = update(t, m, LoadFailedMsg{Err: errors.New("connection refused")})
	view := m.View()
	if !strings.Contains(view, "No catalog") || !strings.Contains(view, "connection refused") {
		t.Errorf("status should note the missing catalog:\n%s", view)
	}
	if strings.Contains(view, "ERROR") {
		t.Errorf("load failure should be a notice, not an error banner:\n%s", view)
	}
	if sess.Snapshot().LoadError == nil {
		t.Error("session should record the load error")
	}
	if m.LoadErr() == nil || m.LoadErr().Error() != "connection refused" {
		t.Errorf("LoadErr() = %v", m.LoadErr())
	}
}

func TestLoadFailed_Logged(t *testing.T) {
	var buf bytes.Buffer
	m := New(state.NewSession(state.CycleProfile()), logging.NewWriter(logging.LevelInfo, &buf))
	update(t, m, LoadFailedMsg{Err: errors.New("connection refused")})
	if !strings.Contains(buf.String(), "[WARN]") || !strings.Contains(buf.String(), "catalog unavailable: connection refused") {
		t.Errorf("log = %q, want a warning with the load error", buf.String())
	}
}

func TestLoadCatalog(t *testing.T) {
	msg := LoadCatalog(context.Background(), catalog.Builtin{}, nil)()
	got, ok := msg.(CatalogLoadedMsg)
	if !ok {
		t.Fatalf("msg = %T, want CatalogLoadedMsg", msg)
	}
	if got.Result.Source != "builtin" || len(got.Result.Stars) == 0 {
		t.Errorf("result = %s with %d stars", got.Result.Source, len(got.Result.Stars))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg = LoadCatalog(ctx, catalog.Builtin{}, nil)()
	failed, ok := msg.(LoadFailedMsg)
	if !ok {
		t.Fatalf("cancelled load msg = %T, want LoadFailedMsg", msg)
	}
	if !errors.Is(failed.Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", failed.Err)
	}
}

func TestInit_RunsLoader(t *testing.T) {
	m := New(state.NewSession(state.CycleProfile()), nil)
	if m.Init() == nil {
		t.Fatal("Init should schedule the first tick")
	}

	ran := false
	m = m.WithLoader(func() tea.Msg {
		ran = true
		return loaded(astro.Star{Z: 1})
	})
	batch, ok := m.Init()().(tea.BatchMsg)
	if !ok {
		t.Fatal("Init with a loader should batch the tick and the load")
	}
	for _, cmd := range batch {
		cmd()
	}
	if !ran {
		t.Error("loader command was not part of Init")
	}
}

func TestMouse_Drag(t *testing.T) {
	m, sess := newReady(t, state.CycleProfile())

	m = update(t, m, press(10, 5, tea.MouseButtonLeft))
	if !sess.Dragging() {
		t.Fatal("left press should start a drag")
	}
	m = update(t, m, tea.MouseMsg{X: 15, Y: 6, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 15, Y: 6, Action: tea.MouseActionRelease})

	cam := sess.Camera()
	// 5 cells = 10 pixels across, 1 row = 4 pixels down.
	if math.Abs(cam.Yaw-0.10) > 1e-9 || math.Abs(cam.Pitch-0.04) > 1e-9 {
		t.Errorf("yaw/pitch = %v/%v, want 0.10/0.04", cam.Yaw, cam.Pitch)
	}
	if sess.Dragging() {
		t.Error("release should end the drag")
	}

	before := sess.Camera()
	update(t, m, tea.MouseMsg{X: 30, Y: 8, Action: tea.MouseActionMotion})
	if sess.Camera() != before {
		t.Error("motion without a drag should not rotate")
	}
}

func TestMouse_Wheel(t *testing.T) {
	m, sess := newReady(t, state.CycleProfile())
	m = update(t, m, press(0, 0, tea.MouseButtonWheelUp))
	if got := sess.Camera().Scale; math.Abs(got-550) > 1e-9 {
		t.Errorf("wheel up scale = %v, want 550", got)
	}
	update(t, m, press(0, 0, tea.MouseButtonWheelDown))
	if got := sess.Camera().Scale; math.Abs(got-495) > 1e-9 {
		t.Errorf("wheel down scale = %v, want 495", got)
	}
}

func TestMouse_SwitchTriggers(t *testing.T) {
	m, sess := newReady(t, state.CycleProfile())
	update(t, m, press(3, 3, tea.MouseButtonRight))
	if sess.Camera().Mode != astro.Spherical {
		t.Errorf("right click on cycle profile: mode = %v", sess.Camera().Mode)
	}

	m, sess = newReady(t, state.ToggleProfile())
	m = update(t, m, press(3, 3, tea.MouseButtonLeft))
	update(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionRelease})
	if sess.Camera().Mode != astro.Spherical {
		t.Errorf("click on toggle profile: mode = %v", sess.Camera().Mode)
	}

	m, sess = newReady(t, state.ToggleProfile())
	update(t, m, press(3, 3, tea.MouseButtonRight))
	if sess.Camera().Mode != astro.FishEye {
		t.Error("right click should not switch the toggle profile")
	}
}

func TestKeys(t *testing.T) {
	m, sess := newReady(t, state.CycleProfile())

	m = update(t, m, key("right"))
	m = update(t, m, key("down"))
	cam := sess.Camera()
	if math.Abs(cam.Yaw-0.1) > 1e-9 || math.Abs(cam.Pitch-0.1) > 1e-9 {
		t.Errorf("yaw/pitch = %v/%v, want 0.1/0.1", cam.Yaw, cam.Pitch)
	}

	m = update(t, m, key("+"))
	if math.Abs(sess.Camera().Scale-550) > 1e-9 {
		t.Errorf("scale = %v, want 550", sess.Camera().Scale)
	}

	m = update(t, m, key("m"))
	if sess.Camera().Mode != astro.Spherical {
		t.Errorf("mode = %v, want spherical", sess.Camera().Mode)
	}

	m = update(t, m, key("r"))
	cam = sess.Camera()
	if cam.Yaw != 0 || cam.Pitch != 0 || cam.Scale != state.DefaultScale {
		t.Errorf("reset camera = %+v", cam)
	}
	if cam.Mode != astro.Spherical {
		t.Error("reset should keep the projection")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestTick_CoalescesInput(t *testing.T) {
	m, _ := newReady(t, state.CycleProfile())
	start := m.sched.Frames()

	m = update(t, m, press(0, 1, tea.MouseButtonLeft))
	for x := 1; x <= 20; x++ {
		m = update(t, m, tea.MouseMsg{X: x, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if got := m.sched.Frames() - start; got != 1 {
		t.Errorf("frames rendered = %d, want 1", got)
	}
}

func TestHelpMentionsTrigger(t *testing.T) {
	m, _ := newReady(t, state.ToggleProfile())
	if !strings.Contains(m.View(), "click/m: switch") {
		t.Error("toggle profile help should mention click")
	}
	m, _ = newReady(t, state.FishEyeProfile())
	if strings.Contains(m.View(), "switch") {
		t.Error("fixed profile should not offer switching")
	}
}
