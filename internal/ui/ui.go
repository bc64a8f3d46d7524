// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/render"
	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/version"
)

// Layout: one title line above the star field, status and help below.
const (
	headerLines = 1
	footerLines = 2

	// keyStep is how far an arrow key turns the camera, in drag pixels.
	keyStep = 10

	frameInterval = 33 * time.Millisecond
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a redraw check.
	TickMsg time.Time

	// CatalogLoadedMsg delivers a loaded catalog.
	CatalogLoadedMsg struct {
		Result catalog.Result
	}

	// LoadFailedMsg signals that the catalog could not be loaded.
	LoadFailedMsg struct {
		Err error
	}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9D4EDD"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	session *state.Session
	sched   *render.Scheduler
	log     *logging.Logger
	load    tea.Cmd

	// UI state
	width   int
	height  int
	ready   bool
	surface *render.Braille
	frame   string // last rendered star field

	// Catalog status
	source   string
	accepted int
	rejected int
	loadErr  error
}

// New creates the root UI model for a session.
func New(sess *state.Session, log *logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	return Model{
		session: sess,
		sched:   render.NewScheduler(sess, nil),
		log:     log,
	}
}

// WithLoader returns a copy of the model that runs load from Init. load
// should deliver a CatalogLoadedMsg or a LoadFailedMsg; see LoadCatalog.
func (m Model) WithLoader(load tea.Cmd) Model {
	m.load = load
	return m
}

// LoadErr returns the catalog load failure, if any.
func (m Model) LoadErr() error {
	return m.loadErr
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.load == nil {
		return tickCmd()
	}
	return tea.Batch(tickCmd(), m.load)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		rows := msg.Height - headerLines - footerLines
		if rows < 1 {
			rows = 1
		}
		m.surface = render.NewBraille(msg.Width, rows)
		m.sched.SetSurface(m.surface)
		m.redraw()

	case TickMsg:
		m.redraw()
		return m, tickCmd()

	case CatalogLoadedMsg:
		m.source = msg.Result.Source
		m.accepted = len(msg.Result.Stars)
		m.rejected = len(msg.Result.Rejected)
		m.loadErr = nil
		m.session.SetCatalog(msg.Result.Catalog())

	case LoadFailedMsg:
		m.loadErr = msg.Err
		m.session.SetLoadError(msg.Err)
		m.log.Warn("catalog unavailable: %v", msg.Err)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "left", "h":
		m.session.Nudge(-keyStep, 0)
	case "right", "l":
		m.session.Nudge(keyStep, 0)
	case "up", "k":
		m.session.Nudge(0, -keyStep)
	case "down", "j":
		m.session.Nudge(0, keyStep)
	case "+", "=":
		m.session.Zoom(-1)
	case "-", "_":
		m.session.Zoom(1)
	case "m", " ":
		m.session.SwitchMode()
	case "r":
		m.session.Reset()
	}
	return nil
}

// handleMouse maps terminal cells to braille pixels and forwards pointer
// events to the session. The cell centre stands for the pointer position.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	px := float64(msg.X*2) + 1
	py := float64((msg.Y-headerLines)*4) + 2

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.session.BeginDrag(px, py)
		case tea.MouseButtonRight:
			m.session.SecondaryClick()
		case tea.MouseButtonWheelUp:
			m.session.Zoom(-1)
		case tea.MouseButtonWheelDown:
			m.session.Zoom(1)
		}
	case tea.MouseActionRelease:
		if m.session.Dragging() {
			m.session.EndDrag()
		}
	case tea.MouseActionMotion:
		m.session.PointerMove(px, py)
	}
}

// redraw renders a frame if the session changed since the last one.
func (m *Model) redraw() {
	if m.sched.Tick() {
		m.frame = m.surface.String()
		st := m.sched.LastStats()
		m.log.Debug("frame %d: %d drawn, %d culled, %d faint", m.sched.Frames(), st.Drawn, st.Culled, st.Faint)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.frame + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	p := m.session.Profile()
	title := titleStyle.Render("ls-starfield")
	info := dimStyle.Render(fmt.Sprintf(" v%s · profile %s", version.Version, p.Name))
	return truncate(title+info, m.width)
}

func (m Model) renderFooter() string {
	cam := m.session.Camera()

	var status string
	switch {
	case m.loadErr != nil:
		status = noticeStyle.Render("No catalog") + dimStyle.Render(" ("+m.loadErr.Error()+")")
	case m.source == "":
		status = accentStyle.Render("Loading catalog...")
	default:
		status = accentStyle.Render(fmt.Sprintf("%d stars", m.accepted))
		if m.rejected > 0 {
			status += dimStyle.Render(fmt.Sprintf(" (%d rejected)", m.rejected))
		}
		status += dimStyle.Render(" from " + m.source)
	}

	st := m.sched.LastStats()
	camera := dimStyle.Render(fmt.Sprintf("yaw %.2f  pitch %.2f  scale %.1f  %s  drawn %d",
		cam.Yaw, cam.Pitch, cam.Scale, cam.Mode, st.Drawn))

	help := "drag: rotate | wheel/+/-: zoom | arrows: turn | r: reset | q: quit"
	if p := m.session.Profile(); p.Switchable() {
		help = "drag: rotate | wheel/+/-: zoom | " + switchHint(p.Trigger) + "/m: switch | r: reset | q: quit"
	}

	lines := []string{
		truncate("  "+status+"  "+dimStyle.Render("|")+"  "+camera, m.width),
		truncate("  "+dimStyle.Render(help), m.width),
	}
	return strings.Join(lines, "\n")
}

func switchHint(t state.Trigger) string {
	if t == state.TriggerPrimaryClick {
		return "click"
	}
	return "right click"
}

// truncate cuts a styled line to the terminal width.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// LoadCatalog returns a command that loads src once and reports the
// outcome as a CatalogLoadedMsg or a LoadFailedMsg.
func LoadCatalog(ctx context.Context, src catalog.Source, log *logging.Logger) tea.Cmd {
	return func() tea.Msg {
		res, err := catalog.Load(ctx, src, log)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return CatalogLoadedMsg{Result: res}
	}
}
