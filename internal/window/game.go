package window

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/render"
	"github.com/litescript/ls-starfield/internal/state"
)

// Game adapts a session to the ebiten.Game interface. The screen is only
// repainted when the session is dirty.
type Game struct {
	ctx     context.Context
	session *state.Session
	sched   *render.Scheduler
	canvas  *Canvas
	log     *logging.Logger

	width, height int
	debug         bool
}

// Option configures a Game.
type Option func(*Game)

// WithDebug overlays the frame counter and draw statistics.
func WithDebug(on bool) Option {
	return func(g *Game) {
		g.debug = on
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// NewGame creates a game for sess. The context ends the game when
// cancelled.
func NewGame(ctx context.Context, sess *state.Session, opts ...Option) *Game {
	canvas := NewCanvas()
	g := &Game{
		ctx:     ctx,
		session: sess,
		sched:   render.NewScheduler(sess, canvas),
		canvas:  canvas,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if Apply(g.session, pollInput()) {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.SetImage(screen)
	if g.sched.Tick() {
		st := g.sched.LastStats()
		g.log.Debug("frame %d: %d drawn, %d culled, %d faint", g.sched.Frames(), st.Drawn, st.Culled, st.Faint)
		if g.debug {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d  drawn %d  culled %d  faint %d",
				g.sched.Frames(), st.Drawn, st.Culled, st.Faint), 10, g.height-20)
		}
	}
}

// Layout implements ebiten.Game. The logical screen follows the window so
// the projection centre tracks resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.session.Invalidate()
	}
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and blocks until it is closed.
func Run(g *Game, title string, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
