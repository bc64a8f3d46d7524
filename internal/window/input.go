package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/litescript/ls-starfield/internal/state"
)

// keyStep is how far an arrow key turns the camera, in drag pixels.
const keyStep = 10

// Key repeat timing in ticks.
const (
	repeatDelay    = 15
	repeatInterval = 3
)

// Input is one tick's worth of polled input.
type Input struct {
	CursorX, CursorY float64

	LeftPressed  bool
	LeftReleased bool
	RightPressed bool
	WheelY       float64
	TurnX, TurnY int // arrow key steps
	ZoomIn       bool
	ZoomOut      bool
	SwitchMode   bool
	Reset        bool
	Quit         bool
}

// pollInput reads the current Ebitengine input state.
func pollInput() Input {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	in := Input{
		CursorX:      float64(mx),
		CursorY:      float64(my),
		LeftPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		RightPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		WheelY:       wy,
		ZoomIn:       repeating(ebiten.KeyEqual) || repeating(ebiten.KeyNumpadAdd),
		ZoomOut:      repeating(ebiten.KeyMinus) || repeating(ebiten.KeyNumpadSubtract),
		SwitchMode:   inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Reset:        inpututil.IsKeyJustPressed(ebiten.KeyR),
		Quit:         inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
	if repeating(ebiten.KeyLeft) {
		in.TurnX--
	}
	if repeating(ebiten.KeyRight) {
		in.TurnX++
	}
	if repeating(ebiten.KeyUp) {
		in.TurnY--
	}
	if repeating(ebiten.KeyDown) {
		in.TurnY++
	}
	return in
}

// repeating reports a key press on the first tick and then at the repeat
// interval while held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// Apply forwards one tick of input to the session and reports whether the
// viewer should quit. Wheel up (positive Y in Ebitengine) zooms in.
func Apply(sess *state.Session, in Input) bool {
	if in.Quit {
		return true
	}

	if in.LeftPressed {
		sess.BeginDrag(in.CursorX, in.CursorY)
	}
	sess.PointerMove(in.CursorX, in.CursorY)
	if in.LeftReleased {
		sess.EndDrag()
	}
	if in.RightPressed {
		sess.SecondaryClick()
	}

	if in.WheelY != 0 {
		sess.Zoom(-in.WheelY)
	}
	if in.ZoomIn {
		sess.Zoom(-1)
	}
	if in.ZoomOut {
		sess.Zoom(1)
	}

	if in.TurnX != 0 || in.TurnY != 0 {
		sess.Nudge(float64(in.TurnX*keyStep), float64(in.TurnY*keyStep))
	}
	if in.SwitchMode {
		sess.SwitchMode()
	}
	if in.Reset {
		sess.Reset()
	}
	return false
}
