package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-colorpicker/internal/surface"
)

// PointerState is the primary pointer as sampled once per tick.
type PointerState struct {
	X, Y float64
	Down bool
	// Touches holds every active touch point. When it is non-empty the
	// first one is the pointer.
	Touches []surface.Touch
	// WheelY is the vertical wheel movement since the last sample.
	WheelY float64
}

// InputSource samples the pointer.
type InputSource interface {
	Pointer() PointerState
}

// EbitenInput reads the mouse and touch screen through Ebiten. The first
// active touch wins over the mouse.
type EbitenInput struct {
	touchIDs []ebiten.TouchID
}

// NewEbitenInput creates an input source backed by Ebiten.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Pointer implements InputSource.
func (in *EbitenInput) Pointer() PointerState {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		st := PointerState{Down: true}
		for _, id := range in.touchIDs {
			x, y := ebiten.TouchPosition(id)
			st.Touches = append(st.Touches, surface.Touch{ClientX: float64(x), ClientY: float64(y)})
		}
		st.X, st.Y = st.Touches[0].ClientX, st.Touches[0].ClientY
		return st
	}
	x, y := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return PointerState{
		X:      float64(x),
		Y:      float64(y),
		Down:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY: wy,
	}
}

// Translator turns successive pointer samples into press, move and release
// events. Moves are reported only while the position changes.
type Translator struct {
	prev    PointerState
	started bool
}

// Next compares st with the previous sample and returns the resulting
// events in order. A release carries the last position seen while down.
func (t *Translator) Next(st PointerState) []*surface.PointerEvent {
	prev, started := t.prev, t.started
	t.prev, t.started = st, true

	var out []*surface.PointerEvent
	switch {
	case st.Down && (!started || !prev.Down):
		out = append(out, event(surface.Press, st))
	case st.Down && (st.X != prev.X || st.Y != prev.Y):
		out = append(out, event(surface.Move, st))
	case !st.Down && started && prev.Down:
		out = append(out, event(surface.Release, prev))
	case !st.Down && started && (st.X != prev.X || st.Y != prev.Y):
		out = append(out, event(surface.Move, st))
	}
	return out
}

// Reset forgets the previous sample.
func (t *Translator) Reset() {
	t.prev, t.started = PointerState{}, false
}

func event(typ surface.EventType, st PointerState) *surface.PointerEvent {
	e := &surface.PointerEvent{Type: typ, ClientX: st.X, ClientY: st.Y}
	if len(st.Touches) > 0 {
		e.Touches = append([]surface.Touch(nil), st.Touches...)
	}
	return e
}
