package surface

import (
	"image/color"

	"github.com/opd-ai/go-colorpicker/internal/canvas"
	"github.com/opd-ai/go-colorpicker/internal/colors"
)

// ValueStrip is the vertical brightness surface: the current hue and
// saturation at full value at the top, black at the bottom.
type ValueStrip struct {
	base
}

// NewValue creates the value strip.
func NewValue(state State, marker *Marker) *ValueStrip {
	return &ValueStrip{base: newBase(Value, state, marker)}
}

// Draw renders the brightness ramp of the current color.
func (s *ValueStrip) Draw() {
	c := s.state.Color()
	top := colors.HSV(c.H, c.S, 1).NRGBA()

	grd := canvas.NewLinearGradient(90, 0, 90, s.height()).
		AddColorStop(0, top).
		AddColorStop(1, color.NRGBA{A: 255})
	s.cv.Clear()
	s.cv.Fill(grd)
}

// ColorAt returns the current color with the value at y.
func (s *ValueStrip) ColorAt(x, y float64) colors.Color {
	q := s.mapper.Forward(Point{X: x, Y: y})
	cur := s.state.Color()
	return colors.HSVA(cur.H, cur.S, q.U, cur.A)
}

// OnColorSet redraws the ramp and moves the marker to the current value.
func (s *ValueStrip) OnColorSet() {
	s.Draw()
	p := s.mapper.Inverse(Param{U: s.state.Color().V})
	s.SetMarkerCenter(p.X, p.Y)
}
