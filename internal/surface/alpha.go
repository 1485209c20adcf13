package surface

import (
	"github.com/opd-ai/go-colorpicker/internal/canvas"
	"github.com/opd-ai/go-colorpicker/internal/colors"
)

// AlphaStrip is the vertical opacity surface: the current color opaque at
// the top fading to transparent at the bottom.
type AlphaStrip struct {
	base
}

// NewAlpha creates the alpha strip.
func NewAlpha(state State, marker *Marker) *AlphaStrip {
	return &AlphaStrip{base: newBase(Alpha, state, marker)}
}

// Draw renders the opacity ramp of the current color.
func (s *AlphaStrip) Draw() {
	c := s.state.Color()
	opaque := c.WithAlpha(1).NRGBA()
	faded := c.WithAlpha(0).NRGBA()

	grd := canvas.NewLinearGradient(90, 0, 90, s.height()).
		AddColorStop(0, opaque).
		AddColorStop(1, faded)
	s.cv.Clear()
	s.cv.Fill(grd)
}

// ColorAt returns the current color with the alpha at y.
func (s *AlphaStrip) ColorAt(x, y float64) colors.Color {
	q := s.mapper.Forward(Point{X: x, Y: y})
	return s.state.Color().WithAlpha(q.U)
}

// OnColorSet redraws the ramp and moves the marker to the current alpha.
func (s *AlphaStrip) OnColorSet() {
	s.Draw()
	p := s.mapper.Inverse(Param{U: s.state.Color().A})
	s.SetMarkerCenter(p.X, p.Y)
}
