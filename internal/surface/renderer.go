package surface

import (
	"fmt"

	"github.com/opd-ai/go-colorpicker/internal/canvas"
	"github.com/opd-ai/go-colorpicker/internal/colors"
)

// State is the externally owned color state a surface reads. Hue is the
// cached hue, which can differ from Color().H while the color is gray.
type State interface {
	Color() colors.Color
	Hue() float64
}

// Publisher receives colors proposed by pointer input.
type Publisher interface {
	Publish(c colors.Color)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(colors.Color)

// Publish calls f(c).
func (f PublisherFunc) Publish(c colors.Color) { f(c) }

// Renderer is one gradient surface.
type Renderer interface {
	Kind() Kind
	Canvas() *canvas.Canvas
	Marker() *Marker
	Mapper() Mapper

	// Adjust clamps a surface coordinate into the valid area.
	Adjust(x, y float64) Point
	// Draw rasterizes the surface from the current state.
	Draw()
	// ColorAt returns the color sample at a surface coordinate. It has no
	// side effects.
	ColorAt(x, y float64) colors.Color
	// OnColorSet reacts to a change of the externally owned color.
	OnColorSet()
	// SetMarkerCenter centers the marker on a surface coordinate.
	SetMarkerCenter(x, y float64)
}

// base carries what every variant shares.
type base struct {
	kind   Kind
	state  State
	mapper Mapper
	cv     *canvas.Canvas
	marker *Marker
}

func newBase(k Kind, state State, marker *Marker) base {
	if marker == nil {
		marker = NewMarker(DefaultMarkerSize, DefaultMarkerSize)
	}
	return base{
		kind:   k,
		state:  state,
		mapper: mapperFor(k),
		cv:     canvas.New(Size, Size),
		marker: marker,
	}
}

func (b *base) Kind() Kind             { return b.kind }
func (b *base) Canvas() *canvas.Canvas { return b.cv }
func (b *base) Marker() *Marker        { return b.marker }
func (b *base) Mapper() Mapper         { return b.mapper }

func (b *base) Adjust(x, y float64) Point {
	return b.mapper.Adjust(Point{X: x, Y: y})
}

func (b *base) SetMarkerCenter(x, y float64) {
	b.marker.place(b.mapper, x, y)
}

func (b *base) height() float64 { return b.mapper.Height }
func (b *base) width() float64  { return b.mapper.Width }

// New creates the renderer for kind k reading from state. A nil marker gets
// the default size.
func New(k Kind, state State, marker *Marker) (Renderer, error) {
	switch k {
	case Hue:
		return NewHue(state, marker), nil
	case Alpha:
		return NewAlpha(state, marker), nil
	case Spectrum:
		return NewSpectrum(state, marker), nil
	case Wheel:
		return NewWheel(state, marker), nil
	case Value:
		return NewValue(state, marker), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
}
