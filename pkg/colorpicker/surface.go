package colorpicker

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/opd-ai/go-colorpicker/internal/surface"
)

// Surface is a gradient surface attached to a picker. Its pixels and marker
// follow the picker's color until Detach.
type Surface struct {
	p   *pickerImpl
	att *surface.Attachment
}

// AttachSurface creates a surface of the named kind (hue, alpha, spectrum,
// wheel or value) with its top-left corner at (x, y).
func (p *pickerImpl) AttachSurface(kind string, x, y float64) (*Surface, error) {
	k, err := surface.ParseKind(kind)
	if err != nil {
		return nil, NewCategorizedError(err, ErrorCategoryInput, SeverityWarning).WithContext("kind", kind)
	}
	att, err := p.Attach(k, surface.NewElement(surface.Point{X: x, Y: y}))
	if err != nil {
		return nil, fmt.Errorf("attach %s: %w", kind, err)
	}
	return &Surface{p: p, att: att}, nil
}

// PointerDown starts a drag on the surface under (x, y).
func (p *pickerImpl) PointerDown(x, y float64) {
	p.Pointer(&surface.PointerEvent{Type: surface.Press, ClientX: x, ClientY: y})
}

// PointerMove continues a drag.
func (p *pickerImpl) PointerMove(x, y float64) {
	p.Pointer(&surface.PointerEvent{Type: surface.Move, ClientX: x, ClientY: y})
}

// PointerUp ends a drag.
func (p *pickerImpl) PointerUp(x, y float64) {
	p.Pointer(&surface.PointerEvent{Type: surface.Release, ClientX: x, ClientY: y})
}

// Kind returns the surface name.
func (s *Surface) Kind() string {
	return s.att.Kind().String()
}

// Bounds returns the surface rectangle in pointer coordinates.
func (s *Surface) Bounds() image.Rectangle {
	o, e := s.att.Element.Origin(), s.att.Element.Extent()
	x, y := int(math.Floor(o.X)), int(math.Floor(o.Y))
	return image.Rect(x, y, x+int(e.X), y+int(e.Y))
}

// Image returns a copy of the surface pixels.
func (s *Surface) Image() *image.RGBA {
	var img *image.RGBA
	s.p.state.locked(func() {
		img = s.att.Canvas().Snapshot()
	})
	return img
}

// Marker returns the marker rectangle in surface pixels. It may overhang
// the surface by half its size.
func (s *Surface) Marker() image.Rectangle {
	var m surface.Marker
	s.p.state.locked(func() {
		m = *s.att.Marker()
	})
	x, y := int(m.Left), int(m.Top)
	return image.Rect(x, y, x+int(m.Width), y+int(m.Height))
}

// ColorAt returns the color the surface shows at a surface coordinate.
func (s *Surface) ColorAt(x, y float64) Color {
	var c Color
	s.p.state.locked(func() {
		pt := s.att.Adjust(x, y)
		c = s.att.ColorAt(pt.X, pt.Y)
	})
	return c
}

// WritePNG encodes the surface pixels as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.Image())
}

// Detach removes the surface from the picker. It is safe to call more
// than once.
func (s *Surface) Detach() {
	s.p.Detach(s.att)
}
