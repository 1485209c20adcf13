package render

import (
	"image"
	"sort"

	"github.com/opd-ai/go-colorpicker/internal/palette"
	"github.com/opd-ai/go-colorpicker/internal/surface"
	"github.com/opd-ai/go-colorpicker/internal/tabs"
)

// Layout metrics in logical pixels.
const (
	Padding        = 8
	TabBarHeight   = 24
	StripWidth     = 24
	ValueBarHeight = 32
	SliderHeight   = 20
	SliderGap      = 12
	LabelWidth     = 16
	SwatchWidth    = 29
	SwatchHeight   = 22
	SwatchGap      = 3

	MaterialTitleHeight = 36
	MaterialRowHeight   = 16
)

// Logical window size. The content area fits one 2D surface and two strips.
const (
	ContentWidth  = surface.Size + 2*(Padding+StripWidth)
	ContentHeight = surface.Size
	WindowWidth   = Padding + ContentWidth + Padding
	WindowHeight  = Padding + TabBarHeight + Padding + ContentHeight + Padding + ValueBarHeight + Padding
)

// SurfaceSlot is where one gradient surface is shown.
type SurfaceSlot struct {
	Kind surface.Kind
	Rect image.Rectangle
}

// SliderSlot is where one channel slider is shown.
type SliderSlot struct {
	Channel Channel
	Rect    image.Rectangle
}

// Layout places every control of one tab inside the window.
type Layout struct {
	Tabs     []image.Rectangle
	Content  image.Rectangle
	Surfaces []SurfaceSlot
	Sliders  []SliderSlot
	Value    image.Rectangle
	Swatch   image.Rectangle
	Text     image.Rectangle
}

// NewLayout lays out tab t for a window showing nTabs tabs.
func NewLayout(nTabs int, t tabs.Tab, alphaChannel bool) Layout {
	var l Layout

	if nTabs > 0 {
		w := ContentWidth / nTabs
		for i := 0; i < nTabs; i++ {
			x := Padding + i*w
			r := image.Rect(x, Padding, x+w, Padding+TabBarHeight)
			if i == nTabs-1 {
				r.Max.X = Padding + ContentWidth
			}
			l.Tabs = append(l.Tabs, r)
		}
	}

	top := Padding + TabBarHeight + Padding
	l.Content = image.Rect(Padding, top, Padding+ContentWidth, top+ContentHeight)

	switch t.Content {
	case tabs.Surfaces:
		x := l.Content.Min.X
		for _, k := range t.Visible(alphaChannel) {
			w := surface.Size
			if k.IgnoresX() {
				w = StripWidth
			}
			l.Surfaces = append(l.Surfaces, SurfaceSlot{
				Kind: k,
				Rect: image.Rect(x, l.Content.Min.Y, x+w, l.Content.Min.Y+surface.Size),
			})
			x += w + Padding
		}
	case tabs.Sliders:
		for i, ch := range Channels(alphaChannel) {
			y := l.Content.Min.Y + i*(SliderHeight+SliderGap)
			l.Sliders = append(l.Sliders, SliderSlot{
				Channel: ch,
				Rect:    image.Rect(l.Content.Min.X+LabelWidth, y, l.Content.Max.X, y+SliderHeight),
			})
		}
	}

	vy := l.Content.Max.Y + Padding
	l.Value = image.Rect(Padding, vy, Padding+ContentWidth, vy+ValueBarHeight)
	l.Swatch = image.Rect(l.Value.Min.X, l.Value.Min.Y, l.Value.Min.X+ValueBarHeight, l.Value.Max.Y)
	l.Text = image.Rect(l.Swatch.Max.X+Padding, l.Value.Min.Y, l.Value.Max.X, l.Value.Max.Y)
	return l
}

// TabAt returns the index of the tab button under p, or -1.
func (l Layout) TabAt(p image.Point) int {
	for i, r := range l.Tabs {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// SliderAt returns the index of the slider under p, or -1.
func (l Layout) SliderAt(p image.Point) int {
	for i, s := range l.Sliders {
		if p.In(s.Rect) {
			return i
		}
	}
	return -1
}

// swatchColumns is the number of swatches per grid row.
func (l Layout) swatchColumns() int {
	return (l.Content.Dx() + SwatchGap) / (SwatchWidth + SwatchGap)
}

// SwatchRect returns the rectangle of swatch i in the grid.
func (l Layout) SwatchRect(i int) image.Rectangle {
	cols := l.swatchColumns()
	x := l.Content.Min.X + (i%cols)*(SwatchWidth+SwatchGap)
	y := l.Content.Min.Y + (i/cols)*(SwatchHeight+SwatchGap)
	return image.Rect(x, y, x+SwatchWidth, y+SwatchHeight)
}

// SwatchCapacity is the number of swatches that fit in the content area.
func (l Layout) SwatchCapacity() int {
	rows := (l.Content.Dy() + SwatchGap) / (SwatchHeight + SwatchGap)
	return rows * l.swatchColumns()
}

// SwatchAt returns the index of the swatch under p among n swatches, or -1.
// The gaps between swatches hit nothing.
func (l Layout) SwatchAt(p image.Point, n int) int {
	if !p.In(l.Content) {
		return -1
	}
	dx, dy := p.X-l.Content.Min.X, p.Y-l.Content.Min.Y
	sx, sy := SwatchWidth+SwatchGap, SwatchHeight+SwatchGap
	if dx%sx >= SwatchWidth || dy%sy >= SwatchHeight {
		return -1
	}
	col, row := dx/sx, dy/sy
	cols := l.swatchColumns()
	if col >= cols {
		return -1
	}
	i := row*cols + col
	if i >= n || i >= l.SwatchCapacity() {
		return -1
	}
	return i
}

// MaterialSlot is one line of the material list, placed in list space:
// y = 0 is the top of the list, before scrolling.
type MaterialSlot struct {
	Row  palette.Row
	Rect image.Rectangle
}

// MaterialSlots stacks rows in the content area's width. Titles are taller
// than shades.
func (l Layout) MaterialSlots(rows []palette.Row) []MaterialSlot {
	out := make([]MaterialSlot, len(rows))
	y := 0
	for i, row := range rows {
		h := MaterialRowHeight
		if row.Title {
			h = MaterialTitleHeight
		}
		out[i] = MaterialSlot{Row: row, Rect: image.Rect(l.Content.Min.X, y, l.Content.Max.X, y+h)}
		y += h
	}
	return out
}

// MaxScroll is how far a list of slots can scroll before its end reaches
// the bottom of the content area.
func (l Layout) MaxScroll(slots []MaterialSlot) int {
	if len(slots) == 0 {
		return 0
	}
	return max(slots[len(slots)-1].Rect.Max.Y-l.Content.Dy(), 0)
}

// MaterialScreenRect returns where slot s is drawn at the given scroll.
func (l Layout) MaterialScreenRect(s MaterialSlot, scroll int) image.Rectangle {
	return s.Rect.Add(image.Pt(0, l.Content.Min.Y-scroll))
}

// MaterialAt returns the index of the shade under p, or -1. Titles and
// anything outside the content area hit nothing.
func (l Layout) MaterialAt(p image.Point, slots []MaterialSlot, scroll int) int {
	if !p.In(l.Content) {
		return -1
	}
	y := p.Y - l.Content.Min.Y + scroll
	i := sort.Search(len(slots), func(i int) bool { return slots[i].Rect.Max.Y > y })
	if i == len(slots) || slots[i].Row.Title {
		return -1
	}
	return i
}

// SurfaceOrigin returns the client position of the surface's top-left
// pixel and its on-screen extent.
func (s SurfaceSlot) SurfaceOrigin() (origin, extent surface.Point) {
	return surface.Point{X: float64(s.Rect.Min.X), Y: float64(s.Rect.Min.Y)},
		surface.Point{X: float64(s.Rect.Dx()), Y: float64(s.Rect.Dy())}
}
