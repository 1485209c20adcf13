package surface

import "math"

// DefaultMarkerSize is the marker side used when none is configured.
const DefaultMarkerSize = 10

// Marker is the indicator of the selected point. Left and Top locate its
// top-left corner in surface pixels.
type Marker struct {
	Width, Height float64
	Left, Top     float64
}

// NewMarker creates a marker of the given size.
func NewMarker(width, height float64) *Marker {
	if width <= 0 {
		width = DefaultMarkerSize
	}
	if height <= 0 {
		height = DefaultMarkerSize
	}
	return &Marker{Width: width, Height: height}
}

// Center returns the marker center in surface pixels.
func (m *Marker) Center() Point {
	return Point{
		X: m.Left + math.Floor(m.Width/2),
		Y: m.Top + math.Floor(m.Height/2),
	}
}

// place centers the marker on (x, y) after adjusting the point with mp.
// The marker may overhang the surface by half its size but no more. On
// single-axis surfaces the marker stays at the left edge.
func (m *Marker) place(mp Mapper, x, y float64) {
	xOff, yOff := -m.Width/2, -m.Height/2
	p := mp.Adjust(Point{X: x, Y: y})
	xAdj, yAdj := p.X+xOff, p.Y+yOff
	h := mp.Height

	if mp.IgnoreX {
		m.Left = 0
		m.Top = roundHalfUp(math.Max(math.Min(h-1+yOff, yAdj), yOff))
		return
	}
	m.Left = math.Floor(math.Max(math.Min(h+xOff, xAdj), xOff))
	m.Top = math.Floor(math.Max(math.Min(h+yOff, yAdj), yOff))
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
