package surface

import "math"

// Geometry selects how a pixel coordinate maps to a gradient parameter.
type Geometry int

const (
	// LinearVertical maps y = 0 to the start of the gradient.
	LinearVertical Geometry = iota
	// LinearVerticalInverseAxis maps y = height to the start of the gradient.
	LinearVerticalInverseAxis
	// PolarDisk maps a point to an angle and a radius fraction around the
	// center of the square.
	PolarDisk
)

// Point is a position in surface pixel space.
type Point struct {
	X, Y float64
}

// Param is a gradient parameter pair. For linear geometries U is the
// vertical fraction in [0,1] and V the horizontal fraction (always 0 when
// the x axis is ignored). For PolarDisk U is the angle in degrees in
// [0,360) and V the radius fraction in [0,1].
type Param struct {
	U, V float64
}

// Mapper converts between pointer coordinates and gradient parameters for
// one surface geometry.
type Mapper struct {
	Geometry Geometry
	Width    float64
	Height   float64
	IgnoreX  bool
}

// Radius returns the disk radius of a polar surface.
func (m Mapper) Radius() float64 {
	return m.Height / 2
}

// Adjust clamps p into the valid area. Linear surfaces clamp each axis to
// the rectangle; the disk projects points on or beyond the rim onto the
// circle at the same angle.
func (m Mapper) Adjust(p Point) Point {
	if m.Geometry == PolarDisk {
		r := m.Radius()
		dx, dy := p.X-r, p.Y-r
		if math.Hypot(dx, dy) >= r {
			theta := math.Atan2(dy, dx)
			return Point{X: r + r*math.Cos(theta), Y: r + r*math.Sin(theta)}
		}
		return p
	}
	return Point{
		X: math.Max(0, math.Min(p.X, m.Width)),
		Y: math.Max(0, math.Min(p.Y, m.Height)),
	}
}

// Forward maps a pixel coordinate to a gradient parameter. The point is
// adjusted first, so the result is always in range.
func (m Mapper) Forward(p Point) Param {
	p = m.Adjust(p)
	switch m.Geometry {
	case PolarDisk:
		r := m.Radius()
		dx, dy := p.X-r, p.Y-r
		h := math.Atan2(dy, dx) * 180 / math.Pi
		if h < 0 {
			h += 360
		}
		if h >= 360 {
			h = 0
		}
		return Param{U: h, V: math.Min(1, math.Hypot(dx, dy)/r)}
	case LinearVerticalInverseAxis:
		return Param{U: (m.Height - p.Y) / m.Height, V: m.horizontal(p.X)}
	default:
		return Param{U: p.Y / m.Height, V: m.horizontal(p.X)}
	}
}

func (m Mapper) horizontal(x float64) float64 {
	if m.IgnoreX {
		return 0
	}
	return x / m.Height
}

// Inverse maps a gradient parameter back to a pixel coordinate.
func (m Mapper) Inverse(q Param) Point {
	switch m.Geometry {
	case PolarDisk:
		r := m.Radius()
		theta := q.U * math.Pi / 180
		return Point{X: r + q.V*r*math.Cos(theta), Y: r + q.V*r*math.Sin(theta)}
	case LinearVerticalInverseAxis:
		return Point{X: m.inverseHorizontal(q.V), Y: m.Height - m.Height*q.U}
	default:
		return Point{X: m.inverseHorizontal(q.V), Y: m.Height * q.U}
	}
}

func (m Mapper) inverseHorizontal(v float64) float64 {
	if m.IgnoreX {
		return 0
	}
	return m.Width * v
}

// mapperFor returns the mapper of a surface kind.
func mapperFor(k Kind) Mapper {
	m := Mapper{Width: Size, Height: Size, IgnoreX: k.IgnoresX()}
	switch k {
	case Hue:
		m.Geometry = LinearVertical
	case Wheel:
		m.Geometry = PolarDisk
	default:
		m.Geometry = LinearVerticalInverseAxis
	}
	return m
}
