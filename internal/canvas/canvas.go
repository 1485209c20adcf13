// Package canvas provides the software raster target every picker surface
// draws into. It mirrors the small subset of a 2D canvas API the surfaces
// need: pattern fills of rectangles and filled pie wedges, composited with
// source-over.
package canvas

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Canvas is an RGBA raster of fixed size.
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// New creates a transparent canvas of the given size.
func New(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// Image returns the backing image. Callers must not retain it across draws
// if they need a stable snapshot; use Snapshot for that.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	dst := image.NewRGBA(c.img.Rect)
	copy(dst.Pix, c.img.Pix)
	return dst
}

// At returns the non-premultiplied color at (x, y).
func (c *Canvas) At(x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(c.img.At(x, y)).(color.NRGBA)
}

// Clear resets every pixel to transparent.
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

// FillRect composites p over the rectangle r.
func (c *Canvas) FillRect(r image.Rectangle, p image.Image) {
	r = r.Intersect(c.img.Rect)
	if r.Empty() || p == nil {
		return
	}
	draw.Draw(c.img, r, p, r.Min, draw.Over)
}

// Fill composites p over the whole canvas.
func (c *Canvas) Fill(p image.Image) {
	c.FillRect(c.img.Rect, p)
}

// maxSegmentAngle bounds the chord used to approximate an arc.
const maxSegmentAngle = math.Pi / 720

// FillWedge fills the pie slice centered at (cx, cy) with the given radius,
// swept clockwise in screen space from angle a0 to a1 (radians). The path
// starts at the center, follows the arc and closes back to the center.
func (c *Canvas) FillWedge(cx, cy, radius, a0, a1 float64, col color.Color) {
	if radius <= 0 || a1 <= a0 || col == nil {
		return
	}
	w, h := c.Width(), c.Height()
	c.z.Reset(w, h)
	c.z.DrawOp = draw.Over

	c.z.MoveTo(float32(cx), float32(cy))
	n := int(math.Ceil((a1 - a0) / maxSegmentAngle))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		c.z.LineTo(float32(cx+radius*math.Cos(a)), float32(cy+radius*math.Sin(a)))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{})
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
