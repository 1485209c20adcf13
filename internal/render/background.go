package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// BackgroundMode specifies how an area is filled before anything is drawn
// over it.
type BackgroundMode int

const (
	// BackgroundModeSolid draws a solid color.
	BackgroundModeSolid BackgroundMode = iota
	// BackgroundModeChecker draws a light and dark checkerboard so that
	// translucent colors stay visible.
	BackgroundModeChecker
)

// BackgroundRenderer fills an area of the screen.
type BackgroundRenderer interface {
	// Draw fills the whole screen.
	Draw(screen *ebiten.Image)
	// DrawRect fills only r.
	DrawRect(screen *ebiten.Image, r image.Rectangle)
	// Mode returns the background mode.
	Mode() BackgroundMode
}

// SolidBackground renders a solid color background.
type SolidBackground struct {
	color color.RGBA
}

// NewSolidBackground creates a new solid background renderer.
func NewSolidBackground(c color.RGBA) *SolidBackground {
	return &SolidBackground{color: c}
}

// Draw fills the screen with the background color.
func (sb *SolidBackground) Draw(screen *ebiten.Image) {
	screen.Fill(sb.color)
}

// DrawRect fills r with the background color.
func (sb *SolidBackground) DrawRect(screen *ebiten.Image, r image.Rectangle) {
	screen.SubImage(r).(*ebiten.Image).Fill(sb.color)
}

// Mode returns BackgroundModeSolid.
func (sb *SolidBackground) Mode() BackgroundMode {
	return BackgroundModeSolid
}

// Color returns the background color.
func (sb *SolidBackground) Color() color.RGBA {
	return sb.color
}

// Checker colors and cell side.
var (
	CheckerLight = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 255}
	CheckerDark  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
)

const defaultCheckerCell = 8

// CheckerImage rasterizes a w by h checkerboard with square cells. The
// top-left cell is light.
func CheckerImage(w, h, cell int, light, dark color.RGBA) *image.RGBA {
	if cell <= 0 {
		cell = defaultCheckerCell
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// CheckerBackground renders a window sized checkerboard. Every area drawn
// from it lines up with the same global grid.
type CheckerBackground struct {
	width, height int
	cell          int
	pattern       *ebiten.Image
}

// NewCheckerBackground creates a checkerboard covering a w by h screen.
func NewCheckerBackground(w, h, cell int) *CheckerBackground {
	if cell <= 0 {
		cell = defaultCheckerCell
	}
	return &CheckerBackground{width: w, height: h, cell: cell}
}

// Cell returns the side of one checker square.
func (cb *CheckerBackground) Cell() int {
	return cb.cell
}

func (cb *CheckerBackground) image() *ebiten.Image {
	if cb.pattern == nil {
		cb.pattern = ebiten.NewImageFromImage(CheckerImage(cb.width, cb.height, cb.cell, CheckerLight, CheckerDark))
	}
	return cb.pattern
}

// Draw covers the screen with the checkerboard.
func (cb *CheckerBackground) Draw(screen *ebiten.Image) {
	screen.DrawImage(cb.image(), nil)
}

// DrawRect covers r with the matching part of the checkerboard.
func (cb *CheckerBackground) DrawRect(screen *ebiten.Image, r image.Rectangle) {
	src := cb.image().SubImage(r).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	screen.DrawImage(src, op)
}

// Mode returns BackgroundModeChecker.
func (cb *CheckerBackground) Mode() BackgroundMode {
	return BackgroundModeChecker
}

// NewBackgroundRenderer creates a BackgroundRenderer for mode. The color is
// ignored by the checkerboard.
func NewBackgroundRenderer(mode BackgroundMode, bgColor color.RGBA, w, h int) BackgroundRenderer {
	switch mode {
	case BackgroundModeChecker:
		return NewCheckerBackground(w, h, defaultCheckerCell)
	default:
		return NewSolidBackground(bgColor)
	}
}
