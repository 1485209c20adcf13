package render

import (
	"bytes"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomonobold"
)

// defaultFontSize is the default font size in points.
const defaultFontSize = 14.0

// ellipsis replaces the tail of text that does not fit.
const ellipsis = "…"

var (
	fontSourceOnce sync.Once
	fontSource     *text.GoTextFaceSource
	fontSourceErr  error
)

// monoSource parses the embedded font once per process.
func monoSource() *text.GoTextFaceSource {
	fontSourceOnce.Do(func() {
		fontSource, fontSourceErr = text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	})
	if fontSourceErr != nil {
		// The font is embedded, so this only happens on a broken build.
		panic("failed to load embedded font: " + fontSourceErr.Error())
	}
	return fontSource
}

// TextRenderer draws the tab labels and the color value in a bold
// monospace face.
type TextRenderer struct {
	mu       sync.RWMutex
	face     *text.GoTextFace
	fontSize float64
}

// NewTextRenderer creates a TextRenderer with the default size.
func NewTextRenderer() *TextRenderer {
	tr := &TextRenderer{}
	tr.SetFontSize(defaultFontSize)
	return tr
}

// SetFontSize sets the font size. A non-positive size restores the
// default.
func (tr *TextRenderer) SetFontSize(size float64) {
	if size <= 0 {
		size = defaultFontSize
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.fontSize = size
	tr.face = &text.GoTextFace{Source: monoSource(), Size: size}
}

// FontSize returns the current font size.
func (tr *TextRenderer) FontSize() float64 {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.fontSize
}

// DrawText renders text with its top-left corner at (x, y).
func (tr *TextRenderer) DrawText(screen *ebiten.Image, textStr string, x, y float64, clr color.RGBA) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, textStr, tr.face, op)
}

// DrawCentered renders text centered in r, shortened to fit its width.
func (tr *TextRenderer) DrawCentered(screen *ebiten.Image, textStr string, r image.Rectangle, clr color.RGBA) {
	textStr = tr.Fit(textStr, float64(r.Dx()))
	w, h := tr.MeasureText(textStr)
	x := float64(r.Min.X) + (float64(r.Dx())-w)/2
	y := float64(r.Min.Y) + (float64(r.Dy())-h)/2
	tr.DrawText(screen, textStr, x, y, clr)
}

// MeasureText returns the width and height of the given text string.
func (tr *TextRenderer) MeasureText(textStr string) (width, height float64) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return text.Measure(textStr, tr.face, tr.fontSize*1.2)
}

// LineHeight returns the height of a single line of text.
func (tr *TextRenderer) LineHeight() float64 {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.fontSize * 1.2
}

// Fit returns textStr, or its longest prefix followed by an ellipsis, whose
// width is at most maxWidth.
func (tr *TextRenderer) Fit(textStr string, maxWidth float64) string {
	if w, _ := tr.MeasureText(textStr); w <= maxWidth {
		return textStr
	}
	runes := []rune(textStr)
	for n := len(runes) - 1; n > 0; n-- {
		s := string(runes[:n]) + ellipsis
		if w, _ := tr.MeasureText(s); w <= maxWidth {
			return s
		}
	}
	return ellipsis
}
