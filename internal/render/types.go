// Package render provides the Ebiten window of go-colorpicker: the tab bar,
// the gradient surfaces, the channel sliders, the swatch grids and the text
// value, driven by a Host that owns the color state.
package render

import (
	"fmt"
	"image/color"

	"github.com/opd-ai/go-colorpicker/internal/colors"
	"github.com/opd-ai/go-colorpicker/internal/palette"
	"github.com/opd-ai/go-colorpicker/internal/surface"
	"github.com/opd-ai/go-colorpicker/internal/tabs"
)

// Config holds the rendering configuration options.
type Config struct {
	// Title is the window title.
	Title string
	// Scale multiplies the logical window size to get the outer size.
	Scale int
	// KeepAbove asks the window manager to keep the window on top.
	KeepAbove bool
	// SkipTaskbar asks the window manager to hide the window from taskbars.
	SkipTaskbar bool
	// BackgroundColor is the window background color.
	BackgroundColor color.RGBA
	// ForegroundColor is used for the tab labels and outlines.
	ForegroundColor color.RGBA
	// FontSize is the text size in points.
	FontSize float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Title:           "Color Picker",
		Scale:           2,
		BackgroundColor: color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 255},
		ForegroundColor: color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 255},
		FontSize:        defaultFontSize,
	}
}

// Validate checks if the Config has valid values.
func (c Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.FontSize)
	}
	return nil
}

// Hints returns the window manager hints requested by the config.
func (c Config) Hints() WindowHints {
	return WindowHints{KeepAbove: c.KeepAbove, SkipTaskbar: c.SkipTaskbar}
}

// Result is how the window was closed.
type Result int

const (
	// Pending means the window is still open.
	Pending Result = iota
	// Accepted means the user confirmed the current color.
	Accepted
	// Cancelled means the user dismissed the dialog.
	Cancelled
)

func (r Result) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case Cancelled:
		return "cancelled"
	}
	return "pending"
}

// Host owns the color state the window shows and edits. Attach, Detach and
// Pointer run under the host's lock; WithSurfaces lets the window read the
// attached canvases and markers consistently.
type Host interface {
	Color() colors.Color
	SetColor(c colors.Color)
	// Value is the current color in the selected notation.
	Value() string
	Notation() string
	CycleNotation()
	// Version changes whenever anything visible changes.
	Version() uint64

	Tabs() []tabs.Tab
	DefaultTab() string
	AlphaChannel() bool
	History() []colors.Color
	Palette() []colors.Color
	MaterialPalette() []palette.Group

	Attach(k surface.Kind, el *surface.Element) (*surface.Attachment, error)
	Detach(a *surface.Attachment)
	Pointer(e *surface.PointerEvent)
	WithSurfaces(fn func())
}
