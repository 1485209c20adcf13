package colorpicker

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/opd-ai/go-colorpicker/internal/colors"
	"github.com/opd-ai/go-colorpicker/internal/config"
	"github.com/opd-ai/go-colorpicker/internal/palette"
)

// Color is a color in HSV space with alpha. H is in [0, 360); S, V and A
// are in [0, 1].
type Color = colors.Color

// MaterialGroup is one named group of the Material Design palette, its
// shades labelled "50" to "900" and "A100" to "A700".
type MaterialGroup = palette.Group

// ParseColor parses a color string in any supported notation: #rgb,
// #rrggbb, rgb(), rgba(), hsl(), hsla(), hsv() or a CSS color name.
func ParseColor(s string) (Color, error) {
	return colors.Parse(s)
}

// Picker is an embedded color picker with full lifecycle control.
// It is safe for concurrent use from multiple goroutines.
type Picker interface {
	// Start opens the picker window, or starts a headless session when
	// Options.Headless is set. It returns immediately.
	// Returns an error if already running.
	Start() error

	// Stop closes the window and waits for the session to end.
	// Safe to call multiple times; subsequent calls are no-ops.
	Stop() error

	// Restart performs a stop followed by a start.
	// Configuration is reloaded from the original source.
	Restart() error

	// ReloadConfig reloads the configuration in place without closing the
	// window. Tabs, history length, alpha channel and marker size follow
	// the new configuration. On error the previous config remains active.
	ReloadConfig() error

	// IsRunning returns true while a session is active.
	IsRunning() bool

	// Done returns a channel closed when the session started by the last
	// Start ends. Before the first Start it returns a closed channel.
	Done() <-chan struct{}

	// Status returns detailed status information about the picker.
	Status() Status

	// SetErrorHandler registers a callback for runtime errors.
	// The handler is invoked asynchronously; do not block in the handler.
	SetErrorHandler(handler ErrorHandler)

	// SetEventHandler registers a callback for lifecycle and dialog events.
	SetEventHandler(handler EventHandler)

	// Health returns a health check result for the picker.
	Health() HealthCheck

	// Metrics returns the metrics collector for this picker.
	Metrics() *Metrics

	// Color returns the selected color.
	Color() Color
	// Hue returns the cached hue the spectrum is drawn for. It differs
	// from Color().H after a gray color was set programmatically.
	Hue() float64
	// SetColor selects c. Attached surfaces and subscribers follow.
	SetColor(c Color)
	// SetString parses s and selects it.
	SetString(s string) error
	// SetRGB replaces the red, green and blue channels, keeping alpha.
	SetRGB(r, g, b uint8)
	// SetHSV replaces hue, saturation and value, keeping alpha. The hue
	// sticks even for gray results.
	SetHSV(h, s, v float64)
	// SetAlpha replaces the alpha channel. It is ignored while the alpha
	// channel is disabled.
	SetAlpha(a float64)
	// SetPaletteColor selects a swatch given as a color string.
	SetPaletteColor(s string) error
	// Publish proposes a color sampled by pointer input. The hue cache
	// follows it even when the sample is gray.
	Publish(c Color)
	// Subscribe registers fn to be called after every color change,
	// whatever its source. The returned function removes it.
	Subscribe(fn func(Color)) (unsubscribe func())

	// Value returns the selected color in the current notation.
	Value() string
	// Notation returns the name of the notation Value uses.
	Notation() string
	// SetNotation selects a notation by name.
	SetNotation(name string) error
	// CycleNotation moves to the next notation that can show the color.
	CycleNotation()

	// TabNames returns the shown tabs in display order.
	TabNames() []string
	// AttachSurface creates a surface of the named kind with its top-left
	// corner at (x, y) in pointer coordinates.
	AttachSurface(kind string, x, y float64) (*Surface, error)
	// PointerDown, PointerMove and PointerUp feed pointer input to the
	// attached surfaces.
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)

	// History returns the recently accepted colors, newest first.
	History() []Color
	// Palette returns the fixed palette swatches.
	Palette() []Color
	// MaterialPalette returns the groups of the materialPalette tab. The
	// result is a copy.
	MaterialPalette() []MaterialGroup
	// OK accepts the selected color: it is added to the history and its
	// value returned. An open window closes. A history persistence error
	// is returned together with the value.
	OK() (string, error)
	// Cancel restores the color the session started with. An open window
	// closes.
	Cancel()
	// Clear empties the history.
	Clear() error
	// Export renders every surface of every shown tab as a PNG file in
	// dir and returns the written paths.
	Export(dir string) ([]string, error)
}

// New creates a picker from a Lua configuration file on disk.
// The picker is created but not started; call Start() to begin operation.
//
// Example:
//
//	p, err := colorpicker.New("/home/user/.config/colorpicker/picker.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Stop()
//	if err := p.Start(); err != nil {
//		log.Fatal(err)
//	}
func New(configPath string, opts *Options) (Picker, error) {
	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.ParseFile(configPath)
	}

	cfg, err := loader()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	p, err := newPicker(cfg, opts, configPath, loader)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		p.configPath = abs
	} else {
		p.configPath = configPath
	}
	return p, nil
}

// NewFromFS creates a picker using configuration from an embedded
// filesystem.
//
// Example:
//
//	//go:embed configs/*
//	var configFS embed.FS
//
//	p, err := colorpicker.NewFromFS(configFS, "configs/picker.lua", nil)
func NewFromFS(fsys fs.FS, configPath string, opts *Options) (Picker, error) {
	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.ParseFromFS(fsys, configPath)
	}

	cfg, err := loader()
	if err != nil {
		return nil, fmt.Errorf("parse config from FS: %w", err)
	}
	return newPicker(cfg, opts, "embedded:"+configPath, loader)
}

// NewFromReader creates a picker from configuration content provided as
// an io.Reader. The content is read once; Restart and ReloadConfig parse
// the same content again.
//
// Example:
//
//	cfg := strings.NewReader(`picker.config = { notation = 'rgb' }`)
//	p, err := colorpicker.NewFromReader(cfg, nil)
func NewFromReader(r io.Reader, opts *Options) (Picker, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.ParseReader(bytes.NewReader(content))
	}

	cfg, err := loader()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return newPicker(cfg, opts, "reader", loader)
}

// NewDefault creates a picker from the built-in default configuration.
func NewDefault(opts *Options) (Picker, error) {
	loader := func() (*config.Config, error) {
		cfg := config.DefaultConfig()
		config.ExpandEnvConfig(&cfg)
		return &cfg, nil
	}
	cfg, _ := loader()
	return newPicker(cfg, opts, "defaults", loader)
}
