// Package config provides configuration data structures for go-colorpicker.
// Configuration is written in Lua as a picker.config table and decoded into
// a Config value that the picker and its window consume.
package config

// Config represents the complete go-colorpicker configuration.
type Config struct {
	// Picker contains color, notation, tab and history settings.
	Picker PickerConfig
	// Window contains settings for the interactive window.
	Window WindowConfig
}

// PickerConfig holds the settings that shape the picker dialog.
type PickerConfig struct {
	// DefaultColor is the color used when no explicit value is given.
	// Any string accepted by colors.Parse works, as does "random".
	DefaultColor string
	// Notation is the name of the notation used for the text value
	// (hex, rgb or hsl).
	Notation string
	// AlphaChannel enables the alpha strip. When false every published
	// sample is forced to alpha 1.
	AlphaChannel bool
	// DefaultTab is the tab shown first.
	DefaultTab string
	// Tabs is the ordered list of visible tab names.
	Tabs []string
	// HistoryLength is the maximum number of remembered colors.
	HistoryLength int
	// HistoryFile is where the history is persisted. Empty disables
	// persistence.
	HistoryFile string
	// MarkerSize is the width and height of surface markers in pixels.
	MarkerSize int
}

// WindowConfig holds window-related configuration options.
type WindowConfig struct {
	// Title is the window title.
	Title string
	// Scale multiplies the logical window size.
	Scale int
	// KeepAbove asks the window manager to keep the window on top.
	KeepAbove bool
	// SkipTaskbar asks the window manager to hide the window from taskbars.
	SkipTaskbar bool
}

// Clone returns a deep copy of the Config.
func (c Config) Clone() Config {
	out := c
	out.Picker.Tabs = append([]string(nil), c.Picker.Tabs...)
	return out
}

// Validate checks if the Config has valid values using the default validator.
// It returns the combined validation error, or nil if the config is valid.
// For detailed results including warnings, use NewValidator().Validate().
func (c *Config) Validate() error {
	return ValidateConfig(c)
}
