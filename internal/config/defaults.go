package config

// Default values for configuration options.
const (
	// DefaultColor is used when neither an explicit value nor a configured
	// default color is available.
	DefaultColor = "rgb(255, 255, 255)"
	// RandomColor is the default_color value that picks a random color.
	RandomColor = "random"
	// DefaultNotation is the notation used for the text value.
	DefaultNotation = "hex"
	// DefaultTab is the tab shown first.
	DefaultTab = "spectrum"
	// DefaultHistoryLength is the maximum number of remembered colors.
	DefaultHistoryLength = 40
	// DefaultHistoryFile is where the history is persisted.
	DefaultHistoryFile = "${HOME}/.config/colorpicker/history.toml"
	// DefaultMarkerSize is the width and height of surface markers.
	DefaultMarkerSize = 10
	// DefaultTitle is the window title.
	DefaultTitle = "Color Picker"
	// DefaultScale is the logical window scale.
	DefaultScale = 2
)

// DefaultTabs returns the default tab order.
func DefaultTabs() []string {
	return []string{"spectrum", "colorSliders"}
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Picker: PickerConfig{
			DefaultColor:  DefaultColor,
			Notation:      DefaultNotation,
			AlphaChannel:  true,
			DefaultTab:    DefaultTab,
			Tabs:          DefaultTabs(),
			HistoryLength: DefaultHistoryLength,
			HistoryFile:   DefaultHistoryFile,
			MarkerSize:    DefaultMarkerSize,
		},
		Window: WindowConfig{
			Title: DefaultTitle,
			Scale: DefaultScale,
		},
	}
}

// DefaultPickerConfig returns a PickerConfig with default values.
func DefaultPickerConfig() PickerConfig {
	return DefaultConfig().Picker
}

// DefaultWindowConfig returns a WindowConfig with default values.
func DefaultWindowConfig() WindowConfig {
	return DefaultConfig().Window
}
