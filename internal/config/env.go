// Package config provides configuration parsing for go-colorpicker.
// This file implements environment variable expansion support for configuration values.
package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches environment variable references in configuration values.
// Supports formats:
//   - ${VAR_NAME} - standard shell-like format
//   - ${VAR_NAME:-default} - with default value if unset or empty
//   - $VAR_NAME - simple format (word characters only)
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv expands environment variable references in a string.
// It supports the following formats:
//   - ${VAR_NAME} - replaced with value of VAR_NAME
//   - ${VAR_NAME:-default} - replaced with VAR_NAME's value, or "default" if unset/empty
//   - $VAR_NAME - replaced with value of VAR_NAME (simple format)
//
// Unknown or unset variables without defaults are replaced with empty string.
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if strings.HasPrefix(match, "${") && strings.HasSuffix(match, "}") {
			inner := match[2 : len(match)-1]

			if idx := strings.Index(inner, ":-"); idx >= 0 {
				if val := os.Getenv(inner[:idx]); val != "" {
					return val
				}
				return inner[idx+2:]
			}
			return os.Getenv(inner)
		}
		return os.Getenv(match[1:])
	})
}

// ExpandEnvConfig expands environment variables in all string configuration values.
// It modifies the Config in place, expanding ${VAR} and $VAR patterns in:
//   - the history file path
//   - the default color
//   - the window title
func ExpandEnvConfig(cfg *Config) {
	ExpandEnvConfigWithOptions(cfg)
}

// EnvConfigOption is a functional option for environment variable expansion.
type EnvConfigOption func(*envConfigOptions)

type envConfigOptions struct {
	expandHistoryFile  bool
	expandDefaultColor bool
	expandTitle        bool
}

// defaultEnvConfigOptions returns the default options (all expansion enabled).
func defaultEnvConfigOptions() *envConfigOptions {
	return &envConfigOptions{
		expandHistoryFile:  true,
		expandDefaultColor: true,
		expandTitle:        true,
	}
}

// WithExpandHistoryFile controls whether the history file path is expanded.
func WithExpandHistoryFile(expand bool) EnvConfigOption {
	return func(o *envConfigOptions) {
		o.expandHistoryFile = expand
	}
}

// WithExpandDefaultColor controls whether the default color is expanded.
func WithExpandDefaultColor(expand bool) EnvConfigOption {
	return func(o *envConfigOptions) {
		o.expandDefaultColor = expand
	}
}

// WithExpandTitle controls whether the window title is expanded.
func WithExpandTitle(expand bool) EnvConfigOption {
	return func(o *envConfigOptions) {
		o.expandTitle = expand
	}
}

// ExpandEnvConfigWithOptions expands environment variables with specific options.
func ExpandEnvConfigWithOptions(cfg *Config, opts ...EnvConfigOption) {
	if cfg == nil {
		return
	}

	options := defaultEnvConfigOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.expandHistoryFile {
		cfg.Picker.HistoryFile = ExpandEnv(cfg.Picker.HistoryFile)
	}
	if options.expandDefaultColor {
		cfg.Picker.DefaultColor = ExpandEnv(cfg.Picker.DefaultColor)
	}
	if options.expandTitle {
		cfg.Window.Title = ExpandEnv(cfg.Window.Title)
	}
}
