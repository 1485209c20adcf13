// Package config provides configuration parsing and validation for go-colorpicker.
// This file implements validation of configuration values against the
// notations, tabs and ranges the picker supports.
package config

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-colorpicker/internal/colors"
	"github.com/opd-ai/go-colorpicker/internal/notation"
	"github.com/opd-ai/go-colorpicker/internal/tabs"
)

// Accepted ranges for numeric settings.
const (
	MinHistoryLength = 1
	MaxHistoryLength = 1000
	MinMarkerSize    = 1
	MaxMarkerSize    = 64
	MinScale         = 1
	MaxScale         = 8
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues (e.g., duplicate tabs).
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator provides comprehensive configuration validation.
type Validator struct {
	// knownNotations is the set of recognized notation names.
	knownNotations map[string]bool
	// knownTabs is the set of recognized tab names.
	knownTabs map[string]bool
	// strictMode turns warnings about tab layout into errors.
	strictMode bool
}

// NewValidator creates a new Validator that knows the built-in notations
// and tabs.
func NewValidator() *Validator {
	return &Validator{
		knownNotations: defaultKnownNotations(),
		knownTabs:      defaultKnownTabs(),
		strictMode:     false,
	}
}

// WithStrictMode enables strict validation where duplicate tabs and a
// default tab outside the tab list are errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// WithNotations registers additional notation names.
func (v *Validator) WithNotations(names ...string) *Validator {
	for _, n := range names {
		v.knownNotations[n] = true
	}
	return v
}

// WithTabs registers additional tab names.
func (v *Validator) WithTabs(names ...string) *Validator {
	for _, n := range names {
		v.knownTabs[n] = true
	}
	return v
}

// Validate performs comprehensive validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validatePicker(&cfg.Picker, result)
	v.validateTabs(&cfg.Picker, result)
	v.validateWindow(&cfg.Window, result)

	return result
}

// validatePicker validates color, notation and range settings.
func (v *Validator) validatePicker(pc *PickerConfig, result *ValidationResult) {
	if pc.DefaultColor != "" && pc.DefaultColor != RandomColor {
		if _, err := colors.Parse(pc.DefaultColor); err != nil {
			result.AddError("picker.default_color", err.Error())
		}
	}

	if !v.knownNotations[pc.Notation] {
		result.AddError("picker.notation", fmt.Sprintf("unknown notation: %q", pc.Notation))
	}

	if pc.HistoryLength < MinHistoryLength || pc.HistoryLength > MaxHistoryLength {
		result.AddError("picker.history_length",
			fmt.Sprintf("must be between %d and %d, got %d", MinHistoryLength, MaxHistoryLength, pc.HistoryLength))
	}

	if pc.MarkerSize < MinMarkerSize || pc.MarkerSize > MaxMarkerSize {
		result.AddError("picker.marker_size",
			fmt.Sprintf("must be between %d and %d, got %d", MinMarkerSize, MaxMarkerSize, pc.MarkerSize))
	}
}

// validateTabs validates the tab list and the default tab.
func (v *Validator) validateTabs(pc *PickerConfig, result *ValidationResult) {
	if len(pc.Tabs) == 0 {
		result.AddError("picker.tabs", "at least one tab is required")
	}

	seen := make(map[string]bool, len(pc.Tabs))
	for i, name := range pc.Tabs {
		if !v.knownTabs[name] {
			result.AddError("picker.tabs", fmt.Sprintf("unknown tab at index %d: %q", i, name))
			continue
		}
		if seen[name] {
			v.report(result, "picker.tabs", fmt.Sprintf("duplicate tab %q", name))
		}
		seen[name] = true
	}

	if pc.DefaultTab == "" {
		return
	}
	if !v.knownTabs[pc.DefaultTab] {
		result.AddError("picker.default_tab", fmt.Sprintf("unknown tab: %q", pc.DefaultTab))
		return
	}
	if len(pc.Tabs) > 0 && !seen[pc.DefaultTab] {
		v.report(result, "picker.default_tab", fmt.Sprintf("%q is not in tabs", pc.DefaultTab))
	}
}

// validateWindow validates WindowConfig settings.
func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Scale < MinScale || wc.Scale > MaxScale {
		result.AddError("window.scale",
			fmt.Sprintf("must be between %d and %d, got %d", MinScale, MaxScale, wc.Scale))
	}
	if strings.TrimSpace(wc.Title) == "" {
		result.AddWarning("window.title", "empty title")
	}
}

// report records a layout issue as a warning, or as an error in strict mode.
func (v *Validator) report(result *ValidationResult, field, message string) {
	if v.strictMode {
		result.AddError(field, message)
		return
	}
	result.AddWarning(field, message)
}

// defaultKnownNotations returns the names of the built-in notations.
func defaultKnownNotations() map[string]bool {
	known := make(map[string]bool)
	for _, name := range notation.NewRegistry().Names() {
		known[name] = true
	}
	return known
}

// defaultKnownTabs returns the names of the built-in tabs.
func defaultKnownTabs() map[string]bool {
	return map[string]bool{
		tabs.SpectrumTab.Name:        true,
		tabs.WheelTab.Name:           true,
		tabs.SlidersTab.Name:         true,
		tabs.PaletteTab.Name:         true,
		tabs.MaterialPaletteTab.Name: true,
		tabs.HistoryTab.Name:         true,
	}
}

// ValidateConfig is a convenience function to validate a Config with default settings.
// Returns nil if the config is valid, or an error describing validation failures.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	validator := NewValidator()
	result := validator.Validate(cfg)
	return result.Error()
}

// ValidateConfigStrict validates a Config with strict mode enabled.
// Tab layout warnings are treated as errors.
func ValidateConfigStrict(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	validator := NewValidator().WithStrictMode(true)
	result := validator.Validate(cfg)
	return result.Error()
}
