package config

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()
	if v == nil {
		t.Fatal("NewValidator returned nil")
	}
	for _, name := range []string{"hex", "rgb", "hsl"} {
		if !v.knownNotations[name] {
			t.Errorf("notation %q not known", name)
		}
	}
	for _, name := range []string{"spectrum", "wheel", "colorSliders", "palette", "materialPalette", "history"} {
		if !v.knownTabs[name] {
			t.Errorf("tab %q not known", name)
		}
	}
	if v.strictMode {
		t.Error("strictMode should default to false")
	}
}

func TestValidatorWithStrictMode(t *testing.T) {
	v := NewValidator().WithStrictMode(true)
	if !v.strictMode {
		t.Error("strictMode should be true after WithStrictMode(true)")
	}

	v2 := NewValidator().WithStrictMode(false)
	if v2.strictMode {
		t.Error("strictMode should be false after WithStrictMode(false)")
	}
}

func TestValidationErrorError(t *testing.T) {
	ve := ValidationError{
		Field:   "test.field",
		Message: "test message",
	}
	expected := "test.field: test message"
	if ve.Error() != expected {
		t.Errorf("expected %q, got %q", expected, ve.Error())
	}
}

func TestValidationResultIsValid(t *testing.T) {
	tests := []struct {
		name   string
		result *ValidationResult
		want   bool
	}{
		{
			name:   "empty result is valid",
			result: &ValidationResult{},
			want:   true,
		},
		{
			name: "only warnings is valid",
			result: &ValidationResult{
				Warnings: []ValidationError{{Field: "f", Message: "m"}},
			},
			want: true,
		},
		{
			name: "with errors is invalid",
			result: &ValidationResult{
				Errors: []ValidationError{{Field: "f", Message: "m"}},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationResultError(t *testing.T) {
	tests := []struct {
		name    string
		result  *ValidationResult
		wantErr bool
	}{
		{
			name:    "no errors returns nil",
			result:  &ValidationResult{},
			wantErr: false,
		},
		{
			name: "only warnings returns nil",
			result: &ValidationResult{
				Warnings: []ValidationError{{Field: "f", Message: "m"}},
			},
			wantErr: false,
		},
		{
			name: "with errors returns error",
			result: &ValidationResult{
				Errors: []ValidationError{{Field: "f", Message: "m"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Error()
			if (err != nil) != tt.wantErr {
				t.Errorf("Error() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationResultAddErrorAndWarning(t *testing.T) {
	result := &ValidationResult{}

	result.AddError("field1", "error message")
	result.AddWarning("field2", "warning message")

	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(result.Warnings))
	}

	if result.Errors[0].Field != "field1" {
		t.Errorf("expected field1, got %s", result.Errors[0].Field)
	}
	if result.Warnings[0].Field != "field2" {
		t.Errorf("expected field2, got %s", result.Warnings[0].Field)
	}
}

func TestValidationResultMerge(t *testing.T) {
	result1 := &ValidationResult{}
	result1.AddError("f1", "e1")
	result1.AddWarning("f2", "w1")

	result2 := &ValidationResult{}
	result2.AddError("f3", "e2")
	result2.AddWarning("f4", "w2")

	result1.Merge(result2)

	if len(result1.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(result1.Errors))
	}
	if len(result1.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d", len(result1.Warnings))
	}

	// Test merge with nil
	result1.Merge(nil)
	if len(result1.Errors) != 2 {
		t.Error("merge with nil should not change result")
	}
}

func TestValidatorValidatePicker(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"defaults", func(*Config) {}, ""},
		{"random color", func(c *Config) { c.Picker.DefaultColor = RandomColor }, ""},
		{"empty color", func(c *Config) { c.Picker.DefaultColor = "" }, ""},
		{"named color", func(c *Config) { c.Picker.DefaultColor = "steelblue" }, ""},
		{"bad color", func(c *Config) { c.Picker.DefaultColor = "#gggggg" }, "picker.default_color"},
		{"unknown notation", func(c *Config) { c.Picker.Notation = "cmyk" }, "picker.notation"},
		{"history too short", func(c *Config) { c.Picker.HistoryLength = 0 }, "picker.history_length"},
		{"history too long", func(c *Config) { c.Picker.HistoryLength = 1001 }, "picker.history_length"},
		{"history at max", func(c *Config) { c.Picker.HistoryLength = 1000 }, ""},
		{"marker too small", func(c *Config) { c.Picker.MarkerSize = 0 }, "picker.marker_size"},
		{"marker too large", func(c *Config) { c.Picker.MarkerSize = 65 }, "picker.marker_size"},
		{"marker at max", func(c *Config) { c.Picker.MarkerSize = 64 }, ""},
		{"scale too small", func(c *Config) { c.Window.Scale = 0 }, "window.scale"},
		{"scale too large", func(c *Config) { c.Window.Scale = 9 }, "window.scale"},
		{"no tabs", func(c *Config) { c.Picker.Tabs = nil }, "picker.tabs"},
		{"unknown tab", func(c *Config) { c.Picker.Tabs = []string{"spectrum", "swatches"} }, "picker.tabs"},
		{"unknown default tab", func(c *Config) { c.Picker.DefaultTab = "swatches" }, "picker.default_tab"},
		{"empty default tab", func(c *Config) { c.Picker.DefaultTab = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			result := NewValidator().Validate(&cfg)
			if tt.wantField == "" {
				if !result.IsValid() {
					t.Errorf("expected valid config, got %v", result.Error())
				}
				return
			}
			if result.IsValid() {
				t.Fatalf("expected error on %s", tt.wantField)
			}
			if result.Errors[0].Field != tt.wantField {
				t.Errorf("error field = %s, want %s", result.Errors[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidatorTabLayoutWarnings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"duplicate tab", func(c *Config) { c.Picker.Tabs = []string{"wheel", "wheel"}; c.Picker.DefaultTab = "wheel" }, "picker.tabs"},
		{"default tab hidden", func(c *Config) { c.Picker.DefaultTab = "history" }, "picker.default_tab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			lenient := NewValidator().Validate(&cfg)
			if !lenient.IsValid() {
				t.Fatalf("expected only warnings, got %v", lenient.Error())
			}
			if len(lenient.Warnings) != 1 || lenient.Warnings[0].Field != tt.field {
				t.Errorf("warnings = %v, want one on %s", lenient.Warnings, tt.field)
			}

			strict := NewValidator().WithStrictMode(true).Validate(&cfg)
			if strict.IsValid() {
				t.Fatal("strict mode should reject the layout")
			}
			if strict.Errors[0].Field != tt.field {
				t.Errorf("error field = %s, want %s", strict.Errors[0].Field, tt.field)
			}
		})
	}
}

func TestValidatorEmptyTitleWarning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Title = "  "

	result := NewValidator().Validate(&cfg)
	if !result.IsValid() {
		t.Fatalf("empty title should not be an error: %v", result.Error())
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Field != "window.title" {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestValidatorCustomNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Picker.Notation = "cmyk"
	cfg.Picker.Tabs = append(cfg.Picker.Tabs, "swatches")

	if err := ValidateConfig(&cfg); err == nil {
		t.Fatal("expected unknown names to fail")
	}

	result := NewValidator().WithNotations("cmyk").WithTabs("swatches").Validate(&cfg)
	if !result.IsValid() {
		t.Errorf("registered names should validate: %v", result.Error())
	}
}

func TestValidatorMultipleErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Picker.Notation = ""
	cfg.Picker.MarkerSize = -1
	cfg.Window.Scale = 100

	err := ValidateConfig(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, field := range []string{"picker.notation", "picker.marker_size", "window.scale"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if err := ValidateConfigStrict(nil); err == nil {
		t.Error("expected error for nil config in strict mode")
	}

	cfg := DefaultConfig()
	if err := ValidateConfig(&cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if err := ValidateConfigStrict(&cfg); err != nil {
		t.Errorf("default config should validate strictly: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Config.Validate: %v", err)
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Picker.Tabs[0] = "wheel"

	if cfg.Picker.Tabs[0] != "spectrum" {
		t.Error("Clone shares the tabs slice")
	}
}
