// Package config provides configuration parsing for go-colorpicker.
// This file implements the Lua configuration parser.

package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser parses Lua configuration files.
// It uses the Golua runtime to execute Lua code and extract configuration values
// from the picker.config table.
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser with custom output.
// Lua print calls in the configuration write to stdout.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse parses a Lua configuration from content bytes.
// It executes the Lua code and extracts configuration from picker.config.
func (p *LuaConfigParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initPickerGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	// Execute with resource limits
	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024, // 50 MB
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	thread := p.runtime.MainThread()
	_, err = rt.Call1(thread, rt.FunctionValue(closure))
	if err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// initPickerGlobal resets the picker global table so that values from a
// previous Parse call never leak into the next one.
func (p *LuaConfigParser) initPickerGlobal() {
	pickerTable := rt.NewTable()
	pickerTable.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("picker"), rt.TableValue(pickerTable))
}

// extractConfig extracts configuration values from the picker global table.
func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	pickerVal := p.runtime.GlobalEnv().Get(rt.StringValue("picker"))
	if pickerVal == rt.NilValue {
		return &cfg, nil
	}

	pickerTable, ok := pickerVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("picker is not a table")
	}

	configVal := pickerTable.Get(rt.StringValue("config"))
	if configVal == rt.NilValue {
		return &cfg, nil
	}
	configTable, ok := configVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("picker.config is not a table")
	}
	if err := p.extractConfigTable(&cfg, configTable); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// extractConfigTable extracts configuration values from the picker.config table.
func (p *LuaConfigParser) extractConfigTable(cfg *Config, table *rt.Table) error {
	// Boolean settings
	if val := getTableBool(table, "alpha_channel"); val != nil {
		cfg.Picker.AlphaChannel = *val
	}
	if val := getTableBool(table, "keep_above"); val != nil {
		cfg.Window.KeepAbove = *val
	}
	if val := getTableBool(table, "skip_taskbar"); val != nil {
		cfg.Window.SkipTaskbar = *val
	}

	// Numeric settings
	if val := getTableInt(table, "history_length"); val != nil {
		cfg.Picker.HistoryLength = *val
	}
	if val := getTableInt(table, "marker_size"); val != nil {
		cfg.Picker.MarkerSize = *val
	}
	if val := getTableInt(table, "window_scale"); val != nil {
		cfg.Window.Scale = *val
	}

	// String settings
	if val := getTableString(table, "default_color"); val != nil {
		cfg.Picker.DefaultColor = strings.TrimSpace(*val)
	}
	if val := getTableString(table, "notation"); val != nil {
		cfg.Picker.Notation = strings.ToLower(strings.TrimSpace(*val))
	}
	if val := getTableString(table, "default_tab"); val != nil {
		cfg.Picker.DefaultTab = strings.TrimSpace(*val)
	}
	if val := getTableString(table, "history_file"); val != nil {
		cfg.Picker.HistoryFile = *val
	}
	if val := getTableString(table, "window_title"); val != nil {
		cfg.Window.Title = *val
	}

	tabs, err := getTableStrings(table, "tabs")
	if err != nil {
		return fmt.Errorf("invalid tabs: %w", err)
	}
	if tabs != nil {
		cfg.Picker.Tabs = tabs
	}

	return nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if b, ok := val.TryBool(); ok {
		return &b
	}

	// Handle string "yes"/"true"/"1" for compatibility
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}

	return nil
}

// getTableString retrieves a string value from a Lua table.
// Returns nil if the key doesn't exist or is not a string.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}

// getTableInt retrieves an int value from a Lua table.
// Returns nil if the key doesn't exist or is not a number.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}

	// Try float conversion (truncate)
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}

// getTableStrings retrieves a list of strings from a Lua table. The value may
// be a sequence table or a comma-separated string. Returns nil, nil if the key
// doesn't exist.
func getTableStrings(table *rt.Table, key string) ([]string, error) {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil, nil
	}

	if s, ok := val.TryString(); ok {
		return splitList(s), nil
	}

	list, ok := val.TryTable()
	if !ok {
		return nil, fmt.Errorf("%s must be a table or a string", key)
	}

	out := []string{}
	// Lua sequences are 1-indexed
	for i := int64(1); ; i++ {
		v := list.Get(rt.IntValue(i))
		if v == rt.NilValue {
			break
		}
		s, ok := v.TryString()
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not a string", key, i)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseBool parses a boolean value from a string.
// Accepts "yes", "true", "1" as true; everything else is false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
