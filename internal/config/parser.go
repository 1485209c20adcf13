// Package config provides configuration parsing for go-colorpicker.
// This file implements the parser entry points used by the picker.

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
)

// ErrNoPickerConfig is returned when the content never touches picker.config.
var ErrNoPickerConfig = errors.New("no picker.config assignment found")

// Parser provides a unified interface for parsing go-colorpicker
// configuration files from disk, embedded filesystems and readers.
// Parsed values have environment variables expanded.
type Parser struct {
	luaParser *LuaConfigParser
}

// NewParser creates a new Parser backed by a fresh Lua runtime.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}

	return &Parser{luaParser: luaParser}, nil
}

// ParseFile reads and parses a configuration file.
// Returns a Config on success or an error if parsing fails.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return p.Parse(content)
}

// Parse parses configuration content. The content must assign or modify
// picker.config at the start of some line.
func (p *Parser) Parse(content []byte) (*Config, error) {
	if !isPickerConfig(content) {
		return nil, ErrNoPickerConfig
	}
	cfg, err := p.luaParser.Parse(content)
	if err != nil {
		return nil, err
	}
	ExpandEnvConfig(cfg)
	return cfg, nil
}

// pickerConfigPattern matches "picker.config" at the start of a line (not
// inside a comment), either as a whole-table assignment or a field update.
var pickerConfigPattern = regexp.MustCompile(`(?m)^\s*picker\.config\b`)

// isPickerConfig determines if the content looks like a picker configuration.
func isPickerConfig(content []byte) bool {
	return pickerConfigPattern.Match(content)
}

// ParseFromFS reads and parses a configuration file from an embedded filesystem.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}

	return p.Parse(content)
}

// ParseReader parses configuration from an io.Reader.
// Use this for dynamically generated configurations.
func (p *Parser) ParseReader(r io.Reader) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return p.Parse(content)
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}
