package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// document is the on-disk TOML layout.
type document struct {
	Colors []string `toml:"colors"`
}

// FileStore keeps the history in a TOML file:
//
//	colors = ["rgb(255, 0, 0)", "rgba(0, 0, 255, 0.5)"]
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the file. A missing file is an empty history.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path, err)
	}
	return doc.Colors, nil
}

// Save writes the file atomically, creating its directory when needed.
func (s *FileStore) Save(entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	data, err := toml.Marshal(document{Colors: entries})
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".history-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
