// Package history keeps the most recently picked colors, newest first, and
// persists them between runs.
package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opd-ai/go-colorpicker/internal/colors"
)

// DefaultLength is the number of colors kept when no limit is configured.
const DefaultLength = 40

// Store persists the history as rgb strings, newest first.
type Store interface {
	Load() ([]string, error)
	Save(entries []string) error
}

// History is a bounded most-recently-used list of colors. Two colors are
// the same entry when their rgb strings match.
type History struct {
	mu     sync.RWMutex
	max    int
	colors []colors.Color
	store  Store
}

// New creates an empty history. A nil store keeps the history in memory.
func New(max int, store Store) *History {
	if max <= 0 {
		max = DefaultLength
	}
	return &History{max: max, store: store}
}

// Open creates a history and loads it from store.
func Open(max int, store Store) (*History, error) {
	h := New(max, store)
	if err := h.Load(); err != nil {
		return h, err
	}
	return h, nil
}

// Load replaces the entries with those in the store. Unparsable entries are
// skipped and reported together in the returned error.
func (h *History) Load() error {
	if h.store == nil {
		return nil
	}
	entries, err := h.store.Load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	var errs []error
	loaded := make([]colors.Color, 0, len(entries))
	for _, s := range entries {
		c, err := colors.Parse(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		loaded = append(loaded, c)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(loaded) > h.max {
		loaded = loaded[:h.max]
	}
	h.colors = loaded
	return errors.Join(errs...)
}

// Add moves c to the front, dropping any entry with the same rgb string and
// trimming the oldest entry beyond the limit, then persists. The store is
// written under the lock so saves land in the order of the changes.
func (h *History) Add(c colors.Color) error {
	key := c.RGBString()

	h.mu.Lock()
	defer h.mu.Unlock()
	kept := make([]colors.Color, 0, len(h.colors)+1)
	kept = append(kept, c)
	for _, old := range h.colors {
		if old.RGBString() != key {
			kept = append(kept, old)
		}
	}
	if len(kept) > h.max {
		kept = kept[:h.max]
	}
	h.colors = kept
	return h.saveLocked()
}

// Get returns the entries, newest first.
func (h *History) Get() []colors.Color {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]colors.Color(nil), h.colors...)
}

// Strings returns the rgb strings of the entries, newest first.
func (h *History) Strings() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stringsLocked()
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.colors)
}

// Max returns the entry limit.
func (h *History) Max() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.max
}

// SetMax changes the limit, trimming and persisting if entries were
// dropped.
func (h *History) SetMax(n int) error {
	if n <= 0 {
		n = DefaultLength
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.max = n
	if len(h.colors) <= n {
		return nil
	}
	h.colors = h.colors[:n]
	return h.saveLocked()
}

// Reset empties the history and persists the empty list.
func (h *History) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors = nil
	return h.saveLocked()
}

func (h *History) stringsLocked() []string {
	out := make([]string, len(h.colors))
	for i, c := range h.colors {
		out[i] = c.RGBString()
	}
	return out
}

func (h *History) saveLocked() error {
	if h.store == nil {
		return nil
	}
	if err := h.store.Save(h.stringsLocked()); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
