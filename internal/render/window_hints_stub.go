//go:build !linux

package render

// ApplyWindowHints is a no-op outside Linux; EWMH hints need an X server.
func ApplyWindowHints(h WindowHints) error {
	return nil
}

// CloseWindowHints is a no-op outside Linux.
func CloseWindowHints() {
}
