package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

// BaseHistory is the file name of the history file within the cache
// directory.
const BaseHistory = "history.utf8"

// DefaultHistorySize is the default maximum number of retained entries.
const DefaultHistorySize = 1000

// History manages input history with file persistence. Entries are kept
// oldest first, without duplicates; re-entering a line moves it to the end.
//
// A History with an empty path is kept in memory only.
type History struct {
	path    string
	limit   int
	entries []string
	mu      sync.RWMutex
}

// NewHistory creates a new History backed by the file at path, retaining at
// most limit entries. A non-positive limit selects [DefaultHistorySize].
func NewHistory(path string, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistorySize
	}

	return &History{path: path, limit: limit}
}

// Load reads history entries from the history file. A missing file is not
// an error.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.add(strings.TrimSpace(scanner.Text()))
	}

	h.trim()

	return scanner.Err()
}

// Write appends entry to the history and persists it.
func (h *History) Write(entry string) error {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Skip if same as last entry
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	moved := h.add(entry)
	trimmed := h.trim()

	if h.path == "" {
		return nil
	}

	if moved || trimmed {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(entry + "\n")

	return err
}

// add appends entry, removing an earlier duplicate. It reports whether a
// duplicate was removed. Must be called with h.mu held.
func (h *History) add(entry string) bool {
	if entry == "" {
		return false
	}

	i := slices.Index(h.entries, entry)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, entry)

	return i >= 0
}

// trim drops the oldest entries beyond the limit. It reports whether any
// entry was dropped. Must be called with h.mu held.
func (h *History) trim() bool {
	excess := len(h.entries) - h.limit
	if excess <= 0 {
		return false
	}

	h.entries = slices.Delete(h.entries, 0, excess)

	return true
}

// Get retrieves a historic line by index. Index 0 is the oldest entry.
func (h *History) Get(i int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all history entries, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range h.entries {
		w.WriteString(entry)
		w.WriteByte('\n')
	}

	return w.Flush()
}
