// Package store provides local JSON persistence for the layout list.
// Loads fall back to an empty list on absence or failure; saves are
// best-effort and the in-memory state stays authoritative either way.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"site-planner/internal/layout"
)

const fileVersion = 1

// File is the on-disk JSON structure.
type File struct {
	Version int             `json:"version"`
	Saved   time.Time       `json:"saved"`
	Layouts []layout.Layout `json:"layouts"`
}

// Store persists the layout list to a single JSON file.
type Store struct {
	path string
}

// New creates a store writing to the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// LoadLayouts reads the layout list. A missing file is a normal first run
// and yields an empty list; a malformed file is logged and also yields an
// empty list, never an error.
func (s *Store) LoadLayouts() []layout.Layout {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("store: read %s: %v", s.path, err)
		}
		return nil
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("store: parse %s: %v", s.path, err)
		return nil
	}
	return f.Layouts
}

// SaveLayouts writes the layout list. The caller treats failures as
// non-fatal; nothing is retried.
func (s *Store) SaveLayouts(layouts []layout.Layout) error {
	f := File{
		Version: fileVersion,
		Saved:   time.Now(),
		Layouts: layouts,
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}
