// Package jsonfile persists the task list as a single JSON file on disk.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/taskr/internal/core/kv"
)

// Slot stores one value in a file. Writes go to a temporary sibling file that
// is renamed over the target, so readers never observe a partial write.
type Slot struct {
	path string
	mu   sync.RWMutex
}

// NewSlot creates a file-backed slot at path. The file and its parent
// directory are created on first write.
func NewSlot(path string) *Slot {
	return &Slot{path: path}
}

// Path returns the file location.
func (s *Slot) Path() string {
	return s.path
}

// Read returns the file contents.
// Returns an error wrapping kv.ErrNotFound if the file does not exist.
func (s *Slot) Read(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", s.path, kv.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	return data, nil
}

// Write replaces the file contents atomically.
func (s *Slot) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	return nil
}
