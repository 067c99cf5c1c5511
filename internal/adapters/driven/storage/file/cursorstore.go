// Package file persists cursor state as a JSON array on disk. Saves go
// through a temp file plus rename so a crashed write never leaves a
// half-written cursor file behind.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
)

// Ensure CursorStore implements the interface.
var _ driven.CursorStore = (*CursorStore)(nil)

// CursorStore is a JSON-file implementation of driven.CursorStore.
type CursorStore struct {
	mu   sync.Mutex
	path string
}

// NewCursorStore creates a cursor store backed by the given file path.
// The parent directory is created if missing; the file itself is created
// on first Save.
func NewCursorStore(path string) (*CursorStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".mailwatch", "cursors.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	return &CursorStore{path: path}, nil
}

// Load reads the cursor collection. A missing file is first use and
// returns an empty collection.
func (s *CursorStore) Load(_ context.Context) (domain.Cursors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Cursors{}, nil
		}
		return nil, fmt.Errorf("read cursor file: %w", err)
	}

	var cursors domain.Cursors
	if err := json.Unmarshal(data, &cursors); err != nil {
		return nil, fmt.Errorf("parse cursor file: %w", err)
	}
	return cursors, nil
}

// Save rewrites the whole collection atomically.
func (s *CursorStore) Save(_ context.Context, cursors domain.Cursors) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cursors == nil {
		cursors = domain.Cursors{}
	}

	data, err := json.MarshalIndent(cursors, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cursors: %w", err)
	}

	tmp := s.path + "." + uuid.New().String() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write cursor file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace cursor file: %w", err)
	}
	return nil
}

// Path returns the cursor file path.
func (s *CursorStore) Path() string {
	return s.path
}
