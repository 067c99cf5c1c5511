// Package memory provides in-memory store implementations, used in tests
// and wherever durability is not required.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
)

// Ensure CursorStore implements the interface.
var _ driven.CursorStore = (*CursorStore)(nil)

// CursorStore is an in-memory implementation of driven.CursorStore.
type CursorStore struct {
	mu      sync.RWMutex
	cursors domain.Cursors
}

// NewCursorStore creates a new in-memory cursor store.
func NewCursorStore() *CursorStore {
	return &CursorStore{}
}

// Load returns a copy of the stored collection. A never-saved store is an
// empty collection, matching the absent-resource semantics of the durable
// stores.
func (s *CursorStore) Load(_ context.Context) (domain.Cursors, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.Cursors, len(s.cursors))
	copy(out, s.cursors)
	return out, nil
}

// Save replaces the stored collection.
func (s *CursorStore) Save(_ context.Context, cursors domain.Cursors) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors = make(domain.Cursors, len(cursors))
	copy(s.cursors, cursors)
	return nil
}
