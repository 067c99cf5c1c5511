package driven

import (
	"context"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
)

// CursorStore persists per-account sync progress and watch lease state.
//
// The store is read-modify-written once per reconciliation cycle with no
// locking; concurrent cycles for the same account race on the persisted
// collection and can lose updates. Callers must serialise cycles per
// account themselves.
type CursorStore interface {
	// Load returns the full cursor collection. An absent backing resource
	// is not an error: first use returns an empty collection.
	Load(ctx context.Context) (domain.Cursors, error)

	// Save rewrites the entire collection.
	Save(ctx context.Context, cursors domain.Cursors) error
}
