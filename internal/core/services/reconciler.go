package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mailwatch-cli/internal/logger"
)

// Reconciler is the cursor/lease state machine. One Reconcile call is one
// cycle: load the cursor collection, locate or seed the account's record,
// renew the watch lease, decide stale versus fresh, persist.
type Reconciler struct {
	cursors driven.CursorStore
}

// NewReconciler creates a reconciler over the given cursor store.
func NewReconciler(cursors driven.CursorStore) *Reconciler {
	return &Reconciler{cursors: cursors}
}

// Reconcile runs one cycle for the notification's account.
//
// The watch lease is renewed and its new expiration persisted on every
// cycle, stale or fresh. The returned decision says whether the caller has
// anything to fetch and from which counter. The persisted collection is
// written in both branches; a lease renewal failure is fatal and nothing is
// persisted.
func (r *Reconciler) Reconcile(ctx context.Context, mailbox driven.Mailbox, n *domain.Notification) (domain.SyncDecision, error) {
	collection, err := r.cursors.Load(ctx)
	if err != nil {
		return domain.SyncDecision{}, fmt.Errorf("load cursors: %w", err)
	}

	idx := collection.Index(n.EmailAddress)
	if idx == -1 {
		// First notification for this account: seed the cursor from the
		// notification's own counter. The comparison below then reads it
		// as stale, so the first cycle produces no output.
		logger.Debug("Seeding cursor for %s at history %d", n.EmailAddress, n.HistoryID)
		collection = append(collection, domain.CursorRecord{
			EmailAddress:  n.EmailAddress,
			PrevHistoryID: n.HistoryID,
		})
		idx = len(collection) - 1
	}

	expiration, err := mailbox.RenewWatch(ctx)
	if err != nil {
		return domain.SyncDecision{}, fmt.Errorf("renew watch: %w", err)
	}
	collection[idx].WatchExpiration = &expiration

	record := &collection[idx]
	if n.HistoryID <= record.PrevHistoryID {
		logger.Debug("Stale notification for %s: history %d <= cursor %d",
			n.EmailAddress, n.HistoryID, record.PrevHistoryID)
		if err := r.cursors.Save(ctx, collection); err != nil {
			return domain.SyncDecision{}, fmt.Errorf("save cursors: %w", err)
		}
		return domain.SyncDecision{Proceed: false}, nil
	}

	start := record.PrevHistoryID
	record.PrevHistoryID = n.HistoryID
	if err := r.cursors.Save(ctx, collection); err != nil {
		return domain.SyncDecision{}, fmt.Errorf("save cursors: %w", err)
	}

	logger.Debug("Cursor for %s advanced %d -> %d", n.EmailAddress, start, n.HistoryID)
	return domain.SyncDecision{Proceed: true, StartHistoryID: start}, nil
}
