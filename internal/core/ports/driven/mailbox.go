package driven

import (
	"context"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
)

// Mailbox is the mail provider seen from the core: an ordered change feed,
// resolvable records, attachment payloads and a renewable watch lease.
// Implementations map provider wire types into domain types and fold
// provider-specific "not found" responses into the documented stubs.
type Mailbox interface {
	// RenewWatch renews the push subscription lease and returns the new
	// expiration in epoch milliseconds.
	RenewWatch(ctx context.Context) (int64, error)

	// StopWatch tears the push subscription down.
	StopWatch(ctx context.Context) error

	// ListHistory returns one page of change-log entries starting after
	// the given counter. A page with no entries is a valid empty result.
	ListHistory(ctx context.Context, startHistoryID uint64, pageToken string) (*domain.HistoryPage, error)

	// GetMessage resolves a full message by ID. A provider "not found"
	// response yields a NotFound stub, not an error; any other provider
	// failure propagates.
	GetMessage(ctx context.Context, id string) (*domain.ResolvedMessage, error)

	// GetAttachment fetches and decodes one attachment's binary payload.
	GetAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error)

	// ListLabels returns the account's labels.
	ListLabels(ctx context.Context) ([]domain.Label, error)

	// Profile returns the account's address and current change counter.
	Profile(ctx context.Context) (string, uint64, error)
}

// MailboxFactory opens a Mailbox bound to one account's credentials.
// The reconciliation services open a mailbox per cycle so that credentials
// are threaded explicitly rather than held as ambient state.
type MailboxFactory interface {
	Open(ctx context.Context, account domain.Account) (Mailbox, error)
}
