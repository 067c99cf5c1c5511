package driving

import (
	"context"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
)

// Fetcher turns a push notification into concrete, filtered, fully parsed
// change records, advancing the account's cursor and renewing its watch
// lease as a side effect.
//
// Every entry point either returns a (possibly empty) result or a single
// error; partial results are never returned for a failed call.
type Fetcher interface {
	// Fetch runs a full cycle and additionally downloads the binary
	// payload of every attachment on every surviving record.
	Fetch(ctx context.Context, opts domain.FetchOptions) ([]domain.Message, error)

	// FetchWithoutAttachments runs a full cycle but leaves attachment
	// payloads unfetched (metadata only).
	FetchWithoutAttachments(ctx context.Context, opts domain.FetchOptions) ([]domain.Message, error)

	// FetchNewMessage is the "new message in the inbox" convenience: a
	// Fetch pinned to added messages with the INBOX label, excluding SENT.
	// Returns nil when the cycle produced nothing.
	FetchNewMessage(ctx context.Context, notification *domain.Notification, token string) (*domain.Message, error)

	// ListLabels lists the account's labels. A thin passthrough to the
	// provider; no cursor state is touched.
	ListLabels(ctx context.Context, account domain.Account) ([]domain.Label, error)
}
