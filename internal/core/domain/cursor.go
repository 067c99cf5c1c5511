package domain

// CursorRecord tracks per-account sync progress and the watch lease.
// At most one record exists per account. PrevHistoryID only advances when a
// notification's counter strictly exceeds it; it never decreases.
type CursorRecord struct {
	// EmailAddress is the unique account key.
	EmailAddress string `json:"emailAddress"`
	// PrevHistoryID is the last change counter a fresh cycle reconciled to.
	// It is the lower bound for the next change-log fetch.
	PrevHistoryID uint64 `json:"prevHistoryId"`
	// WatchExpiration is the watch lease expiry in epoch milliseconds,
	// nil until the first renewal result is recorded.
	WatchExpiration *int64 `json:"watchExpiration"`
}

// Cursors is the persisted collection of cursor records. Order is not
// significant; lookup is by account.
type Cursors []CursorRecord

// Index returns the position of the record for the given account,
// or -1 if the account has never been seen.
func (c Cursors) Index(emailAddress string) int {
	for i := range c {
		if c[i].EmailAddress == emailAddress {
			return i
		}
	}
	return -1
}

// Account bundles the identity and credentials a single reconciliation cycle
// runs under. It is threaded explicitly through each component call rather
// than held as ambient state.
type Account struct {
	// EmailAddress is the mailbox being reconciled.
	EmailAddress string
	// Token is the OAuth2 access token for the provider API.
	Token string
}

// SyncDecision is the outcome of a reconciliation cycle: whether there is
// anything to fetch, and from which counter.
type SyncDecision struct {
	// Proceed is false for stale or duplicate deliveries.
	Proceed bool
	// StartHistoryID is the lower bound for the change-log fetch.
	// Only meaningful when Proceed is true.
	StartHistoryID uint64
}
