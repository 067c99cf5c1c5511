package domain

import "fmt"

// FetchOptions configures a single fetch cycle. Notification and Token are
// required; everything else narrows the result set. Validation happens
// synchronously, before any provider I/O.
type FetchOptions struct {
	// Notification is the decoded push notification driving the cycle.
	Notification *Notification
	// Token is the OAuth2 access token to call the provider with.
	Token string

	// HistoryKinds restricts which change kinds are fetched.
	// Empty means all four kinds.
	HistoryKinds []HistoryKind

	// AddedLabelIDs keeps only label-added entries whose delta intersects
	// the set. Requires HistoryLabelAdded among the requested kinds.
	AddedLabelIDs []string
	// RemovedLabelIDs keeps only label-removed entries whose delta
	// intersects the set. Requires HistoryLabelRemoved among the kinds.
	RemovedLabelIDs []string

	// WithLabelIDs keeps only records currently carrying at least one of
	// these labels. WithoutLabelIDs drops records carrying any of these.
	// The two sets must be disjoint.
	WithLabelIDs    []string
	WithoutLabelIDs []string
}

// Kinds returns the requested change kinds, defaulting to all four in the
// fixed priority order.
func (o *FetchOptions) Kinds() []HistoryKind {
	if len(o.HistoryKinds) == 0 {
		return AllHistoryKinds()
	}
	return o.HistoryKinds
}

// Validate checks the options for configuration errors. All failures wrap
// ErrInvalidOptions (or ErrLabelSetOverlap for conflicting label sets) and
// are never retried.
func (o *FetchOptions) Validate() error {
	if o.Notification == nil {
		return fmt.Errorf("%w: notification is required", ErrInvalidOptions)
	}
	if o.Notification.EmailAddress == "" {
		return fmt.Errorf("%w: notification has no email address", ErrInvalidOptions)
	}
	if o.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidOptions)
	}

	for _, kind := range o.HistoryKinds {
		if !validHistoryKind(kind) {
			return fmt.Errorf("%w: unknown history kind %q", ErrInvalidOptions, kind)
		}
	}

	if len(o.AddedLabelIDs) > 0 && !o.hasKind(HistoryLabelAdded) {
		return fmt.Errorf("%w: addedLabelIds requires the %s kind", ErrInvalidOptions, HistoryLabelAdded)
	}
	if len(o.RemovedLabelIDs) > 0 && !o.hasKind(HistoryLabelRemoved) {
		return fmt.Errorf("%w: removedLabelIds requires the %s kind", ErrInvalidOptions, HistoryLabelRemoved)
	}

	for _, with := range o.WithLabelIDs {
		for _, without := range o.WithoutLabelIDs {
			if with == without {
				return fmt.Errorf("%w: %q", ErrLabelSetOverlap, with)
			}
		}
	}

	return nil
}

func (o *FetchOptions) hasKind(kind HistoryKind) bool {
	for _, k := range o.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

func validHistoryKind(kind HistoryKind) bool {
	for _, k := range AllHistoryKinds() {
		if k == kind {
			return true
		}
	}
	return false
}
