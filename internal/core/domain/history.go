package domain

// HistoryKind identifies the kind of change a history entry represents.
// The empty string means the kind could not be determined.
type HistoryKind string

const (
	// HistoryMessageAdded marks messages newly added to the mailbox.
	HistoryMessageAdded HistoryKind = "messageAdded"
	// HistoryMessageDeleted marks messages removed from the mailbox.
	HistoryMessageDeleted HistoryKind = "messageDeleted"
	// HistoryLabelAdded marks label additions on existing messages.
	HistoryLabelAdded HistoryKind = "labelAdded"
	// HistoryLabelRemoved marks label removals on existing messages.
	HistoryLabelRemoved HistoryKind = "labelRemoved"
)

// AllHistoryKinds returns the four change kinds in their fixed priority
// order: added, deleted, label-added, label-removed. Classification and
// filtering both honour this order.
func AllHistoryKinds() []HistoryKind {
	return []HistoryKind{
		HistoryMessageAdded,
		HistoryMessageDeleted,
		HistoryLabelAdded,
		HistoryLabelRemoved,
	}
}

// HistoryEntry is one unit of the provider's change feed. The provider emits
// at most one kind per entry; if an entry ever carries several, the decoder
// records the first kind in the fixed priority order.
type HistoryEntry struct {
	// Kind tags the change. Empty when no known kind matched.
	Kind HistoryKind
	// MessageIDs references the messages the change applies to.
	MessageIDs []string
	// DeltaLabels is the set of label IDs added or removed, for the two
	// label kinds only. Nil for message-level kinds.
	DeltaLabels []string
}

// HasDeltaLabel reports whether the entry's label delta intersects the
// given set. Entries without a delta never match.
func (e HistoryEntry) HasDeltaLabel(labelIDs []string) bool {
	for _, want := range labelIDs {
		for _, have := range e.DeltaLabels {
			if want == have {
				return true
			}
		}
	}
	return false
}

// HistoryPage is one page of the provider's change feed.
type HistoryPage struct {
	// Entries are the decoded change-log entries, in feed order.
	Entries []HistoryEntry
	// NextPageToken continues the feed when non-empty.
	NextPageToken string
	// HistoryID is the counter the feed is current to.
	HistoryID uint64
}

// Well-known system label IDs.
const (
	// LabelInbox is the provider's inbox label.
	LabelInbox = "INBOX"
	// LabelSent is the provider's sent-mail label.
	LabelSent = "SENT"
)

// Label is a mailbox label as reported by the provider.
type Label struct {
	// ID is the provider's label identifier (e.g. "INBOX").
	ID string
	// Name is the display name.
	Name string
	// Type distinguishes system labels from user labels.
	Type string
}
