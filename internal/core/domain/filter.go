package domain

// FilterHistory selects the change-log entries worth resolving. Two passes:
//
// The kind pass walks the requested kinds in the fixed priority order and
// concatenates each kind's matches, so results are grouped by kind rather
// than kept in original feed order.
//
// The label-delta pass then applies the added/removed label sets. Each set
// individually is an OR over its labels; when both sets are configured the
// conditions are ANDed. Entries lacking the relevant delta while that
// filter is configured are dropped. With neither set configured the pass is
// a no-op.
func FilterHistory(entries []HistoryEntry, kinds []HistoryKind, addedLabelIDs, removedLabelIDs []string) []HistoryEntry {
	byKind := make([]HistoryEntry, 0, len(entries))
	for _, kind := range orderedKinds(kinds) {
		for _, entry := range entries {
			if entry.Kind == kind {
				byKind = append(byKind, entry)
			}
		}
	}

	if len(addedLabelIDs) == 0 && len(removedLabelIDs) == 0 {
		return byKind
	}

	filtered := make([]HistoryEntry, 0, len(byKind))
	for _, entry := range byKind {
		if len(addedLabelIDs) > 0 {
			if entry.Kind != HistoryLabelAdded || !entry.HasDeltaLabel(addedLabelIDs) {
				continue
			}
		}
		if len(removedLabelIDs) > 0 {
			if entry.Kind != HistoryLabelRemoved || !entry.HasDeltaLabel(removedLabelIDs) {
				continue
			}
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

// orderedKinds returns the requested kinds in the fixed priority order,
// dropping duplicates and anything unknown.
func orderedKinds(requested []HistoryKind) []HistoryKind {
	ordered := make([]HistoryKind, 0, len(requested))
	for _, kind := range AllHistoryKinds() {
		for _, r := range requested {
			if r == kind {
				ordered = append(ordered, kind)
				break
			}
		}
	}
	return ordered
}

// FilterMessages post-filters parsed records by current label membership.
// A record without labels (deleted or not-found) can never satisfy an
// include set, so it drops whenever one is configured; an exclude-only
// configuration never drops it. Callers must have rejected overlapping sets
// before any I/O; see FetchOptions.Validate.
func FilterMessages(messages []Message, withLabelIDs, withoutLabelIDs []string) []Message {
	if len(withLabelIDs) == 0 && len(withoutLabelIDs) == 0 {
		return messages
	}

	filtered := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if len(withLabelIDs) > 0 && !intersects(msg.LabelIDs, withLabelIDs) {
			continue
		}
		if len(withoutLabelIDs) > 0 && intersects(msg.LabelIDs, withoutLabelIDs) {
			continue
		}
		filtered = append(filtered, msg)
	}
	return filtered
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
