package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterHistory_KindPassGroupsByPriorityOrder(t *testing.T) {
	entries := []HistoryEntry{
		{Kind: HistoryLabelAdded, MessageIDs: []string{"l1"}, DeltaLabels: []string{"X"}},
		{Kind: HistoryMessageAdded, MessageIDs: []string{"a1"}},
		{Kind: HistoryMessageDeleted, MessageIDs: []string{"d1"}},
		{Kind: HistoryMessageAdded, MessageIDs: []string{"a2"}},
	}

	got := FilterHistory(entries, AllHistoryKinds(), nil, nil)

	// Grouped by kind in priority order, relative order kept within a group.
	var ids []string
	for _, e := range got {
		ids = append(ids, e.MessageIDs...)
	}
	assert.Equal(t, []string{"a1", "a2", "d1", "l1"}, ids)
}

func TestFilterHistory_RequestedKindSubset(t *testing.T) {
	entries := []HistoryEntry{
		{Kind: HistoryMessageAdded, MessageIDs: []string{"a1"}},
		{Kind: HistoryMessageDeleted, MessageIDs: []string{"d1"}},
	}

	got := FilterHistory(entries, []HistoryKind{HistoryMessageDeleted}, nil, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, HistoryMessageDeleted, got[0].Kind)
}

func TestFilterHistory_AddedLabelDelta(t *testing.T) {
	entries := []HistoryEntry{
		{Kind: HistoryMessageAdded, MessageIDs: []string{"a1"}},
		{Kind: HistoryLabelAdded, MessageIDs: []string{"l1"}, DeltaLabels: []string{"X", "Y"}},
		{Kind: HistoryLabelAdded, MessageIDs: []string{"l2"}, DeltaLabels: []string{"Z"}},
		{Kind: HistoryLabelRemoved, MessageIDs: []string{"r1"}, DeltaLabels: []string{"X"}},
	}

	got := FilterHistory(entries, []HistoryKind{HistoryLabelAdded}, []string{"X"}, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, []string{"l1"}, got[0].MessageIDs)
}

func TestFilterHistory_BothDeltaSetsAreANDed(t *testing.T) {
	entries := []HistoryEntry{
		{Kind: HistoryLabelAdded, MessageIDs: []string{"l1"}, DeltaLabels: []string{"X"}},
		{Kind: HistoryLabelRemoved, MessageIDs: []string{"r1"}, DeltaLabels: []string{"Y"}},
	}

	// An entry carries one delta kind, so requiring both yields nothing.
	got := FilterHistory(entries, AllHistoryKinds(), []string{"X"}, []string{"Y"})
	assert.Empty(t, got)
}

func TestFilterHistory_NoLabelFiltersIsPassThrough(t *testing.T) {
	entries := []HistoryEntry{
		{Kind: HistoryMessageAdded, MessageIDs: []string{"a1"}},
		{Kind: HistoryLabelRemoved, MessageIDs: []string{"r1"}, DeltaLabels: []string{"X"}},
	}

	got := FilterHistory(entries, AllHistoryKinds(), nil, nil)
	assert.Len(t, got, 2)
}

func TestFilterMessages(t *testing.T) {
	messages := []Message{
		{ID: "inbox", LabelIDs: []string{"INBOX", "UNREAD"}},
		{ID: "sent", LabelIDs: []string{"SENT"}},
		{ID: "stub", NotFound: true},
	}

	tests := []struct {
		name    string
		with    []string
		without []string
		wantIDs []string
	}{
		{
			name:    "no sets configured passes everything",
			wantIDs: []string{"inbox", "sent", "stub"},
		},
		{
			name:    "include set drops unlabelled stubs",
			with:    []string{"INBOX"},
			wantIDs: []string{"inbox"},
		},
		{
			name:    "exclude-only keeps unlabelled stubs",
			without: []string{"SENT"},
			wantIDs: []string{"inbox", "stub"},
		},
		{
			name:    "include and exclude combined",
			with:    []string{"INBOX", "SENT"},
			without: []string{"UNREAD"},
			wantIDs: []string{"sent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterMessages(messages, tt.with, tt.without)
			var ids []string
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
