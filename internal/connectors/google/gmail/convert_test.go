package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
)

func TestHistoryEntries(t *testing.T) {
	tests := []struct {
		name    string
		records []*gmail.History
		want    []domain.HistoryEntry
	}{
		{
			name:    "empty feed",
			records: nil,
			want:    []domain.HistoryEntry{},
		},
		{
			name: "messages added",
			records: []*gmail.History{
				{MessagesAdded: []*gmail.HistoryMessageAdded{
					{Message: &gmail.Message{Id: "m1"}},
					{Message: &gmail.Message{Id: "m2"}},
				}},
			},
			want: []domain.HistoryEntry{
				{Kind: domain.HistoryMessageAdded, MessageIDs: []string{"m1", "m2"}},
			},
		},
		{
			name: "messages deleted",
			records: []*gmail.History{
				{MessagesDeleted: []*gmail.HistoryMessageDeleted{
					{Message: &gmail.Message{Id: "m3"}},
				}},
			},
			want: []domain.HistoryEntry{
				{Kind: domain.HistoryMessageDeleted, MessageIDs: []string{"m3"}},
			},
		},
		{
			name: "labels added collects delta set",
			records: []*gmail.History{
				{LabelsAdded: []*gmail.HistoryLabelAdded{
					{Message: &gmail.Message{Id: "m4"}, LabelIds: []string{"STARRED"}},
					{Message: &gmail.Message{Id: "m5"}, LabelIds: []string{"STARRED", "IMPORTANT"}},
				}},
			},
			want: []domain.HistoryEntry{
				{
					Kind:        domain.HistoryLabelAdded,
					MessageIDs:  []string{"m4", "m5"},
					DeltaLabels: []string{"STARRED", "IMPORTANT"},
				},
			},
		},
		{
			name: "labels removed",
			records: []*gmail.History{
				{LabelsRemoved: []*gmail.HistoryLabelRemoved{
					{Message: &gmail.Message{Id: "m6"}, LabelIds: []string{"UNREAD"}},
				}},
			},
			want: []domain.HistoryEntry{
				{Kind: domain.HistoryLabelRemoved, MessageIDs: []string{"m6"}, DeltaLabels: []string{"UNREAD"}},
			},
		},
		{
			name: "added wins over label change in the same record",
			records: []*gmail.History{
				{
					MessagesAdded: []*gmail.HistoryMessageAdded{
						{Message: &gmail.Message{Id: "m7"}},
					},
					LabelsAdded: []*gmail.HistoryLabelAdded{
						{Message: &gmail.Message{Id: "m7"}, LabelIds: []string{"INBOX"}},
					},
				},
			},
			want: []domain.HistoryEntry{
				{Kind: domain.HistoryMessageAdded, MessageIDs: []string{"m7"}},
			},
		},
		{
			name: "bare message list keeps an unkinded entry",
			records: []*gmail.History{
				{Messages: []*gmail.Message{{Id: "m8"}}},
			},
			want: []domain.HistoryEntry{
				{MessageIDs: []string{"m8"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, historyEntries(tt.records))
		})
	}
}

func TestResolvedMessage(t *testing.T) {
	t.Run("no payload yields no tree", func(t *testing.T) {
		got := resolvedMessage(&gmail.Message{Id: "m1", LabelIds: []string{"INBOX"}})

		assert.Equal(t, "m1", got.ID)
		assert.Equal(t, []string{"INBOX"}, got.LabelIDs)
		assert.Nil(t, got.Root)
		assert.False(t, got.NotFound)
	})

	t.Run("headers and nested parts", func(t *testing.T) {
		body := base64.URLEncoding.EncodeToString([]byte("hello"))
		msg := &gmail.Message{
			Id: "m2",
			Payload: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Headers: []*gmail.MessagePartHeader{
					{Name: "Subject", Value: "greeting"},
					{Name: "From", Value: "a@example.com"},
				},
				Parts: []*gmail.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmail.MessagePartBody{Data: body, Size: 5},
					},
					{
						MimeType: "application/pdf",
						Filename: "doc.pdf",
						Body:     &gmail.MessagePartBody{AttachmentId: "att-1", Size: 1024},
					},
				},
			},
		}

		got := resolvedMessage(msg)
		require.NotNil(t, got.Root)
		assert.Equal(t, domain.PartMultipart, got.Root.Kind)

		subject, ok := got.Header("Subject")
		require.True(t, ok)
		assert.Equal(t, "greeting", subject)

		require.Len(t, got.Root.Children, 2)
		text := got.Root.Children[0]
		assert.Equal(t, domain.PartText, text.Kind)
		assert.Equal(t, []byte("hello"), text.Body)

		att := got.Root.Children[1]
		assert.Equal(t, domain.PartAttachment, att.Kind)
		assert.Equal(t, "doc.pdf", att.Filename)
		assert.Equal(t, "att-1", att.AttachmentID)
		assert.Equal(t, int64(1024), att.Size)
	})

	t.Run("undecodable body keeps the part with no content", func(t *testing.T) {
		msg := &gmail.Message{
			Id: "m3",
			Payload: &gmail.MessagePart{
				MimeType: "text/plain",
				Body:     &gmail.MessagePartBody{Data: "not base64!!", Size: 12},
			},
		}

		got := resolvedMessage(msg)
		require.NotNil(t, got.Root)
		assert.Equal(t, domain.PartText, got.Root.Kind)
		assert.Nil(t, got.Root.Body)
	})
}
