package domain

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, payload string) []byte {
	t.Helper()
	data := base64.StdEncoding.EncodeToString([]byte(payload))
	return []byte(`{"message":{"data":"` + data + `","messageId":"m1"},"subscription":"projects/p/subscriptions/s"}`)
}

func TestDecodeNotification(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Notification
	}{
		{
			name:    "numeric history id",
			payload: `{"emailAddress":"user@gmail.com","historyId":9876}`,
			want:    Notification{EmailAddress: "user@gmail.com", HistoryID: 9876},
		},
		{
			name:    "string history id",
			payload: `{"emailAddress":"user@gmail.com","historyId":"12345"}`,
			want:    Notification{EmailAddress: "user@gmail.com", HistoryID: 12345},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeNotification(envelope(t, tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestDecodeNotification_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		envelope []byte
	}{
		{
			name:     "not JSON",
			envelope: []byte("not json at all"),
		},
		{
			name:     "data is not base64",
			envelope: []byte(`{"message":{"data":"%%%"},"subscription":"s"}`),
		},
		{
			name:     "payload is not JSON",
			envelope: []byte(`{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("nope")) + `"},"subscription":"s"}`),
		},
		{
			name:     "missing email address",
			envelope: envelope(t, `{"historyId":42}`),
		},
		{
			name:     "non-numeric history id",
			envelope: envelope(t, `{"emailAddress":"a@b.c","historyId":"abc"}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeNotification(tt.envelope)
			assert.ErrorIs(t, err, ErrInvalidNotification)
		})
	}
}

func TestDecodeEmailAddress(t *testing.T) {
	addr, err := DecodeEmailAddress(envelope(t, `{"emailAddress":"user@gmail.com","historyId":1}`))
	require.NoError(t, err)
	assert.Equal(t, "user@gmail.com", addr)

	_, err = DecodeEmailAddress([]byte("{"))
	assert.ErrorIs(t, err, ErrInvalidNotification)
}

func TestCursorsIndex(t *testing.T) {
	cursors := Cursors{
		{EmailAddress: "a@example.com", PrevHistoryID: 1},
		{EmailAddress: "b@example.com", PrevHistoryID: 2},
	}

	assert.Equal(t, 0, cursors.Index("a@example.com"))
	assert.Equal(t, 1, cursors.Index("b@example.com"))
	assert.Equal(t, -1, cursors.Index("missing@example.com"))
	assert.Equal(t, -1, Cursors(nil).Index("a@example.com"))
}
