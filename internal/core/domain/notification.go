package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

// PushEnvelope mirrors the Pub/Sub push delivery wrapper around a Gmail
// notification. The payload itself lives base64-encoded in Message.Data.
type PushEnvelope struct {
	Message struct {
		// Data is the base64-encoded JSON notification body.
		Data string `json:"data"`
		// MessageID is the Pub/Sub message ID.
		MessageID string `json:"messageId"`
	} `json:"message"`
	// Subscription is the full subscription resource name.
	Subscription string `json:"subscription"`
}

// Notification is a decoded mailbox push notification. It carries no payload:
// only the account it concerns and the provider's change counter at the time
// the notification was emitted.
type Notification struct {
	// EmailAddress identifies the account the change belongs to.
	EmailAddress string `json:"emailAddress"`
	// HistoryID is the provider's monotonically increasing change counter.
	HistoryID uint64 `json:"historyId"`
}

// UnmarshalJSON accepts historyId as either a JSON number or a quoted
// decimal string. Gmail has emitted both shapes over time.
func (n *Notification) UnmarshalJSON(data []byte) error {
	var raw struct {
		EmailAddress string          `json:"emailAddress"`
		HistoryID    json.RawMessage `json:"historyId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.EmailAddress = raw.EmailAddress
	n.HistoryID = 0

	if len(raw.HistoryID) == 0 {
		return nil
	}

	s := string(raw.HistoryID)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: historyId %q", ErrInvalidNotification, s)
	}
	n.HistoryID = id
	return nil
}

// DecodeNotification unpacks a raw push envelope into a Notification.
// A malformed envelope is fatal: the caller has nothing to reconcile.
func DecodeNotification(envelope []byte) (*Notification, error) {
	var env PushEnvelope
	if err := json.Unmarshal(envelope, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNotification, err)
	}

	payload, err := base64.StdEncoding.DecodeString(env.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNotification, err)
	}

	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNotification, err)
	}
	if n.EmailAddress == "" {
		return nil, fmt.Errorf("%w: missing emailAddress", ErrInvalidNotification)
	}

	return &n, nil
}

// DecodeEmailAddress extracts just the account identifier from a push
// envelope, for callers that only need to route the notification.
func DecodeEmailAddress(envelope []byte) (string, error) {
	n, err := DecodeNotification(envelope)
	if err != nil {
		return "", err
	}
	return n.EmailAddress, nil
}
