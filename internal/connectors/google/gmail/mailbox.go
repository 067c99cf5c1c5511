package gmail

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/mailwatch-cli/internal/connectors/google"
	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
)

// Gmail operates on the authenticated user; no other user ID is valid
// with a user-scoped token.
const userID = "me"

// Ensure the adapter satisfies the ports.
var (
	_ driven.MailboxFactory = (*Factory)(nil)
	_ driven.Mailbox        = (*Mailbox)(nil)
)

// Factory opens Gmail-backed mailboxes. One rate limiter is shared across
// every mailbox the factory opens.
type Factory struct {
	cfg     *Config
	limiter *google.RateLimiter
}

// NewFactory creates a mailbox factory. A nil config gets the defaults.
func NewFactory(cfg *Config) *Factory {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Factory{
		cfg:     cfg,
		limiter: google.NewRateLimiter(),
	}
}

// Open builds a Gmail API client bound to the account's access token.
func (f *Factory) Open(ctx context.Context, account domain.Account) (driven.Mailbox, error) {
	if account.Token == "" {
		return nil, domain.ErrAuthRequired
	}

	svc, err := google.NewGmailService(ctx, google.NewStaticTokenSource(account.Token))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	return &Mailbox{svc: svc, cfg: f.cfg, limiter: f.limiter}, nil
}

// Mailbox implements driven.Mailbox over one account's Gmail API client.
type Mailbox struct {
	svc     *gmail.Service
	cfg     *Config
	limiter *google.RateLimiter
}

// RenewWatch renews the push subscription lease via users.watch and returns
// the new expiration in epoch milliseconds.
func (m *Mailbox) RenewWatch(ctx context.Context) (int64, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	req := &gmail.WatchRequest{
		TopicName: m.cfg.TopicName,
		LabelIds:  m.cfg.WatchLabelIDs,
	}
	resp, err := m.svc.Users.Watch(userID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("watch mailbox: %w", google.WrapError(err))
	}
	return resp.Expiration, nil
}

// StopWatch tears down the push subscription via users.stop.
func (m *Mailbox) StopWatch(ctx context.Context) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}

	if err := m.svc.Users.Stop(userID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("stop watch: %w", google.WrapError(err))
	}
	return nil
}

// ListHistory returns one page of the change feed after the given counter.
// Gmail answers 404 when the counter is too old to diff against; that
// surfaces as ErrHistoryIDExpired so callers can trigger a full resync.
func (m *Mailbox) ListHistory(ctx context.Context, startHistoryID uint64, pageToken string) (*domain.HistoryPage, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := m.svc.Users.History.List(userID).
		StartHistoryId(startHistoryID).
		MaxResults(m.cfg.MaxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		if google.IsNotFound(err) {
			return nil, fmt.Errorf("list history from %d: %w", startHistoryID, google.ErrHistoryIDExpired)
		}
		return nil, fmt.Errorf("list history from %d: %w", startHistoryID, google.WrapError(err))
	}

	return &domain.HistoryPage{
		Entries:       historyEntries(resp.History),
		NextPageToken: resp.NextPageToken,
		HistoryID:     resp.HistoryId,
	}, nil
}

// GetMessage resolves a full message. A 404 means the message was deleted
// between the history entry and now; it comes back as a NotFound stub so
// downstream stages need no special case.
func (m *Mailbox) GetMessage(ctx context.Context, id string) (*domain.ResolvedMessage, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	msg, err := m.svc.Users.Messages.Get(userID, id).Format("full").Context(ctx).Do()
	if err != nil {
		if google.IsNotFound(err) {
			return &domain.ResolvedMessage{ID: id, NotFound: true}, nil
		}
		return nil, fmt.Errorf("get message %s: %w", id, google.WrapError(err))
	}

	return resolvedMessage(msg), nil
}

// GetAttachment fetches one attachment's payload and decodes the base64url
// body Gmail wraps it in.
func (m *Mailbox) GetAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := m.svc.Users.Messages.Attachments.Get(userID, messageID, attachmentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get attachment %s: %w", attachmentID, google.WrapError(err))
	}

	data, err := base64.URLEncoding.DecodeString(body.Data)
	if err != nil {
		return nil, fmt.Errorf("decode attachment %s: %w", attachmentID, err)
	}
	return data, nil
}

// ListLabels returns the account's system and user labels.
func (m *Mailbox) ListLabels(ctx context.Context) ([]domain.Label, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := m.svc.Users.Labels.List(userID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", google.WrapError(err))
	}

	labels := make([]domain.Label, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		if l.Type != "system" && l.Type != "user" {
			continue
		}
		labels = append(labels, domain.Label{ID: l.Id, Name: l.Name, Type: l.Type})
	}
	return labels, nil
}

// Profile returns the account's address and current change counter.
func (m *Mailbox) Profile(ctx context.Context) (string, uint64, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", 0, err
	}

	profile, err := m.svc.Users.GetProfile(userID).Context(ctx).Do()
	if err != nil {
		return "", 0, fmt.Errorf("get profile: %w", google.WrapError(err))
	}
	return profile.EmailAddress, profile.HistoryId, nil
}
