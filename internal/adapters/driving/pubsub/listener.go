// Package pubsub is the driving adapter for long-running deployments: it
// pulls Gmail push notifications off a Pub/Sub subscription and feeds each
// one through the fetch pipeline.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	gcppubsub "cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mailwatch-cli/internal/logger"
)

// TokenFunc resolves the access token for a notified account. Returning
// false means the listener has no credentials for that account and the
// notification is dropped.
type TokenFunc func(emailAddress string) (string, bool)

// Listener pulls notifications from one subscription and dispatches them.
type Listener struct {
	client   *gcppubsub.Client
	subName  string
	fetcher  driving.Fetcher
	tokenFor TokenFunc
}

// NewListener connects to Pub/Sub and prepares a listener on the given
// subscription. The subscription must already exist; watch registration
// creates the topic side, subscription setup is an operator concern.
func NewListener(ctx context.Context, projectID, subscription string, fetcher driving.Fetcher, tokenFor TokenFunc, opts ...option.ClientOption) (*Listener, error) {
	if projectID == "" || subscription == "" {
		return nil, fmt.Errorf("%w: pubsub project and subscription are required", domain.ErrInvalidInput)
	}

	client, err := gcppubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &Listener{
		client:   client,
		subName:  subscription,
		fetcher:  fetcher,
		tokenFor: tokenFor,
	}, nil
}

// Run blocks pulling messages until ctx is cancelled. Every message is
// acked regardless of handling outcome: a notification is only a wake-up
// signal, and the cursor guarantees a dropped one is covered by the next.
func (l *Listener) Run(ctx context.Context) error {
	sub := l.client.Subscription(l.subName)
	logger.Info("listening on subscription %s", l.subName)

	err := sub.Receive(ctx, func(ctx context.Context, msg *gcppubsub.Message) {
		if err := l.handle(ctx, msg.Data); err != nil {
			logger.Error("notification dropped: %v", err)
		}
		msg.Ack()
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("receive on %s: %w", l.subName, err)
	}
	return nil
}

// Close releases the Pub/Sub client.
func (l *Listener) Close() error {
	return l.client.Close()
}

// handle processes one pulled notification payload. Pulled messages carry
// the notification JSON directly, without the HTTP push envelope.
func (l *Listener) handle(ctx context.Context, data []byte) error {
	var n domain.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidNotification, err)
	}
	if n.EmailAddress == "" {
		return fmt.Errorf("%w: missing emailAddress", domain.ErrInvalidNotification)
	}

	token, ok := l.tokenFor(n.EmailAddress)
	if !ok {
		return fmt.Errorf("no credentials for %s", n.EmailAddress)
	}

	msg, err := l.fetcher.FetchNewMessage(ctx, &n, token)
	if err != nil {
		return fmt.Errorf("fetch for %s: %w", n.EmailAddress, err)
	}
	if msg == nil {
		logger.Debug("notification for %s produced no new message", n.EmailAddress)
		return nil
	}

	logger.Info("new message %s for %s: %s", msg.ID, n.EmailAddress, msg.Subject)
	return nil
}
