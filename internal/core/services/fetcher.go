package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mailwatch-cli/internal/logger"
)

// Ensure FetchService implements the interface.
var _ driving.Fetcher = (*FetchService)(nil)

// FetchService composes the reconciler, the change-log fetch, the filters
// and the concurrent resolve/attach stages into the public entry points.
type FetchService struct {
	reconciler *Reconciler
	factory    driven.MailboxFactory
}

// NewFetchService creates the fetch orchestrator.
func NewFetchService(reconciler *Reconciler, factory driven.MailboxFactory) *FetchService {
	return &FetchService{
		reconciler: reconciler,
		factory:    factory,
	}
}

// Fetch runs a full cycle and downloads every surviving attachment payload.
func (s *FetchService) Fetch(ctx context.Context, opts domain.FetchOptions) ([]domain.Message, error) {
	return s.fetch(ctx, opts, true)
}

// FetchWithoutAttachments runs a full cycle with attachment metadata only.
func (s *FetchService) FetchWithoutAttachments(ctx context.Context, opts domain.FetchOptions) ([]domain.Message, error) {
	return s.fetch(ctx, opts, false)
}

// FetchNewMessage runs Fetch pinned to newly added inbox messages and
// returns the first result, or nil when the cycle produced nothing.
func (s *FetchService) FetchNewMessage(ctx context.Context, notification *domain.Notification, token string) (*domain.Message, error) {
	opts := domain.FetchOptions{
		Notification:    notification,
		Token:           token,
		HistoryKinds:    []domain.HistoryKind{domain.HistoryMessageAdded},
		WithLabelIDs:    []string{domain.LabelInbox},
		WithoutLabelIDs: []string{domain.LabelSent},
	}

	messages, err := s.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	msg := messages[0]
	return &msg, nil
}

// ListLabels lists the account's labels without touching cursor state.
func (s *FetchService) ListLabels(ctx context.Context, account domain.Account) ([]domain.Label, error) {
	mailbox, err := s.factory.Open(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("open mailbox: %w", err)
	}
	return mailbox.ListLabels(ctx)
}

// fetch is the shared cycle: validate, reconcile, list, filter, resolve,
// parse, filter again, optionally attach.
func (s *FetchService) fetch(ctx context.Context, opts domain.FetchOptions, withAttachments bool) ([]domain.Message, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	account := domain.Account{
		EmailAddress: opts.Notification.EmailAddress,
		Token:        opts.Token,
	}
	mailbox, err := s.factory.Open(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("open mailbox: %w", err)
	}

	decision, err := s.reconciler.Reconcile(ctx, mailbox, opts.Notification)
	if err != nil {
		return nil, err
	}
	if !decision.Proceed {
		return []domain.Message{}, nil
	}

	entries, err := s.listAllHistory(ctx, mailbox, decision.StartHistoryID)
	if err != nil {
		return nil, err
	}

	filtered := domain.FilterHistory(entries, opts.Kinds(), opts.AddedLabelIDs, opts.RemovedLabelIDs)
	logger.Debug("History for %s: %d entries, %d after filtering",
		account.EmailAddress, len(entries), len(filtered))

	resolved, err := s.resolveAll(ctx, mailbox, filtered)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(resolved))
	for _, r := range resolved {
		messages = append(messages, domain.ParseMessage(r.message, r.entry))
	}
	messages = domain.FilterMessages(messages, opts.WithLabelIDs, opts.WithoutLabelIDs)

	if withAttachments {
		if err := s.fetchAttachments(ctx, mailbox, messages); err != nil {
			return nil, err
		}
	}

	return messages, nil
}

// listAllHistory drains the change feed from the given counter, following
// continuation tokens with an accumulator loop. Page order is a hard
// dependency: each token comes from the prior response.
func (s *FetchService) listAllHistory(ctx context.Context, mailbox driven.Mailbox, startHistoryID uint64) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	pageToken := ""
	for {
		page, err := mailbox.ListHistory(ctx, startHistoryID, pageToken)
		if err != nil {
			return nil, fmt.Errorf("list history: %w", err)
		}
		entries = append(entries, page.Entries...)
		if page.NextPageToken == "" {
			return entries, nil
		}
		pageToken = page.NextPageToken
	}
}

// resolvedRef pairs a resolved message with the history entry that
// referenced it, preserving entry-major order.
type resolvedRef struct {
	entry   domain.HistoryEntry
	message *domain.ResolvedMessage
}

// resolveAll fetches every referenced message with full fan-out concurrency.
// Results land in per-entry, per-message order regardless of completion
// order. All fetches run to completion; the first error aborts the
// aggregate.
func (s *FetchService) resolveAll(ctx context.Context, mailbox driven.Mailbox, entries []domain.HistoryEntry) ([]resolvedRef, error) {
	type ref struct {
		entry domain.HistoryEntry
		id    string
	}
	var refs []ref
	for _, entry := range entries {
		for _, id := range entry.MessageIDs {
			refs = append(refs, ref{entry: entry, id: id})
		}
	}

	results := make([]resolvedRef, len(refs))
	errs := make([]error, len(refs))
	var wg sync.WaitGroup
	for i, r := range refs {
		wg.Add(1)
		go func(i int, r ref) {
			defer wg.Done()
			msg, err := mailbox.GetMessage(ctx, r.id)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = resolvedRef{entry: r.entry, message: msg}
		}(i, r)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("resolve message: %w", err)
		}
	}
	return results, nil
}

// fetchAttachments fans out one fetch per attachment across all surviving
// records and fills Data in place. Same aggregate error semantics as
// resolveAll.
func (s *FetchService) fetchAttachments(ctx context.Context, mailbox driven.Mailbox, messages []domain.Message) error {
	type slot struct {
		msg int
		att int
	}
	var slots []slot
	for i := range messages {
		for j := range messages[i].Attachments {
			slots = append(slots, slot{msg: i, att: j})
		}
	}

	errs := make([]error, len(slots))
	var wg sync.WaitGroup
	for k, sl := range slots {
		wg.Add(1)
		go func(k int, sl slot) {
			defer wg.Done()
			attachment := &messages[sl.msg].Attachments[sl.att]
			data, err := mailbox.GetAttachment(ctx, messages[sl.msg].ID, attachment.AttachmentID)
			if err != nil {
				errs[k] = err
				return
			}
			attachment.Data = data
		}(k, sl)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("fetch attachment: %w", err)
		}
	}
	return nil
}
