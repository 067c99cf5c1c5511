package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mailwatch-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockMailbox implements driven.Mailbox for testing.
type mockMailbox struct {
	renewExpiration int64
	renewErr        error
	renewCalls      int

	// pages is keyed by page token; "" is the first page.
	pages   map[string]*domain.HistoryPage
	listErr error

	messages    map[string]*domain.ResolvedMessage
	messageErrs map[string]error

	// attachments is keyed by messageID+"/"+attachmentID.
	attachments   map[string][]byte
	attachmentErr error

	labels []domain.Label
}

func (m *mockMailbox) RenewWatch(_ context.Context) (int64, error) {
	m.renewCalls++
	if m.renewErr != nil {
		return 0, m.renewErr
	}
	return m.renewExpiration, nil
}

func (m *mockMailbox) StopWatch(_ context.Context) error { return nil }

func (m *mockMailbox) ListHistory(_ context.Context, _ uint64, pageToken string) (*domain.HistoryPage, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	page, ok := m.pages[pageToken]
	if !ok {
		return &domain.HistoryPage{}, nil
	}
	return page, nil
}

func (m *mockMailbox) GetMessage(_ context.Context, id string) (*domain.ResolvedMessage, error) {
	if err, ok := m.messageErrs[id]; ok {
		return nil, err
	}
	if msg, ok := m.messages[id]; ok {
		return msg, nil
	}
	// Unknown messages come back as not-found stubs, like the provider
	// adapter does for a 404.
	return &domain.ResolvedMessage{ID: id, NotFound: true}, nil
}

func (m *mockMailbox) GetAttachment(_ context.Context, messageID, attachmentID string) ([]byte, error) {
	if m.attachmentErr != nil {
		return nil, m.attachmentErr
	}
	return m.attachments[messageID+"/"+attachmentID], nil
}

func (m *mockMailbox) ListLabels(_ context.Context) ([]domain.Label, error) {
	return m.labels, nil
}

func (m *mockMailbox) Profile(_ context.Context) (string, uint64, error) {
	return "user@gmail.com", 0, nil
}

// mockMailboxFactory implements driven.MailboxFactory.
type mockMailboxFactory struct {
	mailbox   *mockMailbox
	openErr   error
	openCalls int
}

func (f *mockMailboxFactory) Open(_ context.Context, _ domain.Account) (driven.Mailbox, error) {
	f.openCalls++
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.mailbox, nil
}

// --- Reconciler tests ---

func notification(email string, historyID uint64) *domain.Notification {
	return &domain.Notification{EmailAddress: email, HistoryID: historyID}
}

func TestReconcile_FirstNotificationSeedsCursorAndStops(t *testing.T) {
	store := memory.NewCursorStore()
	mailbox := &mockMailbox{renewExpiration: 1700000000000}
	reconciler := NewReconciler(store)

	decision, err := reconciler.Reconcile(context.Background(), mailbox, notification("new@example.com", 500))

	require.NoError(t, err)
	assert.False(t, decision.Proceed)

	cursors, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cursors, 1)
	assert.Equal(t, "new@example.com", cursors[0].EmailAddress)
	assert.Equal(t, uint64(500), cursors[0].PrevHistoryID)
	require.NotNil(t, cursors[0].WatchExpiration)
	assert.Equal(t, int64(1700000000000), *cursors[0].WatchExpiration)
}

func TestReconcile_StaleNotificationStillRenewsLease(t *testing.T) {
	store := memory.NewCursorStore()
	require.NoError(t, store.Save(context.Background(), domain.Cursors{
		{EmailAddress: "user@example.com", PrevHistoryID: 100},
	}))
	mailbox := &mockMailbox{renewExpiration: 42}
	reconciler := NewReconciler(store)

	decision, err := reconciler.Reconcile(context.Background(), mailbox, notification("user@example.com", 100))

	require.NoError(t, err)
	assert.False(t, decision.Proceed)
	assert.Equal(t, 1, mailbox.renewCalls)

	cursors, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), cursors[0].PrevHistoryID)
	require.NotNil(t, cursors[0].WatchExpiration)
	assert.Equal(t, int64(42), *cursors[0].WatchExpiration)
}

func TestReconcile_FreshNotificationAdvancesCursor(t *testing.T) {
	store := memory.NewCursorStore()
	require.NoError(t, store.Save(context.Background(), domain.Cursors{
		{EmailAddress: "user@example.com", PrevHistoryID: 100},
	}))
	mailbox := &mockMailbox{renewExpiration: 42}
	reconciler := NewReconciler(store)

	decision, err := reconciler.Reconcile(context.Background(), mailbox, notification("user@example.com", 130))

	require.NoError(t, err)
	assert.True(t, decision.Proceed)
	assert.Equal(t, uint64(100), decision.StartHistoryID)

	cursors, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(130), cursors[0].PrevHistoryID)
}

func TestReconcile_CursorNeverGoesBackward(t *testing.T) {
	store := memory.NewCursorStore()
	mailbox := &mockMailbox{}
	reconciler := NewReconciler(store)
	ctx := context.Background()

	for _, historyID := range []uint64{50, 80, 60, 80, 90} {
		_, err := reconciler.Reconcile(ctx, mailbox, notification("user@example.com", historyID))
		require.NoError(t, err)
	}

	cursors, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), cursors[0].PrevHistoryID)
	assert.Equal(t, 5, mailbox.renewCalls)
}

func TestReconcile_RenewFailureIsFatalAndNothingPersists(t *testing.T) {
	store := memory.NewCursorStore()
	require.NoError(t, store.Save(context.Background(), domain.Cursors{
		{EmailAddress: "user@example.com", PrevHistoryID: 100},
	}))
	mailbox := &mockMailbox{renewErr: errors.New("watch rejected")}
	reconciler := NewReconciler(store)

	_, err := reconciler.Reconcile(context.Background(), mailbox, notification("user@example.com", 200))

	require.Error(t, err)
	assert.ErrorContains(t, err, "renew watch")

	cursors, loadErr := store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.Equal(t, uint64(100), cursors[0].PrevHistoryID)
	assert.Nil(t, cursors[0].WatchExpiration)
}

func TestReconcile_IndependentAccounts(t *testing.T) {
	store := memory.NewCursorStore()
	mailbox := &mockMailbox{}
	reconciler := NewReconciler(store)
	ctx := context.Background()

	_, err := reconciler.Reconcile(ctx, mailbox, notification("a@example.com", 10))
	require.NoError(t, err)
	_, err = reconciler.Reconcile(ctx, mailbox, notification("b@example.com", 20))
	require.NoError(t, err)

	cursors, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cursors, 2)
	assert.Equal(t, uint64(10), cursors[cursors.Index("a@example.com")].PrevHistoryID)
	assert.Equal(t, uint64(20), cursors[cursors.Index("b@example.com")].PrevHistoryID)
}
