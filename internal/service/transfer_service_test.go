package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/internal/core/ports/mocks"
	"movie-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// capturedTasks collects scheduled one-shot tasks so tests can fire them.
type capturedTasks struct {
	mu    sync.Mutex
	names []string
	tasks []func()
}

func (c *capturedTasks) after(name string, _ time.Duration, task func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, name)
	c.tasks = append(c.tasks, task)
	return nil
}

func (c *capturedTasks) runAll() {
	c.mu.Lock()
	tasks := c.tasks
	c.tasks = nil
	c.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}

func transferReq(userID uuid.UUID, amount int64) ports.TransferRequest {
	return ports.TransferRequest{
		UserID: userID,
		Amount: dec(amount),
		Counterparty: ports.Counterparty{
			Bank:          "access",
			AccountName:   "Ada Lovelace",
			AccountNumber: "0001112223",
			Details:       "rent",
		},
	}
}

func TestTransfer_ProcessingThenCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := mocks.NewMockTaskScheduler(ctrl)
	captured := &capturedTasks{}
	sched.EXPECT().After(gomock.Any(), 3*time.Second, gomock.Any()).DoAndReturn(captured.after)

	docs := newTestDocs()
	userID := seedUser(t, docs, 100)
	svc := NewTransferService(docs, sched, nil, 3*time.Second, zerolog.Nop())
	ctx := context.Background()

	res, err := svc.BankTransfer(ctx, transferReq(userID, 40))
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusProcessing, res.Transaction.Status)
	assert.Equal(t, domain.TransactionTypeTransfer, res.Transaction.Type)
	assert.Equal(t, "ACCESS", res.Transaction.BankName())
	assert.Nil(t, res.Transaction.ProcessedAt)
	assert.True(t, res.Wallet.Balance.Equal(dec(60)), "transfer debits at once")

	require.Len(t, captured.names, 1)
	assert.True(t, strings.HasPrefix(captured.names[0], "settle-transfer-"))

	captured.runAll()

	doc, err := docs.View(ctx)
	require.NoError(t, err)
	txn := doc.FindTransaction(res.Transaction.ID)
	require.NotNil(t, txn)
	assert.Equal(t, domain.TransactionStatusCompleted, txn.Status)
	assert.NotNil(t, txn.ProcessedAt)
	assert.True(t, doc.FindUser(userID).Wallet.Balance.Equal(dec(60)), "settlement does not move money again")
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := mocks.NewMockTaskScheduler(ctrl)

	docs := newTestDocs()
	userID := seedUser(t, docs, 10)
	svc := NewTransferService(docs, sched, nil, time.Second, zerolog.Nop())

	// No scheduling when the debit fails.
	_, err := svc.BankTransfer(context.Background(), transferReq(userID, 11))
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientFunds))

	doc, err := docs.View(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Transactions)
}

func TestTransfer_BankRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewTransferService(newTestDocs(), mocks.NewMockTaskScheduler(ctrl), nil, time.Second, zerolog.Nop())

	req := transferReq(uuid.New(), 10)
	req.Bank = ""
	_, err := svc.BankTransfer(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Please select a bank", apperror.From(err).Message)
}

func TestTransfer_SettleIsNoOpUnlessProcessing(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventPublisher(ctrl)
	docs := newTestDocs()
	userID := seedUser(t, docs, 0)
	ledger := NewLedgerService(docs, nil, nil, 100, zerolog.Nop())
	svc := NewTransferService(docs, mocks.NewMockTaskScheduler(ctrl), events, time.Second, zerolog.Nop())
	ctx := context.Background()

	res, err := ledger.WatchMovie(ctx, userID, "1")
	require.NoError(t, err)

	// Completed earning: no change, no event.
	txn, err := svc.Settle(ctx, res.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, txn.Status)
	assert.Equal(t, res.Transaction.ProcessedAt, txn.ProcessedAt)

	_, err = svc.Settle(ctx, uuid.New())
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}

func TestTransfer_SettlePublishesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventPublisher(ctrl)
	sched := mocks.NewMockTaskScheduler(ctrl)
	sched.EXPECT().After(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	docs := newTestDocs()
	userID := seedUser(t, docs, 50)
	svc := NewTransferService(docs, sched, events, time.Second, zerolog.Nop())
	ctx := context.Background()

	gomock.InOrder(
		events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev domain.LedgerEvent) error {
				assert.Equal(t, domain.EventTransactionCreated, ev.Type)
				return nil
			}),
		events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev domain.LedgerEvent) error {
				assert.Equal(t, domain.EventTransferSettled, ev.Type)
				assert.Equal(t, domain.TransactionStatusCompleted, ev.Data.Status)
				return nil
			}),
	)

	res, err := svc.BankTransfer(ctx, transferReq(userID, 50))
	require.NoError(t, err)

	_, err = svc.Settle(ctx, res.Transaction.ID)
	require.NoError(t, err)
	_, err = svc.Settle(ctx, res.Transaction.ID)
	require.NoError(t, err)
}

func TestTransfer_ScheduleFailureKeepsTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := mocks.NewMockTaskScheduler(ctrl)
	sched.EXPECT().After(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("scheduler stopped"))

	docs := newTestDocs()
	userID := seedUser(t, docs, 50)
	svc := NewTransferService(docs, sched, nil, time.Second, zerolog.Nop())

	res, err := svc.BankTransfer(context.Background(), transferReq(userID, 20))
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusProcessing, res.Transaction.Status)
}

func TestTransfer_ResumePending(t *testing.T) {
	ctrl := gomock.NewController(t)
	captured := &capturedTasks{}
	sched := mocks.NewMockTaskScheduler(ctrl)
	sched.EXPECT().After(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(captured.after).AnyTimes()

	docs := newTestDocs()
	userID := seedUser(t, docs, 100)
	svc := NewTransferService(docs, sched, nil, time.Second, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.BankTransfer(ctx, transferReq(userID, 10))
	require.NoError(t, err)
	_, err = svc.BankTransfer(ctx, transferReq(userID, 20))
	require.NoError(t, err)

	// Simulate a restart: the first schedules are lost.
	captured.mu.Lock()
	captured.tasks = nil
	captured.mu.Unlock()

	n, err := svc.ResumePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	captured.runAll()

	doc, err := docs.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.TransactionsWithStatus(domain.TransactionStatusProcessing))

	n, err = svc.ResumePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
