package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/internal/core/ports/mocks"
	"movie-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLedger(t *testing.T) (*LedgerServiceImpl, *mocks.MockEventPublisher, uuid.UUID) {
	t.Helper()
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventPublisher(ctrl)
	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	docs := newTestDocs()
	userID := seedUser(t, docs, 0)
	svc := NewLedgerService(docs, NewCatalogService(nil), events, 100, zerolog.Nop())
	return svc, events, userID
}

func bankX(userID uuid.UUID, amount int64) ports.DebitRequest {
	return ports.DebitRequest{
		UserID: userID,
		Type:   domain.TransactionTypeWithdraw,
		Amount: dec(amount),
		Counterparty: ports.Counterparty{
			Bank:          "bankX",
			AccountName:   "Ada Lovelace",
			AccountNumber: "0123456789",
		},
	}
}

func TestLedger_WatchMovieFromZero(t *testing.T) {
	svc, _, userID := newTestLedger(t)
	ctx := context.Background()

	res, err := svc.WatchMovie(ctx, userID, "m1")
	require.NoError(t, err)

	assert.True(t, res.Wallet.Balance.Equal(dec(100)))
	assert.True(t, res.Wallet.TotalEarned.Equal(dec(100)))
	assert.Equal(t, 1, res.Wallet.MoviesWatched)

	txs, err := svc.ListTransactions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TransactionTypeEarning, txs[0].Type)
	assert.True(t, txs[0].Amount.Equal(dec(100)))
	assert.Equal(t, domain.TransactionStatusCompleted, txs[0].Status)
	assert.Equal(t, domain.RewardBank, txs[0].BankName())
	assert.Equal(t, domain.RewardAccountName, txs[0].AccountName)
	assert.Equal(t, domain.RewardAccountNumber, txs[0].AccountNumber)
	assert.Equal(t, "m1", txs[0].MovieID)
}

func TestLedger_WatchMovieIgnoresMovieIdentity(t *testing.T) {
	svc, _, userID := newTestLedger(t)
	ctx := context.Background()

	for i, id := range []string{"1", "1", "not-in-catalog", "15"} {
		res, err := svc.WatchMovie(ctx, userID, id)
		require.NoError(t, err)
		assert.True(t, res.Transaction.Amount.Equal(dec(100)))
		assert.Equal(t, i+1, res.Wallet.MoviesWatched)
	}

	wallet, err := svc.GetWallet(ctx, userID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(dec(400)))
	assert.True(t, wallet.TotalEarned.Equal(dec(400)))
}

func TestLedger_WatchMovieDetails(t *testing.T) {
	svc, _, userID := newTestLedger(t)
	ctx := context.Background()

	known, err := svc.WatchMovie(ctx, userID, "2")
	require.NoError(t, err)
	assert.Equal(t, "Reward for watching Stranger Things", known.Transaction.Details)

	unknown, err := svc.WatchMovie(ctx, userID, "zzz")
	require.NoError(t, err)
	assert.Equal(t, "Reward for watching movie", unknown.Transaction.Details)

	_, err = svc.WatchMovie(ctx, userID, "  ")
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestLedger_RewardAmountConfigurable(t *testing.T) {
	docs := newTestDocs()
	userID := seedUser(t, docs, 0)
	svc := NewLedgerService(docs, nil, nil, 250, zerolog.Nop())

	res, err := svc.WatchMovie(context.Background(), userID, "3")
	require.NoError(t, err)
	assert.True(t, res.Wallet.Balance.Equal(dec(250)))
}

func TestLedger_DebitInsufficientFunds(t *testing.T) {
	svc, _, userID := newTestLedger(t)
	ctx := context.Background()
	_, err := svc.WatchMovie(ctx, userID, "m1")
	require.NoError(t, err)

	_, err = svc.Debit(ctx, bankX(userID, 150))
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientFunds))

	wallet, err := svc.GetWallet(ctx, userID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(dec(100)), "balance unchanged after failed debit")

	txs, err := svc.ListTransactions(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "log unchanged after failed debit")
}

func TestLedger_DebitWithdraw(t *testing.T) {
	svc, _, userID := newTestLedger(t)
	ctx := context.Background()
	_, err := svc.WatchMovie(ctx, userID, "m1")
	require.NoError(t, err)

	res, err := svc.Debit(ctx, bankX(userID, 40))
	require.NoError(t, err)
	assert.True(t, res.Wallet.Balance.Equal(dec(60)))

	txs, err := svc.ListTransactions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, domain.TransactionTypeWithdraw, txs[0].Type)
	assert.True(t, txs[0].Amount.Equal(dec(40)))
	assert.Equal(t, domain.TransactionStatusCompleted, txs[0].Status)
	assert.Equal(t, "BANKX", txs[0].BankName())
	assert.Equal(t, domain.DefaultDetails, txs[0].Details)
}

func TestLedger_TransferAlsoChecksBalance(t *testing.T) {
	svc, _, userID := newTestLedger(t)

	req := bankX(userID, 1)
	req.Type = domain.TransactionTypeTransfer
	_, err := svc.Debit(context.Background(), req)
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientFunds))
}

func TestLedger_Validation(t *testing.T) {
	svc, _, userID := newTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
		code string
	}{
		{"credit zero amount", func() error {
			_, err := svc.Credit(ctx, ports.CreditRequest{UserID: userID, Amount: decimal.Zero, Counterparty: ports.Counterparty{Bank: "GTB"}})
			return err
		}, apperror.CodeValidation},
		{"credit without bank", func() error {
			_, err := svc.Credit(ctx, ports.CreditRequest{UserID: userID, Amount: dec(10), Counterparty: ports.Counterparty{Bank: "  "}})
			return err
		}, apperror.CodeValidation},
		{"credit sub-cent amount", func() error {
			_, err := svc.Credit(ctx, ports.CreditRequest{UserID: userID, Amount: decimal.RequireFromString("0.005"), Counterparty: ports.Counterparty{Bank: "GTB"}})
			return err
		}, apperror.CodeValidation},
		{"debit negative amount", func() error {
			_, err := svc.Debit(ctx, bankX(userID, -5))
			return err
		}, apperror.CodeValidation},
		{"debit with credit type", func() error {
			req := bankX(userID, 5)
			req.Type = domain.TransactionTypeDeposit
			_, err := svc.Debit(ctx, req)
			return err
		}, apperror.CodeValidation},
		{"unknown user credit", func() error {
			_, err := svc.Credit(ctx, ports.CreditRequest{UserID: uuid.New(), Amount: dec(10), Counterparty: ports.Counterparty{Bank: "GTB"}})
			return err
		}, apperror.CodeNotFound},
		{"unknown user watch", func() error {
			_, err := svc.WatchMovie(ctx, uuid.New(), "1")
			return err
		}, apperror.CodeNotFound},
		{"unknown user list", func() error {
			_, err := svc.ListTransactions(ctx, uuid.New())
			return err
		}, apperror.CodeNotFound},
		{"unknown user wallet", func() error {
			_, err := svc.GetWallet(ctx, uuid.New())
			return err
		}, apperror.CodeNotFound},
		{"unknown transaction", func() error {
			_, err := svc.GetTransaction(ctx, uuid.New())
			return err
		}, apperror.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLedger_BalanceIsSignedSumOfSuccessfulCalls(t *testing.T) {
	svc, _, userID := newTestLedger(t)
	ctx := context.Background()

	credit := func(v int64) error {
		_, err := svc.Credit(ctx, ports.CreditRequest{UserID: userID, Amount: dec(v), Counterparty: ports.Counterparty{Bank: "gtb"}})
		return err
	}
	debit := func(v int64) error {
		_, err := svc.Debit(ctx, bankX(userID, v))
		return err
	}

	expected := decimal.Zero
	calls := 0
	steps := []struct {
		credit bool
		amount int64
	}{
		{true, 50}, {false, 20}, {false, 100}, {true, 5}, {false, 35}, {false, 1}, {true, 300},
	}
	for _, st := range steps {
		var err error
		if st.credit {
			err = credit(st.amount)
			if err == nil {
				expected = expected.Add(dec(st.amount))
			}
		} else {
			err = debit(st.amount)
			if err == nil {
				expected = expected.Sub(dec(st.amount))
			}
		}
		if err == nil {
			calls++
		}
	}

	wallet, err := svc.GetWallet(ctx, userID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(expected), "balance %s, expected %s", wallet.Balance, expected)

	txs, err := svc.ListTransactions(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, txs, calls)

	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.SignedAmount())
	}
	assert.True(t, sum.Equal(wallet.Balance))
}

func TestLedger_ListNewestFirst(t *testing.T) {
	svc, _, userID := newTestLedger(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		res, err := svc.WatchMovie(ctx, userID, "1")
		require.NoError(t, err)
		ids = append(ids, res.Transaction.ID)
	}

	txs, err := svc.ListTransactions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, txs, 5)
	for i := range txs {
		assert.Equal(t, ids[len(ids)-1-i], txs[i].ID)
	}
}

func TestLedger_ListIsPerUser(t *testing.T) {
	docs := newTestDocs()
	alice := seedUser(t, docs, 0)
	bob := seedUser(t, docs, 0)
	svc := NewLedgerService(docs, nil, nil, 100, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.WatchMovie(ctx, alice, "1")
	require.NoError(t, err)

	txs, err := svc.ListTransactions(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestLedger_GetTransaction(t *testing.T) {
	svc, _, userID := newTestLedger(t)
	ctx := context.Background()

	res, err := svc.WatchMovie(ctx, userID, "4")
	require.NoError(t, err)

	txn, err := svc.GetTransaction(ctx, res.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Transaction.ID, txn.ID)
	assert.Equal(t, userID, txn.UserID)
}

func TestLedger_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	docs := newTestDocs()
	userID := seedUser(t, docs, 100)
	svc := NewLedgerService(docs, nil, nil, 100, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Debit(context.Background(), bankX(userID, 15))
		}()
	}
	wg.Wait()

	wallet, err := svc.GetWallet(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, wallet.Balance.IsNegative())
	assert.True(t, wallet.Balance.Equal(dec(10)))

	txs, err := svc.ListTransactions(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, txs, 6)
}

func TestLedger_PublishesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventPublisher(ctrl)
	docs := newTestDocs()
	userID := seedUser(t, docs, 0)
	svc := NewLedgerService(docs, nil, events, 100, zerolog.Nop())

	events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev domain.LedgerEvent) error {
			assert.Equal(t, domain.EventTransactionCreated, ev.Type)
			require.NotNil(t, ev.Data)
			assert.Equal(t, domain.TransactionTypeEarning, ev.Data.Type)
			return nil
		})

	_, err := svc.WatchMovie(context.Background(), userID, "1")
	require.NoError(t, err)
}

func TestLedger_PublishFailureDoesNotFailCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventPublisher(ctrl)
	docs := newTestDocs()
	userID := seedUser(t, docs, 0)
	svc := NewLedgerService(docs, nil, events, 100, zerolog.Nop())

	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	res, err := svc.WatchMovie(context.Background(), userID, "1")
	require.NoError(t, err)
	assert.True(t, res.Wallet.Balance.Equal(dec(100)))
}

func TestLedger_FailedCallPublishesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockEventPublisher(ctrl)
	docs := newTestDocs()
	userID := seedUser(t, docs, 0)
	svc := NewLedgerService(docs, nil, events, 100, zerolog.Nop())

	// No Publish expectation.
	_, err := svc.Debit(context.Background(), bankX(userID, 1))
	assert.Error(t, err)
}

func TestLedger_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := mocks.NewMockDocumentTransactor(ctrl)
	svc := NewLedgerService(docs, nil, nil, 100, zerolog.Nop())

	docs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(apperror.ErrStoreFailure(errors.New("disk")))

	_, err := svc.WatchMovie(context.Background(), uuid.New(), "1")
	assert.True(t, apperror.HasCode(err, apperror.CodeStoreFailure))
}
