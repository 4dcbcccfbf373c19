package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerService.
type LedgerServiceImpl struct {
	docs    ports.DocumentTransactor
	catalog ports.CatalogService
	events  ports.EventPublisher
	reward  decimal.Decimal
	log     zerolog.Logger
	now     func() time.Time
}

// NewLedgerService creates a new LedgerServiceImpl. events may be nil.
func NewLedgerService(
	docs ports.DocumentTransactor,
	catalog ports.CatalogService,
	events ports.EventPublisher,
	rewardAmount int64,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		docs:    docs,
		catalog: catalog,
		events:  events,
		reward:  decimal.NewFromInt(rewardAmount),
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Credit records a completed deposit.
func (s *LedgerServiceImpl) Credit(ctx context.Context, req ports.CreditRequest) (*ports.LedgerResult, error) {
	cp, err := normalizeCounterparty(req.Amount, req.Counterparty)
	if err != nil {
		return nil, err
	}

	now := s.now()
	txn := newCounterpartyTransaction(req.UserID, domain.TransactionTypeDeposit, req.Amount, cp, now)
	txn.Status = domain.TransactionStatusCompleted
	txn.ProcessedAt = &now

	var result *ports.LedgerResult
	err = s.docs.Update(ctx, func(doc *domain.Document) error {
		user := doc.FindUser(req.UserID)
		if user == nil {
			return apperror.ErrNotFound("user")
		}
		if err := user.Wallet.Credit(txn.Amount); err != nil {
			return apperror.ErrInvalidAmount()
		}
		doc.PrependTransaction(txn)
		result = &ports.LedgerResult{Transaction: txn, Wallet: user.Wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", req.UserID.String()).
		Str("amount", txn.Amount.String()).
		Msg("deposit recorded")

	publish(ctx, s.events, s.log, domain.EventTransactionCreated, txn)
	return result, nil
}

// Debit records a completed withdraw or transfer.
func (s *LedgerServiceImpl) Debit(ctx context.Context, req ports.DebitRequest) (*ports.LedgerResult, error) {
	if !req.Type.IsDebit() {
		return nil, apperror.Validation("transaction type must be withdraw or transfer")
	}
	cp, err := normalizeCounterparty(req.Amount, req.Counterparty)
	if err != nil {
		return nil, err
	}

	now := s.now()
	txn := newCounterpartyTransaction(req.UserID, req.Type, req.Amount, cp, now)
	txn.Status = domain.TransactionStatusCompleted
	txn.ProcessedAt = &now

	result, err := applyDebit(ctx, s.docs, txn)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", req.UserID.String()).
		Str("type", string(txn.Type)).
		Str("amount", txn.Amount.String()).
		Msg("debit recorded")

	publish(ctx, s.events, s.log, domain.EventTransactionCreated, txn)
	return result, nil
}

// WatchMovie credits the fixed reward. Any movie id earns the same amount,
// and watching the same movie again earns it again.
func (s *LedgerServiceImpl) WatchMovie(ctx context.Context, userID uuid.UUID, movieID string) (*ports.LedgerResult, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return nil, apperror.Validation("movie id is required")
	}

	details := "Reward for watching movie"
	if s.catalog != nil {
		if movie, ok := s.catalog.Find(movieID); ok {
			details = fmt.Sprintf("Reward for watching %s", movie.Title)
		}
	}

	now := s.now()
	bank := domain.RewardBank
	txn := domain.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          domain.TransactionTypeEarning,
		Bank:          &bank,
		AccountName:   domain.RewardAccountName,
		AccountNumber: domain.RewardAccountNumber,
		Amount:        s.reward,
		Status:        domain.TransactionStatusCompleted,
		Details:       details,
		MovieID:       movieID,
		Timestamp:     now,
		ProcessedAt:   &now,
	}

	var result *ports.LedgerResult
	err := s.docs.Update(ctx, func(doc *domain.Document) error {
		user := doc.FindUser(userID)
		if user == nil {
			return apperror.ErrNotFound("user")
		}
		if err := user.Wallet.Earn(txn.Amount); err != nil {
			return apperror.InternalError(fmt.Errorf("credit reward: %w", err))
		}
		doc.PrependTransaction(txn)
		result = &ports.LedgerResult{Transaction: txn, Wallet: user.Wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", userID.String()).
		Str("movie_id", movieID).
		Int("movies_watched", result.Wallet.MoviesWatched).
		Msg("movie reward credited")

	publish(ctx, s.events, s.log, domain.EventTransactionCreated, txn)
	return result, nil
}

// ListTransactions returns the user's log, newest first.
func (s *LedgerServiceImpl) ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	doc, err := s.docs.View(ctx)
	if err != nil {
		return nil, err
	}
	if doc.FindUser(userID) == nil {
		return nil, apperror.ErrNotFound("user")
	}
	return doc.UserTransactions(userID), nil
}

// GetWallet returns the user's current wallet.
func (s *LedgerServiceImpl) GetWallet(ctx context.Context, userID uuid.UUID) (*domain.WalletAccount, error) {
	doc, err := s.docs.View(ctx)
	if err != nil {
		return nil, err
	}
	user := doc.FindUser(userID)
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	wallet := user.Wallet
	return &wallet, nil
}

// GetTransaction returns one transaction by id.
func (s *LedgerServiceImpl) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	doc, err := s.docs.View(ctx)
	if err != nil {
		return nil, err
	}
	txn := doc.FindTransaction(id)
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	out := *txn
	return &out, nil
}

// normalizeCounterparty validates the amount and bank and fills defaults.
func normalizeCounterparty(amount decimal.Decimal, cp ports.Counterparty) (ports.Counterparty, error) {
	if !amount.IsPositive() {
		return cp, apperror.ErrInvalidAmount()
	}
	if !amount.Equal(amount.Round(2)) {
		return cp, apperror.ErrAmountPrecision()
	}
	cp.Bank = strings.ToUpper(strings.TrimSpace(cp.Bank))
	if cp.Bank == "" {
		return cp, apperror.ErrBankRequired()
	}
	cp.AccountName = strings.TrimSpace(cp.AccountName)
	cp.AccountNumber = strings.TrimSpace(cp.AccountNumber)
	cp.Details = strings.TrimSpace(cp.Details)
	if cp.Details == "" {
		cp.Details = domain.DefaultDetails
	}
	return cp, nil
}

func newCounterpartyTransaction(
	userID uuid.UUID,
	txType domain.TransactionType,
	amount decimal.Decimal,
	cp ports.Counterparty,
	now time.Time,
) domain.Transaction {
	bank := cp.Bank
	return domain.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          txType,
		Bank:          &bank,
		AccountName:   cp.AccountName,
		AccountNumber: cp.AccountNumber,
		Amount:        amount,
		Details:       cp.Details,
		Timestamp:     now,
	}
}

// applyDebit takes txn.Amount from the owner's wallet and logs txn in one
// document update. The balance is never allowed below zero.
func applyDebit(ctx context.Context, docs ports.DocumentTransactor, txn domain.Transaction) (*ports.LedgerResult, error) {
	var result *ports.LedgerResult
	err := docs.Update(ctx, func(doc *domain.Document) error {
		user := doc.FindUser(txn.UserID)
		if user == nil {
			return apperror.ErrNotFound("user")
		}
		if err := user.Wallet.Debit(txn.Amount); err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return apperror.ErrInsufficientFunds()
			}
			return apperror.ErrInvalidAmount()
		}
		doc.PrependTransaction(txn)
		result = &ports.LedgerResult{Transaction: txn, Wallet: user.Wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// publish sends a ledger event. Failures are logged only.
func publish(ctx context.Context, events ports.EventPublisher, log zerolog.Logger, eventType domain.LedgerEventType, txn domain.Transaction) {
	if events == nil {
		return
	}
	event := domain.LedgerEvent{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      &txn,
	}
	if err := events.Publish(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("tx_id", txn.ID.String()).
			Str("event", string(eventType)).
			Msg("failed to publish ledger event")
	}
}
