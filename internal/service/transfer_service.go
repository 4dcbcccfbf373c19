package service

import (
	"context"
	"errors"
	"time"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const settleTimeout = 10 * time.Second

// errAlreadySettled aborts a settle update without saving.
var errAlreadySettled = errors.New("transfer already settled")

// TransferServiceImpl implements ports.TransferService. A bank transfer is
// debited at once and logged as processing; a one-shot job flips it to
// completed after the settle delay. There is no failure branch.
type TransferServiceImpl struct {
	docs      ports.DocumentTransactor
	scheduler ports.TaskScheduler
	events    ports.EventPublisher
	delay     time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// NewTransferService creates a new TransferServiceImpl. events may be nil.
func NewTransferService(
	docs ports.DocumentTransactor,
	scheduler ports.TaskScheduler,
	events ports.EventPublisher,
	settleDelay time.Duration,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		docs:      docs,
		scheduler: scheduler,
		events:    events,
		delay:     settleDelay,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// BankTransfer debits the wallet and schedules settlement.
func (s *TransferServiceImpl) BankTransfer(ctx context.Context, req ports.TransferRequest) (*ports.LedgerResult, error) {
	cp, err := normalizeCounterparty(req.Amount, req.Counterparty)
	if err != nil {
		return nil, err
	}

	txn := newCounterpartyTransaction(req.UserID, domain.TransactionTypeTransfer, req.Amount, cp, s.now())
	txn.Status = domain.TransactionStatusProcessing

	result, err := applyDebit(ctx, s.docs, txn)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", req.UserID.String()).
		Str("bank", cp.Bank).
		Str("amount", txn.Amount.String()).
		Dur("settle_in", s.delay).
		Msg("bank transfer processing")

	publish(ctx, s.events, s.log, domain.EventTransactionCreated, txn)
	s.scheduleSettlement(txn.ID)
	return result, nil
}

// Settle completes a processing transfer. Any other status is left as is.
func (s *TransferServiceImpl) Settle(ctx context.Context, txID uuid.UUID) (*domain.Transaction, error) {
	var settled domain.Transaction
	err := s.docs.Update(ctx, func(doc *domain.Document) error {
		txn := doc.FindTransaction(txID)
		if txn == nil {
			return apperror.ErrNotFound("transaction")
		}
		if !txn.Settle(s.now()) {
			settled = *txn
			return errAlreadySettled
		}
		settled = *txn
		return nil
	})
	if errors.Is(err, errAlreadySettled) {
		return &settled, nil
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tx_id", txID.String()).
		Str("user_id", settled.UserID.String()).
		Msg("bank transfer completed")

	publish(ctx, s.events, s.log, domain.EventTransferSettled, settled)
	return &settled, nil
}

// ResumePending reschedules every transfer still processing, e.g. after a
// restart. It returns how many were scheduled.
func (s *TransferServiceImpl) ResumePending(ctx context.Context) (int, error) {
	doc, err := s.docs.View(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, txn := range doc.TransactionsWithStatus(domain.TransactionStatusProcessing) {
		if txn.Type != domain.TransactionTypeTransfer {
			continue
		}
		s.scheduleSettlement(txn.ID)
		count++
	}

	if count > 0 {
		s.log.Info().Int("count", count).Msg("resumed processing transfers")
	}
	return count, nil
}

func (s *TransferServiceImpl) scheduleSettlement(txID uuid.UUID) {
	task := func() {
		ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
		defer cancel()
		if _, err := s.Settle(ctx, txID); err != nil {
			s.log.Error().Err(err).Str("tx_id", txID.String()).Msg("failed to settle bank transfer")
		}
	}

	if err := s.scheduler.After("settle-transfer-"+txID.String(), s.delay, task); err != nil {
		// The transfer stays processing and is picked up by ResumePending.
		s.log.Error().Err(err).Str("tx_id", txID.String()).Msg("failed to schedule settlement")
	}
}
