package service

import (
	"context"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportingServiceImpl implements ports.ReportingService.
type ReportingServiceImpl struct {
	docs    ports.DocumentTransactor
	catalog ports.CatalogService
}

// NewReportingService creates a new reporting service.
func NewReportingService(docs ports.DocumentTransactor, catalog ports.CatalogService) *ReportingServiceImpl {
	return &ReportingServiceImpl{docs: docs, catalog: catalog}
}

// GetDashboard returns the wallet page for one user.
func (s *ReportingServiceImpl) GetDashboard(ctx context.Context, userID uuid.UUID) (*ports.Dashboard, error) {
	doc, err := s.docs.View(ctx)
	if err != nil {
		return nil, err
	}

	user := doc.FindUser(userID)
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}

	txs := doc.UserTransactions(userID)
	return &ports.Dashboard{
		User:         *user,
		Transactions: txs,
		Totals:       Totals(txs),
		Movies:       s.catalog.List(),
	}, nil
}

// Totals sums the entries reflected in the balance, per type.
func Totals(txs []domain.Transaction) ports.LedgerTotals {
	totals := ports.LedgerTotals{
		Deposits:    decimal.Zero,
		Withdrawals: decimal.Zero,
		Transfers:   decimal.Zero,
		Earnings:    decimal.Zero,
		Net:         decimal.Zero,
	}
	for _, tx := range txs {
		if !tx.CountsTowardBalance() {
			continue
		}
		totals.Transactions++
		totals.Net = totals.Net.Add(tx.SignedAmount())
		switch tx.Type {
		case domain.TransactionTypeDeposit:
			totals.Deposits = totals.Deposits.Add(tx.Amount)
		case domain.TransactionTypeWithdraw:
			totals.Withdrawals = totals.Withdrawals.Add(tx.Amount)
		case domain.TransactionTypeTransfer:
			totals.Transfers = totals.Transfers.Add(tx.Amount)
		case domain.TransactionTypeEarning:
			totals.Earnings = totals.Earnings.Add(tx.Amount)
		}
	}
	return totals
}
