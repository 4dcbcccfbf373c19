package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is returned by Debit when the balance is too low.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrNonPositiveAmount is returned for zero or negative amounts.
var ErrNonPositiveAmount = errors.New("amount must be positive")

// WalletAccount is the balance state of one user.
type WalletAccount struct {
	Balance       decimal.Decimal `json:"balance"`
	TotalEarned   decimal.Decimal `json:"totalEarned"`
	MoviesWatched int             `json:"moviesWatched"`
}

// Credit adds amount to the balance.
func (w *WalletAccount) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Earn credits a movie reward and bumps the earning counters.
func (w *WalletAccount) Earn(amount decimal.Decimal) error {
	if err := w.Credit(amount); err != nil {
		return err
	}
	w.TotalEarned = w.TotalEarned.Add(amount)
	w.MoviesWatched++
	return nil
}

// Debit subtracts amount, refusing to go below zero.
func (w *WalletAccount) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(w.Balance) {
		return ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}
