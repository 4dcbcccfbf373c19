package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of wallet movement.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeEarning  TransactionType = "earning"
)

// IsCredit returns true for types that increase the balance.
func (t TransactionType) IsCredit() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeEarning
}

// IsDebit returns true for types that decrease the balance.
func (t TransactionType) IsDebit() bool {
	return t == TransactionTypeWithdraw || t == TransactionTypeTransfer
}

// Valid reports whether t is a known type.
func (t TransactionType) Valid() bool {
	return t.IsCredit() || t.IsDebit()
}

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"
)

// Values recorded on movie reward entries.
const (
	RewardBank          = "Movie Reward"
	RewardAccountName   = "System"
	RewardAccountNumber = "N/A"
	DefaultDetails      = "No additional details"
)

// Transaction is one ledger entry. Only Status and ProcessedAt change after
// creation, through Settle.
type Transaction struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"userId"`
	Type          TransactionType   `json:"type"`
	Bank          *string           `json:"bank"`
	AccountName   string            `json:"accountName"`
	AccountNumber string            `json:"accountNumber"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        TransactionStatus `json:"status"`
	Details       string            `json:"details"`
	MovieID       string            `json:"movieId,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	ProcessedAt   *time.Time        `json:"processedAt,omitempty"`
}

// CountsTowardBalance returns true if the entry is reflected in the wallet.
func (t *Transaction) CountsTowardBalance() bool {
	return t.Status == TransactionStatusCompleted ||
		t.Status == TransactionStatusProcessing
}

// SignedAmount returns the amount with the sign it applies to the balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Settle moves a processing transaction to completed. It reports false and
// leaves the entry untouched for any other status.
func (t *Transaction) Settle(at time.Time) bool {
	if t.Status != TransactionStatusProcessing {
		return false
	}
	t.Status = TransactionStatusCompleted
	t.ProcessedAt = &at
	return true
}

// BankName returns the counterparty bank or an empty string.
func (t *Transaction) BankName() string {
	if t.Bank == nil {
		return ""
	}
	return *t.Bank
}
