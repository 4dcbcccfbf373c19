package domain

import "time"

// LedgerEventType names a committed ledger change.
type LedgerEventType string

const (
	EventTransactionCreated LedgerEventType = "transaction.created"
	EventTransferSettled    LedgerEventType = "transfer.settled"
)

// LedgerEvent is published after a ledger change is saved.
type LedgerEvent struct {
	Type      LedgerEventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      *Transaction    `json:"data"`
}
