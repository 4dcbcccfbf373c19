package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Document is the whole persisted state.
type Document struct {
	Users            []User              `json:"users"`
	Transactions     []Transaction       `json:"transactions"`
	DeviceTracking   []DeviceFingerprint `json:"deviceTracking"`
	AdminCredentials AdminCredentials    `json:"adminCredentials"`

	// Revision is the stored version this copy was loaded from. Only
	// stores that compare versions on save set it; 0 means never stored.
	Revision int64 `json:"-"`
}

// NewDocument returns an empty document with non-nil lists.
func NewDocument() *Document {
	doc := &Document{}
	doc.normalize()
	return doc
}

// UnmarshalDocument decodes data. Empty input yields an empty document.
func UnmarshalDocument(data []byte) (*Document, error) {
	doc := NewDocument()
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.normalize()
	return doc, nil
}

func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.DeviceTracking == nil {
		d.DeviceTracking = []DeviceFingerprint{}
	}
}

// FindUser returns a pointer into Users, or nil.
func (d *Document) FindUser(id uuid.UUID) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// FindUserByEmail returns a pointer into Users, or nil.
func (d *Document) FindUserByEmail(email string) *User {
	for i := range d.Users {
		if d.Users[i].HasEmail(email) {
			return &d.Users[i]
		}
	}
	return nil
}

// FindTransaction returns a pointer into Transactions, or nil.
func (d *Document) FindTransaction(id uuid.UUID) *Transaction {
	for i := range d.Transactions {
		if d.Transactions[i].ID == id {
			return &d.Transactions[i]
		}
	}
	return nil
}

// PrependTransaction adds tx at the head of the log (newest first).
func (d *Document) PrependTransaction(tx Transaction) {
	d.Transactions = append([]Transaction{tx}, d.Transactions...)
}

// UserTransactions returns the user's entries, newest first.
func (d *Document) UserTransactions(userID uuid.UUID) []Transaction {
	out := make([]Transaction, 0)
	for _, tx := range d.Transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out
}

// TransactionsWithStatus returns every entry in the given status.
func (d *Document) TransactionsWithStatus(status TransactionStatus) []Transaction {
	out := make([]Transaction, 0)
	for _, tx := range d.Transactions {
		if tx.Status == status {
			out = append(out, tx)
		}
	}
	return out
}
