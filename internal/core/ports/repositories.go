package ports

import (
	"context"
	"time"

	"movie-wallet/internal/core/domain"
)

// DocumentStore persists the whole document. Load returns an empty document
// when nothing has been saved yet. Save overwrites everything.
type DocumentStore interface {
	Load(ctx context.Context) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}

// DocumentTransactor serializes read-modify-write cycles on the document.
// Update saves only when fn returns nil.
type DocumentTransactor interface {
	Update(ctx context.Context, fn func(doc *domain.Document) error) error
	View(ctx context.Context) (*domain.Document, error)
}

// EventPublisher publishes committed ledger events.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.LedgerEvent) error
}

// TaskScheduler runs background work.
type TaskScheduler interface {
	// After runs task once, delay from now.
	After(name string, delay time.Duration, task func()) error
	// Every runs task repeatedly at interval.
	Every(name string, interval time.Duration, task func()) error
}
