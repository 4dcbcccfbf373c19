package storage

import (
	"context"
	"fmt"
	"sync"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/apperror"
)

// Transactor implements ports.DocumentTransactor with a single writer.
// Every Update holds the lock across load, mutate and save, so balance
// checks always see the latest committed document.
type Transactor struct {
	mu    sync.Mutex
	store ports.DocumentStore
}

// NewTransactor wraps store.
func NewTransactor(store ports.DocumentStore) *Transactor {
	return &Transactor{store: store}
}

// Update loads the document, applies fn and saves the result.
// Nothing is saved when fn fails.
func (t *Transactor) Update(ctx context.Context, fn func(doc *domain.Document) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := t.store.Load(ctx)
	if err != nil {
		return apperror.ErrStoreFailure(fmt.Errorf("load document: %w", err))
	}

	if err := fn(doc); err != nil {
		return err
	}

	if err := t.store.Save(ctx, doc); err != nil {
		return apperror.ErrStoreFailure(fmt.Errorf("save document: %w", err))
	}
	return nil
}

// View returns a snapshot of the current document.
func (t *Transactor) View(ctx context.Context) (*domain.Document, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := t.store.Load(ctx)
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("load document: %w", err))
	}
	return doc, nil
}
