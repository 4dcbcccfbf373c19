package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"movie-wallet/internal/core/domain"
)

// Store keeps the encoded document in process memory. Load and Save both
// go through JSON so callers never share state with the store.
type Store struct {
	mu   sync.RWMutex
	data []byte
}

// NewStore creates an empty memory store.
func NewStore() *Store {
	return &Store{}
}

// Load decodes the stored document, or returns an empty one.
func (s *Store) Load(_ context.Context) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.UnmarshalDocument(s.data)
}

// Save replaces the stored document.
func (s *Store) Save(_ context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Name returns the dependency name.
func (s *Store) Name() string {
	return "memory"
}
