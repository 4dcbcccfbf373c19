package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movie-wallet/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DocumentStore keeps the whole document under a single key.
type DocumentStore struct {
	client *goredis.Client
	key    string
}

// NewDocumentStore creates a DocumentStore on key.
func NewDocumentStore(client *goredis.Client, key string) *DocumentStore {
	return &DocumentStore{client: client, key: key}
}

// Load reads the key. A missing key yields an empty document.
func (s *DocumentStore) Load(ctx context.Context) (*domain.Document, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}
	return domain.UnmarshalDocument(data)
}

// Save overwrites the key with no expiry.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}
