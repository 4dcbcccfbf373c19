package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// DocumentHealthCheck implements ports.HealthChecker for the Redis document
// backend. Besides answering PING, the document key must be a plain string
// value or not exist yet; any other type would make every Load fail.
type DocumentHealthCheck struct {
	client *goredis.Client
	key    string
}

// NewDocumentHealthCheck checks client and the document stored at key.
func NewDocumentHealthCheck(client *goredis.Client, key string) *DocumentHealthCheck {
	return &DocumentHealthCheck{client: client, key: key}
}

func (h *DocumentHealthCheck) Ping(ctx context.Context) error {
	if err := h.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	kind, err := h.client.Type(ctx, h.key).Result()
	if err != nil {
		return fmt.Errorf("type of %s: %w", h.key, err)
	}
	if kind != "string" && kind != "none" {
		return fmt.Errorf("key %s holds a %s, not a document", h.key, kind)
	}
	return nil
}

func (h *DocumentHealthCheck) Name() string {
	return "redis"
}
