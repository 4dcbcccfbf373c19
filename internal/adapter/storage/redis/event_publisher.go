package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"movie-wallet/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// EventPublisher appends ledger events to a Redis stream.
type EventPublisher struct {
	client *goredis.Client
	stream string
}

// NewEventPublisher creates a publisher writing to stream.
func NewEventPublisher(client *goredis.Client, stream string) *EventPublisher {
	return &EventPublisher{client: client, stream: stream}
}

// Publish adds the event as one stream entry.
func (p *EventPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	args := &goredis.XAddArgs{
		Stream: p.stream,
		Values: []any{"type", string(event.Type), "event", payload},
	}
	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
