package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"movie-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublisher_Publish(t *testing.T) {
	mr, client := setupMiniredis(t)
	pub := NewEventPublisher(client, "ledger.events")

	tx := &domain.Transaction{
		ID:     uuid.New(),
		Type:   domain.TransactionTypeEarning,
		Amount: decimal.NewFromInt(100),
		Status: domain.TransactionStatusCompleted,
	}
	event := domain.LedgerEvent{
		Type:      domain.EventTransactionCreated,
		Timestamp: time.Now().UTC(),
		Data:      tx,
	}

	require.NoError(t, pub.Publish(context.Background(), event))

	entries, err := mr.Stream("ledger.events")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	values := entries[0].Values
	require.Len(t, values, 4)
	assert.Equal(t, "type", values[0])
	assert.Equal(t, string(domain.EventTransactionCreated), values[1])

	var decoded domain.LedgerEvent
	require.NoError(t, json.Unmarshal([]byte(values[3]), &decoded))
	assert.Equal(t, tx.ID, decoded.Data.ID)
	assert.Equal(t, domain.EventTransactionCreated, decoded.Type)
}

func TestEventPublisher_Unreachable(t *testing.T) {
	mr, client := setupMiniredis(t)
	pub := NewEventPublisher(client, "ledger.events")
	mr.Close()

	err := pub.Publish(context.Background(), domain.LedgerEvent{Type: domain.EventTransferSettled})
	assert.ErrorContains(t, err, "publish event")
}
