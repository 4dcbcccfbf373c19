package service

import (
	"context"
	"testing"
	"time"

	"movie-wallet/internal/adapter/storage"
	"movie-wallet/internal/adapter/storage/memory"
	"movie-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestDocs() *storage.Transactor {
	return storage.NewTransactor(memory.NewStore())
}

func seedUser(t *testing.T, docs *storage.Transactor, balance int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := docs.Update(context.Background(), func(doc *domain.Document) error {
		doc.Users = append(doc.Users, domain.User{
			ID:        id,
			Name:      "Test User",
			Email:     id.String() + "@example.com",
			Wallet:    domain.WalletAccount{Balance: decimal.NewFromInt(balance)},
			CreatedAt: time.Now().UTC(),
		})
		return nil
	})
	require.NoError(t, err)
	return id
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
