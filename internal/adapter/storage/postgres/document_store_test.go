package postgres

import (
	"context"
	"errors"
	"testing"

	"movie-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_LoadMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewDocumentStore(mock, "default")

	mock.ExpectQuery("SELECT body, version FROM wallet_documents").
		WithArgs("default").
		WillReturnError(pgx.ErrNoRows)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Users)
	assert.NotNil(t, doc.Transactions)
	assert.Zero(t, doc.Revision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_LoadExistingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewDocumentStore(mock, "default")
	userID := uuid.New()
	body := []byte(`{"users":[{"id":"` + userID.String() + `","name":"Ada","email":"ada@example.com",` +
		`"wallet":{"balance":"60","totalEarned":"100","moviesWatched":1},"createdAt":"2026-01-01T00:00:00Z"}],` +
		`"transactions":[],"deviceTracking":[],"adminCredentials":{"username":"admin","password":"admin123"}}`)

	mock.ExpectQuery("SELECT body, version FROM wallet_documents").
		WithArgs("default").
		WillReturnRows(pgxmock.NewRows([]string{"body", "version"}).AddRow(body, int64(7)))

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Users, 1)
	assert.Equal(t, userID, doc.Users[0].ID)
	assert.True(t, doc.Users[0].Wallet.Balance.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "admin", doc.AdminCredentials.Username)
	assert.Equal(t, int64(7), doc.Revision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_LoadQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewDocumentStore(mock, "default")

	mock.ExpectQuery("SELECT body, version FROM wallet_documents").
		WithArgs("default").
		WillReturnError(errors.New("connection reset"))

	_, err = store.Load(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestDocumentStore_SaveInsertsFirstRevision(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewDocumentStore(mock, "default")
	doc := domain.NewDocument()

	mock.ExpectExec("INSERT INTO wallet_documents").
		WithArgs("default", `{"users":[],"transactions":[],"deviceTracking":[],"adminCredentials":{"username":"","password":""}}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Save(context.Background(), doc))
	assert.Equal(t, int64(1), doc.Revision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_SaveUpdatesLoadedRevision(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewDocumentStore(mock, "default")
	doc := domain.NewDocument()
	doc.Revision = 3

	mock.ExpectExec("UPDATE wallet_documents").
		WithArgs("default", pgxmock.AnyArg(), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, store.Save(context.Background(), doc))
	assert.Equal(t, int64(4), doc.Revision)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStore_SaveRejectsStaleRevision(t *testing.T) {
	tests := []struct {
		name     string
		revision int64
		expect   func(mock pgxmock.PgxPoolIface)
	}{
		{"row changed since load", 3, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectExec("UPDATE wallet_documents").
				WithArgs("default", pgxmock.AnyArg(), int64(3)).
				WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		}},
		{"row created since load", 0, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectExec("INSERT INTO wallet_documents").
				WithArgs("default", pgxmock.AnyArg()).
				WillReturnResult(pgxmock.NewResult("INSERT", 0))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			store := NewDocumentStore(mock, "default")
			doc := domain.NewDocument()
			doc.Revision = tt.revision
			tt.expect(mock)

			err = store.Save(context.Background(), doc)
			assert.ErrorIs(t, err, ErrStaleDocument)
			assert.Equal(t, tt.revision, doc.Revision)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentStore_SaveError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewDocumentStore(mock, "default")

	mock.ExpectExec("INSERT INTO wallet_documents").
		WithArgs("default", pgxmock.AnyArg()).
		WillReturnError(errors.New("disk full"))

	err = store.Save(context.Background(), domain.NewDocument())
	assert.ErrorContains(t, err, "save document")
}

func TestDocumentStore_EnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewDocumentStore(mock, "default")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS wallet_documents").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	h := NewHealthCheck(mock)
	mock.ExpectPing()

	assert.NoError(t, h.Ping(context.Background()))
	assert.Equal(t, "postgresql", h.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}
