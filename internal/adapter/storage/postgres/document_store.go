package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movie-wallet/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS wallet_documents (
	id         TEXT PRIMARY KEY,
	body       JSONB NOT NULL,
	version    BIGINT NOT NULL DEFAULT 1,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// DocumentStore keeps the whole document in one JSONB row.
type DocumentStore struct {
	pool Pool
	id   string
}

// NewDocumentStore creates a DocumentStore for the row with the given id.
func NewDocumentStore(pool Pool, id string) *DocumentStore {
	return &DocumentStore{pool: pool, id: id}
}

// EnsureSchema creates the documents table if needed.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create wallet_documents: %w", err)
	}
	return nil
}

// ErrStaleDocument is returned by Save when the row changed after the
// document was loaded.
var ErrStaleDocument = errors.New("document changed since it was loaded")

// Load reads the row. A missing row yields an empty document with
// Revision 0.
func (s *DocumentStore) Load(ctx context.Context) (*domain.Document, error) {
	query := `SELECT body, version FROM wallet_documents WHERE id = $1`

	var (
		body    []byte
		version int64
	)
	err := s.pool.QueryRow(ctx, query, s.id).Scan(&body, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewDocument(), nil
		}
		return nil, fmt.Errorf("select document: %w", err)
	}

	doc, err := domain.UnmarshalDocument(body)
	if err != nil {
		return nil, err
	}
	doc.Revision = version
	return doc, nil
}

// Save writes doc only if the row is still at doc.Revision, then advances
// doc.Revision. A writer in another process that saved first makes this
// return ErrStaleDocument.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	var tag pgconn.CommandTag
	if doc.Revision == 0 {
		query := `INSERT INTO wallet_documents (id, body, version, updated_at)
			VALUES ($1, $2::jsonb, 1, now())
			ON CONFLICT (id) DO NOTHING`
		tag, err = s.pool.Exec(ctx, query, s.id, string(body))
	} else {
		query := `UPDATE wallet_documents
			SET body = $2::jsonb, version = version + 1, updated_at = now()
			WHERE id = $1 AND version = $3`
		tag, err = s.pool.Exec(ctx, query, s.id, string(body), doc.Revision)
	}
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStaleDocument
	}

	doc.Revision++
	return nil
}
