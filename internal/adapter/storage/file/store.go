package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"movie-wallet/internal/core/domain"

	"github.com/spf13/afero"
)

// Store keeps the document as one JSON file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a file store on fsys. Production passes afero.NewOsFs().
func NewStore(fsys afero.Fs, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// Load reads the file, or returns an empty document if it does not exist.
func (s *Store) Load(_ context.Context) (*domain.Document, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewDocument(), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return domain.UnmarshalDocument(data)
}

// Save writes to a temp file and renames it over the document, so readers
// never observe a half-written file.
func (s *Store) Save(_ context.Context, doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Ping checks that the data directory can be created.
func (s *Store) Ping(_ context.Context) error {
	return s.fs.MkdirAll(filepath.Dir(s.path), 0o755)
}

// Name returns the dependency name.
func (s *Store) Name() string {
	return "file"
}
