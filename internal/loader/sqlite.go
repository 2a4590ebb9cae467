package loader

import (
	"context"

	"hanzimap/internal/domain"
	"hanzimap/internal/repository/sqlite"
)

// SQLiteSource reads the document stored in a SQLite catalog
type SQLiteSource struct {
	path string
}

// NewSQLiteSource creates a source for a catalog database file
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Load opens the catalog, reads the document and closes it again
func (s *SQLiteSource) Load(ctx context.Context) (*domain.Document, error) {
	repo, err := sqlite.New(s.path)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	return repo.LoadDocument(ctx)
}

func (s *SQLiteSource) String() string {
	return SQLitePrefix + s.path
}
