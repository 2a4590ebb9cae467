// Package loader fetches the graph data document from its configured source.
//
// A source is a local file (JSON or YAML by extension), an http(s) URL or a
// SQLite catalog written by the import command ("sqlite:path/to/db").
package loader

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hanzimap/internal/domain"
)

// SQLitePrefix marks a data source as a SQLite catalog
const SQLitePrefix = "sqlite:"

// Source produces a raw graph document
type Source interface {
	Load(ctx context.Context) (*domain.Document, error)
	String() string
}

// Open resolves a data source string to a Source
func Open(source string) (Source, error) {
	switch {
	case source == "":
		return nil, fmt.Errorf("data source required")
	case strings.HasPrefix(source, SQLitePrefix):
		return NewSQLiteSource(strings.TrimPrefix(source, SQLitePrefix)), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewHTTPSource(source), nil
	default:
		return NewFileSource(source), nil
	}
}

// Load reads src and normalizes the result. Dropped or renamed elements are
// logged; they never fail the load.
func Load(ctx context.Context, src Source) (*domain.Document, error) {
	doc, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src, err)
	}

	for _, warning := range doc.Normalize() {
		log.Printf("Graph data %s: %s", src, warning)
	}

	return doc, nil
}

// IsFile reports whether source names a local file that can be watched
func IsFile(source string) bool {
	src, err := Open(source)
	if err != nil {
		return false
	}
	_, ok := src.(*FileSource)
	return ok
}
