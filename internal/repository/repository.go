package repository

import (
	"context"
	"time"

	"hanzimap/internal/domain"
)

// Stats summarizes what a store holds
type Stats struct {
	Nodes      int        `json:"nodes"`
	Edges      int        `json:"edges"`
	LastImport *time.Time `json:"last_import,omitempty"`
}

// Repository defines the interface for graph document storage
type Repository interface {
	// SaveDocument replaces the stored document
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// LoadDocument returns the stored document in its original order
	LoadDocument(ctx context.Context) (*domain.Document, error)

	// Stats reports element counts and the last import time
	Stats(ctx context.Context) (*Stats, error)

	// Close releases resources
	Close() error
}
