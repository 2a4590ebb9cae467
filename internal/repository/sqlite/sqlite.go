package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hanzimap/internal/domain"
	"hanzimap/internal/repository"

	_ "modernc.org/sqlite"
)

var _ repository.Repository = (*Repository)(nil)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	PRAGMA journal_mode = WAL;
	PRAGMA busy_timeout = 5000;

	CREATE TABLE IF NOT EXISTS nodes (
		ordinal INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		meaning TEXT,
		learned INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS edges (
		ordinal INTEGER PRIMARY KEY,
		id TEXT,
		source_id TEXT NOT NULL,
		target_id TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id);
	CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveDocument replaces the stored document in a single transaction
func (r *Repository) SaveDocument(ctx context.Context, doc *domain.Document) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM edges`); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO nodes (ordinal, id, meaning, learned) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare node statement: %w", err)
	}
	defer nodeStmt.Close()

	for i, n := range doc.Nodes {
		if _, err := nodeStmt.ExecContext(ctx, i, n.ID, stringToNull(n.Meaning), boolToInt(n.Learned)); err != nil {
			return fmt.Errorf("failed to insert node %s: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO edges (ordinal, id, source_id, target_id) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge statement: %w", err)
	}
	defer edgeStmt.Close()

	for i, e := range doc.Edges {
		if _, err := edgeStmt.ExecContext(ctx, i, stringToNull(e.ID), e.Source, e.Target); err != nil {
			return fmt.Errorf("failed to insert edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES ('last_import', ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to store import timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LoadDocument loads the stored document in import order
func (r *Repository) LoadDocument(ctx context.Context) (*domain.Document, error) {
	doc := domain.NewDocument()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, meaning, learned FROM nodes ORDER BY ordinal
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id      string
			meaning sql.NullString
			learned int
		)
		if err := rows.Scan(&id, &meaning, &learned); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		doc.AddNode(domain.Node{
			ID:      id,
			Meaning: nullToString(meaning),
			Learned: learned != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nodes: %w", err)
	}
	// Release the only connection before the next query
	rows.Close()

	edgeRows, err := r.db.QueryContext(ctx, `
		SELECT id, source_id, target_id FROM edges ORDER BY ordinal
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var (
			id             sql.NullString
			source, target string
		)
		if err := edgeRows.Scan(&id, &source, &target); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		doc.AddEdge(domain.Edge{
			ID:     nullToString(id),
			Source: source,
			Target: target,
		})
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating edges: %w", err)
	}

	return doc, nil
}

// Stats reports element counts and the last import time
func (r *Repository) Stats(ctx context.Context) (*repository.Stats, error) {
	stats := &repository.Stats{}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes`).Scan(&stats.Nodes); err != nil {
		return nil, fmt.Errorf("failed to count nodes: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM edges`).Scan(&stats.Edges); err != nil {
		return nil, fmt.Errorf("failed to count edges: %w", err)
	}

	var lastImport sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = 'last_import'`).Scan(&lastImport)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to read import timestamp: %w", err)
	}
	stats.LastImport = parseTimePtr(lastImport)

	return stats, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
