// Package storage persists map progress in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLite stores completed connection ids. Writes are idempotent, so
// replaying a completion is harmless.
type SQLite struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path and applies
// the schema.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS completed_connections (
		id           INTEGER PRIMARY KEY,
		completed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Completed returns the stored connection ids in ascending order.
func (s *SQLite) Completed(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM completed_connections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query completed: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan completed: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// MarkCompleted records a connection id; duplicates are suppressed.
func (s *SQLite) MarkCompleted(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO completed_connections (id) VALUES (?)`, id)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// Reset wipes all progress.
func (s *SQLite) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM completed_connections`)
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }
