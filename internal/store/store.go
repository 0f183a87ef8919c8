// Package store handles SQLite persistence of the lookup journal.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/spellbee/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// atLayout is fixed width so that text order matches time order.
const atLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for journal data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS invocations (
			id INTEGER PRIMARY KEY,
			at TEXT NOT NULL,
			source TEXT NOT NULL,
			letters TEXT NOT NULL,
			used_count INTEGER NOT NULL,
			result TEXT NOT NULL,
			found INTEGER NOT NULL,
			err_category TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			corpus_digest TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_invocations_at ON invocations(at);`,
		`CREATE INDEX IF NOT EXISTS idx_invocations_source ON invocations(source);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordInvocation stores a completed lookup.
func (s *Store) RecordInvocation(ctx context.Context, inv model.Invocation) error {
	found := 0
	if inv.Found {
		found = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (at, source, letters, used_count, result, found, err_category, duration_ms, corpus_digest)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.At.UTC().Format(atLayout),
		inv.Source,
		inv.Letters,
		inv.UsedCount,
		inv.Result,
		found,
		inv.ErrCategory,
		inv.DurationMs,
		inv.CorpusDigest,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invocation: %w", err)
	}
	return nil
}

// ListInvocations returns journal entries oldest first, filtered by cfg.
// When cfg.Last is positive only the most recent entries are returned.
func (s *Store) ListInvocations(ctx context.Context, cfg model.HistoryConfig) ([]model.Invocation, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "at >= ?")
		args = append(args, cfg.Since.UTC().Format(atLayout))
	}
	limit := -1
	if cfg.Last > 0 {
		limit = cfg.Last
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, at, source, letters, used_count, result, found, err_category, duration_ms, corpus_digest
		FROM (
			SELECT * FROM invocations
			WHERE %s
			ORDER BY at DESC, id DESC
			LIMIT ?
		)
		ORDER BY at ASC, id ASC`, strings.Join(clauses, " AND "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Invocation
	for rows.Next() {
		var inv model.Invocation
		var at string
		var found int
		if err := rows.Scan(&inv.ID, &at, &inv.Source, &inv.Letters, &inv.UsedCount, &inv.Result, &found, &inv.ErrCategory, &inv.DurationMs, &inv.CorpusDigest); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, err
		}
		inv.At = parsed
		inv.Found = found == 1
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
