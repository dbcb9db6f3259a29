// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of extraction runs and their
// misses, so an operator can see what a past run wrote and what it could
// not resolve.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/overlay-extract/internal/output"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating its parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created TEXT NOT NULL,
			document TEXT,
			spec TEXT,
			match_mode TEXT,
			entries INTEGER,
			output_dir TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			items INTEGER,
			misses INTEGER,
			PRIMARY KEY (run_id, category)
		)`,
		`CREATE TABLE IF NOT EXISTS misses (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			interface TEXT,
			attribute TEXT,
			name TEXT,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_misses_run_id ON misses(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run's manifest and diagnostics in one transaction.
func (s *Store) Record(ctx context.Context, m output.Manifest, diag types.Diagnostics, outputDir string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created, document, spec, match_mode, entries, output_dir)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.Created.UTC().Format(time.RFC3339Nano), m.Document, m.Spec,
		string(m.MatchMode), m.Entries, outputDir,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, a := range m.Artifacts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO artifacts (run_id, category, items, misses) VALUES (?, ?, ?, ?)`,
			m.RunID, string(a.Category), a.Items, a.Misses,
		)
		if err != nil {
			return fmt.Errorf("inserting artifact %s: %w", a.Category, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO misses (run_id, category, interface, attribute, name, reason)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range types.Categories {
		for _, miss := range diag[c] {
			_, err := stmt.ExecContext(ctx, m.RunID, string(c), miss.Interface, miss.Attribute, miss.Name, miss.Reason)
			if err != nil {
				return fmt.Errorf("inserting miss: %w", err)
			}
		}
	}

	return tx.Commit()
}

// Run summarizes one recorded run.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	Created   time.Time `json:"created" yaml:"created"`
	Document  string    `json:"document" yaml:"document"`
	Spec      string    `json:"spec" yaml:"spec"`
	MatchMode string    `json:"match_mode" yaml:"match_mode"`
	Entries   int       `json:"entries" yaml:"entries"`
	OutputDir string    `json:"output_dir" yaml:"output_dir"`
	Items     int       `json:"items" yaml:"items"`
	Misses    int       `json:"misses" yaml:"misses"`
}

// Runs returns up to limit runs, newest first. A limit of 0 or less means
// 20.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.created, r.document, r.spec, r.match_mode, r.entries, r.output_dir,
		        COALESCE(SUM(a.items), 0), COALESCE(SUM(a.misses), 0)
		 FROM runs r LEFT JOIN artifacts a ON a.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.created DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Document, &r.Spec, &r.MatchMode, &r.Entries, &r.OutputDir, &r.Items, &r.Misses); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.Created = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Misses returns the recorded misses of a run in insertion order.
func (s *Store) Misses(ctx context.Context, runID string) ([]types.Miss, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, interface, attribute, name, reason FROM misses
		 WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying misses: %w", err)
	}
	defer rows.Close()

	var out []types.Miss
	for rows.Next() {
		var m types.Miss
		var category string
		if err := rows.Scan(&category, &m.Interface, &m.Attribute, &m.Name, &m.Reason); err != nil {
			return nil, fmt.Errorf("scanning miss: %w", err)
		}
		m.Category = types.Category(category)
		out = append(out, m)
	}
	return out, rows.Err()
}
