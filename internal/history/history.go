// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of converted boards so earlier READMEs
// can be listed and shown again.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/board-readme/pkg/types"
)

const (
	dbFile = "history.db"

	// timeLayout is fixed-width so stored timestamps sort as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// ErrNotFound is returned by Get when no entry has the requested ID.
var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded conversion.
type Entry struct {
	ID          int64     `json:"id" yaml:"id"`
	Board       string    `json:"board" yaml:"board"`
	Source      string    `json:"source" yaml:"source"`
	Output      string    `json:"output" yaml:"output"`
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
	Nodes       int       `json:"nodes" yaml:"nodes"`
	Errors      int       `json:"errors" yaml:"errors"`
	Bytes       int       `json:"bytes" yaml:"bytes"`
	Markdown    string    `json:"markdown,omitempty" yaml:"markdown,omitempty"`
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at cfg.Dir/history.db.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			board TEXT NOT NULL,
			source TEXT,
			output TEXT,
			converted_at TEXT NOT NULL,
			nodes INTEGER,
			errors INTEGER,
			bytes INTEGER,
			markdown TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_board ON conversions(board)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts e and returns its new ID. A zero ConvertedAt is set to the
// current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.ConvertedAt.IsZero() {
		e.ConvertedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (board, source, output, converted_at, nodes, errors, bytes, markdown)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Board, e.Source, e.Output, e.ConvertedAt.UTC().Format(timeLayout),
		e.Nodes, e.Errors, e.Bytes, e.Markdown,
	)
	if err != nil {
		return 0, fmt.Errorf("recording conversion: %w", err)
	}
	return res.LastInsertId()
}

// List returns up to limit entries, newest first, without their Markdown.
// A limit of zero or less uses the store's default.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, board, source, output, converted_at, nodes, errors, bytes
		 FROM conversions ORDER BY converted_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &e.Board, &e.Source, &e.Output, &at, &e.Nodes, &e.Errors, &e.Bytes); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if e.ConvertedAt, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("parsing converted_at %q: %w", at, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry with the given ID, Markdown included.
func (s *Store) Get(ctx context.Context, id int64) (*Entry, error) {
	var e Entry
	var at string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, board, source, output, converted_at, nodes, errors, bytes, markdown
		 FROM conversions WHERE id = ?`, id,
	).Scan(&e.ID, &e.Board, &e.Source, &e.Output, &at, &e.Nodes, &e.Errors, &e.Bytes, &e.Markdown)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading history entry %d: %w", id, err)
	}
	if e.ConvertedAt, err = time.Parse(timeLayout, at); err != nil {
		return nil, fmt.Errorf("parsing converted_at %q: %w", at, err)
	}
	return &e, nil
}
