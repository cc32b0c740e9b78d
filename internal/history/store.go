// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records finished conversions in a SQLite database and
// exports them as YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

const (
	dbFile = "history.db"

	// timeFormat has fixed width so stored timestamps sort as text.
	timeFormat = "2006-01-02T15:04:05.000000000Z07:00"
)

// Entry is one recorded conversion.
type Entry struct {
	ID         string        `json:"id" yaml:"id"`
	Input      string        `json:"input" yaml:"input"`
	Output     string        `json:"output" yaml:"output"`
	Method     types.Method  `json:"method" yaml:"method"`
	Backend    types.Method  `json:"backend,omitempty" yaml:"backend,omitempty"`
	Success    bool          `json:"success" yaml:"success"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
	Pages      int           `json:"pages" yaml:"pages"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	RecordedAt time.Time     `json:"recorded_at" yaml:"recorded_at"`
}

// Query filters List results. Zero values match everything.
type Query struct {
	Backend    types.Method
	FailedOnly bool
	MaxResults int
}

// Store manages the history database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	now        func() time.Time
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("history directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(cfg.Dir, dbFile)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults, now: time.Now}
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

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			method TEXT NOT NULL,
			backend TEXT,
			success INTEGER NOT NULL,
			error TEXT,
			pages INTEGER,
			duration_ns INTEGER,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_recorded_at ON conversions(recorded_at)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_backend ON conversions(backend)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one finished conversion.
func (s *Store) Record(ctx context.Context, req types.ConversionRequest, res types.ConversionResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, input, output, method, backend, success, error, pages, duration_ns, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), req.InputPath, req.OutputPath, string(req.Method), string(res.Backend),
		res.Success, res.Error, res.Pages, int64(res.Duration),
		s.now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// List returns matching entries, newest first.
func (s *Store) List(ctx context.Context, q Query) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if q.Backend != "" {
		where = append(where, "backend = ?")
		args = append(args, string(q.Backend))
	}
	if q.FailedOnly {
		where = append(where, "success = 0")
	}

	query := `SELECT id, input, output, method, backend, success, error, pages, duration_ns, recorded_at FROM conversions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY recorded_at DESC, rowid DESC LIMIT ?"

	limit := q.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			method     string
			backend    sql.NullString
			errMsg     sql.NullString
			pages      sql.NullInt64
			durationNS sql.NullInt64
			recordedAt string
		)
		if err := rows.Scan(&e.ID, &e.Input, &e.Output, &method, &backend, &e.Success,
			&errMsg, &pages, &durationNS, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Method = types.Method(method)
		e.Backend = types.Method(backend.String)
		e.Error = errMsg.String
		e.Pages = int(pages.Int64)
		e.Duration = time.Duration(durationNS.Int64)
		if t, err := time.Parse(timeFormat, recordedAt); err == nil {
			e.RecordedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summary counts recorded conversions per outcome and backend.
type Summary struct {
	Total     int                  `json:"total" yaml:"total"`
	Succeeded int                  `json:"succeeded" yaml:"succeeded"`
	Failed    int                  `json:"failed" yaml:"failed"`
	ByBackend map[types.Method]int `json:"by_backend" yaml:"by_backend"`
}

// Summarize aggregates the whole history.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	sum := Summary{ByBackend: map[types.Method]int{}}
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(backend, ''), success, count(*) FROM conversions GROUP BY backend, success`)
	if err != nil {
		return sum, fmt.Errorf("summarizing history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			backend string
			success bool
			n       int
		)
		if err := rows.Scan(&backend, &success, &n); err != nil {
			return sum, fmt.Errorf("scanning summary row: %w", err)
		}
		sum.Total += n
		if success {
			sum.Succeeded += n
		} else {
			sum.Failed += n
		}
		if backend != "" {
			sum.ByBackend[types.Method(backend)] += n
		}
	}
	return sum, rows.Err()
}
