package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lanrat/pqsort/dataset"
)

const schemaRuns = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	table_name TEXT NOT NULL,
	set_size INTEGER NOT NULL,
	workers INTEGER NOT NULL,
	max_depth INTEGER NOT NULL,
	sequential_ns INTEGER NOT NULL,
	parallel_ns INTEGER NOT NULL,
	created_at TEXT NOT NULL
)`

// SQLite stores datasets in an SQLite database
type SQLite struct {
	conn *sql.DB
	path string

	mu      sync.Mutex
	created map[string]bool // dataset tables known to exist
}

// OpenSQLite opens an SQLite database at the given path.
// It creates the parent directories if they don't exist.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec(schemaRuns); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	return &SQLite{
		conn:    conn,
		path:    path,
		created: make(map[string]bool),
	}, nil
}

// Path returns the path to the database file.
func (s *SQLite) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// createTable creates the dataset table for tbl if needed.
// Table names come from dataset.Tables, never from user input.
func (s *SQLite) createTable(ctx context.Context, tbl dataset.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.created[tbl.Name()] {
		return nil
	}

	dataType := "REAL"
	if tbl.Type == dataset.Int {
		dataType = "INTEGER"
	}
	_, err := s.conn.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			value %s NOT NULL,
			set_size INTEGER NOT NULL CHECK( set_size IN (1000, 10000, 100000) )
		)`, tbl.Name(), dataType))
	if err != nil {
		return fmt.Errorf("create table %s: %w", tbl.Name(), err)
	}
	s.created[tbl.Name()] = true
	return nil
}

// Put appends values to the dataset for tbl and setSize in one transaction
func (s *SQLite) Put(ctx context.Context, tbl dataset.Table, setSize int, values []float64) error {
	if err := checkSetSize(setSize); err != nil {
		return err
	}
	if err := s.createTable(ctx, tbl); err != nil {
		return err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (value, set_size) VALUES (?, ?)", tbl.Name()))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range values {
		var arg any = v
		if tbl.Type == dataset.Int {
			arg = int64(v)
		}
		if _, err := stmt.ExecContext(ctx, arg, setSize); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert into %s: %w", tbl.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", tbl.Name(), err)
	}
	return nil
}

// Get returns the values of the dataset in id order
func (s *SQLite) Get(ctx context.Context, tbl dataset.Table, setSize int) ([]float64, error) {
	if err := s.createTable(ctx, tbl); err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx, fmt.Sprintf("SELECT value FROM %s WHERE set_size = ? ORDER BY id", tbl.Name()), setSize)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", tbl.Name(), err)
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tbl.Name(), err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", tbl.Name(), err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s size %d", ErrNotFound, tbl.Name(), setSize)
	}
	return values, nil
}

// RecordRun saves the result of one benchmark run
func (s *SQLite) RecordRun(ctx context.Context, run Run) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO runs (id, table_name, set_size, workers, max_depth, sequential_ns, parallel_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Table, run.SetSize, run.Workers, run.MaxDepth,
		int64(run.Sequential), int64(run.Parallel), formatTime(run.CreatedAt))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Runs returns every recorded run, oldest first
func (s *SQLite) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, table_name, set_size, workers, max_depth, sequential_ns, parallel_ns, created_at
		FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			id        string
			seq, par  int64
			createdAt string
		)
		if err := rows.Scan(&id, &run.Table, &run.SetSize, &run.Workers, &run.MaxDepth, &seq, &par, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		run.Sequential = time.Duration(seq)
		run.Parallel = time.Duration(par)
		if run.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse run time %q: %w", createdAt, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// timeFormat has fixed width so stored times sort lexically
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime formats a time.Time for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// parseTime parses a time string from SQLite storage.
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeFormat, s)
}
