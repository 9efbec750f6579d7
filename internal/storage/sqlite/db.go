// ABOUTME: SQLite database connection and lifecycle management
// ABOUTME: Uses modernc.org/sqlite for pure-Go SQLite support
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("store is closed")

// timeLayout is a fixed-width RFC 3339 form (microsecond precision,
// always UTC) so lexicographic comparison of stored strings is
// chronological.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// encodeTime renders a timestamp in the canonical column format.
func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// decodeTime parses a stored timestamp column.
func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", s, err)
	}
	return t, nil
}

// DB wraps a SQLite database connection for one vault file.
type DB struct {
	conn   *sql.DB
	path   string
	closed bool
}

// DefaultDataDir returns the default data directory following XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/mindvault"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "mindvault")
}

// DefaultDBPath returns the default vault file path.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "vault.db")
}

// Open opens or creates a vault database at the given path. Opening is
// idempotent and does not validate the encryption key; a wrong password
// only surfaces when an encrypted row is first read.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, path: path}

	if err := db.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := db.ensureMeta(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize vault metadata: %w", err)
	}

	return db, nil
}

// OpenInMemory creates an in-memory vault database (for testing).
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	db := &DB{conn: conn, path: ":memory:"}

	if err := db.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := db.ensureMeta(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize vault metadata: %w", err)
	}

	return db, nil
}

// initSchema creates all database tables and indexes.
func (db *DB) initSchema() error {
	_, err := db.conn.Exec(Schema)
	return err
}

// Close closes the database connection. Further operations fail with
// ErrClosed. Close is idempotent.
func (db *DB) Close() error {
	if db.closed {
		return nil
	}
	db.closed = true
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Exec executes a statement without returning rows.
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	if db.closed {
		return nil, ErrClosed
	}
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows.
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	if db.closed {
		return nil, ErrClosed
	}
	return db.conn.Query(query, args...)
}

// Begin starts a transaction.
func (db *DB) Begin() (*sql.Tx, error) {
	if db.closed {
		return nil, ErrClosed
	}
	return db.conn.Begin()
}
