package transport

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a durable transport backed by a single-table SQLite
// database. It implements both WriteSink and ReadSource.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens a record database at the given path.
// Safe to call multiple times for the same path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open record database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to record database: %w", err)
	}

	// SQLite only supports one writer at a time; a single connection
	// avoids SQLITE_BUSY during fan-out writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Save stores a record under its content hash. Uses ON CONFLICT(id)
// DO NOTHING for idempotency - duplicate ids are silently ignored.
func (s *SQLite) Save(ctx context.Context, id string, encoded []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO objects (id, data)
		VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, string(encoded))
	if err != nil {
		return fmt.Errorf("save record %s: %w", id, err)
	}
	return nil
}

// Get returns the record stored under id, or (nil, nil) if absent.
func (s *SQLite) Get(ctx context.Context, id string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM objects WHERE id = ?
	`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return []byte(data), nil
}

// Name implements ReadSource.
func (s *SQLite) Name() string {
	return "sqlite:" + s.path
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
