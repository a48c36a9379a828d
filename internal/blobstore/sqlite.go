package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/xolan/journali/internal/blobstore/migrations"
)

// SQLiteBlobName is the row the journal blob is stored under.
const SQLiteBlobName = "entries"

// SQLite keeps the blob in a single row of a sqlite database. The schema is
// migrated on open.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens the database at path, or an in-memory database for
// ":memory:", and migrates it to the latest schema.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite backend requires a database path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := migrations.MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db, path: path}, nil
}

func (s *SQLite) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE name = ?`, SQLiteBlobName).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return data, nil
}

func (s *SQLite) Write(ctx context.Context, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		SQLiteBlobName, data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}
	return nil
}

func (s *SQLite) Location() string { return "sqlite:" + s.path }

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
