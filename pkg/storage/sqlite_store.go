package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	owner TEXT NOT NULL,
	name TEXT NOT NULL,
	value BLOB NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (owner, name)
);
`

// SQLiteStore is the file-backed Storer.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (and creates if needed) the store at path. Use
// ":memory:" for a throwaway database.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// an in-memory database only lives as long as its connection.
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, owner string, key Key) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT value
		FROM records
		WHERE owner = ? AND name = ?
	`, owner, key.String()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error while reading %q for owner %q: %w", key, owner, err)
	}

	return value, nil
}

func (s *SQLiteStore) Put(ctx context.Context, owner string, key Key, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	_, err := s.db.ExecContext(ctx,
		/* sql */ `
		INSERT INTO records (owner, name, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (owner, name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, owner, key.String(), value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("error while writing %q for owner %q: %w", key, owner, err)
	}

	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, owner string, key Key) error {
	_, err := s.db.ExecContext(ctx,
		/* sql */ `
		DELETE FROM records
		WHERE owner = ? AND name = ?
	`, owner, key.String())
	if err != nil {
		return fmt.Errorf("error while deleting %q for owner %q: %w", key, owner, err)
	}

	return nil
}
