package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSlot stores slots as rows of a single table in a SQLite file.
type SQLiteSlot struct {
	db *sql.DB
}

// InitDB opens the database at path and creates the slots table if needed.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer at a time keeps SQLite from returning SQLITE_BUSY
	db.SetMaxOpenConns(1)

	query := `
	CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return db, nil
}

// NewSQLiteSlot opens (or creates) the SQLite file at path.
func NewSQLiteSlot(path string) (*SQLiteSlot, error) {
	db, err := InitDB(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteSlot{db: db}, nil
}

func (s *SQLiteSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE name = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteSlot) Set(ctx context.Context, key string, value []byte) error {
	query := `
	INSERT INTO slots (name, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, string(value), time.Now()); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
