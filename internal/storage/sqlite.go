package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps wallet blobs in a single-table sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, login string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wallets (login, blob, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(login) DO UPDATE SET
			blob = excluded.blob,
			updated_at = CURRENT_TIMESTAMP`,
		login, string(blob))
	if err != nil {
		return fmt.Errorf("upsert wallet blob: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, login string) ([]byte, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM wallets WHERE login = ?`, login).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select wallet blob: %w", err)
	}
	return []byte(blob), nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
