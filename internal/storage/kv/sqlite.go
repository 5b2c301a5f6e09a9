package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
)`

type sqliteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSqliteStore opens or creates file-backed Store
func NewSqliteStore(ctx context.Context, path string) (Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory for sqlite database - %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database - %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", sqliteSchema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize sqlite database - %w", err)
		}
	}

	return &sqliteStore{db: db, now: time.Now}, nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt int64

	q := "SELECT value, expires_at FROM kv WHERE key = ?"
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if expiresAt != 0 && s.now().UnixNano() >= expiresAt {
		if err := s.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *sqliteStore) Take(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt int64

	q := "DELETE FROM kv WHERE key = ? RETURNING value, expires_at"
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if expiresAt != 0 && s.now().UnixNano() >= expiresAt {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *sqliteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixNano()
	}

	q := `INSERT INTO kv(key, value, expires_at) VALUES(?, ?, ?)
		  ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`
	if _, err := s.db.ExecContext(ctx, q, key, value, expiresAt); err != nil {
		return err
	}

	purge := "DELETE FROM kv WHERE expires_at != 0 AND expires_at <= ?"
	if _, err := s.db.ExecContext(ctx, purge, s.now().UnixNano()); err != nil {
		return err
	}
	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return err
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
