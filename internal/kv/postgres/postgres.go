// Package postgres keeps blobs in a single key/value table, one row per key.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

const schema = `
	CREATE TABLE IF NOT EXISTS kv_blobs (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		version    BIGINT NOT NULL DEFAULT 1,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the blob table when it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating kv_blobs: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, _, err := s.GetVersioned(ctx, key)
	return value, err
}

func (s *Store) GetVersioned(ctx context.Context, key string) ([]byte, int64, error) {
	query := `SELECT value, version FROM kv_blobs WHERE key = $1`

	var (
		value   []byte
		version int64
	)

	err := s.db.QueryRowContext(ctx, query, key).Scan(&value, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, kv.ErrNotFound
		}

		return nil, 0, fmt.Errorf("getting %s: %w", key, err)
	}

	return value, version, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_blobs (key, value, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, version = kv_blobs.version + 1, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	return nil
}

func (s *Store) CompareAndSet(ctx context.Context, key string, value []byte, version int64) error {
	var (
		res sql.Result
		err error
	)

	if version == 0 {
		query := `
			INSERT INTO kv_blobs (key, value, version, updated_at)
			VALUES ($1, $2, 1, NOW())
			ON CONFLICT (key) DO NOTHING
		`
		res, err = s.db.ExecContext(ctx, query, key, value)
	} else {
		query := `
			UPDATE kv_blobs
			SET value = $1, version = version + 1, updated_at = NOW()
			WHERE key = $2 AND version = $3
		`
		res, err = s.db.ExecContext(ctx, query, value, key, version)
	}

	if err != nil {
		return fmt.Errorf("compare-and-set %s: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("compare-and-set %s: %w", key, err)
	}

	if n == 0 {
		return kv.ErrConflict
	}

	return nil
}
