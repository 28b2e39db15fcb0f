// Package redis keeps each blob as a plain Redis string value.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

type Store struct {
	client *goredis.Client
}

func New(addr, password string, db int) *Store {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Store{client: client}
}

// Connect creates the store and checks the server answers within five seconds.
func Connect(addr, password string, db int) (*Store, error) {
	s := New(addr, password, db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		_ = s.client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, kv.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}

	return value, nil
}

func (s *Store) GetVersioned(ctx context.Context, key string) ([]byte, int64, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return nil, 0, err
	}

	return value, kv.ContentVersion(value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	return nil
}

// CompareAndSet watches the key, checks its content version and writes in a
// MULTI block; a concurrent write aborts the transaction.
func (s *Store) CompareAndSet(ctx context.Context, key string, value []byte, version int64) error {
	err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}

		if errors.Is(err, goredis.Nil) {
			current = nil
		}

		if kv.ContentVersion(current) != version {
			return kv.ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, value, 0)
			return nil
		})

		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, kv.ErrConflict), errors.Is(err, goredis.TxFailedErr):
		return kv.ErrConflict
	default:
		return fmt.Errorf("compare-and-set %s: %w", key, err)
	}
}
