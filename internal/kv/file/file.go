// Package file stores each key as a JSON file in a directory, the on-disk
// counterpart of browser local storage.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

const (
	lockRetry = 5 * time.Millisecond
	// staleLock is how old a lock file may get before it is taken over,
	// which frees keys left locked by a crashed process.
	staleLock = 10 * time.Second
)

// Store is a kv.Versioned medium. Versions are content hashes. Writes to a
// key hold a <key>.json.lock file, so compare-and-set is atomic across
// processes and Store values sharing the directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, key)

	return filepath.Join(s.dir, safe+".json")
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	return s.read(key)
}

func (s *Store) GetVersioned(_ context.Context, key string) ([]byte, int64, error) {
	value, err := s.read(key)
	if err != nil {
		return nil, 0, err
	}

	return value, kv.ContentVersion(value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	unlock, err := s.lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()

	return s.write(key, value)
}

func (s *Store) CompareAndSet(ctx context.Context, key string, value []byte, version int64) error {
	unlock, err := s.lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()

	current, err := s.read(key)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return err
	}

	if kv.ContentVersion(current) != version {
		return kv.ErrConflict
	}

	return s.write(key, value)
}

// lock takes the in-process mutex and then the key's lock file, waiting for
// other holders until ctx is done.
func (s *Store) lock(ctx context.Context, key string) (func(), error) {
	s.mu.Lock()

	name := s.path(key) + ".lock"

	for {
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			f.Close()

			return func() {
				os.Remove(name)
				s.mu.Unlock()
			}, nil
		}

		if !errors.Is(err, fs.ErrExist) {
			s.mu.Unlock()
			return nil, fmt.Errorf("locking %s: %w", key, err)
		}

		if info, err := os.Stat(name); err == nil && time.Since(info.ModTime()) > staleLock {
			os.Remove(name)
			continue
		}

		select {
		case <-ctx.Done():
			s.mu.Unlock()
			return nil, fmt.Errorf("locking %s: %w", key, ctx.Err())
		case <-time.After(lockRetry):
		}
	}
}

func (s *Store) read(key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, kv.ErrNotFound
		}

		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	return b, nil
}

// write replaces the file through a rename so readers never see a partial blob.
func (s *Store) write(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}

	return nil
}
