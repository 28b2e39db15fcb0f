// Package record implements create/read/update/delete for one kind of record
// stored as a single JSON array under one medium key. Every mutation is a
// read-modify-write of the whole collection.
package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

var (
	ErrWrite    = errors.New("writing collection")
	ErrConflict = errors.New("collection changed concurrently")
)

// Base carries the generated fields every record has. Embed it in a record
// type to make it storable.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) base() *Base { return b }

// Entity is satisfied by pointers to structs embedding Base.
type Entity[T any] interface {
	*T
	base() *Base
}

// Collection stores records of type T under key. Mutations on one
// Collection are serialized; collections sharing a medium across processes
// only stay consistent when the medium is kv.Versioned.
type Collection[T any, P Entity[T]] struct {
	medium kv.Medium
	key    string
	prefix string

	mu    sync.Mutex
	now   func() time.Time
	newID func(prefix string) string
	retry RetryPolicy
	guard Guard[T]
}

// Guard vets a record about to be created or updated against the other
// stored records. A non-nil error aborts the write and is returned as is.
type Guard[T any] func(candidate T, others []T) error

// New creates a collection; ids are "<prefix>-<uuid v7>".
func New[T any, P Entity[T]](medium kv.Medium, key, prefix string) *Collection[T, P] {
	return &Collection[T, P]{
		medium: medium,
		key:    key,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  newID,
		retry:  DefaultRetryPolicy,
	}
}

func newID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return prefix + "-" + id.String()
}

// WithClock replaces the timestamp source.
func (c *Collection[T, P]) WithClock(now func() time.Time) *Collection[T, P] {
	c.now = now
	return c
}

func (c *Collection[T, P]) WithRetry(p RetryPolicy) *Collection[T, P] {
	c.retry = p
	return c
}

// WithGuard installs g. It runs inside the read-modify-write, so on a
// versioned medium it sees the same data the write replaces.
func (c *Collection[T, P]) WithGuard(g Guard[T]) *Collection[T, P] {
	c.guard = g
	return c
}

// All returns every record in persisted order. Missing, unreadable or
// corrupt data reads as an empty collection.
func (c *Collection[T, P]) All(ctx context.Context) []T {
	raw, err := c.medium.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			slog.Warn("reading collection", "key", c.key, "error", err)
		}

		return []T{}
	}

	return c.decode(raw)
}

// Get finds a record by id. A missing record is not an error.
func (c *Collection[T, P]) Get(ctx context.Context, id string) (T, bool) {
	for _, item := range c.All(ctx) {
		if P(&item).base().ID == id {
			return item, true
		}
	}

	var zero T

	return zero, false
}

// Create stamps v with a new id and timestamps, appends it and persists the
// collection.
func (c *Collection[T, P]) Create(ctx context.Context, v T) (T, error) {
	now := c.now()

	b := P(&v).base()
	b.ID = c.newID(c.prefix)
	b.CreatedAt = now
	b.UpdatedAt = now

	var rejected error

	err := c.mutate(ctx, func(items []T) ([]T, bool) {
		if rejected = c.check(v, items); rejected != nil {
			return items, false
		}

		return append(items, v), true
	})
	if err == nil {
		err = rejected
	}

	if err != nil {
		var zero T
		return zero, err
	}

	return v, nil
}

// Update runs apply on the stored record and persists the result. apply
// cannot change the id or creation time. It reports false, without writing,
// when id is unknown.
func (c *Collection[T, P]) Update(ctx context.Context, id string, apply func(P)) (T, bool, error) {
	var (
		updated  T
		found    bool
		rejected error
	)

	err := c.mutate(ctx, func(items []T) ([]T, bool) {
		rejected = nil

		idx := c.index(items, id)
		if idx == -1 {
			found = false
			return items, false
		}

		item := items[idx]
		b := *P(&item).base()

		apply(P(&item))

		nb := P(&item).base()
		nb.ID = b.ID
		nb.CreatedAt = b.CreatedAt
		nb.UpdatedAt = c.now()

		others := slices.Delete(slices.Clone(items), idx, idx+1)
		if rejected = c.check(item, others); rejected != nil {
			return items, false
		}

		items[idx] = item
		updated = item
		found = true

		return items, true
	})
	if err == nil {
		err = rejected
	}

	if err != nil {
		var zero T
		return zero, found, err
	}

	if !found {
		var zero T
		return zero, false, nil
	}

	return updated, true, nil
}

// Delete removes the record and reports whether it existed.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool

	err := c.mutate(ctx, func(items []T) ([]T, bool) {
		idx := c.index(items, id)
		removed = idx != -1

		if !removed {
			return items, false
		}

		return slices.Delete(items, idx, idx+1), true
	})
	if err != nil {
		return false, err
	}

	return removed, nil
}

func (c *Collection[T, P]) check(candidate T, others []T) error {
	if c.guard == nil {
		return nil
	}

	return c.guard(candidate, others)
}

func (c *Collection[T, P]) index(items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool {
		return P(&item).base().ID == id
	})
}

// mutate loads the collection, lets fn change it and writes it back when fn
// reports a change. On a versioned medium the write is a compare-and-set
// that is retried from a fresh read on conflict.
func (c *Collection[T, P]) mutate(ctx context.Context, fn func([]T) ([]T, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	versioned, ok := c.medium.(kv.Versioned)
	if !ok {
		return c.overwrite(ctx, fn)
	}

	return withRetries(ctx, c.retry, func() error {
		raw, version, err := versioned.GetVersioned(ctx, c.key)
		if err != nil && !errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("reading %s: %w", c.key, err)
		}

		items, changed := fn(c.decode(raw))
		if !changed {
			return nil
		}

		payload, err := c.encode(items)
		if err != nil {
			return err
		}

		err = versioned.CompareAndSet(ctx, c.key, payload, version)
		if err != nil && !errors.Is(err, kv.ErrConflict) {
			slog.Error("writing collection", "key", c.key, "error", err)
			return fmt.Errorf("%w %s: %w", ErrWrite, c.key, err)
		}

		return err
	})
}

// overwrite is the last-write-wins path for mediums without compare-and-set.
func (c *Collection[T, P]) overwrite(ctx context.Context, fn func([]T) ([]T, bool)) error {
	raw, err := c.medium.Get(ctx, c.key)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("reading %s: %w", c.key, err)
	}

	items, changed := fn(c.decode(raw))
	if !changed {
		return nil
	}

	payload, err := c.encode(items)
	if err != nil {
		return err
	}

	if err := c.medium.Set(ctx, c.key, payload); err != nil {
		slog.Error("writing collection", "key", c.key, "error", err)
		return fmt.Errorf("%w %s: %w", ErrWrite, c.key, err)
	}

	return nil
}

func (c *Collection[T, P]) decode(raw []byte) []T {
	items := []T{}
	if len(raw) == 0 {
		return items
	}

	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("discarding unreadable collection", "key", c.key, "error", err)
		return []T{}
	}

	if items == nil {
		return []T{}
	}

	return items
}

func (c *Collection[T, P]) encode(items []T) ([]byte, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("%w %s: encoding: %w", ErrWrite, c.key, err)
	}

	return payload, nil
}
