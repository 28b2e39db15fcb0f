// Package kv defines the storage medium records are persisted to: a mapping
// from a key to one serialized blob.
package kv

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrConflict = errors.New("version conflict")
)

// Medium reads and writes named blobs. Get returns ErrNotFound for keys that
// were never written.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Versioned is a Medium that supports compare-and-set. Versions are opaque;
// 0 means the key does not exist.
type Versioned interface {
	Medium
	GetVersioned(ctx context.Context, key string) ([]byte, int64, error)
	CompareAndSet(ctx context.Context, key string, value []byte, version int64) error
}

// ContentVersion derives a version from the blob itself, for mediums that
// cannot store one alongside the value.
func ContentVersion(value []byte) int64 {
	if value == nil {
		return 0
	}

	h := fnv.New64a()
	h.Write(value)

	v := int64(h.Sum64() & (1<<63 - 1))
	if v == 0 {
		v = 1
	}

	return v
}

type entry struct {
	value   []byte
	version int64
}

// Memory is an in-process Versioned medium.
type Memory struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]entry)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	value, _, err := m.GetVersioned(ctx, key)
	return value, err
}

func (m *Memory) GetVersioned(_ context.Context, key string) ([]byte, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[key]
	if !ok {
		return nil, 0, ErrNotFound
	}

	return append([]byte(nil), e.value...), e.version, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = entry{value: append([]byte(nil), value...), version: m.data[key].version + 1}

	return nil
}

func (m *Memory) CompareAndSet(_ context.Context, key string, value []byte, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[key].version != version {
		return ErrConflict
	}

	m.data[key] = entry{value: append([]byte(nil), value...), version: version + 1}

	return nil
}
