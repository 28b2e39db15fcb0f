package kv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, m.Set(ctx, "k", []byte("v1")))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestMemory_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	_, version, err := m.GetVersioned(ctx, "k")
	require.ErrorIs(t, err, kv.ErrNotFound)
	assert.Zero(t, version)

	require.NoError(t, m.CompareAndSet(ctx, "k", []byte("a"), 0))
	assert.ErrorIs(t, m.CompareAndSet(ctx, "k", []byte("b"), 0), kv.ErrConflict)

	value, version, err := m.GetVersioned(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), value)

	require.NoError(t, m.CompareAndSet(ctx, "k", []byte("c"), version))

	value, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), value)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestContentVersion(t *testing.T) {
	assert.Zero(t, kv.ContentVersion(nil))
	assert.NotZero(t, kv.ContentVersion([]byte{}))
	assert.Equal(t, kv.ContentVersion([]byte("x")), kv.ContentVersion([]byte("x")))
	assert.NotEqual(t, kv.ContentVersion([]byte("x")), kv.ContentVersion([]byte("y")))
}
