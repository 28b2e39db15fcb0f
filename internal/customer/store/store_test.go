package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/customer"
	"github.com/MrJamesThe3rd/ledger/internal/customer/store"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := store.New(kv.NewMemory())

	c := &customer.Customer{Name: "Acme", Email: "a@acme.test"}
	require.NoError(t, s.CreateCustomer(ctx, c))
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := s.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.Email, got.Email)
	assert.Equal(t, c.CreatedAt, got.CreatedAt)

	email := "billing@acme.test"
	updated, err := s.UpdateCustomer(ctx, c.ID, customer.Update{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, email, updated.Email)
	assert.False(t, updated.UpdatedAt.Before(c.UpdatedAt))

	list, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	removed, err := s.DeleteCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.GetCustomer(ctx, c.ID)
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestStore_UpdateMissing(t *testing.T) {
	name := "x"

	_, err := store.New(kv.NewMemory()).UpdateCustomer(context.Background(), "cust-none", customer.Update{Name: &name})
	assert.ErrorIs(t, err, customer.ErrNotFound)
}
