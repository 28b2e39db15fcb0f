package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/expense/store"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := store.New(kv.NewMemory())

	e := &expense.Expense{
		Description: "Coffee beans",
		Category:    "Supplies",
		Amount:      decimal.RequireFromString("23.40"),
		Status:      expense.StatusPending,
	}
	require.NoError(t, s.CreateExpense(ctx, e))
	assert.Contains(t, e.ID, "exp-")

	approved := expense.StatusApproved
	updated, err := s.UpdateExpense(ctx, e.ID, expense.Update{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, expense.StatusApproved, updated.Status)
	assert.Equal(t, "23.40", updated.Amount.StringFixed(2))
	assert.Equal(t, "Coffee beans", updated.Description)

	list, err := s.ListExpenses(ctx, expense.ListFilter{Category: "Supplies"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	removed, err := s.DeleteExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = s.GetExpense(ctx, e.ID)
	assert.ErrorIs(t, err, expense.ErrNotFound)

	_, err = s.UpdateExpense(ctx, e.ID, expense.Update{Status: &approved})
	assert.ErrorIs(t, err, expense.ErrNotFound)
}
