package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/invoice"
	"github.com/MrJamesThe3rd/ledger/internal/invoice/store"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
)

func create(t *testing.T, s *store.Store, number string) *invoice.Invoice {
	t.Helper()

	inv := &invoice.Invoice{InvoiceNumber: number, Status: invoice.StatusDraft}
	require.NoError(t, s.CreateInvoice(context.Background(), inv))

	return inv
}

func TestStore_NextInvoiceNumber(t *testing.T) {
	type testCase struct {
		name     string
		existing []string
		want     string
	}

	tests := []testCase{
		{name: "Empty", want: "INV-001"},
		{name: "Sequential", existing: []string{"INV-001", "INV-002"}, want: "INV-003"},
		{name: "Gaps", existing: []string{"INV-007", "INV-002"}, want: "INV-008"},
		{name: "ForeignFormats", existing: []string{"2024-15", "ACME"}, want: "INV-016"},
		{name: "WideNumbers", existing: []string{"INV-1234"}, want: "INV-1235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New(kv.NewMemory())
			for _, n := range tt.existing {
				create(t, s, n)
			}

			assert.Equal(t, tt.want, s.NextInvoiceNumber(context.Background()))
		})
	}
}

func TestStore_NextInvoiceNumberDoesNotReserve(t *testing.T) {
	ctx := context.Background()
	s := store.New(kv.NewMemory())

	assert.Equal(t, "INV-001", s.NextInvoiceNumber(ctx))
	assert.Equal(t, "INV-001", s.NextInvoiceNumber(ctx))
}

func TestStore_ReserveInvoiceNumber(t *testing.T) {
	ctx := context.Background()
	s := store.New(kv.NewMemory())

	n, err := s.ReserveInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-001", n)

	n, err = s.ReserveInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-002", n)

	create(t, s, "INV-050")

	n, err = s.ReserveInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-051", n)
}

func TestStore_ReserveInvoiceNumberAcrossStores(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	seen := make(map[string]bool)

	for range 3 {
		s := store.New(m)

		wg.Go(func() {
			for range 5 {
				n, err := s.ReserveInvoiceNumber(ctx)
				if !assert.NoError(t, err) {
					return
				}

				mu.Lock()
				assert.False(t, seen[n], "duplicate %s", n)
				seen[n] = true
				mu.Unlock()
			}
		})
	}

	wg.Wait()

	assert.Len(t, seen, 15)
}

func TestStore_UpdateRecomputes(t *testing.T) {
	ctx := context.Background()
	s := store.New(kv.NewMemory())

	inv := create(t, s, "INV-001")

	items := []invoice.Item{{Quantity: decimal.NewFromInt(2), Rate: decimal.RequireFromString("12.50")}}
	rate := decimal.RequireFromString("0.2")

	updated, err := s.UpdateInvoice(ctx, inv.ID, invoice.Update{Items: &items, TaxRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, "25.00", updated.Subtotal.StringFixed(2))
	assert.Equal(t, "30.00", updated.Total.StringFixed(2))
	assert.Equal(t, "INV-001", updated.InvoiceNumber)

	stored, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "30.00", stored.Total.StringFixed(2))
}

func TestStore_ListInvoices(t *testing.T) {
	ctx := context.Background()
	s := store.New(kv.NewMemory())

	create(t, s, "INV-001")
	paid := create(t, s, "INV-002")

	status := invoice.StatusPaid
	_, err := s.UpdateInvoice(ctx, paid.ID, invoice.Update{Status: &status})
	require.NoError(t, err)

	all, err := s.ListInvoices(ctx, invoice.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyPaid, err := s.ListInvoices(ctx, invoice.ListFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, onlyPaid, 1)
	assert.Equal(t, paid.ID, onlyPaid[0].ID)
}

func TestStore_RejectsDuplicateNumbers(t *testing.T) {
	ctx := context.Background()
	s := store.New(kv.NewMemory())

	first := create(t, s, "INV-001")
	second := create(t, s, "INV-002")

	err := s.CreateInvoice(ctx, &invoice.Invoice{InvoiceNumber: "INV-001"})
	require.ErrorIs(t, err, invoice.ErrDuplicateNumber)

	taken := "INV-001"
	_, err = s.UpdateInvoice(ctx, second.ID, invoice.Update{InvoiceNumber: &taken})
	require.ErrorIs(t, err, invoice.ErrDuplicateNumber)

	stored, err := s.GetInvoice(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-002", stored.InvoiceNumber)

	all, err := s.ListInvoices(ctx, invoice.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Keeping its own number is not a clash.
	notes := "updated"
	updated, err := s.UpdateInvoice(ctx, first.ID, invoice.Update{InvoiceNumber: &taken, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Notes)
}
