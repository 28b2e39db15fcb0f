package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/invoice"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

func base(id string) record.Base {
	return record.Base{ID: id}
}

func TestUpdate_Apply(t *testing.T) {
	newInvoice := func() invoice.Invoice {
		inv := invoice.Invoice{
			Date:         date(2024, 1, 1),
			PaymentTerms: "Net 30",
			TaxRate:      dec("0.1"),
			Items: []invoice.Item{
				{ID: "a", Quantity: dec("2"), Rate: dec("50")},
			},
		}
		inv.DueDate = inv.DueFromTerms()
		inv.Recalculate()

		return inv
	}

	t.Run("ItemsRecomputeTotals", func(t *testing.T) {
		inv := newInvoice()
		assert.Equal(t, "110.00", inv.Total.StringFixed(2))

		items := []invoice.Item{
			{ID: "a", Quantity: dec("1"), Rate: dec("50")},
			{Quantity: dec("0.5"), Rate: dec("10.01"), Amount: dec("999")},
		}
		invoice.Update{Items: &items}.Apply(&inv)

		require.Len(t, inv.Items, 2)
		assert.Equal(t, "a", inv.Items[0].ID)
		assert.NotEmpty(t, inv.Items[1].ID)
		assert.Equal(t, "5.01", inv.Items[1].Amount.StringFixed(2))
		assert.Equal(t, "55.01", inv.Subtotal.StringFixed(2))
		assert.Equal(t, "5.50", inv.TaxAmount.StringFixed(2))
		assert.Equal(t, "60.51", inv.Total.StringFixed(2))
	})

	t.Run("TaxRateRecomputesTotals", func(t *testing.T) {
		inv := newInvoice()

		rate := dec("0")
		invoice.Update{TaxRate: &rate}.Apply(&inv)

		assert.Equal(t, "100.00", inv.Total.StringFixed(2))
	})

	t.Run("TermsMoveDueDate", func(t *testing.T) {
		inv := newInvoice()

		terms := "Net 15"
		invoice.Update{PaymentTerms: &terms}.Apply(&inv)

		assert.Equal(t, date(2024, 1, 16), inv.DueDate)
	})

	t.Run("ExplicitDueDateWins", func(t *testing.T) {
		inv := newInvoice()

		d := date(2024, 2, 1)
		due := date(2024, 4, 1)
		invoice.Update{Date: &d, DueDate: &due}.Apply(&inv)

		assert.Equal(t, d, inv.Date)
		assert.Equal(t, due, inv.DueDate)
	})

	t.Run("StatusOnlyKeepsDueDate", func(t *testing.T) {
		inv := newInvoice()
		before := inv.DueDate

		sent := invoice.StatusSent
		invoice.Update{Status: &sent}.Apply(&inv)

		assert.Equal(t, before, inv.DueDate)
		assert.True(t, inv.IsOutstanding())
	})
}

func TestAssignItemIDs(t *testing.T) {
	items := invoice.AssignItemIDs([]invoice.Item{{ID: "x"}, {ID: "x"}, {}})

	require.Len(t, items, 3)
	assert.Equal(t, "x", items[0].ID)
	assert.NotEqual(t, "x", items[1].ID)
	assert.NotEmpty(t, items[2].ID)
	assert.NotEqual(t, items[1].ID, items[2].ID)
}
