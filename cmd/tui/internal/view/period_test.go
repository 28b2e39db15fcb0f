package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/invoice"
)

func TestPeriod_Range(t *testing.T) {
	now := time.Date(2024, 8, 20, 15, 30, 0, 0, time.UTC)

	type testCase struct {
		period    Period
		wantStart time.Time
		wantEnd   time.Time
		wantOK    bool
	}

	endOf := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 23, 59, 59, 999999999, time.UTC)
	}

	tests := []testCase{
		{
			period:    PeriodThisMonth,
			wantStart: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   endOf(2024, 8, 31),
			wantOK:    true,
		},
		{
			period:    PeriodLastMonth,
			wantStart: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   endOf(2024, 7, 31),
			wantOK:    true,
		},
		{
			period:    PeriodThisQuarter,
			wantStart: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   endOf(2024, 9, 30),
			wantOK:    true,
		},
		{
			period:    PeriodThisYear,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   endOf(2024, 12, 31),
			wantOK:    true,
		},
		{period: PeriodAll},
		{period: PeriodCustom},
	}

	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			start, end, ok := tt.period.Range(now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,234.50", FormatAmount(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "-8.3%", FormatPercent(decimal.RequireFromString("-8.33")))
	assert.Equal(t, "2024-02-29", FormatDate(time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)))
}

func TestStatusFilters(t *testing.T) {
	filters := statusFilters(expense.Statuses)

	assert.Len(t, filters, len(expense.Statuses)+1)
	assert.Nil(t, filters[0])

	for i, s := range expense.Statuses {
		assert.Equal(t, s, *filters[i+1])
	}

	assert.Equal(t, invoice.StatusDraft, *invoiceFilters[1])
}
