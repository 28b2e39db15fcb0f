package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledger/internal/employee"
	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/invoice"
	"github.com/MrJamesThe3rd/ledger/internal/record"
	"github.com/MrJamesThe3rd/ledger/internal/report"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func inv(id string, date time.Time, total string, status invoice.Status) *invoice.Invoice {
	return &invoice.Invoice{
		Base:          record.Base{ID: id},
		InvoiceNumber: "INV-" + id,
		Date:          date,
		Total:         decimal.RequireFromString(total),
		Status:        status,
	}
}

func exp(id string, date time.Time, category, amount string) *expense.Expense {
	return &expense.Expense{
		Base:        record.Base{ID: id},
		Description: "expense " + id,
		Date:        date,
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)

	invoices := report.NewMockInvoices(ctrl)
	expenses := report.NewMockExpenses(ctrl)
	employees := report.NewMockEmployees(ctrl)

	invoices.EXPECT().List(gomock.Any(), invoice.ListFilter{}).Return([]*invoice.Invoice{
		inv("a", day(time.May, 2), "1000", invoice.StatusPaid),
		inv("b", day(time.May, 20), "500", invoice.StatusSent),
		inv("c", day(time.April, 10), "1200", invoice.StatusOverdue),
		inv("d", day(time.March, 1), "300", invoice.StatusDraft),
	}, nil)

	expenses.EXPECT().List(gomock.Any(), expense.ListFilter{}).Return([]*expense.Expense{
		exp("1", day(time.May, 3), "Software", "100"),
		exp("2", day(time.May, 4), "Travel", "250"),
		exp("3", day(time.May, 10), "Software", "200"),
		exp("4", day(time.April, 1), "Travel", "600"),
	}, nil)

	employees.EXPECT().Active(gomock.Any()).Return(make([]*employee.Employee, 3), nil)

	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	sum, err := report.NewService(invoices, expenses, employees).Summary(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "1500.00", sum.Revenue.StringFixed(2))
	assert.Equal(t, "550.00", sum.Expenses.StringFixed(2))
	assert.Equal(t, "950.00", sum.NetIncome.StringFixed(2))
	assert.Equal(t, "63.33", sum.ProfitMargin.StringFixed(2))
	assert.Equal(t, "1200.00", sum.PreviousRevenue.StringFixed(2))
	assert.Equal(t, "25.00", sum.RevenueGrowth.StringFixed(2))
	assert.Equal(t, "-8.33", sum.ExpenseGrowth.StringFixed(2))
	assert.Equal(t, "1700.00", sum.OutstandingAmount.StringFixed(2))
	assert.Equal(t, 2, sum.OutstandingCount)
	assert.Equal(t, 3, sum.ActiveEmployees)

	require.Len(t, sum.ExpensesByCategory, 2)
	assert.Equal(t, "Software", sum.ExpensesByCategory[0].Category)
	assert.Equal(t, "300.00", sum.ExpensesByCategory[0].Amount.StringFixed(2))
	assert.Equal(t, 2, sum.ExpensesByCategory[0].Count)
	assert.Equal(t, "Travel", sum.ExpensesByCategory[1].Category)

	ids := make([]string, len(sum.RecentActivity))
	for i, a := range sum.RecentActivity {
		ids[i] = a.ID
	}

	assert.Equal(t, []string{"b", "2", "1", "a"}, ids)
	assert.Equal(t, report.ActivityIncome, sum.RecentActivity[0].Type)
	assert.Equal(t, "Invoice INV-b", sum.RecentActivity[0].Description)
}

func TestService_SummaryEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)

	invoices := report.NewMockInvoices(ctrl)
	expenses := report.NewMockExpenses(ctrl)
	employees := report.NewMockEmployees(ctrl)

	invoices.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	expenses.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	employees.EXPECT().Active(gomock.Any()).Return(nil, nil)

	sum, err := report.NewService(invoices, expenses, employees).Summary(context.Background(), day(time.January, 1))
	require.NoError(t, err)

	assert.True(t, sum.Revenue.IsZero())
	assert.True(t, sum.ProfitMargin.IsZero())
	assert.True(t, sum.RevenueGrowth.IsZero())
	assert.Empty(t, sum.ExpensesByCategory)
	assert.Empty(t, sum.RecentActivity)
}

func TestService_SummaryError(t *testing.T) {
	ctrl := gomock.NewController(t)

	invoices := report.NewMockInvoices(ctrl)
	invoices.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("medium offline"))

	_, err := report.NewService(invoices, nil, nil).Summary(context.Background(), time.Now())
	assert.Error(t, err)
}
