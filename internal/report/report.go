// Package report derives the dashboard figures from invoices, expenses and
// employees.
package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/calc"
	"github.com/MrJamesThe3rd/ledger/internal/employee"
	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/invoice"
)

//go:generate mockgen -source=report.go -destination=sources_mock.go -package=report
type Invoices interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

type Expenses interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

type Employees interface {
	Active(ctx context.Context) ([]*employee.Employee, error)
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

type ActivityType string

const (
	ActivityIncome  ActivityType = "income"
	ActivityExpense ActivityType = "expense"
)

type Activity struct {
	ID          string          `json:"id"`
	Type        ActivityType    `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// Summary covers the calendar month containing Now, in Now's location.
type Summary struct {
	Now                time.Time       `json:"now"`
	Revenue            decimal.Decimal `json:"revenue"`
	Expenses           decimal.Decimal `json:"expenses"`
	NetIncome          decimal.Decimal `json:"net_income"`
	ProfitMargin       decimal.Decimal `json:"profit_margin"`
	PreviousRevenue    decimal.Decimal `json:"previous_revenue"`
	RevenueGrowth      decimal.Decimal `json:"revenue_growth"`
	PreviousExpenses   decimal.Decimal `json:"previous_expenses"`
	ExpenseGrowth      decimal.Decimal `json:"expense_growth"`
	OutstandingAmount  decimal.Decimal `json:"outstanding_amount"`
	OutstandingCount   int             `json:"outstanding_count"`
	ActiveEmployees    int             `json:"active_employees"`
	ExpensesByCategory []CategoryTotal `json:"expenses_by_category"`
	RecentActivity     []Activity      `json:"recent_activity"`
}

type Service struct {
	invoices  Invoices
	expenses  Expenses
	employees Employees
}

func NewService(invoices Invoices, expenses Expenses, employees Employees) *Service {
	return &Service{invoices: invoices, expenses: expenses, employees: employees}
}

func (s *Service) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	invoices, err := s.invoices.List(ctx, invoice.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	expenses, err := s.expenses.List(ctx, expense.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	active, err := s.employees.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	current := monthOf(now)
	previous := monthOf(current.start.AddDate(0, -1, 0))

	sum := &Summary{
		Now:               now,
		Revenue:           decimal.Zero,
		Expenses:          decimal.Zero,
		PreviousRevenue:   decimal.Zero,
		PreviousExpenses:  decimal.Zero,
		OutstandingAmount: decimal.Zero,
		ActiveEmployees:   len(active),
	}

	var (
		monthInvoices []*invoice.Invoice
		monthExpenses []*expense.Expense
	)

	for _, inv := range invoices {
		switch {
		case current.contains(inv.Date):
			sum.Revenue = sum.Revenue.Add(inv.Total)
			monthInvoices = append(monthInvoices, inv)
		case previous.contains(inv.Date):
			sum.PreviousRevenue = sum.PreviousRevenue.Add(inv.Total)
		}

		if inv.IsOutstanding() {
			sum.OutstandingAmount = sum.OutstandingAmount.Add(inv.Total)
			sum.OutstandingCount++
		}
	}

	for _, e := range expenses {
		switch {
		case current.contains(e.Date):
			sum.Expenses = sum.Expenses.Add(e.Amount)
			monthExpenses = append(monthExpenses, e)
		case previous.contains(e.Date):
			sum.PreviousExpenses = sum.PreviousExpenses.Add(e.Amount)
		}
	}

	sum.NetIncome = sum.Revenue.Sub(sum.Expenses)
	sum.ProfitMargin = calc.ProfitMargin(sum.Revenue, sum.Expenses)
	sum.RevenueGrowth = calc.GrowthRate(sum.Revenue, sum.PreviousRevenue)
	sum.ExpenseGrowth = calc.GrowthRate(sum.Expenses, sum.PreviousExpenses)
	sum.ExpensesByCategory = byCategory(monthExpenses)
	sum.RecentActivity = recentActivity(monthInvoices, monthExpenses)

	return sum, nil
}

type month struct {
	start, end time.Time
}

func monthOf(t time.Time) month {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return month{start: start, end: start.AddDate(0, 1, 0)}
}

func (m month) contains(t time.Time) bool {
	return !t.Before(m.start) && t.Before(m.end)
}

// byCategory totals expenses per category, largest amount first.
func byCategory(expenses []*expense.Expense) []CategoryTotal {
	index := make(map[string]int)

	var totals []CategoryTotal

	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category, Amount: decimal.Zero})
		}

		totals[i].Amount = totals[i].Amount.Add(e.Amount)
		totals[i].Count++
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Amount.Cmp(a.Amount)
	})

	return totals
}

const (
	recentInvoices = 3
	recentExpenses = 2
	recentTotal    = 5
)

// recentActivity mixes the first few invoices and expenses of the month,
// newest first.
func recentActivity(invoices []*invoice.Invoice, expenses []*expense.Expense) []Activity {
	activity := make([]Activity, 0, recentTotal)

	for _, inv := range invoices[:min(len(invoices), recentInvoices)] {
		activity = append(activity, Activity{
			ID:          inv.ID,
			Type:        ActivityIncome,
			Description: "Invoice " + inv.InvoiceNumber,
			Amount:      inv.Total,
			Date:        inv.Date,
		})
	}

	for _, e := range expenses[:min(len(expenses), recentExpenses)] {
		activity = append(activity, Activity{
			ID:          e.ID,
			Type:        ActivityExpense,
			Description: e.Description,
			Amount:      e.Amount,
			Date:        e.Date,
		})
	}

	slices.SortStableFunc(activity, func(a, b Activity) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})

	return activity[:min(len(activity), recentTotal)]
}
