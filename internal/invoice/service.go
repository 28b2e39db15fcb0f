package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/customer"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, id string, u Update) (*Invoice, error)
	DeleteInvoice(ctx context.Context, id string) (bool, error)

	NextInvoiceNumber(ctx context.Context) string
	ReserveInvoiceNumber(ctx context.Context) (string, error)
}

// CustomerLookup resolves the customer name copied onto new invoices.
type CustomerLookup interface {
	Get(ctx context.Context, id string) (*customer.Customer, error)
}

type Service struct {
	repo      Repository
	customers CustomerLookup
}

func NewService(repo Repository, customers CustomerLookup) *Service {
	return &Service{repo: repo, customers: customers}
}

type ItemParams struct {
	ID          string
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Taxable     bool
}

type CreateParams struct {
	CustomerID    string
	CustomerName  string
	InvoiceNumber string
	Date          time.Time
	DueDate       *time.Time
	Items         []ItemParams
	TaxRate       decimal.Decimal
	Status        Status
	Notes         string
	PaymentTerms  string
	Currency      Currency
}

// ListFilter narrows List. Zero values match everything; dates are
// inclusive.
type ListFilter struct {
	Status     *Status
	CustomerID string
	StartDate  *time.Time
	EndDate    *time.Time
}

func (f ListFilter) Match(inv *Invoice) bool {
	if f.Status != nil && inv.Status != *f.Status {
		return false
	}

	if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
		return false
	}

	if f.StartDate != nil && inv.Date.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && inv.Date.After(*f.EndDate) {
		return false
	}

	return true
}

// Create derives line amounts, totals and (unless given) the due date, and
// reserves the next invoice number when none is supplied.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	inv := &Invoice{
		CustomerID:    params.CustomerID,
		CustomerName:  params.CustomerName,
		InvoiceNumber: params.InvoiceNumber,
		Date:          params.Date,
		Items:         itemsFromParams(params.Items),
		TaxRate:       params.TaxRate,
		Status:        params.Status,
		Notes:         params.Notes,
		PaymentTerms:  params.PaymentTerms,
		Currency:      params.Currency,
	}

	if inv.Status == "" {
		inv.Status = StatusDraft
	}

	if inv.Currency == "" {
		inv.Currency = CurrencyUSD
	}

	if params.DueDate != nil {
		inv.DueDate = *params.DueDate
	} else {
		inv.DueDate = inv.DueFromTerms()
	}

	if inv.CustomerName == "" && inv.CustomerID != "" && s.customers != nil {
		c, err := s.customers.Get(ctx, inv.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("looking up customer: %w", err)
		}

		inv.CustomerName = c.Name
	}

	if inv.InvoiceNumber == "" {
		number, err := s.repo.ReserveInvoiceNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("reserving invoice number: %w", err)
		}

		inv.InvoiceNumber = number
	}

	inv.Recalculate()

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

func itemsFromParams(params []ItemParams) []Item {
	items := make([]Item, len(params))
	for i, p := range params {
		items[i] = Item{
			ID:          p.ID,
			Description: p.Description,
			Quantity:    p.Quantity,
			Rate:        p.Rate,
			Taxable:     p.Taxable,
		}
	}

	return AssignItemIDs(items)
}

func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id string, u Update) (*Invoice, error) {
	return s.repo.UpdateInvoice(ctx, id, u)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Invoice, error) {
	return s.repo.UpdateInvoice(ctx, id, Update{Status: &status})
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteInvoice(ctx, id)
}

// NextNumber previews the number the next invoice would get. It reserves
// nothing.
func (s *Service) NextNumber(ctx context.Context) string {
	return s.repo.NextInvoiceNumber(ctx)
}

// MarkOverdue moves sent invoices whose due date lies before now's calendar
// day to overdue and returns them.
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) ([]*Invoice, error) {
	sent := StatusSent

	invoices, err := s.repo.ListInvoices(ctx, ListFilter{Status: &sent})
	if err != nil {
		return nil, fmt.Errorf("listing sent invoices: %w", err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	overdue := StatusOverdue

	var marked []*Invoice

	for _, inv := range invoices {
		if !inv.DueDate.Before(today) {
			continue
		}

		updated, err := s.repo.UpdateInvoice(ctx, inv.ID, Update{Status: &overdue})
		if err != nil {
			slog.Error("marking invoice overdue", "invoice_id", inv.ID, "error", err)
			return marked, fmt.Errorf("marking invoice %s overdue: %w", inv.ID, err)
		}

		marked = append(marked, updated)
	}

	return marked, nil
}
