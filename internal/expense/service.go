package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id string) (*Expense, error)
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
	UpdateExpense(ctx context.Context, id string, u Update) (*Expense, error)
	DeleteExpense(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Description   string
	Category      string
	Amount        decimal.Decimal
	Date          time.Time
	Vendor        string
	PaymentMethod string
	Status        Status
	TaxDeductible bool
	Receipt       bool
	ReceiptURL    string
	Notes         string
}

// ListFilter narrows List. Zero values match everything; dates are
// inclusive.
type ListFilter struct {
	Status     *Status
	Category   string
	StartDate  *time.Time
	EndDate    *time.Time
	HasReceipt bool
}

func (f ListFilter) Match(e *Expense) bool {
	if f.Status != nil && e.Status != *f.Status {
		return false
	}

	if f.Category != "" && e.Category != f.Category {
		return false
	}

	if f.StartDate != nil && e.Date.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && e.Date.After(*f.EndDate) {
		return false
	}

	if f.HasReceipt && e.ReceiptURL == "" {
		return false
	}

	return true
}

// Create stores a new expense; it is pending until approved unless a status
// is given.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	e := &Expense{
		Description:   params.Description,
		Category:      params.Category,
		Amount:        params.Amount,
		Date:          params.Date,
		Vendor:        params.Vendor,
		PaymentMethod: params.PaymentMethod,
		Status:        params.Status,
		TaxDeductible: params.TaxDeductible,
		Receipt:       params.Receipt || params.ReceiptURL != "",
		ReceiptURL:    params.ReceiptURL,
		Notes:         params.Notes,
	}

	if e.Status == "" {
		e.Status = StatusPending
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	return e, nil
}

// CreateBatch stores every expense in order and stops at the first failure,
// returning what was stored so far.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Expense, error) {
	created := make([]*Expense, 0, len(params))

	for _, p := range params {
		e, err := s.Create(ctx, p)
		if err != nil {
			return created, err
		}

		created = append(created, e)
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id string, u Update) (*Expense, error) {
	return s.repo.UpdateExpense(ctx, id, u)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Expense, error) {
	return s.repo.UpdateExpense(ctx, id, Update{Status: &status})
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteExpense(ctx, id)
}
