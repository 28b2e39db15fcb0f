package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/calc"
	"github.com/MrJamesThe3rd/ledger/internal/employee"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payroll
type Repository interface {
	CreateRun(ctx context.Context, r *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context) ([]*Run, error)
	UpdateRun(ctx context.Context, id string, u Update) (*Run, error)
}

// Employees supplies the people a run pays.
type Employees interface {
	Active(ctx context.Context) ([]*employee.Employee, error)
}

type Service struct {
	repo      Repository
	employees Employees
}

func NewService(repo Repository, employees Employees) *Service {
	return &Service{repo: repo, employees: employees}
}

// PreviewParams describes a pay period. Hours maps employee ids to hours
// worked; hourly employees without an entry are paid 0.
type PreviewParams struct {
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	PayDate        time.Time
	Hours          map[string]decimal.Decimal
}

// Preview computes a draft run without storing it.
func (s *Service) Preview(ctx context.Context, params PreviewParams) (*Run, error) {
	active, err := s.employees.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active employees: %w", err)
	}

	r := &Run{
		PayPeriodStart: params.PayPeriodStart,
		PayPeriodEnd:   params.PayPeriodEnd,
		PayDate:        params.PayDate,
		Employees:      make([]calc.PayrollEmployee, 0, len(active)),
		Status:         StatusDraft,
	}

	for _, e := range active {
		var hours decimal.NullDecimal
		if h, ok := params.Hours[e.ID]; ok {
			hours = decimal.NewNullDecimal(h)
		}

		line := calc.PayrollWithholding(calc.GrossPay(e, hours), e)
		line.HoursWorked = hours

		r.Employees = append(r.Employees, line)
	}

	r.sumTotals()

	return r, nil
}

// Run computes and stores a draft run.
func (s *Service) Run(ctx context.Context, params PreviewParams) (*Run, error) {
	r, err := s.Preview(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateRun(ctx, r); err != nil {
		return nil, fmt.Errorf("creating payroll run: %w", err)
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Run, error) {
	return s.repo.GetRun(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Run, error) {
	return s.repo.ListRuns(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Run, error) {
	return s.repo.UpdateRun(ctx, id, Update{Status: &status})
}
