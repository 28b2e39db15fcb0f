package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=employee
type Repository interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context, status *Status) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, id string, u Update) (*Employee, error)
	DeleteEmployee(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	Email        string
	Phone        string
	Position     string
	Department   string
	HireDate     time.Time
	Salary       decimal.Decimal
	PayType      PayType
	PayFrequency PayFrequency
	Status       Status
	TaxInfo      TaxInfo
	BankInfo     BankInfo
}

// Create stores a new employee, active unless a status is given.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Employee, error) {
	e := &Employee{
		Name:         params.Name,
		Email:        params.Email,
		Phone:        params.Phone,
		Position:     params.Position,
		Department:   params.Department,
		HireDate:     params.HireDate,
		Salary:       params.Salary,
		PayType:      params.PayType,
		PayFrequency: params.PayFrequency,
		Status:       params.Status,
		TaxInfo:      params.TaxInfo,
		BankInfo:     params.BankInfo,
	}

	if e.Status == "" {
		e.Status = StatusActive
	}

	if e.PayType == "" {
		e.PayType = PayTypeSalary
	}

	if err := s.repo.CreateEmployee(ctx, e); err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

// List returns employees with the given status, or all of them when status
// is nil.
func (s *Service) List(ctx context.Context, status *Status) ([]*Employee, error) {
	return s.repo.ListEmployees(ctx, status)
}

func (s *Service) Active(ctx context.Context) ([]*Employee, error) {
	active := StatusActive
	return s.repo.ListEmployees(ctx, &active)
}

func (s *Service) Update(ctx context.Context, id string, u Update) (*Employee, error) {
	return s.repo.UpdateEmployee(ctx, id, u)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteEmployee(ctx, id)
}
