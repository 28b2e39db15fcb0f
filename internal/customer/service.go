package customer

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, id string, u Update) (*Customer, error)
	DeleteCustomer(ctx context.Context, id string) (bool, error)
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
	Address      string
	City         string
	State        string
	ZipCode      string
	TaxID        string
	PaymentTerms string
	CreditLimit  decimal.Decimal
	Balance      decimal.Decimal
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	c := &Customer{
		Name:         params.Name,
		Email:        params.Email,
		Phone:        params.Phone,
		Address:      params.Address,
		City:         params.City,
		State:        params.State,
		ZipCode:      params.ZipCode,
		TaxID:        params.TaxID,
		PaymentTerms: params.PaymentTerms,
		CreditLimit:  params.CreditLimit,
		Balance:      params.Balance,
	}

	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) Update(ctx context.Context, id string, u Update) (*Customer, error) {
	return s.repo.UpdateCustomer(ctx, id, u)
}

// Delete reports whether a customer was removed. Invoices that reference
// the customer are left as they are.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteCustomer(ctx, id)
}
