package store

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/ledger/internal/customer"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

const Key = "accounting_customers"

type Store struct {
	records *record.Collection[customer.Customer, *customer.Customer]
}

func New(medium kv.Medium) *Store {
	return &Store{records: record.New[customer.Customer](medium, Key, "cust")}
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	created, err := s.records.Create(ctx, *c)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	*c = created

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	c, ok := s.records.Get(ctx, id)
	if !ok {
		return nil, customer.ErrNotFound
	}

	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	all := s.records.All(ctx)

	customers := make([]*customer.Customer, len(all))
	for i := range all {
		customers[i] = &all[i]
	}

	return customers, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, id string, u customer.Update) (*customer.Customer, error) {
	c, ok, err := s.records.Update(ctx, id, u.Apply)
	if err != nil {
		return nil, fmt.Errorf("updating customer: %w", err)
	}

	if !ok {
		return nil, customer.ErrNotFound
	}

	return &c, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) (bool, error) {
	removed, err := s.records.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting customer: %w", err)
	}

	return removed, nil
}
