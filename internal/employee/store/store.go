package store

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/ledger/internal/employee"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

const Key = "accounting_employees"

type Store struct {
	records *record.Collection[employee.Employee, *employee.Employee]
}

func New(medium kv.Medium) *Store {
	return &Store{records: record.New[employee.Employee](medium, Key, "emp")}
}

func (s *Store) CreateEmployee(ctx context.Context, e *employee.Employee) error {
	created, err := s.records.Create(ctx, *e)
	if err != nil {
		return fmt.Errorf("creating employee: %w", err)
	}

	*e = created

	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := s.records.Get(ctx, id)
	if !ok {
		return nil, employee.ErrNotFound
	}

	return &e, nil
}

func (s *Store) ListEmployees(ctx context.Context, status *employee.Status) ([]*employee.Employee, error) {
	all := s.records.All(ctx)

	employees := make([]*employee.Employee, 0, len(all))

	for i := range all {
		if status == nil || all[i].Status == *status {
			employees = append(employees, &all[i])
		}
	}

	return employees, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, u employee.Update) (*employee.Employee, error) {
	e, ok, err := s.records.Update(ctx, id, u.Apply)
	if err != nil {
		return nil, fmt.Errorf("updating employee: %w", err)
	}

	if !ok {
		return nil, employee.ErrNotFound
	}

	return &e, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	removed, err := s.records.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting employee: %w", err)
	}

	return removed, nil
}
