package store

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

const Key = "accounting_expenses"

type Store struct {
	records *record.Collection[expense.Expense, *expense.Expense]
}

func New(medium kv.Medium) *Store {
	return &Store{records: record.New[expense.Expense](medium, Key, "exp")}
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	created, err := s.records.Create(ctx, *e)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	*e = created

	return nil
}

func (s *Store) GetExpense(ctx context.Context, id string) (*expense.Expense, error) {
	e, ok := s.records.Get(ctx, id)
	if !ok {
		return nil, expense.ErrNotFound
	}

	return &e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	all := s.records.All(ctx)

	expenses := make([]*expense.Expense, 0, len(all))

	for i := range all {
		if filter.Match(&all[i]) {
			expenses = append(expenses, &all[i])
		}
	}

	return expenses, nil
}

func (s *Store) UpdateExpense(ctx context.Context, id string, u expense.Update) (*expense.Expense, error) {
	e, ok, err := s.records.Update(ctx, id, u.Apply)
	if err != nil {
		return nil, fmt.Errorf("updating expense: %w", err)
	}

	if !ok {
		return nil, expense.ErrNotFound
	}

	return &e, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id string) (bool, error) {
	removed, err := s.records.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting expense: %w", err)
	}

	return removed, nil
}
