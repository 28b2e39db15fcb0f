package store

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/ledger/internal/kv"
	"github.com/MrJamesThe3rd/ledger/internal/payroll"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

const Key = "accounting_payroll_runs"

type Store struct {
	records *record.Collection[payroll.Run, *payroll.Run]
}

func New(medium kv.Medium) *Store {
	return &Store{records: record.New[payroll.Run](medium, Key, "run")}
}

func (s *Store) CreateRun(ctx context.Context, r *payroll.Run) error {
	created, err := s.records.Create(ctx, *r)
	if err != nil {
		return fmt.Errorf("creating payroll run: %w", err)
	}

	*r = created

	return nil
}

func (s *Store) GetRun(ctx context.Context, id string) (*payroll.Run, error) {
	r, ok := s.records.Get(ctx, id)
	if !ok {
		return nil, payroll.ErrNotFound
	}

	return &r, nil
}

func (s *Store) ListRuns(ctx context.Context) ([]*payroll.Run, error) {
	all := s.records.All(ctx)

	runs := make([]*payroll.Run, len(all))
	for i := range all {
		runs[i] = &all[i]
	}

	return runs, nil
}

func (s *Store) UpdateRun(ctx context.Context, id string, u payroll.Update) (*payroll.Run, error) {
	r, ok, err := s.records.Update(ctx, id, u.Apply)
	if err != nil {
		return nil, fmt.Errorf("updating payroll run: %w", err)
	}

	if !ok {
		return nil, payroll.ErrNotFound
	}

	return &r, nil
}
