package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/ledger/internal/kv"
	"github.com/MrJamesThe3rd/ledger/internal/matching"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

const Key = "accounting_category_rules"

type Store struct {
	records *record.Collection[matching.Rule, *matching.Rule]
}

func New(medium kv.Medium) *Store {
	return &Store{records: record.New[matching.Rule](medium, Key, "rule")}
}

// FindMatch picks the longest pattern contained in text. Among equally long
// patterns the most recently created one wins.
func (s *Store) FindMatch(ctx context.Context, text string) (string, error) {
	text = strings.ToLower(text)

	var best *matching.Rule

	rules := s.records.All(ctx)
	for i := range rules {
		r := &rules[i]
		if !strings.Contains(text, strings.ToLower(r.Pattern)) {
			continue
		}

		if best == nil || len(r.Pattern) > len(best.Pattern) ||
			(len(r.Pattern) == len(best.Pattern) && !r.CreatedAt.Before(best.CreatedAt)) {
			best = r
		}
	}

	if best == nil {
		return "", nil
	}

	return best.Category, nil
}

func (s *Store) CreateRule(ctx context.Context, pattern, category string) (*matching.Rule, error) {
	r, err := s.records.Create(ctx, matching.Rule{Pattern: pattern, Category: category})
	if err != nil {
		return nil, fmt.Errorf("creating rule: %w", err)
	}

	return &r, nil
}

func (s *Store) ListRules(ctx context.Context) ([]*matching.Rule, error) {
	all := s.records.All(ctx)

	rules := make([]*matching.Rule, len(all))
	for i := range all {
		rules[i] = &all[i]
	}

	return rules, nil
}

func (s *Store) DeleteRule(ctx context.Context, id string) (bool, error) {
	removed, err := s.records.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting rule: %w", err)
	}

	return removed, nil
}
