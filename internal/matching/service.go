package matching

import (
	"context"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, text string) (string, error)
	CreateRule(ctx context.Context, pattern, category string) (*Rule, error)
	ListRules(ctx context.Context) ([]*Rule, error)
	DeleteRule(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest rule pattern found in text,
// or "" when no rule matches.
func (s *Service) Suggest(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, text)
}

// SuggestFor tries each text in order and returns the first suggestion.
func (s *Service) SuggestFor(ctx context.Context, texts ...string) (string, error) {
	for _, text := range texts {
		category, err := s.Suggest(ctx, text)
		if err != nil {
			return "", err
		}

		if category != "" {
			return category, nil
		}
	}

	return "", nil
}

// Learn remembers that text containing pattern belongs to category.
func (s *Service) Learn(ctx context.Context, pattern, category string) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	return s.repo.CreateRule(ctx, pattern, category)
}

func (s *Service) Rules(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}

func (s *Service) Forget(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteRule(ctx, id)
}
