package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/importer/statement"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Categories interface {
	SuggestFor(ctx context.Context, texts ...string) (string, error)
}

type Expenses interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

type Service struct {
	parsers    map[Bank]Parser
	categories Categories
	expenses   Expenses
}

func NewService(categories Categories, expenses Expenses) *Service {
	return &Service{
		parsers: map[Bank]Parser{
			BankCGD:     statement.NewParser(statement.CGD),
			BankGeneric: statement.NewParser(statement.Generic),
		},
		categories: categories,
		expenses:   expenses,
	}
}

// Duplicate is a draft that looks like an expense already on record: same
// day, amount and description.
type Duplicate struct {
	Draft    expense.CreateParams `json:"draft"`
	Existing *expense.Expense     `json:"existing"`
}

type Result struct {
	Drafts         []expense.CreateParams
	Duplicates     []Duplicate
	SkippedCredits int
}

// Import turns the money-out lines of a bank statement into pending expense
// drafts. Nothing is stored; drafts that duplicate stored expenses are set
// apart for review.
func (s *Service) Import(ctx context.Context, bank Bank, r io.Reader) (*Result, error) {
	parser, ok := s.parsers[bank]
	if !ok {
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	lines, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s statement: %w", bank, err)
	}

	res := &Result{}

	var debits []statement.Line

	for _, l := range lines {
		if l.Direction != statement.Debit {
			res.SkippedCredits++
			continue
		}

		debits = append(debits, l)
	}

	if len(debits) == 0 {
		return res, nil
	}

	existing, err := s.existingIn(ctx, debits)
	if err != nil {
		return nil, err
	}

	for _, l := range debits {
		draft, err := s.draft(ctx, bank, l)
		if err != nil {
			return nil, err
		}

		if match, found := existing[keyOf(l.Date, l.Amount, l.Description)]; found {
			res.Duplicates = append(res.Duplicates, Duplicate{Draft: draft, Existing: match})
			continue
		}

		res.Drafts = append(res.Drafts, draft)
	}

	return res, nil
}

func (s *Service) draft(ctx context.Context, bank Bank, l statement.Line) (expense.CreateParams, error) {
	category := expense.CategoryOther

	if s.categories != nil {
		suggested, err := s.categories.SuggestFor(ctx, l.Description)
		if err != nil {
			return expense.CreateParams{}, fmt.Errorf("suggesting category: %w", err)
		}

		if suggested != "" {
			category = suggested
		}
	}

	return expense.CreateParams{
		Description:   l.Description,
		Category:      category,
		Amount:        l.Amount,
		Date:          l.Date,
		Vendor:        l.Description,
		PaymentMethod: expense.PaymentBankTransfer,
		Status:        expense.StatusPending,
		Notes:         fmt.Sprintf("Imported from %s statement", bank),
	}, nil
}

type dupKey struct {
	Date        string
	Amount      string
	Description string
}

func keyOf(date time.Time, amount decimal.Decimal, description string) dupKey {
	return dupKey{
		Date:        date.Format(time.DateOnly),
		Amount:      amount.StringFixed(2),
		Description: description,
	}
}

// existingIn indexes the stored expenses dated within the lines' range.
func (s *Service) existingIn(ctx context.Context, lines []statement.Line) (map[dupKey]*expense.Expense, error) {
	if s.expenses == nil {
		return nil, nil
	}

	minDate, maxDate := dateRange(lines)

	stored, err := s.expenses.List(ctx, expense.ListFilter{StartDate: &minDate, EndDate: &maxDate})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	lookup := make(map[dupKey]*expense.Expense, len(stored))
	for _, e := range stored {
		lookup[keyOf(e.Date, e.Amount, e.Description)] = e
	}

	return lookup, nil
}

func dateRange(lines []statement.Line) (time.Time, time.Time) {
	minDate := lines[0].Date
	maxDate := lines[0].Date

	for _, l := range lines[1:] {
		if l.Date.Before(minDate) {
			minDate = l.Date
		}

		if l.Date.After(maxDate) {
			maxDate = l.Date
		}
	}

	return minDate, maxDate
}
