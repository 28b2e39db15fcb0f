package store

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/MrJamesThe3rd/ledger/internal/invoice"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

const (
	Key         = "accounting_invoices"
	SequenceKey = "accounting_invoice_sequence"
)

type Store struct {
	records  *record.Collection[invoice.Invoice, *invoice.Invoice]
	sequence *record.Sequence
}

func New(medium kv.Medium) *Store {
	return &Store{
		records:  record.New[invoice.Invoice](medium, Key, "inv").WithGuard(uniqueNumber),
		sequence: record.NewSequence(medium, SequenceKey),
	}
}

// uniqueNumber keeps invoice numbers unique across the collection. Blank
// numbers are not checked.
func uniqueNumber(candidate invoice.Invoice, others []invoice.Invoice) error {
	if candidate.InvoiceNumber == "" {
		return nil
	}

	for _, other := range others {
		if other.InvoiceNumber == candidate.InvoiceNumber {
			return fmt.Errorf("%w: %s", invoice.ErrDuplicateNumber, candidate.InvoiceNumber)
		}
	}

	return nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	created, err := s.records.Create(ctx, *inv)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	*inv = created

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, ok := s.records.Get(ctx, id)
	if !ok {
		return nil, invoice.ErrNotFound
	}

	return &inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	all := s.records.All(ctx)

	invoices := make([]*invoice.Invoice, 0, len(all))

	for i := range all {
		if filter.Match(&all[i]) {
			invoices = append(invoices, &all[i])
		}
	}

	return invoices, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, id string, u invoice.Update) (*invoice.Invoice, error) {
	inv, ok, err := s.records.Update(ctx, id, u.Apply)
	if err != nil {
		return nil, fmt.Errorf("updating invoice: %w", err)
	}

	if !ok {
		return nil, invoice.ErrNotFound
	}

	return &inv, nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) (bool, error) {
	removed, err := s.records.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting invoice: %w", err)
	}

	return removed, nil
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// NextInvoiceNumber is one more than the largest trailing number among the
// stored invoice numbers. Two callers can get the same answer; use
// ReserveInvoiceNumber to hand numbers out.
func (s *Store) NextInvoiceNumber(ctx context.Context) string {
	return FormatNumber(s.maxNumber(ctx) + 1)
}

// ReserveInvoiceNumber advances the persisted invoice sequence past every
// stored number and returns the result.
func (s *Store) ReserveInvoiceNumber(ctx context.Context) (string, error) {
	n, err := s.sequence.Next(ctx, s.maxNumber(ctx))
	if err != nil {
		return "", fmt.Errorf("advancing invoice sequence: %w", err)
	}

	return FormatNumber(n), nil
}

func (s *Store) maxNumber(ctx context.Context) int {
	highest := 0

	for _, inv := range s.records.All(ctx) {
		m := trailingDigits.FindStringSubmatch(inv.InvoiceNumber)
		if m == nil {
			continue
		}

		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		highest = max(highest, n)
	}

	return highest
}

func FormatNumber(n int) string {
	return fmt.Sprintf("INV-%03d", n)
}
