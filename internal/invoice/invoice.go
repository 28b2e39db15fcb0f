package invoice

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/calc"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

var (
	ErrNotFound        = errors.New("invoice not found")
	ErrDuplicateNumber = errors.New("invoice number already in use")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
)

var Currencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCAD}

// PaymentTerms are the labels offered when issuing an invoice. Any label
// works; the first number in it is the number of days until due.
var PaymentTerms = []string{"Due on Receipt", "Net 15", "Net 30", "Net 60"}

// Item is one invoice line. Amount is derived from Quantity and Rate.
type Item struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Taxable     bool            `json:"taxable"`
}

// Invoice is a bill issued to a customer. TaxRate is a fraction between 0
// and 1.
type Invoice struct {
	record.Base

	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Date          time.Time       `json:"date"`
	DueDate       time.Time       `json:"due_date"`
	Items         []Item          `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Total         decimal.Decimal `json:"total"`
	Status        Status          `json:"status"`
	Notes         string          `json:"notes"`
	PaymentTerms  string          `json:"payment_terms"`
	Currency      Currency        `json:"currency"`
}

// Recalculate derives line amounts and totals from the items and tax rate.
func (inv *Invoice) Recalculate() {
	amounts := make([]decimal.Decimal, len(inv.Items))

	for i := range inv.Items {
		inv.Items[i].Amount = calc.LineAmount(inv.Items[i].Quantity, inv.Items[i].Rate)
		amounts[i] = inv.Items[i].Amount
	}

	totals := calc.InvoiceTotals(amounts, inv.TaxRate)
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
}

// DueFromTerms is Date plus the days named by PaymentTerms.
func (inv *Invoice) DueFromTerms() time.Time {
	return calc.AddDays(inv.Date, calc.PaymentTermsDays(inv.PaymentTerms))
}

// IsOutstanding reports whether the invoice still awaits payment.
func (inv *Invoice) IsOutstanding() bool {
	return inv.Status == StatusSent || inv.Status == StatusOverdue
}

// Update lists the fields that may change after creation. Items replace the
// whole item list.
type Update struct {
	CustomerID    *string
	CustomerName  *string
	InvoiceNumber *string
	Date          *time.Time
	DueDate       *time.Time
	Items         *[]Item
	TaxRate       *decimal.Decimal
	Status        *Status
	Notes         *string
	PaymentTerms  *string
	Currency      *Currency
}

// Apply changes inv and recomputes amounts and totals. A new Date or
// PaymentTerms moves the due date unless DueDate is set explicitly too.
func (u Update) Apply(inv *Invoice) {
	if u.CustomerID != nil {
		inv.CustomerID = *u.CustomerID
	}

	if u.CustomerName != nil {
		inv.CustomerName = *u.CustomerName
	}

	if u.InvoiceNumber != nil {
		inv.InvoiceNumber = *u.InvoiceNumber
	}

	if u.Date != nil {
		inv.Date = *u.Date
	}

	if u.Items != nil {
		inv.Items = AssignItemIDs(*u.Items)
	}

	if u.TaxRate != nil {
		inv.TaxRate = *u.TaxRate
	}

	if u.Status != nil {
		inv.Status = *u.Status
	}

	if u.Notes != nil {
		inv.Notes = *u.Notes
	}

	if u.PaymentTerms != nil {
		inv.PaymentTerms = *u.PaymentTerms
	}

	if u.Currency != nil {
		inv.Currency = *u.Currency
	}

	switch {
	case u.DueDate != nil:
		inv.DueDate = *u.DueDate
	case u.Date != nil || u.PaymentTerms != nil:
		inv.DueDate = inv.DueFromTerms()
	}

	inv.Recalculate()
}
