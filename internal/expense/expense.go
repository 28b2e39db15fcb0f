package expense

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/record"
)

var ErrNotFound = errors.New("expense not found")

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

const (
	CategoryOther       = "Other"
	PaymentBankTransfer = "Bank Transfer"
)

var Categories = []string{
	"Office Expenses",
	"Software",
	"Marketing",
	"Travel",
	"Utilities",
	"Meals & Entertainment",
	"Vehicle",
	"Professional Services",
	"Insurance",
	"Equipment",
	"Supplies",
	CategoryOther,
}

var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"Check",
	PaymentBankTransfer,
	"PayPal",
	"Other",
}

// Expense is money spent by the business. Receipt records whether a receipt
// exists; ReceiptURL is where it can be downloaded from.
type Expense struct {
	record.Base

	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Vendor        string          `json:"vendor"`
	PaymentMethod string          `json:"payment_method"`
	Status        Status          `json:"status"`
	TaxDeductible bool            `json:"tax_deductible"`
	Receipt       bool            `json:"receipt"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
	Notes         string          `json:"notes"`
}

type Update struct {
	Description   *string
	Category      *string
	Amount        *decimal.Decimal
	Date          *time.Time
	Vendor        *string
	PaymentMethod *string
	Status        *Status
	TaxDeductible *bool
	Receipt       *bool
	ReceiptURL    *string
	Notes         *string
}

func (u Update) Apply(e *Expense) {
	if u.Description != nil {
		e.Description = *u.Description
	}

	if u.Category != nil {
		e.Category = *u.Category
	}

	if u.Amount != nil {
		e.Amount = *u.Amount
	}

	if u.Date != nil {
		e.Date = *u.Date
	}

	if u.Vendor != nil {
		e.Vendor = *u.Vendor
	}

	if u.PaymentMethod != nil {
		e.PaymentMethod = *u.PaymentMethod
	}

	if u.Status != nil {
		e.Status = *u.Status
	}

	if u.TaxDeductible != nil {
		e.TaxDeductible = *u.TaxDeductible
	}

	if u.Receipt != nil {
		e.Receipt = *u.Receipt
	}

	if u.ReceiptURL != nil {
		e.ReceiptURL = *u.ReceiptURL
		e.Receipt = e.Receipt || e.ReceiptURL != ""
	}

	if u.Notes != nil {
		e.Notes = *u.Notes
	}
}
