package payroll

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/calc"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

var ErrNotFound = errors.New("payroll run not found")

type Status string

const (
	StatusDraft     Status = "draft"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
)

// Run is the pay computed for every active employee over one pay period.
type Run struct {
	record.Base

	PayPeriodStart time.Time              `json:"pay_period_start"`
	PayPeriodEnd   time.Time              `json:"pay_period_end"`
	PayDate        time.Time              `json:"pay_date"`
	Employees      []calc.PayrollEmployee `json:"employees"`
	TotalGrossPay  decimal.Decimal        `json:"total_gross_pay"`
	TotalNetPay    decimal.Decimal        `json:"total_net_pay"`
	TotalTaxes     decimal.Decimal        `json:"total_taxes"`
	Status         Status                 `json:"status"`
}

func (r *Run) sumTotals() {
	r.TotalGrossPay = decimal.Zero
	r.TotalNetPay = decimal.Zero
	r.TotalTaxes = decimal.Zero

	for _, e := range r.Employees {
		r.TotalGrossPay = r.TotalGrossPay.Add(e.GrossPay)
		r.TotalNetPay = r.TotalNetPay.Add(e.NetPay)
		r.TotalTaxes = r.TotalTaxes.Add(e.Taxes())
	}
}

type Update struct {
	Status  *Status
	PayDate *time.Time
}

func (u Update) Apply(r *Run) {
	if u.Status != nil {
		r.Status = *u.Status
	}

	if u.PayDate != nil {
		r.PayDate = *u.PayDate
	}
}
