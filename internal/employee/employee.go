package employee

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/record"
)

var ErrNotFound = errors.New("employee not found")

// PayType decides how Salary is interpreted when computing gross pay.
type PayType string

const (
	PayTypeSalary     PayType = "salary"
	PayTypeHourly     PayType = "hourly"
	PayTypeCommission PayType = "commission"
)

type PayFrequency string

const (
	PayFrequencyWeekly   PayFrequency = "weekly"
	PayFrequencyBiweekly PayFrequency = "biweekly"
	PayFrequencyMonthly  PayFrequency = "monthly"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type TaxInfo struct {
	FederalAllowances     int             `json:"federal_allowances"`
	StateAllowances       int             `json:"state_allowances"`
	AdditionalWithholding decimal.Decimal `json:"additional_withholding"`
}

type BankInfo struct {
	RoutingNumber string `json:"routing_number"`
	AccountNumber string `json:"account_number"`
}

// Employee is a person on payroll. Salary is an hourly rate for hourly
// employees and a per-period amount otherwise.
type Employee struct {
	record.Base

	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Position     string          `json:"position"`
	Department   string          `json:"department"`
	HireDate     time.Time       `json:"hire_date"`
	Salary       decimal.Decimal `json:"salary"`
	PayType      PayType         `json:"pay_type"`
	PayFrequency PayFrequency    `json:"pay_frequency"`
	Status       Status          `json:"status"`
	TaxInfo      TaxInfo         `json:"tax_info"`
	BankInfo     BankInfo        `json:"bank_info"`
}

// Update lists the fields that may change after creation. Nil fields are
// left untouched; TaxInfo and BankInfo are replaced as a whole.
type Update struct {
	Name         *string
	Email        *string
	Phone        *string
	Position     *string
	Department   *string
	HireDate     *time.Time
	Salary       *decimal.Decimal
	PayType      *PayType
	PayFrequency *PayFrequency
	Status       *Status
	TaxInfo      *TaxInfo
	BankInfo     *BankInfo
}

func (u Update) Apply(e *Employee) {
	if u.Name != nil {
		e.Name = *u.Name
	}

	if u.Email != nil {
		e.Email = *u.Email
	}

	if u.Phone != nil {
		e.Phone = *u.Phone
	}

	if u.Position != nil {
		e.Position = *u.Position
	}

	if u.Department != nil {
		e.Department = *u.Department
	}

	if u.HireDate != nil {
		e.HireDate = *u.HireDate
	}

	if u.Salary != nil {
		e.Salary = *u.Salary
	}

	if u.PayType != nil {
		e.PayType = *u.PayType
	}

	if u.PayFrequency != nil {
		e.PayFrequency = *u.PayFrequency
	}

	if u.Status != nil {
		e.Status = *u.Status
	}

	if u.TaxInfo != nil {
		e.TaxInfo = *u.TaxInfo
	}

	if u.BankInfo != nil {
		e.BankInfo = *u.BankInfo
	}
}
