package customer

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/record"
)

var ErrNotFound = errors.New("customer not found")

// Customer is someone invoices are issued to. A positive Balance means the
// customer owes money.
type Customer struct {
	record.Base

	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	ZipCode      string          `json:"zip_code"`
	TaxID        string          `json:"tax_id,omitempty"`
	PaymentTerms string          `json:"payment_terms"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	Balance      decimal.Decimal `json:"balance"`
}

type Update struct {
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	TaxID        *string
	PaymentTerms *string
	CreditLimit  *decimal.Decimal
	Balance      *decimal.Decimal
}

func (u Update) Apply(c *Customer) {
	if u.Name != nil {
		c.Name = *u.Name
	}

	if u.Email != nil {
		c.Email = *u.Email
	}

	if u.Phone != nil {
		c.Phone = *u.Phone
	}

	if u.Address != nil {
		c.Address = *u.Address
	}

	if u.City != nil {
		c.City = *u.City
	}

	if u.State != nil {
		c.State = *u.State
	}

	if u.ZipCode != nil {
		c.ZipCode = *u.ZipCode
	}

	if u.TaxID != nil {
		c.TaxID = *u.TaxID
	}

	if u.PaymentTerms != nil {
		c.PaymentTerms = *u.PaymentTerms
	}

	if u.CreditLimit != nil {
		c.CreditLimit = *u.CreditLimit
	}

	if u.Balance != nil {
		c.Balance = *u.Balance
	}
}
