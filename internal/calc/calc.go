// Package calc holds the monetary arithmetic shared by invoices, payroll and
// reports. Every function is pure: results depend only on the arguments and
// are rounded to cents (half away from zero) at the final step only.
package calc

import (
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/ledger/internal/employee"
)

// Flat withholding rates applied to gross pay. This is an approximation,
// not a bracket-based tax engine.
var (
	FederalTaxRate     = decimal.RequireFromString("0.22")
	StateTaxRate       = decimal.RequireFromString("0.05")
	SocialSecurityRate = decimal.RequireFromString("0.062")
	MedicareRate       = decimal.RequireFromString("0.0145")
)

// DefaultPaymentTermsDays is used when a terms label carries no day count.
const DefaultPaymentTermsDays = 30

var hundred = decimal.NewFromInt(100)

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineAmount is quantity times rate, rounded to cents. Negative results are
// returned as-is.
func LineAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return Round2(quantity.Mul(rate))
}

type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// InvoiceTotals sums line amounts and applies taxRate, a fraction (0.085 for
// 8.5%). Total always equals Subtotal + TaxAmount exactly.
func InvoiceTotals(amounts []decimal.Decimal, taxRate decimal.Decimal) Totals {
	subtotal := Round2(decimal.Sum(decimal.Zero, amounts...))
	taxAmount := Round2(subtotal.Mul(taxRate))

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     Round2(subtotal.Add(taxAmount)),
	}
}

// RateFromPercent converts a percentage as typed by a user (8.5) into the
// fraction InvoiceTotals expects (0.085).
func RateFromPercent(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// PayrollEmployee is one employee's line in a payroll run.
type PayrollEmployee struct {
	EmployeeID      string              `json:"employee_id"`
	Name            string              `json:"name"`
	GrossPay        decimal.Decimal     `json:"gross_pay"`
	FederalTax      decimal.Decimal     `json:"federal_tax"`
	StateTax        decimal.Decimal     `json:"state_tax"`
	SocialSecurity  decimal.Decimal     `json:"social_security"`
	Medicare        decimal.Decimal     `json:"medicare"`
	OtherDeductions decimal.Decimal     `json:"other_deductions"`
	NetPay          decimal.Decimal     `json:"net_pay"`
	HoursWorked     decimal.NullDecimal `json:"hours_worked"`
}

// Taxes is the sum of the four statutory withholdings.
func (p PayrollEmployee) Taxes() decimal.Decimal {
	return decimal.Sum(p.FederalTax, p.StateTax, p.SocialSecurity, p.Medicare)
}

// PayrollWithholding applies the flat rates to grossPay. Each withholding is
// rounded on its own before the net is derived.
func PayrollWithholding(grossPay decimal.Decimal, e *employee.Employee) PayrollEmployee {
	p := PayrollEmployee{
		EmployeeID:      e.ID,
		Name:            e.Name,
		GrossPay:        Round2(grossPay),
		FederalTax:      Round2(grossPay.Mul(FederalTaxRate)),
		StateTax:        Round2(grossPay.Mul(StateTaxRate)),
		SocialSecurity:  Round2(grossPay.Mul(SocialSecurityRate)),
		Medicare:        Round2(grossPay.Mul(MedicareRate)),
		OtherDeductions: decimal.Zero,
	}

	p.NetPay = Round2(grossPay.Sub(p.Taxes()).Sub(p.OtherDeductions))

	return p
}

// GrossPay returns the pay for one period. Salaried employees get Salary as
// is (no proration by frequency); hourly employees get Salary × hours, or 0
// when hours are not known. Commission pay is not modelled and yields 0.
func GrossPay(e *employee.Employee, hoursWorked decimal.NullDecimal) decimal.Decimal {
	switch e.PayType {
	case employee.PayTypeSalary:
		return Round2(e.Salary)
	case employee.PayTypeHourly:
		if !hoursWorked.Valid {
			return decimal.Zero
		}

		return Round2(e.Salary.Mul(hoursWorked.Decimal))
	}

	return decimal.Zero
}

// ProfitMargin is (revenue - expenses) / revenue as a percentage, 0 when
// there is no revenue.
func ProfitMargin(revenue, expenses decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}

	return Round2(revenue.Sub(expenses).Div(revenue).Mul(hundred))
}

// GrowthRate is the percentage change from previous to current, 0 when
// previous is 0.
func GrowthRate(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}

	return Round2(current.Sub(previous).Div(previous).Mul(hundred))
}

// AddDays moves a date by whole calendar days in its own location.
func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}

var firstNumber = regexp.MustCompile(`\d+`)

// PaymentTermsDays extracts the day count from a label such as "Net 30".
// Labels without a number ("Due on Receipt") fall back to 30 days.
func PaymentTermsDays(label string) int {
	m := firstNumber.FindString(label)
	if m == "" {
		return DefaultPaymentTermsDays
	}

	n, err := strconv.Atoi(m)
	if err != nil {
		return DefaultPaymentTermsDays
	}

	return n
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount with its currency symbol and grouped
// digits, e.g. "$1,234.50" or "-$5.00". Unknown codes are printed as a
// prefix.
func FormatCurrency(amount decimal.Decimal, code string) string {
	rounded := Round2(amount)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	value := printer.Sprintf("%.2f", rounded.Abs().InexactFloat64())

	unit, err := currency.ParseISO(code)
	if err != nil {
		return sign + code + " " + value
	}

	return sign + printer.Sprint(currency.Symbol(unit)) + value
}
