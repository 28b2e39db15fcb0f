// Package app assembles the services over one storage medium.
package app

import (
	"github.com/MrJamesThe3rd/ledger/internal/customer"
	customerStore "github.com/MrJamesThe3rd/ledger/internal/customer/store"
	"github.com/MrJamesThe3rd/ledger/internal/employee"
	employeeStore "github.com/MrJamesThe3rd/ledger/internal/employee/store"
	"github.com/MrJamesThe3rd/ledger/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/ledger/internal/expense/store"
	"github.com/MrJamesThe3rd/ledger/internal/export"
	"github.com/MrJamesThe3rd/ledger/internal/importer"
	"github.com/MrJamesThe3rd/ledger/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/ledger/internal/invoice/store"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
	"github.com/MrJamesThe3rd/ledger/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/ledger/internal/matching/store"
	"github.com/MrJamesThe3rd/ledger/internal/payroll"
	payrollStore "github.com/MrJamesThe3rd/ledger/internal/payroll/store"
	"github.com/MrJamesThe3rd/ledger/internal/report"
)

type Services struct {
	Customers *customer.Service
	Invoices  *invoice.Service
	Expenses  *expense.Service
	Employees *employee.Service
	Payroll   *payroll.Service
	Reports   *report.Service
	Matching  *matching.Service
	Import    *importer.Service
	Export    *export.Service
}

func New(medium kv.Medium, receipts export.Receipts) *Services {
	var (
		customers = customer.NewService(customerStore.New(medium))
		invoices  = invoice.NewService(invoiceStore.New(medium), customers)
		expenses  = expense.NewService(expenseStore.New(medium))
		employees = employee.NewService(employeeStore.New(medium))
		rules     = matching.NewService(matchingStore.New(medium))
	)

	return &Services{
		Customers: customers,
		Invoices:  invoices,
		Expenses:  expenses,
		Employees: employees,
		Payroll:   payroll.NewService(payrollStore.New(medium), employees),
		Reports:   report.NewService(invoices, expenses, employees),
		Matching:  rules,
		Import:    importer.NewService(rules, expenses),
		Export:    export.NewService(expenses, receipts),
	}
}
