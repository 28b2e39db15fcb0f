package http

import (
	"github.com/MrJamesThe3rd/ledger/internal/app"
	"github.com/MrJamesThe3rd/ledger/internal/http/customer"
	"github.com/MrJamesThe3rd/ledger/internal/http/employee"
	"github.com/MrJamesThe3rd/ledger/internal/http/expense"
	"github.com/MrJamesThe3rd/ledger/internal/http/export"
	"github.com/MrJamesThe3rd/ledger/internal/http/importcsv"
	"github.com/MrJamesThe3rd/ledger/internal/http/invoice"
	"github.com/MrJamesThe3rd/ledger/internal/http/matching"
	"github.com/MrJamesThe3rd/ledger/internal/http/payroll"
	"github.com/MrJamesThe3rd/ledger/internal/http/report"
)

// NewHandlers builds one handler per resource from the services. Exports
// requested into a named directory are written below exportDir.
func NewHandlers(svc *app.Services, exportDir string) Handlers {
	return Handlers{
		Customers: customer.NewHandler(svc.Customers),
		Invoices:  invoice.NewHandler(svc.Invoices),
		Expenses:  expense.NewHandler(svc.Expenses),
		Employees: employee.NewHandler(svc.Employees),
		Payroll:   payroll.NewHandler(svc.Payroll),
		Reports:   report.NewHandler(svc.Reports),
		Matching:  matching.NewHandler(svc.Matching),
		Import:    importcsv.NewHandler(svc.Import, svc.Expenses),
		Export:    export.NewHandler(svc.Export, exportDir),
	}
}
