package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

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

type Handlers struct {
	Customers *customer.Handler
	Invoices  *invoice.Handler
	Expenses  *expense.Handler
	Employees *employee.Handler
	Payroll   *payroll.Handler
	Reports   *report.Handler
	Matching  *matching.Handler
	Import    *importcsv.Handler
	Export    *export.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		json := func(routes func(chi.Router)) func(chi.Router) {
			return func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				routes(r)
			}
		}

		r.Route("/customers", json(h.Customers.Routes))
		r.Route("/invoices", json(h.Invoices.Routes))
		r.Route("/expenses", json(h.Expenses.Routes))
		r.Route("/employees", json(h.Employees.Routes))
		r.Route("/payroll", json(h.Payroll.Routes))
		r.Route("/reports", h.Reports.Routes)
		r.Route("/matching", json(h.Matching.Routes))
		r.Route("/import", h.Import.Routes)
		r.Route("/export", json(h.Export.Routes))
	})

	return router
}
