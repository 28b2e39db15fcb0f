package invoice

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/calc"
	"github.com/MrJamesThe3rd/ledger/internal/customer"
	"github.com/MrJamesThe3rd/ledger/internal/http/render"
	"github.com/MrJamesThe3rd/ledger/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
	now func() time.Time
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/next-number", h.nextNumber)
	r.Get("/options", h.options)
	r.Post("/mark-overdue", h.markOverdue)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type itemRequest struct {
	ID          string          `json:"id"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	Rate        decimal.Decimal `json:"rate" validate:"gte=0"`
	Taxable     bool            `json:"taxable"`
}

type createInvoiceRequest struct {
	CustomerID    string           `json:"customer_id" validate:"required"`
	CustomerName  string           `json:"customer_name"`
	InvoiceNumber string           `json:"invoice_number"`
	Date          render.DateOnly  `json:"date" validate:"required"`
	DueDate       *render.DateOnly `json:"due_date,omitempty"`
	Items         []itemRequest    `json:"items" validate:"required,min=1,dive"`
	TaxRate       decimal.Decimal  `json:"tax_rate" validate:"gte=0,lte=1"`
	TaxPercent    *decimal.Decimal `json:"tax_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	Status        invoice.Status   `json:"status" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	Notes         string           `json:"notes"`
	PaymentTerms  string           `json:"payment_terms"`
	Currency      invoice.Currency `json:"currency" validate:"omitempty,oneof=USD EUR GBP CAD"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]invoice.ItemParams, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, invoice.ItemParams{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Taxable:     it.Taxable,
		})
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		InvoiceNumber: req.InvoiceNumber,
		Date:          req.Date.Time(),
		DueDate:       req.DueDate.TimePtr(),
		Items:         items,
		TaxRate:       taxRate(req.TaxRate, req.TaxPercent),
		Status:        req.Status,
		Notes:         req.Notes,
		PaymentTerms:  req.PaymentTerms,
		Currency:      req.Currency,
	})
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		writeError(w, err)

		return
	}

	render.JSON(w, http.StatusCreated, inv)
}

// taxRate prefers a percentage as typed in a form (8.5) over a fraction.
func taxRate(rate decimal.Decimal, percent *decimal.Decimal) decimal.Decimal {
	if percent != nil {
		return calc.RateFromPercent(*percent)
	}

	return rate
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, invoice.ErrDuplicateNumber) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	render.Error(w, err, invoice.ErrNotFound)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoice.ListFilter{
		CustomerID: r.URL.Query().Get("customer_id"),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(invoice.Status(s))
	}

	var err error

	if filter.StartDate, err = render.Date(r, "start_date"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if filter.EndDate, err = render.Date(r, "end_date"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter.EndDate = render.EndOfDay(filter.EndDate)

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, invoices)
}

type nextNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}

func (h *Handler) nextNumber(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, nextNumberResponse{InvoiceNumber: h.svc.NextNumber(r.Context())})
}

type optionsResponse struct {
	Statuses     []invoice.Status   `json:"statuses"`
	Currencies   []invoice.Currency `json:"currencies"`
	PaymentTerms []string           `json:"payment_terms"`
}

func (h *Handler) options(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, optionsResponse{
		Statuses:     invoice.Statuses,
		Currencies:   invoice.Currencies,
		PaymentTerms: invoice.PaymentTerms,
	})
}

type markOverdueResponse struct {
	Marked   int                `json:"marked"`
	Invoices []*invoice.Invoice `json:"invoices"`
}

func (h *Handler) markOverdue(w http.ResponseWriter, r *http.Request) {
	marked, err := h.svc.MarkOverdue(r.Context(), h.now())
	if err != nil {
		render.Error(w, err)
		return
	}

	if marked == nil {
		marked = []*invoice.Invoice{}
	}

	render.JSON(w, http.StatusOK, markOverdueResponse{Marked: len(marked), Invoices: marked})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err, invoice.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, inv)
}

type updateInvoiceRequest struct {
	CustomerID    *string           `json:"customer_id,omitempty" validate:"omitempty,min=1"`
	CustomerName  *string           `json:"customer_name,omitempty"`
	InvoiceNumber *string           `json:"invoice_number,omitempty" validate:"omitempty,min=1"`
	Date          *render.DateOnly  `json:"date,omitempty"`
	DueDate       *render.DateOnly  `json:"due_date,omitempty"`
	Items         *[]itemRequest    `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	TaxRate       *decimal.Decimal  `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	TaxPercent    *decimal.Decimal  `json:"tax_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	Status        *invoice.Status   `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	Notes         *string           `json:"notes,omitempty"`
	PaymentTerms  *string           `json:"payment_terms,omitempty"`
	Currency      *invoice.Currency `json:"currency,omitempty" validate:"omitempty,oneof=USD EUR GBP CAD"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateInvoiceRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u := invoice.Update{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		InvoiceNumber: req.InvoiceNumber,
		Date:          req.Date.TimePtr(),
		DueDate:       req.DueDate.TimePtr(),
		TaxRate:       req.TaxRate,
		Status:        req.Status,
		Notes:         req.Notes,
		PaymentTerms:  req.PaymentTerms,
		Currency:      req.Currency,
	}

	if req.Items != nil {
		items := make([]invoice.Item, 0, len(*req.Items))
		for _, it := range *req.Items {
			items = append(items, invoice.Item{
				ID:          it.ID,
				Description: it.Description,
				Quantity:    it.Quantity,
				Rate:        it.Rate,
				Taxable:     it.Taxable,
			})
		}

		u.Items = &items
	}

	if req.TaxPercent != nil {
		u.TaxRate = new(calc.RateFromPercent(*req.TaxPercent))
	}

	inv, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, inv)
}

type updateStatusRequest struct {
	Status invoice.Status `json:"status" validate:"required,oneof=draft sent paid overdue cancelled"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		render.Error(w, err, invoice.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, inv)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
