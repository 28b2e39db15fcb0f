package expense

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/http/render"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/categories", h.categories)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	Description   string          `json:"description" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	Date          render.DateOnly `json:"date" validate:"required"`
	Vendor        string          `json:"vendor"`
	PaymentMethod string          `json:"payment_method"`
	Status        expense.Status  `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	TaxDeductible bool            `json:"tax_deductible"`
	Receipt       bool            `json:"receipt"`
	ReceiptURL    string          `json:"receipt_url" validate:"omitempty,url"`
	Notes         string          `json:"notes"`
}

func (req createExpenseRequest) params() expense.CreateParams {
	return expense.CreateParams{
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount,
		Date:          req.Date.Time(),
		Vendor:        req.Vendor,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		TaxDeductible: req.TaxDeductible,
		Receipt:       req.Receipt,
		ReceiptURL:    req.ReceiptURL,
		Notes:         req.Notes,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, e)
}

// Filter reads the expense list filter from the query string. It is shared
// with the export endpoint.
func Filter(r *http.Request) (expense.ListFilter, error) {
	q := r.URL.Query()
	filter := expense.ListFilter{Category: q.Get("category")}

	if s := q.Get("status"); s != "" {
		filter.Status = new(expense.Status(s))
	}

	if s := q.Get("has_receipt"); s != "" {
		has, err := strconv.ParseBool(s)
		if err != nil {
			return filter, err
		}

		filter.HasReceipt = has
	}

	var err error

	if filter.StartDate, err = render.Date(r, "start_date"); err != nil {
		return filter, err
	}

	if filter.EndDate, err = render.Date(r, "end_date"); err != nil {
		return filter, err
	}

	filter.EndDate = render.EndOfDay(filter.EndDate)

	return filter, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := Filter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expenses, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, expenses)
}

type categoriesResponse struct {
	Categories     []string         `json:"categories"`
	PaymentMethods []string         `json:"payment_methods"`
	Statuses       []expense.Status `json:"statuses"`
}

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, categoriesResponse{
		Categories:     expense.Categories,
		PaymentMethods: expense.PaymentMethods,
		Statuses:       expense.Statuses,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err, expense.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, e)
}

type updateExpenseRequest struct {
	Description   *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,min=1"`
	Amount        *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Date          *render.DateOnly `json:"date,omitempty"`
	Vendor        *string          `json:"vendor,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	Status        *expense.Status  `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	TaxDeductible *bool            `json:"tax_deductible,omitempty"`
	Receipt       *bool            `json:"receipt,omitempty"`
	ReceiptURL    *string          `json:"receipt_url,omitempty" validate:"omitempty,url"`
	Notes         *string          `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), expense.Update{
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount,
		Date:          req.Date.TimePtr(),
		Vendor:        req.Vendor,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		TaxDeductible: req.TaxDeductible,
		Receipt:       req.Receipt,
		ReceiptURL:    req.ReceiptURL,
		Notes:         req.Notes,
	})
	if err != nil {
		render.Error(w, err, expense.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, e)
}

type updateStatusRequest struct {
	Status expense.Status `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		render.Error(w, err, expense.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, e)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
