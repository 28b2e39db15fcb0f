package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/customer"
	"github.com/MrJamesThe3rd/ledger/internal/http/render"
)

type Handler struct {
	svc *customer.Service
}

func NewHandler(svc *customer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createCustomerRequest struct {
	Name         string          `json:"name" validate:"required"`
	Email        string          `json:"email" validate:"required,email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	ZipCode      string          `json:"zip_code"`
	TaxID        string          `json:"tax_id"`
	PaymentTerms string          `json:"payment_terms"`
	CreditLimit  decimal.Decimal `json:"credit_limit" validate:"gte=0"`
	Balance      decimal.Decimal `json:"balance"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), customer.CreateParams{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		TaxID:        req.TaxID,
		PaymentTerms: req.PaymentTerms,
		CreditLimit:  req.CreditLimit,
		Balance:      req.Balance,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, customers)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err, customer.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, c)
}

type updateCustomerRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Email        *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string          `json:"phone,omitempty"`
	Address      *string          `json:"address,omitempty"`
	City         *string          `json:"city,omitempty"`
	State        *string          `json:"state,omitempty"`
	ZipCode      *string          `json:"zip_code,omitempty"`
	TaxID        *string          `json:"tax_id,omitempty"`
	PaymentTerms *string          `json:"payment_terms,omitempty"`
	CreditLimit  *decimal.Decimal `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	Balance      *decimal.Decimal `json:"balance,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), customer.Update{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		TaxID:        req.TaxID,
		PaymentTerms: req.PaymentTerms,
		CreditLimit:  req.CreditLimit,
		Balance:      req.Balance,
	})
	if err != nil {
		render.Error(w, err, customer.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
