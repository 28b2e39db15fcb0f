package employee

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/employee"
	"github.com/MrJamesThe3rd/ledger/internal/http/render"
)

type Handler struct {
	svc *employee.Service
}

func NewHandler(svc *employee.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type taxInfoRequest struct {
	FederalAllowances     int             `json:"federal_allowances" validate:"gte=0"`
	StateAllowances       int             `json:"state_allowances" validate:"gte=0"`
	AdditionalWithholding decimal.Decimal `json:"additional_withholding" validate:"gte=0"`
}

func (t taxInfoRequest) domain() employee.TaxInfo {
	return employee.TaxInfo{
		FederalAllowances:     t.FederalAllowances,
		StateAllowances:       t.StateAllowances,
		AdditionalWithholding: t.AdditionalWithholding,
	}
}

type createEmployeeRequest struct {
	Name         string                `json:"name" validate:"required"`
	Email        string                `json:"email" validate:"required,email"`
	Phone        string                `json:"phone"`
	Position     string                `json:"position"`
	Department   string                `json:"department"`
	HireDate     render.DateOnly       `json:"hire_date" validate:"required"`
	Salary       decimal.Decimal       `json:"salary" validate:"gte=0"`
	PayType      employee.PayType      `json:"pay_type" validate:"omitempty,oneof=salary hourly commission"`
	PayFrequency employee.PayFrequency `json:"pay_frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
	Status       employee.Status       `json:"status" validate:"omitempty,oneof=active inactive"`
	TaxInfo      taxInfoRequest        `json:"tax_info"`
	BankInfo     employee.BankInfo     `json:"bank_info"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), employee.CreateParams{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Position:     req.Position,
		Department:   req.Department,
		HireDate:     req.HireDate.Time(),
		Salary:       req.Salary,
		PayType:      req.PayType,
		PayFrequency: req.PayFrequency,
		Status:       req.Status,
		TaxInfo:      req.TaxInfo.domain(),
		BankInfo:     req.BankInfo,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, e)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var status *employee.Status
	if s := r.URL.Query().Get("status"); s != "" {
		status = new(employee.Status(s))
	}

	employees, err := h.svc.List(r.Context(), status)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, employees)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err, employee.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, e)
}

type updateEmployeeRequest struct {
	Name         *string                `json:"name,omitempty" validate:"omitempty,min=1"`
	Email        *string                `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string                `json:"phone,omitempty"`
	Position     *string                `json:"position,omitempty"`
	Department   *string                `json:"department,omitempty"`
	HireDate     *render.DateOnly       `json:"hire_date,omitempty"`
	Salary       *decimal.Decimal       `json:"salary,omitempty" validate:"omitempty,gte=0"`
	PayType      *employee.PayType      `json:"pay_type,omitempty" validate:"omitempty,oneof=salary hourly commission"`
	PayFrequency *employee.PayFrequency `json:"pay_frequency,omitempty" validate:"omitempty,oneof=weekly biweekly monthly"`
	Status       *employee.Status       `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	TaxInfo      *taxInfoRequest        `json:"tax_info,omitempty"`
	BankInfo     *employee.BankInfo     `json:"bank_info,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateEmployeeRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u := employee.Update{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Position:     req.Position,
		Department:   req.Department,
		HireDate:     req.HireDate.TimePtr(),
		Salary:       req.Salary,
		PayType:      req.PayType,
		PayFrequency: req.PayFrequency,
		Status:       req.Status,
		BankInfo:     req.BankInfo,
	}

	if req.TaxInfo != nil {
		u.TaxInfo = new(req.TaxInfo.domain())
	}

	e, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		render.Error(w, err, employee.ErrNotFound)
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
