package payroll

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/http/render"
	"github.com/MrJamesThe3rd/ledger/internal/payroll"
)

type Handler struct {
	svc *payroll.Service
}

func NewHandler(svc *payroll.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/preview", h.preview)
	r.Get("/runs", h.list)
	r.Post("/runs", h.run)
	r.Get("/runs/{id}", h.get)
	r.Patch("/runs/{id}/status", h.updateStatus)
}

type periodRequest struct {
	PayPeriodStart render.DateOnly            `json:"pay_period_start" validate:"required"`
	PayPeriodEnd   render.DateOnly            `json:"pay_period_end" validate:"required,gtefield=PayPeriodStart"`
	PayDate        render.DateOnly            `json:"pay_date" validate:"required"`
	Hours          map[string]decimal.Decimal `json:"hours"`
}

func (req periodRequest) params() payroll.PreviewParams {
	return payroll.PreviewParams{
		PayPeriodStart: req.PayPeriodStart.Time(),
		PayPeriodEnd:   req.PayPeriodEnd.Time(),
		PayDate:        req.PayDate.Time(),
		Hours:          req.Hours,
	}
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req periodRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run, err := h.svc.Preview(r.Context(), req.params())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, run)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	var req periodRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run, err := h.svc.Run(r.Context(), req.params())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, run)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	runs, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, runs)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err, payroll.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, run)
}

type updateStatusRequest struct {
	Status payroll.Status `json:"status" validate:"required,oneof=draft processed paid"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		render.Error(w, err, payroll.ErrNotFound)
		return
	}

	render.JSON(w, http.StatusOK, run)
}
