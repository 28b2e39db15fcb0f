package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledger/internal/http/render"
	"github.com/MrJamesThe3rd/ledger/internal/report"
)

type Handler struct {
	svc *report.Service
	now func() time.Time
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
}

// summary reports on the current month, or on the month containing the
// optional "date" query parameter.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	date, err := render.Date(r, "date")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if date != nil {
		now = *date
	}

	s, err := h.svc.Summary(r.Context(), now)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, s)
}
