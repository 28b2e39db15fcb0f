package matching

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledger/internal/http/render"
	"github.com/MrJamesThe3rd/ledger/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Get("/", h.list)
	r.Post("/", h.learn)
	r.Delete("/{id}", h.forget)
}

type suggestResponse struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		http.Error(w, "text query parameter is required", http.StatusBadRequest)
		return
	}

	category, err := h.svc.Suggest(r.Context(), text)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, suggestResponse{Text: text, Category: category})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.Rules(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, rules)
}

type learnRequest struct {
	Pattern  string `json:"pattern" validate:"required"`
	Category string `json:"category" validate:"required"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Learn(r.Context(), req.Pattern, req.Category)
	if err != nil {
		if errors.Is(err, matching.ErrEmptyPattern) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		render.Error(w, err)

		return
	}

	render.JSON(w, http.StatusCreated, rule)
}

func (h *Handler) forget(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Forget(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
