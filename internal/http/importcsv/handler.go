package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/http/render"
	"github.com/MrJamesThe3rd/ledger/internal/importer"
)

type Handler struct {
	importSvc  *importer.Service
	expenseSvc *expense.Service
}

func NewHandler(importSvc *importer.Service, expenseSvc *expense.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		expenseSvc: expenseSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/banks", h.banks)
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type draftDTO struct {
	Description   string          `json:"description" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	Date          render.DateOnly `json:"date" validate:"required"`
	Vendor        string          `json:"vendor"`
	PaymentMethod string          `json:"payment_method"`
	Status        expense.Status  `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	TaxDeductible bool            `json:"tax_deductible"`
	Notes         string          `json:"notes"`
}

func toDraftDTO(p expense.CreateParams) draftDTO {
	return draftDTO{
		Description:   p.Description,
		Category:      p.Category,
		Amount:        p.Amount,
		Date:          render.DateOnly(p.Date),
		Vendor:        p.Vendor,
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
		TaxDeductible: p.TaxDeductible,
		Notes:         p.Notes,
	}
}

func (d draftDTO) params() expense.CreateParams {
	return expense.CreateParams{
		Description:   d.Description,
		Category:      d.Category,
		Amount:        d.Amount,
		Date:          d.Date.Time(),
		Vendor:        d.Vendor,
		PaymentMethod: d.PaymentMethod,
		Status:        d.Status,
		TaxDeductible: d.TaxDeductible,
		Notes:         d.Notes,
	}
}

type duplicateDTO struct {
	Incoming draftDTO         `json:"incoming"`
	Existing *expense.Expense `json:"existing"`
}

type importResponse struct {
	Drafts         []draftDTO     `json:"drafts"`
	Duplicates     []duplicateDTO `json:"duplicates"`
	SkippedCredits int            `json:"skipped_credits"`
}

type confirmRequest struct {
	Drafts []draftDTO `json:"drafts" validate:"required,min=1,dive"`
}

type confirmResponse struct {
	Imported int                `json:"imported"`
	Expenses []*expense.Expense `json:"expenses"`
}

func (h *Handler) banks(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, importer.Banks)
}

// importCSV parses an uploaded statement into drafts. Nothing is stored until
// the client confirms the drafts it wants to keep.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		bank = importer.BankGeneric
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), bank, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := importResponse{
		Drafts:         make([]draftDTO, 0, len(result.Drafts)),
		Duplicates:     make([]duplicateDTO, 0, len(result.Duplicates)),
		SkippedCredits: result.SkippedCredits,
	}

	for _, d := range result.Drafts {
		resp.Drafts = append(resp.Drafts, toDraftDTO(d))
	}

	for _, d := range result.Duplicates {
		resp.Duplicates = append(resp.Duplicates, duplicateDTO{
			Incoming: toDraftDTO(d.Draft),
			Existing: d.Existing,
		})
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]expense.CreateParams, 0, len(req.Drafts))
	for _, d := range req.Drafts {
		params = append(params, d.params())
	}

	created, err := h.expenseSvc.CreateBatch(r.Context(), params)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, confirmResponse{Imported: len(created), Expenses: created})
}
