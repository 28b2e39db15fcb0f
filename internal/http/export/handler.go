package export

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/export"
	"github.com/MrJamesThe3rd/ledger/internal/http/render"
)

var errOutputDir = errors.New("output_dir must be a relative path without '..' segments")

type Handler struct {
	svc  *export.Service
	root string
}

// NewHandler serves exports. A requested output_dir is resolved below root;
// with an empty root only scratch directories are used.
func NewHandler(svc *export.Service, root string) *Handler {
	return &Handler{svc: svc, root: root}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	StartDate *render.DateOnly `json:"start_date,omitempty"`
	EndDate   *render.DateOnly `json:"end_date,omitempty"`
	Status    *expense.Status  `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	OutputDir string           `json:"output_dir,omitempty"`
}

func (req exportRequest) filter() expense.ListFilter {
	return expense.ListFilter{
		Status:    req.Status,
		StartDate: req.StartDate.TimePtr(),
		EndDate:   req.EndDate.TimePtr(),
	}
}

type itemResponse struct {
	Expense  *expense.Expense `json:"expense"`
	FileName string           `json:"file_name,omitempty"`
}

type exportMetadataResponse struct {
	Items   []itemResponse `json:"items"`
	Summary string         `json:"summary"`
}

// outputDir resolves a requested directory below the handler's root.
func (h *Handler) outputDir(requested string) (string, error) {
	if h.root == "" || !filepath.IsLocal(requested) {
		return "", fmt.Errorf("%w: %q", errOutputDir, requested)
	}

	return filepath.Join(h.root, requested), nil
}

// metadata downloads receipts into output_dir below the export root, or into
// a scratch directory that is removed afterwards when none is given.
func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dir string

	if req.OutputDir != "" {
		d, err := h.outputDir(req.OutputDir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		dir = d
	} else {
		tmpDir, err := os.MkdirTemp("", "ledger-export-*")
		if err != nil {
			render.Error(w, err)
			return
		}
		defer os.RemoveAll(tmpDir)

		dir = tmpDir
	}

	items, err := h.svc.Export(r.Context(), req.filter(), dir)
	if err != nil {
		render.Error(w, err)
		return
	}

	resp := exportMetadataResponse{
		Items:   make([]itemResponse, 0, len(items)),
		Summary: h.svc.Summary(items),
	}

	for _, item := range items {
		ir := itemResponse{Expense: item.Expense}
		if item.FilePath != "" {
			ir.FileName = filepath.Base(item.FilePath)
		}

		resp.Items = append(resp.Items, ir)
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.OutputDir != "" {
		http.Error(w, "output_dir is not supported for downloads", http.StatusBadRequest)
		return
	}

	tmpDir, err := os.MkdirTemp("", "ledger-export-*")
	if err != nil {
		render.Error(w, err)
		return
	}
	defer os.RemoveAll(tmpDir)

	items, err := h.svc.Export(r.Context(), req.filter(), tmpDir)
	if err != nil {
		render.Error(w, err)
		return
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "summary.txt"), []byte(h.svc.Summary(items)), 0o644); err != nil {
		render.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"expenses_%s.zip\"", time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err = filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, _ := filepath.Rel(tmpDir, path)

		zf, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
