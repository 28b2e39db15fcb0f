package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/calc"
	"github.com/MrJamesThe3rd/ledger/internal/expense"
)

// maxNameAttempts bounds the numeric suffixes tried for one receipt name.
const maxNameAttempts = 1000

// Item is an exported expense and the local path of its receipt, if any.
type Item struct {
	Expense  *expense.Expense
	FilePath string
}

type Expenses interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

// Receipts describes the document server holding receipt files. Token is
// only sent to URLs on BaseURL's scheme and host.
type Receipts struct {
	BaseURL string
	Token   string
}

// Service collects expenses and their receipts for the accountant.
type Service struct {
	expenses Expenses
	client   *http.Client
	apiToken string
	origin   *url.URL
}

func NewService(expenses Expenses, receipts Receipts) *Service {
	s := &Service{
		expenses: expenses,
		client:   &http.Client{Timeout: 30 * time.Second},
		apiToken: receipts.Token,
	}

	if u, err := url.Parse(receipts.BaseURL); err == nil && u.Host != "" {
		s.origin = u
	}

	return s
}

// authorize attaches the token when target is on the receipts server.
func (s *Service) authorize(req *http.Request) {
	if s.apiToken == "" || s.origin == nil {
		return
	}

	if !strings.EqualFold(req.URL.Scheme, s.origin.Scheme) || !strings.EqualFold(req.URL.Host, s.origin.Host) {
		return
	}

	req.Header.Set("Authorization", "Token "+s.apiToken)
}

// Export downloads the receipts of expenses matching filter into outputDir.
// Expenses without a receipt URL are returned with an empty FilePath.
func (s *Service) Export(ctx context.Context, filter expense.ListFilter, outputDir string) ([]Item, error) {
	expenses, err := s.expenses.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(expenses))

	for _, e := range expenses {
		item := Item{Expense: e}

		if e.ReceiptURL != "" {
			path, err := s.downloadReceipt(ctx, e, outputDir)
			if err != nil {
				return nil, fmt.Errorf("downloading receipt for expense %s: %w", e.ID, err)
			}

			item.FilePath = path
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *Service) downloadReceipt(ctx context.Context, e *expense.Expense, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.ReceiptURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, e.ReceiptURL)
	}

	f, err := createUnique(dir, filename(resp, e))
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return f.Name(), nil
}

// createUnique creates name in dir without replacing an existing file,
// appending _2, _3 and so on before the extension until one is free.
func createUnique(dir, name string) (*os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 1; i <= maxNameAttempts; i++ {
		candidate := name
		if i > 1 {
			candidate = stem + "_" + strconv.Itoa(i) + ext
		}

		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		return f, err
	}

	return nil, fmt.Errorf("no free name for %s in %s", name, dir)
}

// filename prefers the server's Content-Disposition name and otherwise
// builds YYYYMMDD_Vendor.ext from the expense.
func filename(resp *http.Response, e *expense.Expense) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := strings.TrimLeft(safeName(filepath.Base(params["filename"]), true), "."); name != "" {
				return name
			}
		}
	}

	ext := ".pdf"

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			ext = exts[0]
		}
	}

	name := e.Vendor
	if name == "" {
		name = e.Description
	}

	return fmt.Sprintf("%s_%s%s", e.Date.Format("20060102"), safeName(name, false), ext)
}

// safeName replaces everything but ASCII letters, digits, '-' and '_' with
// '_'. Dots survive when keepDots is set.
func safeName(name string, keepDots bool) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == '.' && keepDots:
			return r
		}

		return '_'
	}, name)
}

// Summary renders one line per item, suitable for pasting into an email.
func (s *Service) Summary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		receipt := "No receipt"
		if item.FilePath != "" {
			receipt = filepath.Base(item.FilePath)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s\n",
			item.Expense.Date.Format("2006-01-02"),
			item.Expense.Vendor,
			item.Expense.Category,
			calc.FormatCurrency(item.Expense.Amount, "USD"),
			receipt,
		)
	}

	return sb.String()
}
