package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateBankSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateReview
	importStateResult
)

// ImportModel turns a bank statement into expenses. New drafts start
// selected, likely duplicates start unselected.
type ImportModel struct {
	expenses *expense.Service
	importer *importer.Service

	state        importState
	filePicker   filepicker.Model
	selectedBank importer.Bank
	bankCursor   int

	drafts   []draftItem
	selected map[int]bool
	review   list.Model
	skipped  int

	status string
	err    error
}

func NewImportModel(expenses *expense.Service, imp *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt", ".tsv"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		expenses:   expenses,
		importer:   imp,
		filePicker: fp,
		selected:   make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateReview {
		return "Space: toggle | a: all | n: none | Enter: import selected | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateBankSelect:
			return m.updateBankSelect(msg)
		case importStateReview:
			return m.updateReview(msg)
		}

	case importResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err

			return m, nil
		}

		m.loadReview(msg.result)

		if len(m.drafts) == 0 {
			m.state = importStateResult
			m.status = fmt.Sprintf("Nothing to import (%d credits skipped).", m.skipped)

			return m, nil
		}

		m.state = importStateReview

		return m, nil

	case confirmResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err == nil {
			m.status = fmt.Sprintf("Imported %d expenses.", msg.count)
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateReview, importStateResult:
		m.state = importStateBankSelect
		m.drafts = nil
		m.selected = make(map[int]bool)
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateBankSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.bankCursor > 0 {
			m.bankCursor--
		}
	case tea.KeyDown:
		if m.bankCursor < len(importer.Banks)-1 {
			m.bankCursor++
		}
	case tea.KeyEnter:
		m.selectedBank = importer.Banks[m.bankCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.review.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.drafts {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.drafts {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.confirmCmd()
	}

	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)

	return m, cmd
}

func (m *ImportModel) loadReview(res *importer.Result) {
	m.skipped = res.SkippedCredits
	m.drafts = make([]draftItem, 0, len(res.Drafts)+len(res.Duplicates))
	m.selected = make(map[int]bool)

	for _, d := range res.Drafts {
		m.selected[len(m.drafts)] = true
		m.drafts = append(m.drafts, draftItem{params: d, index: len(m.drafts)})
	}

	for _, d := range res.Duplicates {
		m.drafts = append(m.drafts, draftItem{params: d.Draft, existing: d.Existing, index: len(m.drafts)})
	}

	items := make([]list.Item, len(m.drafts))
	for i, d := range m.drafts {
		items[i] = d
	}

	m.review = list.New(items, draftDelegate{selected: m.selected}, 90, 20)
	m.review.Title = fmt.Sprintf("%s statement: %d new, %d possible duplicates",
		m.selectedBank, len(res.Drafts), len(res.Duplicates))
	m.review.SetShowStatusBar(false)
	m.review.SetFilteringEnabled(false)
	m.review.SetShowHelp(false)
}

func (m ImportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case importStateBankSelect:
		return style.Render(m.viewBankSelect())
	case importStateFilePick:
		return style.Render(fmt.Sprintf("Select statement (%s):\n\n%s", m.selectedBank, m.filePicker.View()))
	case importStateImporting:
		return style.Render(m.status)
	case importStateReview:
		return style.Render(m.review.View() + "\n" + faintStyle.Render(m.ShortHelp()))
	case importStateResult:
		if m.err != nil {
			return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
		}

		return style.Render(successStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) viewBankSelect() string {
	s := "Select bank:\n\n"

	for i, bank := range importer.Banks {
		cursor := " "
		if i == m.bankCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, bank)
	}

	return s
}

type importResultMsg struct {
	result *importer.Result
	err    error
}

type confirmResultMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	bank := m.selectedBank

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := m.importer.Import(ctx, bank, f)

		return importResultMsg{result: res, err: err}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	var params []expense.CreateParams

	for i, d := range m.drafts {
		if m.selected[i] {
			params = append(params, d.params)
		}
	}

	return func() tea.Msg {
		if len(params) == 0 {
			return confirmResultMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		created, err := m.expenses.CreateBatch(ctx, params)

		return confirmResultMsg{count: len(created), err: err}
	}
}

type draftItem struct {
	params   expense.CreateParams
	existing *expense.Expense
	index    int
}

func (i draftItem) FilterValue() string { return i.params.Description }

type draftDelegate struct {
	selected map[int]bool
}

func (d draftDelegate) Height() int                             { return 2 }
func (d draftDelegate) Spacing() int                            { return 0 }
func (d draftDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d draftDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(draftItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if d.selected[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	line := fmt.Sprintf("%s%s %s  %10s  %-14s %s",
		cursor, checkbox,
		FormatDate(item.params.Date),
		FormatAmount(item.params.Amount),
		item.params.Category,
		item.params.Description,
	)

	detail := faintStyle.Render("      new")
	if item.existing != nil {
		detail = errorStyle.Render(fmt.Sprintf("      matches %s (%s, %s)",
			item.existing.ID, item.existing.Vendor, item.existing.Status))
	}

	if index == m.Index() {
		line = activeStyle(line)
	}

	fmt.Fprintf(w, "%s\n%s", line, detail)
}
