package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
	"github.com/MrJamesThe3rd/ledger/internal/export"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStatePeriod exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	export *export.Service

	state  exportState
	picker PeriodPicker
	filter expense.ListFilter

	form     *huh.Form
	path     *string
	receipts *bool
	spinner  spinner.Model

	summary string
	err     error
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		export:   svc,
		picker:   NewPeriodPicker(PeriodThisMonth),
		path:     new("./exports"),
		receipts: new(false),
		spinner:  s,
	}
}

func (m ExportModel) Title() string { return "Export Expenses" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sel, ok := msg.(PeriodSelectedMsg); ok {
		m.filter = expense.ListFilter{}
		if !sel.All {
			m.filter.StartDate = &sel.Start
			m.filter.EndDate = &sel.End
		}

		m.form = m.pathForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	switch m.state {
	case exportStatePeriod:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.picker.Choosing() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case exportStatePath:
		return m.updatePath(msg)

	case exportStateExporting:
		if res, ok := msg.(exportResultMsg); ok {
			m.state = exportStateResult
			m.err = res.err
			m.summary = res.summary

			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case exportStateResult:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = exportStatePeriod
		m.picker.Reset()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if *m.receipts {
		m.filter.HasReceipt = true
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.exportCmd(m.filter, *m.path))
}

func (m ExportModel) pathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Description("Created when missing").
				Placeholder("./exports").
				Value(m.path),
			huh.NewConfirm().
				Title("Only expenses with receipts?").
				Value(m.receipts),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case exportStatePeriod:
		return style.Render(m.picker.View())

	case exportStatePath:
		return style.Render(m.form.View())

	case exportStateExporting:
		return style.Render(fmt.Sprintf("%s Downloading receipts...", m.spinner.View()))

	case exportStateResult:
		if m.err != nil {
			return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
		}

		return style.Render(lipgloss.JoinVertical(lipgloss.Left,
			successStyle.Bold(true).Render("Export complete"),
			"",
			m.summary,
			faintStyle.Render("(Esc to go back)"),
		))
	}

	return ""
}

type exportResultMsg struct {
	summary string
	err     error
}

func (m ExportModel) exportCmd(filter expense.ListFilter, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		items, err := m.export.Export(ctx, filter, path)
		if err != nil {
			return exportResultMsg{err: err}
		}

		if len(items) == 0 {
			return exportResultMsg{summary: "No expenses in this period."}
		}

		return exportResultMsg{summary: m.export.Summary(items)}
	}
}
