package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledger/internal/calc"
	"github.com/MrJamesThe3rd/ledger/internal/invoice"
)

// invoiceFilters are cycled with "s"; nil shows every status.
var invoiceFilters = statusFilters(invoice.Statuses)

type InvoicesModel struct {
	invoices *invoice.Service

	table     table.Model
	rows      []*invoice.Invoice
	filterIdx int

	loading bool
	err     error
	status  string
}

func NewInvoicesModel(svc *invoice.Service) InvoicesModel {
	return InvoicesModel{
		invoices: svc,
		loading:  true,
		table: newTable([]table.Column{
			{Title: "Number", Width: 10},
			{Title: "Customer", Width: 24},
			{Title: "Date", Width: 12},
			{Title: "Due", Width: 12},
			{Title: "Status", Width: 10},
			{Title: "Total", Width: 16},
		}),
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	return "Esc: back | s: status filter | t: mark sent | p: mark paid | o: flag overdue | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoicesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.rows = msg.invoices
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.filterIdx = (m.filterIdx + 1) % len(invoiceFilters)
			return m, m.loadCmd()
		case "t":
			return m, m.setStatusCmd(invoice.StatusSent)
		case "p":
			return m, m.setStatusCmd(invoice.StatusPaid)
		case "o":
			return m, m.markOverdueCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	label := "All"
	if f := invoiceFilters[m.filterIdx]; f != nil {
		label = string(*f)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render("Filter: [s] Status: "+activeStyle(label)),
		renderTable(m.table),
		faintStyle.Render(m.ShortHelp()),
	)

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, inv := range m.rows {
		rows = append(rows, table.Row{
			inv.InvoiceNumber,
			inv.CustomerName,
			FormatDate(inv.Date),
			FormatDate(inv.DueDate),
			string(inv.Status),
			calc.FormatCurrency(inv.Total, string(inv.Currency)),
		})
	}

	m.table.SetRows(rows)
}

func (m InvoicesModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

type invoicesLoadedMsg struct {
	invoices []*invoice.Invoice
	err      error
}

type invoiceActionMsg struct {
	status string
	err    error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	filter := invoice.ListFilter{Status: invoiceFilters[m.filterIdx]}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.invoices.List(ctx, filter)

		return invoicesLoadedMsg{invoices: invoices, err: err}
	}
}

func (m InvoicesModel) setStatusCmd(status invoice.Status) tea.Cmd {
	inv := m.selected()
	if inv == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.invoices.UpdateStatus(ctx, inv.ID, status)

		return invoiceActionMsg{status: fmt.Sprintf("%s marked %s", inv.InvoiceNumber, status), err: err}
	}
}

func (m InvoicesModel) markOverdueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		marked, err := m.invoices.MarkOverdue(ctx, time.Now())

		return invoiceActionMsg{status: fmt.Sprintf("%d invoices flagged overdue", len(marked)), err: err}
	}
}
