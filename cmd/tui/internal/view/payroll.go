package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledger/internal/payroll"
)

type payrollState int

const (
	payrollStatePeriod payrollState = iota
	payrollStatePreview
	payrollStateDone
)

// PayrollModel previews a run for a chosen period and stores it on request.
// Hourly employees are previewed without hours and therefore at zero pay.
type PayrollModel struct {
	payroll *payroll.Service

	state  payrollState
	picker PeriodPicker
	params payroll.PreviewParams
	run    *payroll.Run
	table  table.Model

	err    error
	status string
}

func NewPayrollModel(svc *payroll.Service) PayrollModel {
	return PayrollModel{
		payroll: svc,
		picker:  NewPeriodPicker(PeriodThisMonth),
		table: newTable([]table.Column{
			{Title: "Employee", Width: 24},
			{Title: "Gross", Width: 12},
			{Title: "Federal", Width: 10},
			{Title: "State", Width: 10},
			{Title: "Soc. Sec.", Width: 10},
			{Title: "Medicare", Width: 10},
			{Title: "Net", Width: 12},
		}),
	}
}

func (m PayrollModel) Title() string { return "Payroll" }

func (m PayrollModel) ShortHelp() string {
	if m.state == payrollStatePreview {
		return "Esc: change period | c: create run"
	}

	return "Esc: back"
}

func (m PayrollModel) Init() tea.Cmd {
	return nil
}

func (m PayrollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		if msg.All {
			m.picker.err = fmt.Errorf("payroll needs a bounded period")
			return m, nil
		}

		m.params = payroll.PreviewParams{
			PayPeriodStart: msg.Start,
			PayPeriodEnd:   msg.End,
			PayDate:        msg.End,
		}

		return m, m.previewCmd()

	case payrollPreviewMsg:
		m.err = msg.err
		m.run = msg.run
		m.state = payrollStatePreview
		m.refreshTable()

		return m, nil

	case payrollCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.state = payrollStateDone
		m.status = fmt.Sprintf("Created run %s paying %s net on %s",
			msg.run.ID, FormatAmount(msg.run.TotalNetPay), FormatDate(msg.run.PayDate))

		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.state == payrollStatePeriod {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m PayrollModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case payrollStatePeriod:
		if msg.Type == tea.KeyEsc && m.picker.Choosing() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case payrollStatePreview:
		switch msg.String() {
		case "esc":
			m.state = payrollStatePeriod
			m.err = nil
			m.picker.Reset()

			return m, nil
		case "c":
			if m.run != nil && len(m.run.Employees) > 0 {
				return m, m.createCmd()
			}
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd

	case payrollStateDone:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m PayrollModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case payrollStatePeriod:
		return style.Render(m.picker.View())

	case payrollStateDone:
		return style.Render(successStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	if len(m.run.Employees) == 0 {
		return style.Render("No active employees.\n\n(Esc to go back)")
	}

	totals := fmt.Sprintf("Gross %s | Taxes %s | Net %s",
		activeStyle(FormatAmount(m.run.TotalGrossPay)),
		activeStyle(FormatAmount(m.run.TotalTaxes)),
		activeStyle(FormatAmount(m.run.TotalNetPay)),
	)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Pay period %s to %s", FormatDate(m.run.PayPeriodStart), FormatDate(m.run.PayPeriodEnd)),
		"",
		renderTable(m.table),
		totals,
		faintStyle.Render(m.ShortHelp()),
	))
}

func (m *PayrollModel) refreshTable() {
	if m.run == nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(m.run.Employees))
	for _, e := range m.run.Employees {
		rows = append(rows, table.Row{
			e.Name,
			FormatAmount(e.GrossPay),
			FormatAmount(e.FederalTax),
			FormatAmount(e.StateTax),
			FormatAmount(e.SocialSecurity),
			FormatAmount(e.Medicare),
			FormatAmount(e.NetPay),
		})
	}

	m.table.SetRows(rows)
}

type payrollPreviewMsg struct {
	run *payroll.Run
	err error
}

type payrollCreatedMsg struct {
	run *payroll.Run
	err error
}

func (m PayrollModel) previewCmd() tea.Cmd {
	params := m.params

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		run, err := m.payroll.Preview(ctx, params)

		return payrollPreviewMsg{run: run, err: err}
	}
}

func (m PayrollModel) createCmd() tea.Cmd {
	params := m.params

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		run, err := m.payroll.Run(ctx, params)

		return payrollCreatedMsg{run: run, err: err}
	}
}
