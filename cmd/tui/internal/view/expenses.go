package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateCreate
)

var (
	expenseStatusFilters = statusFilters(expense.Statuses)
	expensePeriods       = []Period{PeriodAll, PeriodThisMonth, PeriodLastMonth, PeriodThisYear}
)

// expenseForm holds the values bound to the new expense form.
type expenseForm struct {
	description   string
	vendor        string
	category      string
	amount        string
	date          string
	paymentMethod string
	taxDeductible bool
	receiptURL    string
}

func (f expenseForm) params() (expense.CreateParams, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(f.amount))
	if err != nil {
		return expense.CreateParams{}, fmt.Errorf("invalid amount: %w", err)
	}

	date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(f.date), time.Local)
	if err != nil {
		return expense.CreateParams{}, fmt.Errorf("invalid date: %w", err)
	}

	return expense.CreateParams{
		Description:   strings.TrimSpace(f.description),
		Vendor:        strings.TrimSpace(f.vendor),
		Category:      f.category,
		Amount:        amount,
		Date:          date,
		PaymentMethod: f.paymentMethod,
		TaxDeductible: f.taxDeductible,
		ReceiptURL:    strings.TrimSpace(f.receiptURL),
	}, nil
}

type ExpensesModel struct {
	expenses *expense.Service

	state     expensesState
	table     table.Model
	rows      []*expense.Expense
	statusIdx int
	periodIdx int

	form   *huh.Form
	values *expenseForm

	loading bool
	err     error
	status  string
}

func NewExpensesModel(svc *expense.Service) ExpensesModel {
	return ExpensesModel{
		expenses: svc,
		loading:  true,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Vendor", Width: 22},
			{Title: "Category", Width: 22},
			{Title: "Status", Width: 10},
			{Title: "Amount", Width: 12},
			{Title: "Receipt", Width: 8},
		}),
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	if m.state == expensesStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | a: approve | x: reject | s: status filter | d: period | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.rows = msg.expenses
		m.refreshTable()

		return m, nil

	case expenseSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == expensesStateCreate {
		return m.updateCreate(msg)
	}

	return m.updateBrowse(msg)
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(expenseStatusFilters)
			return m, m.loadCmd()
		case "d":
			m.periodIdx = (m.periodIdx + 1) % len(expensePeriods)
			return m, m.loadCmd()
		case "a":
			return m, m.setStatusCmd(expense.StatusApproved)
		case "x":
			return m, m.setStatusCmd(expense.StatusRejected)
		case "n":
			return m.startCreate()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) startCreate() (tea.Model, tea.Cmd) {
	m.values = &expenseForm{
		category:      expense.CategoryOther,
		paymentMethod: expense.PaymentMethods[1],
		date:          time.Now().Format(time.DateOnly),
	}

	required := func(name string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s cannot be empty", name)
			}

			return nil
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Description").Value(&m.values.description).Validate(required("description")),
			huh.NewInput().Title("Vendor").Value(&m.values.vendor),
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(expense.Categories...)...).
				Value(&m.values.category),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&m.values.amount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !d.IsPositive() {
						return errors.New("amount must be a positive number")
					}

					return nil
				}),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.values.date).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return errors.New("use YYYY-MM-DD")
					}

					return nil
				}),
			huh.NewSelect[string]().
				Title("Payment method").
				Options(huh.NewOptions(expense.PaymentMethods...)...).
				Value(&m.values.paymentMethod),
			huh.NewConfirm().Title("Tax deductible?").Value(&m.values.taxDeductible),
			huh.NewInput().Title("Receipt URL").Placeholder("https://...").Value(&m.values.receiptURL),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = expensesStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = expensesStateBrowse
	m.form = nil

	return m, m.createCmd(*m.values)
}

func (m ExpensesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	statusLabel := "All"
	if f := expenseStatusFilters[m.statusIdx]; f != nil {
		statusLabel = string(*f)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | [d] Period: %s",
		activeStyle(statusLabel), activeStyle(expensePeriods[m.periodIdx].String()))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		renderTable(m.table),
		faintStyle.Render(fmt.Sprintf("%d expenses, %s total", len(m.rows), FormatAmount(m.total()))),
	)

	if m.state == expensesStateCreate && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			panelStyle.Width(54).Render("New Expense\n\n"+m.form.View()))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ExpensesModel) total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range m.rows {
		total = total.Add(e.Amount)
	}

	return total
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, e := range m.rows {
		receipt := ""
		if e.Receipt {
			receipt = "yes"
		}

		vendor := e.Vendor
		if vendor == "" {
			vendor = e.Description
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			vendor,
			e.Category,
			string(e.Status),
			FormatAmount(e.Amount),
			receipt,
		})
	}

	m.table.SetRows(rows)
}

func (m ExpensesModel) filter() expense.ListFilter {
	filter := expense.ListFilter{Status: expenseStatusFilters[m.statusIdx]}

	if start, end, ok := expensePeriods[m.periodIdx].Range(time.Now()); ok {
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return filter
}

type expensesLoadedMsg struct {
	expenses []*expense.Expense
	err      error
}

type expenseSavedMsg struct {
	status string
	err    error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := m.expenses.List(ctx, filter)

		return expensesLoadedMsg{expenses: expenses, err: err}
	}
}

func (m ExpensesModel) setStatusCmd(status expense.Status) tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	e := m.rows[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.expenses.UpdateStatus(ctx, e.ID, status)

		return expenseSavedMsg{status: fmt.Sprintf("%s %s", e.Description, status), err: err}
	}
}

func (m ExpensesModel) createCmd(values expenseForm) tea.Cmd {
	return func() tea.Msg {
		params, err := values.params()
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.expenses.Create(ctx, params)
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		return expenseSavedMsg{status: "Created " + e.Description}
	}
}
