package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledger/internal/calc"
	"github.com/MrJamesThe3rd/ledger/internal/report"
)

type DashboardModel struct {
	reports *report.Service

	summary *report.Summary
	loading bool
	err     error
}

func NewDashboardModel(svc *report.Service) DashboardModel {
	return DashboardModel{reports: svc, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		m.loading = false
		m.summary, m.err = msg.summary, msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	s := m.summary

	card := func(title, value, note string) string {
		return panelStyle.Width(26).Render(
			lipgloss.JoinVertical(lipgloss.Left, faintStyle.Render(title), activeStyle(value), faintStyle.Render(note)),
		)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Revenue", calc.FormatCurrency(s.Revenue, "USD"), FormatPercent(s.RevenueGrowth)+" vs last month"),
		card("Expenses", calc.FormatCurrency(s.Expenses, "USD"), FormatPercent(s.ExpenseGrowth)+" vs last month"),
		card("Net Income", calc.FormatCurrency(s.NetIncome, "USD"), FormatPercent(s.ProfitMargin)+" margin"),
		card("Outstanding", calc.FormatCurrency(s.OutstandingAmount, "USD"), fmt.Sprintf("%d invoices", s.OutstandingCount)),
	)

	var breakdown strings.Builder

	breakdown.WriteString("Expenses by category\n\n")

	for _, c := range s.ExpensesByCategory {
		fmt.Fprintf(&breakdown, "%-24s %12s  (%d)\n", c.Category, FormatAmount(c.Amount), c.Count)
	}

	var activity strings.Builder

	activity.WriteString("Recent activity\n\n")

	for _, a := range s.RecentActivity {
		sign := "-"
		if a.Type == report.ActivityIncome {
			sign = "+"
		}

		fmt.Fprintf(&activity, "%s  %s%-10s %s\n", FormatDate(a.Date), sign, FormatAmount(a.Amount), a.Description)
	}

	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("%s  |  %d active employees", s.Now.Format("January 2006"), s.ActiveEmployees),
	)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		cards,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Width(48).Render(breakdown.String()),
			panelStyle.Width(60).Render(activity.String()),
		),
	))
}

type summaryMsg struct {
	summary *report.Summary
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.reports.Summary(ctx, time.Now())

		return summaryMsg{summary: s, err: err}
	}
}
