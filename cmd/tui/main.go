package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledger/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/ledger/internal/app"
	"github.com/MrJamesThe3rd/ledger/internal/config"
	"github.com/MrJamesThe3rd/ledger/internal/export"
	"github.com/MrJamesThe3rd/ledger/internal/logging"
	"github.com/MrJamesThe3rd/ledger/internal/storage"
)

const logFile = "ledger-tui.log"

type menuEntry struct {
	key   string
	label string
	open  func(*app.Services) view.View
}

var menu = []menuEntry{
	{"1", "Dashboard", func(s *app.Services) view.View { return view.NewDashboardModel(s.Reports) }},
	{"2", "Invoices", func(s *app.Services) view.View { return view.NewInvoicesModel(s.Invoices) }},
	{"3", "Expenses", func(s *app.Services) view.View { return view.NewExpensesModel(s.Expenses) }},
	{"4", "Payroll", func(s *app.Services) view.View { return view.NewPayrollModel(s.Payroll) }},
	{"5", "Import Bank Statement", func(s *app.Services) view.View { return view.NewImportModel(s.Expenses, s.Import) }},
	{"6", "Export Expenses", func(s *app.Services) view.View { return view.NewExportModel(s.Export) }},
}

type model struct {
	services *app.Services
	current  view.View
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	if v, ok := next.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}

	for _, e := range menu {
		if e.key == msg.String() {
			m.current = e.open(m.services)
			return m, m.current.Init()
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.current != nil {
		return m.current.View()
	}

	s := lipgloss.NewStyle().Bold(true).Render("Ledger") + "\n\n"
	for _, e := range menu {
		s += fmt.Sprintf("%s. %s\n", e.key, e.label)
	}

	return lipgloss.NewStyle().Padding(2).Render(s + "\nq. Quit")
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "path", logFile, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	logging.NewTo(f, cfg.Log.Level, cfg.Log.Format)

	medium, closeStorage, err := storage.Open(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s storage: %v\n", cfg.Storage.Driver, err)
		os.Exit(1)
	}

	defer func() {
		if err := closeStorage(); err != nil {
			slog.Error("failed to close storage", "error", err)
		}
	}()

	services := app.New(medium, export.Receipts{BaseURL: cfg.Receipts.BaseURL, Token: cfg.Receipts.Token})

	p := tea.NewProgram(model{services: services}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		fmt.Fprintf(os.Stderr, "failed to run TUI: %v\n", err)
	}
}
