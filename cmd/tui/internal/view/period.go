package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Period is a reporting range offered by PeriodPicker.
type Period int

const (
	PeriodThisMonth Period = iota
	PeriodLastMonth
	PeriodThisQuarter
	PeriodThisYear
	PeriodAll
	PeriodCustom
)

var periodLabels = map[Period]string{
	PeriodThisMonth:   "This Month",
	PeriodLastMonth:   "Last Month",
	PeriodThisQuarter: "This Quarter",
	PeriodThisYear:    "This Year",
	PeriodAll:         "All Time",
	PeriodCustom:      "Custom Range",
}

func (p Period) String() string {
	if s, ok := periodLabels[p]; ok {
		return s
	}

	return "Unknown"
}

// Range returns the first and last instant of the period around now. The
// bool is false for PeriodAll and PeriodCustom, which have no fixed range.
func (p Period) Range(now time.Time) (time.Time, time.Time, bool) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var start time.Time

	months := 1

	switch p {
	case PeriodThisMonth:
		start = monthStart
	case PeriodLastMonth:
		start = monthStart.AddDate(0, -1, 0)
	case PeriodThisQuarter:
		start = monthStart.AddDate(0, -(int(now.Month()-1) % 3), 0)
		months = 3
	case PeriodThisYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		months = 12
	default:
		return time.Time{}, time.Time{}, false
	}

	return start, start.AddDate(0, months, 0).Add(-time.Nanosecond), true
}

// PeriodSelectedMsg is sent once a range is chosen. Start and End are zero
// when All is set.
type PeriodSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// PeriodPicker lets the user pick a Period or type a custom range.
type PeriodPicker struct {
	selected Period
	custom   bool

	startInput textinput.Model
	endInput   textinput.Model
	onEnd      bool

	err error
}

func NewPeriodPicker(initial Period) PeriodPicker {
	newInput := func(prompt string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = "YYYY-MM-DD"
		ti.CharLimit = 10
		ti.Width = 12
		ti.Prompt = prompt

		return ti
	}

	return PeriodPicker{
		selected:   initial,
		startInput: newInput("From: "),
		endInput:   newInput("To:   "),
	}
}

// Choosing reports whether the picker shows the period list rather than the
// custom range inputs.
func (m PeriodPicker) Choosing() bool {
	return !m.custom
}

func (m *PeriodPicker) Reset() {
	m.custom = false
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.custom {
			return m.updateInputs(msg)
		}

		return m, nil
	}

	if m.custom {
		return m.updateCustom(keyMsg)
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.selected > PeriodThisMonth {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < PeriodCustom {
			m.selected++
		}
	case tea.KeyEnter:
		switch m.selected {
		case PeriodCustom:
			m.custom = true
			m.onEnd = false
			m.startInput.Focus()

			return m, textinput.Blink
		case PeriodAll:
			return m, func() tea.Msg { return PeriodSelectedMsg{All: true} }
		}

		start, end, _ := m.selected.Range(time.Now())

		return m, func() tea.Msg { return PeriodSelectedMsg{Start: start, End: end} }
	}

	return m, nil
}

func (m PeriodPicker) updateCustom(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.onEnd = !m.onEnd
		m.startInput.Blur()
		m.endInput.Blur()

		if m.onEnd {
			m.endInput.Focus()
		} else {
			m.startInput.Focus()
		}

		return m, textinput.Blink

	case "enter":
		start, err := time.ParseInLocation(time.DateOnly, m.startInput.Value(), time.Local)
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil
		}

		end, err := time.ParseInLocation(time.DateOnly, m.endInput.Value(), time.Local)
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil
		}

		if end.Before(start) {
			m.err = fmt.Errorf("end date is before start date")
			return m, nil
		}

		m.err = nil
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)

		return m, func() tea.Msg { return PeriodSelectedMsg{Start: start, End: end} }

	case "esc":
		m.Reset()
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m PeriodPicker) updateInputs(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	var start, end tea.Cmd

	m.startInput, start = m.startInput.Update(msg)
	m.endInput, end = m.endInput.Update(msg)

	return m, tea.Batch(start, end)
}

func (m PeriodPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.custom {
		return fmt.Sprintf(
			"Custom range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to go back)%s",
			m.startInput.View(), m.endInput.View(), errStr,
		)
	}

	s := "Select period:\n\n"

	for p := PeriodThisMonth; p <= PeriodCustom; p++ {
		cursor := " "
		if m.selected == p {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, p)
	}

	return s + "\n(Enter to select, Esc to go back)" + errStr
}
