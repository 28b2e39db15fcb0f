// Package statement reads bank statement CSV exports into dated debit and
// credit lines.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/ledger/internal/encoding"
)

type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Line is one movement. Amount is always positive; Direction says which way
// the money went.
type Line struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Direction   Direction
}

// Parser auto-detects which of its format's profiles a file uses by matching
// column headers.
type Parser struct {
	format Format
}

func NewParser(format Format) *Parser {
	return &Parser{format: format}
}

func (p *Parser) Parse(r io.Reader) ([]Line, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = p.format.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := p.detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching %s format found", p.format.Name)
	}

	return p.parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

type colIndex map[string]int

func (p *Parser) detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range p.format.Profiles {
			if matchesProfile(&p.format.Profiles[i], cols) {
				return &p.format.Profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a parseable date or a non-zero amount
// (footers, page markers). headerRowNum is only used in error messages.
func (p *Parser) parseRows(profile *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Line, error) {
	dateIdx := cols[profile.DateCol]
	descIdx := cols[profile.DescCol]

	var lines []Line

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := p.parseDate(row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, dir, ok := p.parseMovement(profile, cols, row)
		if !ok {
			continue
		}

		lines = append(lines, Line{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Direction:   dir,
		})
	}

	return lines, nil
}

func (p *Parser) parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range p.format.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func (p *Parser) parseMovement(profile *Profile, cols colIndex, row []string) (decimal.Decimal, Direction, bool) {
	switch profile.AmountMode {
	case amountSingle:
		return p.parseSigned(row, cols[profile.AmountCol])
	case amountSplit:
		return p.parseSplit(row, cols[profile.DebitCol], cols[profile.CreditCol])
	}

	return decimal.Zero, "", false
}

func (p *Parser) parseSigned(row []string, idx int) (decimal.Decimal, Direction, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, "", false
	}

	amount, err := parseAmount(s, p.format.DecimalComma)
	if err != nil || amount.IsZero() {
		return decimal.Zero, "", false
	}

	if amount.IsNegative() {
		return amount.Neg(), Debit, true
	}

	return amount, Credit, true
}

func (p *Parser) parseSplit(row []string, debitIdx, creditIdx int) (decimal.Decimal, Direction, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		amount, err := parseAmount(s, p.format.DecimalComma)
		if err == nil && !amount.IsZero() {
			return amount.Abs(), Debit, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		amount, err := parseAmount(s, p.format.DecimalComma)
		if err == nil && !amount.IsZero() {
			return amount.Abs(), Credit, true
		}
	}

	return decimal.Zero, "", false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
