package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle is one signed column ("-10,00" is money out).
	amountSingle amountMode = iota
	// amountSplit is separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one export format. Column names are
// compared after trimming spaces.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string
	DebitCol   string
	CreditCol  string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// Format is everything needed to read one bank's CSV exports.
type Format struct {
	Name string
	// Comma is the field separator.
	Comma rune
	// DecimalComma means "1.234,56" rather than "1,234.56".
	DecimalComma bool
	DateLayouts  []string
	// Profiles are tried in order; more specific ones come first.
	Profiles []Profile
}

// CGD reads Caixa Geral de Depósitos account, statement and card exports.
var CGD = Format{
	Name:         "cgd",
	Comma:        ';',
	DecimalComma: true,
	DateLayouts:  []string{"02-01-2006"},
	Profiles: []Profile{
		{
			Name:       "cartão",
			DateCol:    "Data",
			DescCol:    "Descrição",
			AmountMode: amountSplit,
			DebitCol:   "Débito",
			CreditCol:  "Crédito",
		},
		{
			Name:       "extrato",
			DateCol:    "Data mov.",
			DescCol:    "Descrição",
			AmountMode: amountSingle,
			AmountCol:  "Movimento",
		},
		{
			Name:       "conta",
			DateCol:    "Data mov.",
			DescCol:    "Descrição",
			AmountMode: amountSingle,
			AmountCol:  "Montante",
		},
	},
}

// Generic reads the comma-separated layout most US and UK banks offer.
var Generic = Format{
	Name:        "generic",
	Comma:       ',',
	DateLayouts: []string{"2006-01-02", "01/02/2006", "1/2/2006"},
	Profiles: []Profile{
		{
			Name:       "split",
			DateCol:    "Date",
			DescCol:    "Description",
			AmountMode: amountSplit,
			DebitCol:   "Debit",
			CreditCol:  "Credit",
		},
		{
			Name:       "signed",
			DateCol:    "Date",
			DescCol:    "Description",
			AmountMode: amountSingle,
			AmountCol:  "Amount",
		},
	},
}
