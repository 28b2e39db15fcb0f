package statement_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/ledger/internal/importer/statement"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_CGDConta(t *testing.T) {
	csv := `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JOHN DOE

Dados da conta
Saldo contabilístico;1.000,00 EUR

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;INSTITUTO GESTAO FINA;-588,74;48.825,46
09-01-2026;09-01-2026;TFI Wise;8.608,52;52.532,78
`

	lines, err := statement.NewParser(statement.CGD).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, date(2026, 1, 30), lines[0].Date)
	assert.Equal(t, "INSTITUTO GESTAO FINA", lines[0].Description)
	assert.Equal(t, "588.74", lines[0].Amount.StringFixed(2))
	assert.Equal(t, statement.Debit, lines[0].Direction)

	assert.Equal(t, "8608.52", lines[1].Amount.StringFixed(2))
	assert.Equal(t, statement.Credit, lines[1].Direction)
}

func TestParser_CGDExtrato(t *testing.T) {
	csv := `Consultar extrato - 15-02-2026 : 0000
Data mov. ;Data valor ;Origem ;Descrição ;Movimento ;Estorno ;Saldo contabilístico após movimento ;
13-02-2026;13-02-2026;"=""0003""";PAGAMENTO TSU ;-608,13;  ;41.393,66;
04-02-2026;04-02-2026;SIBS ;TFI Wise ;4.324,06;  ;51.302,85;
`

	lines, err := statement.NewParser(statement.CGD).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "PAGAMENTO TSU", lines[0].Description)
	assert.Equal(t, "608.13", lines[0].Amount.StringFixed(2))
	assert.Equal(t, statement.Debit, lines[0].Direction)
	assert.Equal(t, statement.Credit, lines[1].Direction)
}

func TestParser_CGDCartao(t *testing.T) {
	csv := `Consultar saldos e movimentos de cartões - 15-02-2026
Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-12-2025 ;14-12-2025 ;PA GONDOMAR         GONDOMAR ;64,00 ; ;
31-12-2025 ;29-12-2025 ;UBER   *TRIP             HELP.UBER.COMNL ;47,91 ; ;
16-12-2025 ;14-12-2025 ;REFUND AMAZON ;  ;25,00 ;
 ; ; ; ;Página 1/2 ;
`

	lines, err := statement.NewParser(statement.CGD).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, date(2025, 12, 16), lines[0].Date)
	assert.Equal(t, "64.00", lines[0].Amount.StringFixed(2))
	assert.Equal(t, statement.Debit, lines[0].Direction)

	assert.Equal(t, "UBER   *TRIP             HELP.UBER.COMNL", lines[1].Description)

	assert.Equal(t, "25.00", lines[2].Amount.StringFixed(2))
	assert.Equal(t, statement.Credit, lines[2].Direction)
}

func TestParser_Generic(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		wantLen int
		verify  func(t *testing.T, lines []statement.Line)
	}

	tests := []testCase{
		{
			name: "SignedAmounts",
			csv: `Date,Description,Amount,Balance
2024-03-04,"ADOBE *CREATIVE CLD","-54.99","1,945.01"
03/05/2024,CLIENT PAYMENT,"$1,200.00","3,145.01"
2024-03-06,STAPLES 0042,(23.10),"3,121.91"
`,
			wantLen: 3,
			verify: func(t *testing.T, lines []statement.Line) {
				assert.Equal(t, date(2024, 3, 4), lines[0].Date)
				assert.Equal(t, "54.99", lines[0].Amount.StringFixed(2))
				assert.Equal(t, statement.Debit, lines[0].Direction)

				assert.Equal(t, date(2024, 3, 5), lines[1].Date)
				assert.Equal(t, "1200.00", lines[1].Amount.StringFixed(2))
				assert.Equal(t, statement.Credit, lines[1].Direction)

				assert.Equal(t, "23.10", lines[2].Amount.StringFixed(2))
				assert.Equal(t, statement.Debit, lines[2].Direction)
			},
		},
		{
			name: "DebitCreditColumns",
			csv: `Date,Description,Debit,Credit
2024-03-04,SHELL OIL,40.00,
2024-03-05,INTEREST,,0.12
2024-03-06,ZERO,0.00,
`,
			wantLen: 2,
			verify: func(t *testing.T, lines []statement.Line) {
				assert.Equal(t, statement.Debit, lines[0].Direction)
				assert.Equal(t, "0.12", lines[1].Amount.StringFixed(2))
				assert.Equal(t, statement.Credit, lines[1].Direction)
			},
		},
		{
			name:    "HeaderOnly",
			csv:     "Date,Description,Amount\n",
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := statement.NewParser(statement.Generic).Parse(strings.NewReader(tt.csv))
			require.NoError(t, err)
			assert.Len(t, lines, tt.wantLen)

			if tt.verify != nil {
				tt.verify(t, lines)
			}
		})
	}
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Data mov.;Descrição;Montante\n30-01-2026;CAFÉ CENTRAL;-10,00\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	lines, err := statement.NewParser(statement.CGD).Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "CAFÉ CENTRAL", lines[0].Description)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Random;MetaData
Montante;Descrição;Data mov.;Ignored
-10,00;TEST_ORDER;30-01-2026;XXX
`

	lines, err := statement.NewParser(statement.CGD).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "TEST_ORDER", lines[0].Description)
	assert.Equal(t, "10.00", lines[0].Amount.StringFixed(2))
}

func TestParser_NoFormat(t *testing.T) {
	_, err := statement.NewParser(statement.CGD).Parse(strings.NewReader(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no matching cgd format")
}

func TestParser_MissingDescription(t *testing.T) {
	csv := `Data mov.;Descrição;Montante
30-01-2026;;-10,00
`

	_, err := statement.NewParser(statement.CGD).Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "row 2: missing description")
}
