package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name         string
		input        string
		decimalComma bool
		want         string
		wantErr      bool
	}

	tests := []testCase{
		{name: "EuropeanThousands", input: "1.234,56", decimalComma: true, want: "1234.56"},
		{name: "EuropeanNegative", input: "-588,74", decimalComma: true, want: "-588.74"},
		{name: "EuropeanWhole", input: "10,00", decimalComma: true, want: "10.00"},
		{name: "USThousands", input: "1,234.56", want: "1234.56"},
		{name: "USCurrency", input: "$12.00", want: "12.00"},
		{name: "Parentheses", input: "(45.10)", want: "-45.10"},
		{name: "Euro", input: "€ 9,99", decimalComma: true, want: "9.99"},
		{name: "SubCent", input: "0,005", decimalComma: true, want: "0.01"},
		{name: "Garbage", input: "Página 1/2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input, tt.decimalComma)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}
