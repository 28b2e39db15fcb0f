package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a bank-formatted amount. "1.234,56" and "-588,74" with
// decimalComma; "1,234.56", "$12.00" and "(12.00)" otherwise.
func parseAmount(s string, decimalComma bool) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.Trim(clean, "$€£ ")

	negative := strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")")
	if negative {
		clean = strings.Trim(clean, "()")
	}

	if decimalComma {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(clean, " ", ""))
	if err != nil {
		return decimal.Zero, err
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}
