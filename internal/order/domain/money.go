package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a currency amount as entered by the web client, accepting
// either "30,00" or "30.00".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Decimal{}, ErrInvalidOrder
	}
	return d, nil
}

// FormatAmount renders an amount with exactly two decimals and a comma
// separator, the form used in receipts and messages.
func FormatAmount(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}
