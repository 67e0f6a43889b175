package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPlaces is the number of decimal places used when rendering amounts.
const amountPlaces int32 = 2

// ParseAmount parses a decimal monetary value such as "10", "10.00" or
// "12.345". Amounts are kept at full precision; only rendering rounds.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// FormatAmount renders an amount with exactly two decimal places, rounding
// half away from zero.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(amountPlaces)
}
