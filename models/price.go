package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice accepts "5,00", "5.00" or "€ 5" and returns a two-decimal amount
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "€", ""))
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %q", raw)
	}
	return d.Round(2), nil
}
