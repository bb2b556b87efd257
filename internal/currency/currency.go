// Package currency formats decimal amounts for display in the book's
// configured currency.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders an amount in the given ISO currency code, e.g.
// Format(dec("1234.5"), "SAR") -> ".س.ر1,234.50". Unknown codes fall
// back to a plain two-decimal rendering.
func Format(amount decimal.Decimal, code string) string {
	c := money.GetCurrency(code)
	if c == nil {
		return amount.StringFixed(2)
	}
	minor := amount.Round(int32(c.Fraction)).Shift(int32(c.Fraction)).IntPart()
	return money.New(minor, code).Display()
}
