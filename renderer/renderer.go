// Package renderer builds markdown views of the catalog and the invoice
// log. The CLI renders them for the terminal.
package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount formats a monetary value using the currency's symbol, separators
// and fraction digits.
func Amount(d decimal.Decimal, currency string) string {
	// the Money constructor guarantees a non-nil currency, falling back
	// to a generic one for unknown codes.
	cur := money.New(0, currency).Currency()
	minor := d.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
