// Package money formats decimal amounts for display on an invoice.
package money

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Format renders an amount with a currency symbol, comma thousands separators
// and exactly two decimal places, e.g. "$1,560.00" or "-$12.50". Amounts that
// round to zero lose their sign.
func Format(symbol string, amount decimal.Decimal) string {
	ac := accounting.Accounting{Symbol: symbol, Precision: 2}
	return ac.FormatMoneyDecimal(amount)
}

// Quantity renders hours or quantities as a plain number without trailing
// zeros, e.g. "8" or "1.5".
func Quantity(v decimal.Decimal) string {
	return v.String()
}
