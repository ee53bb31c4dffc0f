package domain

import "github.com/shopspring/decimal"

// FormatMoney renders an amount as fixed-point dollars, e.g. "$12.50".
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
