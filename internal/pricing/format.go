package pricing

import "github.com/shopspring/decimal"

// FormatPrice renders an amount in dollars without trailing zeros: 80 -> "$80",
// 80.50 -> "$80.5".
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.String()
}

// FormatSavings renders an amount in dollars with exactly two decimals.
func FormatSavings(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
