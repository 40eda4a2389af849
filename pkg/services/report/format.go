package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatMoney renders an amount as a whole number with thousands separators.
func FormatMoney(currency string, v float64) string {
	rounded := math.RoundToEven(v)
	if rounded == 0 || math.IsNaN(rounded) {
		return currency + "0"
	}
	if rounded < 0 {
		return "-" + currency + humanize.Commaf(-rounded)
	}
	return currency + humanize.Commaf(rounded)
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	return fmt.Sprintf("%.2f%%", v)
}

// expenseRatio is expenses as a percentage of revenue, 0 without revenue.
func expenseRatio(totalExpenses, totalRevenue float64) float64 {
	if totalRevenue == 0 {
		return 0
	}
	return totalExpenses / totalRevenue * 100
}
