package metrics

import (
	"github.com/de-tools/finreport/pkg/models/domain"
)

// Extract computes the metrics for a table. Revenue and Expenses must both be
// present for any financial figure to be computed; otherwise only the shape
// counts are filled in.
func Extract(t *domain.Table) domain.Metrics {
	m := domain.Metrics{
		TotalRows:    t.NumRows(),
		TotalColumns: t.NumColumns(),
	}

	revenue, hasRevenue := NumericColumn(t, domain.ColumnRevenue)
	expenses, hasExpenses := NumericColumn(t, domain.ColumnExpenses)
	if !hasRevenue || !hasExpenses {
		return m
	}

	profit := Profit(revenue, expenses)

	m.TotalRevenue = sum(revenue)
	m.TotalExpenses = sum(expenses)
	m.TotalProfit = sum(profit)
	m.AvgProfit = mean(profit)

	if m.TotalRevenue != 0 {
		m.ProfitMargin = m.TotalProfit / m.TotalRevenue * 100
	}

	if len(revenue) > 1 && revenue[0] != 0 {
		first, last := revenue[0], revenue[len(revenue)-1]
		m.RevenueGrowth = (last - first) / first * 100
	}

	return m
}

// Profit returns revenue - expenses row-wise.
func Profit(revenue, expenses []float64) []float64 {
	n := min(len(revenue), len(expenses))
	profit := make([]float64, n)
	for i := 0; i < n; i++ {
		profit[i] = revenue[i] - expenses[i]
	}
	return profit
}

// WithProfit returns a copy of t with the derived Profit column added when
// both Revenue and Expenses are present.
func WithProfit(t *domain.Table) *domain.Table {
	revenue, hasRevenue := NumericColumn(t, domain.ColumnRevenue)
	expenses, hasExpenses := NumericColumn(t, domain.ColumnExpenses)
	if !hasRevenue || !hasExpenses {
		return t.Clone()
	}
	return t.WithProfit(Profit(revenue, expenses))
}
