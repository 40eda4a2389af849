package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/de-tools/finreport/pkg/models/domain"
)

// MissingColumnsError is returned when the summary cards cannot be computed.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("data must contain '%s' and '%s' columns, missing: %s",
		domain.ColumnRevenue, domain.ColumnExpenses, strings.Join(e.Columns, ", "))
}

// Summarize computes the dashboard summary cards. Unlike Extract it requires
// the Revenue and Expenses columns and reports their absence as an error.
func Summarize(t *domain.Table) (domain.SummaryCards, error) {
	var cards domain.SummaryCards

	revenue, hasRevenue := NumericColumn(t, domain.ColumnRevenue)
	expenses, hasExpenses := NumericColumn(t, domain.ColumnExpenses)

	var missing []string
	if !hasRevenue {
		missing = append(missing, domain.ColumnRevenue)
	}
	if !hasExpenses {
		missing = append(missing, domain.ColumnExpenses)
	}
	if len(missing) > 0 {
		return cards, &MissingColumnsError{Columns: missing}
	}

	profit := Profit(revenue, expenses)

	cards.TotalRevenue = sum(revenue)
	cards.TotalExpenses = sum(expenses)
	cards.Profit = cards.TotalRevenue - cards.TotalExpenses
	cards.AvgProfit = mean(profit)

	if cards.TotalRevenue != 0 {
		cards.AvgPeriodMargin = periodMargin(revenue, profit)
	}
	cards.AvgQuarterlyGrowth = round2(averageGrowth(revenue))

	return cards, nil
}

// periodMargin averages profit/revenue over the periods with non-zero revenue.
func periodMargin(revenue, profit []float64) float64 {
	var margins []float64
	for i, r := range revenue {
		if r == 0 {
			continue
		}
		margins = append(margins, profit[i]/r*100)
	}
	return mean(margins)
}

// averageGrowth averages the period-over-period percentage change. Periods
// following a zero revenue have no defined change and are skipped.
func averageGrowth(revenue []float64) float64 {
	var changes []float64
	for i := 1; i < len(revenue); i++ {
		prev := revenue[i-1]
		if prev == 0 {
			continue
		}
		changes = append(changes, (revenue[i]-prev)/prev*100)
	}
	return mean(changes)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
