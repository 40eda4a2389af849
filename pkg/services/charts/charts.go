package charts

import (
	"fmt"
	"strings"

	"github.com/de-tools/finreport/pkg/models/domain"
	"github.com/de-tools/finreport/pkg/services/metrics"
)

var requiredColumns = []string{domain.ColumnQuarter, domain.ColumnRevenue, domain.ColumnExpenses}

// MissingColumnsError reports chart columns absent from the table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("charts need %s columns, missing: %s",
		strings.Join(requiredColumns, ", "), strings.Join(e.Columns, ", "))
}

// Build derives the four dashboard charts from a table with Quarter, Revenue
// and Expenses columns.
func Build(t *domain.Table) (domain.Charts, error) {
	var missing []string
	for _, column := range requiredColumns {
		if !t.HasColumn(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return domain.Charts{}, &MissingColumnsError{Columns: missing}
	}

	labels, _ := t.Column(domain.ColumnQuarter)
	revenue, _ := metrics.NumericColumn(t, domain.ColumnRevenue)
	expenses, _ := metrics.NumericColumn(t, domain.ColumnExpenses)
	profit := metrics.Profit(revenue, expenses)

	revenueSeries := domain.Series{Name: domain.ColumnRevenue, Values: revenue}
	expensesSeries := domain.Series{Name: domain.ColumnExpenses, Values: expenses}

	return domain.Charts{
		Trend: domain.Chart{
			Kind:   domain.ChartLine,
			Title:  "Quarterly Trend",
			Labels: labels,
			Series: []domain.Series{revenueSeries, expensesSeries},
		},
		Comparison: domain.Chart{
			Kind:   domain.ChartBar,
			Title:  "Revenue vs Expenses",
			Labels: labels,
			Series: []domain.Series{revenueSeries, expensesSeries},
		},
		Ratio: domain.Chart{
			Kind:   domain.ChartPie,
			Title:  "Revenue-Expense Ratio",
			Slices: ratio(sum(revenue), sum(expenses)),
		},
		ProfitWave: domain.Chart{
			Kind:   domain.ChartArea,
			Title:  "Profit Wave",
			Labels: labels,
			Series: []domain.Series{
				revenueSeries,
				expensesSeries,
				{Name: domain.ColumnProfit, Values: profit},
			},
		},
	}, nil
}

func ratio(revenue, expenses float64) []domain.Slice {
	slices := []domain.Slice{
		{Label: domain.ColumnRevenue, Value: revenue},
		{Label: domain.ColumnExpenses, Value: expenses},
	}
	total := revenue + expenses
	if total == 0 {
		return slices
	}
	for i := range slices {
		slices[i].Percent = slices[i].Value / total * 100
	}
	return slices
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
