package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/finreport/pkg/models/domain"
)

func quarterly() *domain.Table {
	return &domain.Table{
		Columns: []string{domain.ColumnQuarter, domain.ColumnRevenue, domain.ColumnExpenses},
		Rows: [][]string{
			{"Q1", "1000", "400"},
			{"Q2", "2000", "800"},
		},
	}
}

func TestBuild(t *testing.T) {
	charts, err := Build(quarterly())
	require.NoError(t, err)

	assert.Equal(t, domain.ChartLine, charts.Trend.Kind)
	assert.Equal(t, []string{"Q1", "Q2"}, charts.Trend.Labels)
	require.Len(t, charts.Trend.Series, 2)
	assert.Equal(t, []float64{1000, 2000}, charts.Trend.Series[0].Values)
	assert.Equal(t, []float64{400, 800}, charts.Trend.Series[1].Values)

	assert.Equal(t, domain.ChartBar, charts.Comparison.Kind)
	assert.Equal(t, charts.Trend.Series, charts.Comparison.Series)

	assert.Equal(t, domain.ChartPie, charts.Ratio.Kind)
	require.Len(t, charts.Ratio.Slices, 2)
	assert.Equal(t, 3000.0, charts.Ratio.Slices[0].Value)
	assert.InDelta(t, 71.43, charts.Ratio.Slices[0].Percent, 0.01)
	assert.InDelta(t, 28.57, charts.Ratio.Slices[1].Percent, 0.01)

	assert.Equal(t, domain.ChartArea, charts.ProfitWave.Kind)
	require.Len(t, charts.ProfitWave.Series, 3)
	assert.Equal(t, domain.ColumnProfit, charts.ProfitWave.Series[2].Name)
	assert.Equal(t, []float64{600, 1200}, charts.ProfitWave.Series[2].Values)
}

func TestBuild_ZeroTotals(t *testing.T) {
	table := &domain.Table{
		Columns: []string{domain.ColumnQuarter, domain.ColumnRevenue, domain.ColumnExpenses},
		Rows:    [][]string{{"Q1", "0", "x"}},
	}

	charts, err := Build(table)
	require.NoError(t, err)

	for _, slice := range charts.Ratio.Slices {
		assert.Zero(t, slice.Percent)
	}
	assert.Equal(t, []float64{0}, charts.Trend.Series[1].Values)
}

func TestBuild_MissingColumns(t *testing.T) {
	table := &domain.Table{
		Columns: []string{domain.ColumnRevenue},
		Rows:    [][]string{{"10"}},
	}

	_, err := Build(table)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{domain.ColumnQuarter, domain.ColumnExpenses}, missing.Columns)
}
