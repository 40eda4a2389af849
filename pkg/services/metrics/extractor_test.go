package metrics

import (
	"testing"

	"github.com/de-tools/finreport/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func table(columns []string, rows ...[]string) *domain.Table {
	if rows == nil {
		rows = [][]string{}
	}
	return &domain.Table{Columns: columns, Rows: rows}
}

var quarterly = []string{"Quarter", "Revenue", "Expenses"}

func TestExtract_TwoQuarters(t *testing.T) {
	m := Extract(table(quarterly,
		[]string{"Q1", "1000", "400"},
		[]string{"Q2", "2000", "800"},
	))

	assert.Equal(t, 2, m.TotalRows)
	assert.Equal(t, 3, m.TotalColumns)
	assert.InDelta(t, 3000, m.TotalRevenue, 1e-9)
	assert.InDelta(t, 1200, m.TotalExpenses, 1e-9)
	assert.InDelta(t, 1800, m.TotalProfit, 1e-9)
	assert.InDelta(t, 900, m.AvgProfit, 1e-9)
	assert.InDelta(t, 60, m.ProfitMargin, 1e-9)
	assert.InDelta(t, 100, m.RevenueGrowth, 1e-9)
}

func TestExtract_DegradedMode(t *testing.T) {
	tests := []struct {
		name    string
		table   *domain.Table
		rows    int
		columns int
	}{
		{
			name:    "both columns absent",
			table:   table([]string{"Quarter", "Units"}, []string{"Q1", "10"}, []string{"Q2", "12"}),
			rows:    2,
			columns: 2,
		},
		{
			name:    "expenses absent",
			table:   table([]string{"Quarter", "Revenue"}, []string{"Q1", "1000"}, []string{"Q2", "2000"}),
			rows:    2,
			columns: 2,
		},
		{
			name:    "revenue absent",
			table:   table([]string{"Quarter", "Expenses"}, []string{"Q1", "400"}),
			rows:    1,
			columns: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Extract(tt.table)
			assert.Equal(t, domain.Metrics{TotalRows: tt.rows, TotalColumns: tt.columns}, m)
		})
	}
}

func TestExtract_HeaderOnly(t *testing.T) {
	m := Extract(table(quarterly))

	assert.Equal(t, domain.Metrics{TotalRows: 0, TotalColumns: 3}, m)
}

func TestExtract_ZeroRevenue(t *testing.T) {
	m := Extract(table(quarterly,
		[]string{"Q1", "0", "400"},
		[]string{"Q2", "0", "100"},
	))

	assert.Zero(t, m.ProfitMargin)
	assert.Zero(t, m.RevenueGrowth)
	assert.InDelta(t, -500, m.TotalProfit, 1e-9)
	assert.InDelta(t, -250, m.AvgProfit, 1e-9)
}

func TestExtract_SingleRowHasNoGrowth(t *testing.T) {
	m := Extract(table(quarterly, []string{"Q1", "5000", "1000"}))

	assert.Zero(t, m.RevenueGrowth)
	assert.InDelta(t, 80, m.ProfitMargin, 1e-9)
}

func TestExtract_ZeroFirstRevenueHasNoGrowth(t *testing.T) {
	m := Extract(table(quarterly,
		[]string{"Q1", "0", "0"},
		[]string{"Q2", "100", "50"},
	))

	assert.Zero(t, m.RevenueGrowth)
}

func TestExtract_CoercionFailuresCollapseToZero(t *testing.T) {
	m := Extract(table(quarterly,
		[]string{"Q1", "1000", "n/a"},
		[]string{"Q2", "", "300"},
		[]string{"Q3", " 2000 ", "NaN"},
	))

	assert.InDelta(t, 3000, m.TotalRevenue, 1e-9)
	assert.InDelta(t, 300, m.TotalExpenses, 1e-9)
	assert.InDelta(t, 2700, m.TotalProfit, 1e-9)
	assert.InDelta(t, 900, m.AvgProfit, 1e-9)
	assert.InDelta(t, 100, m.RevenueGrowth, 1e-9)
}

func TestExtract_ShortRowsReadAsZero(t *testing.T) {
	tbl := table(quarterly, []string{"Q1", "100"}, []string{"Q2", "300", "100"})

	m := Extract(tbl)

	assert.InDelta(t, 400, m.TotalRevenue, 1e-9)
	assert.InDelta(t, 100, m.TotalExpenses, 1e-9)
}

func TestExtract_DoesNotModifyInput(t *testing.T) {
	tbl := table(quarterly, []string{"Q1", "100", "50"})
	before := tbl.Clone()

	_ = Extract(tbl)

	assert.Equal(t, before, tbl)
}
