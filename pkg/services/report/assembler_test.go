package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/finreport/pkg/models/domain"
)

var quarterly = domain.Metrics{
	TotalRows:     2,
	TotalColumns:  3,
	TotalRevenue:  3000,
	TotalExpenses: 1200,
	TotalProfit:   1800,
	AvgProfit:     900,
	ProfitMargin:  60,
	RevenueGrowth: 100,
}

func TestAssemble_Highlights(t *testing.T) {
	out, err := NewAssembler(Options{}).Assemble(quarterly)
	require.NoError(t, err)

	assert.Equal(t, quarterly, out.Metrics)
	assert.Contains(t, out.Report, "| Total Revenue | ₹3,000 |")
	assert.Contains(t, out.Report, "| Total Expenses | ₹1,200 |")
	assert.Contains(t, out.Report, "| Total Profit | ₹1,800 |")
	assert.Contains(t, out.Report, "| Average Profit | ₹900 |")
	assert.Contains(t, out.Report, "| Profit Margin | 60.00% |")
	assert.Contains(t, out.Report, "| Revenue Growth | 100.00% |")
	assert.Contains(t, out.Report, "Expense-to-revenue ratio: 40.00%")
	assert.Contains(t, out.Report, "target a profit margin > 65.00%")
}

func TestAssemble_Idempotent(t *testing.T) {
	a := NewAssembler(Options{})

	first, err := a.Assemble(quarterly)
	require.NoError(t, err)
	second, err := a.Assemble(quarterly)
	require.NoError(t, err)
	third, err := NewAssembler(Options{}).Assemble(quarterly)
	require.NoError(t, err)

	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, first.Report, third.Report)
}

func TestAssemble_SectionOrder(t *testing.T) {
	out, err := NewAssembler(Options{}).Assemble(quarterly)
	require.NoError(t, err)

	last := -1
	for _, section := range Sections {
		idx := strings.Index(out.Report, "## "+section)
		require.GreaterOrEqual(t, idx, 0, section)
		assert.Greater(t, idx, last, section)
		last = idx
	}

	analysis := out.Report[strings.Index(out.Report, "## Detailed Analysis"):]
	revenue := strings.Index(analysis, "**Revenue Analysis:**")
	profit := strings.Index(analysis, "**Profitability Analysis:**")
	expense := strings.Index(analysis, "**Expense Overview:**")
	assert.True(t, revenue < profit && profit < expense)
}

func TestAssemble_ZeroRevenue(t *testing.T) {
	out, err := NewAssembler(Options{}).Assemble(domain.Metrics{TotalExpenses: 500})
	require.NoError(t, err)

	assert.Contains(t, out.Report, "Expense-to-revenue ratio: 0.00%")
	assert.Contains(t, out.Report, "| Total Revenue | ₹0 |")
	assert.Contains(t, out.Report, "target a profit margin > 5.00%")
}

func TestAssemble_Currency(t *testing.T) {
	out, err := NewAssembler(Options{Currency: "$"}).Assemble(domain.Metrics{
		TotalRevenue: 1234567.4,
		TotalProfit:  -2500,
	})
	require.NoError(t, err)

	assert.Contains(t, out.Report, "| Total Revenue | $1,234,567 |")
	assert.Contains(t, out.Report, "| Total Profit | -$2,500 |")
	assert.NotContains(t, out.Report, "₹")
}

func TestAssembleMap(t *testing.T) {
	out, err := NewAssembler(Options{}).AssembleMap(map[string]any{
		domain.KeyTotalRevenue: 3000.0,
		domain.KeyProfitMargin: 60.0,
		"unrelated":            "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, 3000.0, out.Metrics.TotalRevenue)
	assert.Zero(t, out.Metrics.TotalExpenses)
	assert.Contains(t, out.Report, "target a profit margin > 65.00%")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{-0.2, "₹0"},
		{999.5, "₹1,000"},
		{1000, "₹1,000"},
		{2.5, "₹2"},
		{-1500, "-₹1,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney("₹", tt.in), "%v", tt.in)
	}
}
