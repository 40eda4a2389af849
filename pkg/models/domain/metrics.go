package domain

import (
	"strconv"
)

const (
	KeyTotalRows     = "total_rows"
	KeyTotalColumns  = "total_columns"
	KeyTotalRevenue  = "total_revenue"
	KeyTotalExpenses = "total_expenses"
	KeyTotalProfit   = "total_profit"
	KeyAvgProfit     = "avg_profit"
	KeyProfitMargin  = "profit_margin"
	KeyRevenueGrowth = "revenue_growth"
)

// Metrics is the set of financial aggregates computed for one dataset.
type Metrics struct {
	TotalRows     int     `json:"total_rows"`
	TotalColumns  int     `json:"total_columns"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalProfit   float64 `json:"total_profit"`
	AvgProfit     float64 `json:"avg_profit"`
	ProfitMargin  float64 `json:"profit_margin"`
	RevenueGrowth float64 `json:"revenue_growth"`
}

// AsMap flattens the metrics into the key -> value mapping used on the wire.
func (m Metrics) AsMap() map[string]float64 {
	return map[string]float64{
		KeyTotalRows:     float64(m.TotalRows),
		KeyTotalColumns:  float64(m.TotalColumns),
		KeyTotalRevenue:  m.TotalRevenue,
		KeyTotalExpenses: m.TotalExpenses,
		KeyTotalProfit:   m.TotalProfit,
		KeyAvgProfit:     m.AvgProfit,
		KeyProfitMargin:  m.ProfitMargin,
		KeyRevenueGrowth: m.RevenueGrowth,
	}
}

// MetricsFromMap reads a loosely typed mapping. Missing keys and values that
// are not numbers read as 0.
func MetricsFromMap(values map[string]any) Metrics {
	return Metrics{
		TotalRows:     int(numberOf(values[KeyTotalRows])),
		TotalColumns:  int(numberOf(values[KeyTotalColumns])),
		TotalRevenue:  numberOf(values[KeyTotalRevenue]),
		TotalExpenses: numberOf(values[KeyTotalExpenses]),
		TotalProfit:   numberOf(values[KeyTotalProfit]),
		AvgProfit:     numberOf(values[KeyAvgProfit]),
		ProfitMargin:  numberOf(values[KeyProfitMargin]),
		RevenueGrowth: numberOf(values[KeyRevenueGrowth]),
	}
}

func numberOf(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// SummaryCards are the headline figures shown on the dashboard. They are
// computed directly from the table and are not interchangeable with Metrics:
// AvgPeriodMargin averages per-period margins and AvgQuarterlyGrowth averages
// period-over-period changes.
type SummaryCards struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalExpenses      float64 `json:"total_expenses"`
	Profit             float64 `json:"profit"`
	AvgProfit          float64 `json:"avg_profit"`
	AvgPeriodMargin    float64 `json:"avg_period_margin"`
	AvgQuarterlyGrowth float64 `json:"avg_quarterly_growth"`
}
