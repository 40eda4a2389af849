package report

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/de-tools/finreport/pkg/models/domain"
)

const DefaultCurrency = "₹"

// Section headings in document order.
var Sections = []string{
	"Executive Summary",
	"Key Financial Highlights",
	"Detailed Analysis",
	"Trend Analysis",
	"Calculations & Metrics",
	"Conclusion",
	"Suggestions",
}

const documentTemplate = `# Financial Performance Report

## Executive Summary
- The organization demonstrated consistent operational activity across all quarters.
- Revenue generation amounted to **{{money .TotalRevenue}}**, with total expenses of **{{money .TotalExpenses}}**.
- Average profit stood at **{{money .AvgProfit}}**, reflecting a profit margin of **{{pct .ProfitMargin}}**.
- Overall revenue growth observed: **{{pct .RevenueGrowth}}** over the recorded period.

---

## Key Financial Highlights
| Metric | Value |
|:---------------------|----------------:|
| Total Revenue | {{money .TotalRevenue}} |
| Total Expenses | {{money .TotalExpenses}} |
| Total Profit | {{money .TotalProfit}} |
| Average Profit | {{money .AvgProfit}} |
| Profit Margin | {{pct .ProfitMargin}} |
| Revenue Growth | {{pct .RevenueGrowth}} |

---

## Detailed Analysis
**Revenue Analysis:**
- Revenue has shown steady movement across quarters, indicating stable income flow.
- Growth of {{pct .RevenueGrowth}} from the initial to the final quarter.

**Profitability Analysis:**
- The average profit of {{money .AvgProfit}} per quarter reflects the cost base against income.
- Profit margin of {{pct .ProfitMargin}} over the whole period.

**Expense Overview:**
- Total expenditure of {{money .TotalExpenses}} was balanced against total revenue.
- Expense-to-revenue ratio: {{pct .ExpenseRatio}}

---

## Trend Analysis
- Profit trends align with revenue, confirming operational consistency.
- Expense pattern remains manageable, ensuring sustainability.
- Incremental growth potential visible with optimized resource allocation.

---

## Calculations & Metrics
- **Revenue Growth:** {{pct .RevenueGrowth}}
- **Profit Margin:** {{pct .ProfitMargin}}
- **Expense Ratio:** {{pct .ExpenseRatio}}

---

## Conclusion
- The financials reflect a balanced and controlled fiscal period.
- Profit margins are backed by sustained revenue inflow.
- Potential for scaling with refined expense management.

---

## Suggestions
- Diversify revenue sources to improve quarterly growth rates.
- Optimize expense allocation to target a profit margin > {{pct .TargetMargin}}.
- Strengthen financial forecasting using quarterly predictive models.
- Invest in operational automation to reduce long-term costs.
- Monitor quarterly KPIs to ensure performance consistency.
`

// Options configures an Assembler.
type Options struct {
	Currency string
}

// Assembler renders metrics into the narrative report document.
type Assembler struct {
	tmpl *template.Template
}

type documentData struct {
	domain.Metrics
	ExpenseRatio float64
	TargetMargin float64
}

func NewAssembler(opts Options) *Assembler {
	currency := opts.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	funcs := template.FuncMap{
		"money": func(v float64) string { return FormatMoney(currency, v) },
		"pct":   FormatPercent,
	}

	return &Assembler{
		tmpl: template.Must(template.New("report").Funcs(funcs).Parse(documentTemplate)),
	}
}

// Assemble renders the report for m. The output depends only on m.
func (a *Assembler) Assemble(m domain.Metrics) (domain.AssembledReport, error) {
	data := documentData{
		Metrics:      m,
		ExpenseRatio: expenseRatio(m.TotalExpenses, m.TotalRevenue),
		TargetMargin: m.ProfitMargin + 5,
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return domain.AssembledReport{}, fmt.Errorf("failed to render report: %w", err)
	}

	return domain.AssembledReport{Metrics: m, Report: buf.String()}, nil
}

// AssembleMap renders a report from a loosely typed metrics mapping.
func (a *Assembler) AssembleMap(values map[string]any) (domain.AssembledReport, error) {
	return a.Assemble(domain.MetricsFromMap(values))
}
