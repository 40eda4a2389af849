package adapters

import (
	"github.com/de-tools/finreport/pkg/models/api"
	"github.com/de-tools/finreport/pkg/models/domain"
	"github.com/de-tools/finreport/pkg/services/llm"
)

func MapSummaryDomainToApi(cards *domain.SummaryCards, summaryErr string) *api.Summary {
	if summaryErr != "" {
		return &api.Summary{Error: summaryErr}
	}
	if cards == nil {
		return nil
	}
	return &api.Summary{Cards: &api.SummaryCards{
		TotalRevenue:       cards.TotalRevenue,
		TotalExpenses:      cards.TotalExpenses,
		Profit:             cards.Profit,
		AvgProfit:          cards.AvgProfit,
		AvgPeriodMargin:    cards.AvgPeriodMargin,
		AvgQuarterlyGrowth: cards.AvgQuarterlyGrowth,
	}}
}

func MapChartDomainToApi(c domain.Chart) api.Chart {
	chart := api.Chart{
		Kind:   string(c.Kind),
		Title:  c.Title,
		Labels: c.Labels,
	}
	for _, s := range c.Series {
		chart.Series = append(chart.Series, api.Series{Name: s.Name, Values: s.Values})
	}
	for _, s := range c.Slices {
		chart.Slices = append(chart.Slices, api.Slice{Label: s.Label, Value: s.Value, Percent: s.Percent})
	}
	return chart
}

func MapChartsDomainToApi(c *domain.Charts) *api.Charts {
	if c == nil {
		return nil
	}
	return &api.Charts{
		Trend:      MapChartDomainToApi(c.Trend),
		Comparison: MapChartDomainToApi(c.Comparison),
		Ratio:      MapChartDomainToApi(c.Ratio),
		ProfitWave: MapChartDomainToApi(c.ProfitWave),
	}
}

// MapResultDomainToApi maps a successful result. reportHTML is the rendered
// form of r.Report.
func MapResultDomainToApi(r domain.Result, reportHTML string) api.AnalysisResponse {
	resp := api.AnalysisResponse{
		ID:         r.ID,
		Summary:    MapSummaryDomainToApi(r.Summary, r.SummaryError),
		Report:     r.Report,
		ReportHTML: reportHTML,
		Charts:     MapChartsDomainToApi(r.Charts),
		Source:     string(r.Source),
	}
	if r.Metrics != nil {
		resp.Metrics = r.Metrics.AsMap()
	}
	return resp
}

func MapPeriodsApiToDomain(periods []api.Period) []domain.Period {
	out := make([]domain.Period, 0, len(periods))
	for _, p := range periods {
		out = append(out, domain.Period{Quarter: p.Quarter, Revenue: p.Revenue, Expenses: p.Expenses})
	}
	return out
}

func MapAnalysisModeApiToDomain(mode string) (domain.AnalysisMode, bool) {
	switch mode {
	case "", string(domain.ModeTemplate):
		return domain.ModeTemplate, true
	case string(domain.ModeNarrative):
		return domain.ModeNarrative, true
	default:
		return "", false
	}
}

func MapLLMSettingsToConfig(s domain.LLMSettings) llm.Config {
	return llm.Config{
		Provider: s.Provider,
		Model:    s.Model,
		APIKey:   s.APIKey,
		BaseURL:  s.BaseURL,
		Timeout:  s.Timeout,
	}
}
