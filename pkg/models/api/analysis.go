package api

import "encoding/json"

type ErrorResponse struct {
	Error string `json:"error"`
}

type SummaryCards struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalExpenses      float64 `json:"total_expenses"`
	Profit             float64 `json:"profit"`
	AvgProfit          float64 `json:"avg_profit"`
	AvgPeriodMargin    float64 `json:"avg_period_margin"`
	AvgQuarterlyGrowth float64 `json:"avg_quarterly_growth"`
}

// Summary marshals either the cards or {"error": "..."}.
type Summary struct {
	Cards *SummaryCards
	Error string
}

func (s Summary) MarshalJSON() ([]byte, error) {
	if s.Error != "" || s.Cards == nil {
		return json.Marshal(ErrorResponse{Error: s.Error})
	}
	return json.Marshal(s.Cards)
}

func (s *Summary) UnmarshalJSON(data []byte) error {
	var probe struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Error != nil {
		s.Error = *probe.Error
		s.Cards = nil
		return nil
	}
	var cards SummaryCards
	if err := json.Unmarshal(data, &cards); err != nil {
		return err
	}
	s.Cards = &cards
	s.Error = ""
	return nil
}

type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type Slice struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

type Chart struct {
	Kind   string   `json:"kind"`
	Title  string   `json:"title"`
	Labels []string `json:"labels,omitempty"`
	Series []Series `json:"series,omitempty"`
	Slices []Slice  `json:"slices,omitempty"`
}

type Charts struct {
	Trend      Chart `json:"trend"`
	Comparison Chart `json:"comparison"`
	Ratio      Chart `json:"ratio"`
	ProfitWave Chart `json:"profit_wave"`
}

type AnalysisResponse struct {
	ID         string             `json:"id"`
	Metrics    map[string]float64 `json:"metrics"`
	Summary    *Summary           `json:"summary,omitempty"`
	Report     string             `json:"report"`
	ReportHTML string             `json:"report_html,omitempty"`
	Charts     *Charts            `json:"charts,omitempty"`
	Source     string             `json:"source"`
}

type Period struct {
	Quarter  string  `json:"quarter"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

type ManualAnalysisRequest struct {
	Periods []Period `json:"periods"`
	Mode    string   `json:"mode,omitempty"`
}

type RenderResponse struct {
	Metrics    map[string]float64 `json:"metrics"`
	Report     string             `json:"report"`
	ReportHTML string             `json:"report_html,omitempty"`
}

type HealthResponse struct {
	Status    string   `json:"status"`
	Narrative bool     `json:"narrative"`
	Providers []string `json:"providers,omitempty"`
}
