package domain

type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartArea ChartKind = "area"
)

// Series is one named line/bar of a chart, aligned with Chart.Labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Slice is one segment of a pie chart.
type Slice struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

type Chart struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	Labels []string  `json:"labels,omitempty"`
	Series []Series  `json:"series,omitempty"`
	Slices []Slice   `json:"slices,omitempty"`
}

// Charts holds the four dashboard visualisations.
type Charts struct {
	Trend      Chart `json:"trend"`
	Comparison Chart `json:"comparison"`
	Ratio      Chart `json:"ratio"`
	ProfitWave Chart `json:"profit_wave"`
}
