package domain

// ReportSource tells where the report text of a result came from.
type ReportSource string

const (
	ReportSourceTemplate  ReportSource = "template"
	ReportSourceNarrative ReportSource = "narrative"
)

// AnalysisMode selects how the report text is produced.
type AnalysisMode string

const (
	ModeTemplate  AnalysisMode = "template"
	ModeNarrative AnalysisMode = "narrative"
)

// AssembledReport pairs the metrics with the document rendered from them.
type AssembledReport struct {
	Metrics Metrics
	Report  string
}

// Result is the outcome of one analysis run.
//
// Error is set when the input could not be read; nothing else is populated in
// that case. SummaryError is scoped to the summary cards and does not affect
// the report.
type Result struct {
	ID           string
	Table        *Table
	Metrics      *Metrics
	Summary      *SummaryCards
	SummaryError string
	Charts       *Charts
	Report       string
	Source       ReportSource
	Error        string
}

func (r Result) Failed() bool {
	return r.Error != ""
}
