package dashboard

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/finreport/pkg/models/domain"
	"github.com/de-tools/finreport/pkg/services/analysis"
	"github.com/de-tools/finreport/pkg/services/dataset"
	"github.com/de-tools/finreport/pkg/services/report"
)

//go:embed templates/*.html
var templates embed.FS

const defaultManualRows = 4

var errNoUpload = errors.New("choose a CSV file or paste CSV text")

type Analyzer interface {
	Analyze(ctx context.Context, r io.Reader, opts analysis.Options) (domain.Result, error)
	AnalyzePeriods(ctx context.Context, periods []domain.Period, opts analysis.Options) (domain.Result, error)
	NarrativeEnabled() bool
}

type card struct {
	Label string
	Value string
}

type chartView struct {
	Title string
	SVG   template.HTML
}

type manualRow struct {
	Quarter  string
	Revenue  string
	Expenses string
}

type pageData struct {
	Narrative  bool
	Manual     []manualRow
	Error      string
	Notice     string
	Result     *domain.Result
	Cards      []card
	Charts     []chartView
	ReportHTML template.HTML
}

type Handler struct {
	analyzer       Analyzer
	currency       string
	maxUploadBytes int64
	page           *template.Template
}

func NewHandler(analyzer Analyzer, currency string, maxUploadBytes int64) *Handler {
	if currency == "" {
		currency = report.DefaultCurrency
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &Handler{
		analyzer:       analyzer,
		currency:       currency,
		maxUploadBytes: maxUploadBytes,
		page:           template.Must(template.ParseFS(templates, "templates/index.html")),
	}
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(r.Context(), w, http.StatusOK, h.newPage())
}

// Submit handles both the upload form and the manual entry form.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := h.newPage()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		data.Error = "Could not read the submitted form: " + err.Error()
		h.render(ctx, w, http.StatusBadRequest, data)
		return
	}

	opts := analysis.Options{Mode: domain.ModeTemplate}
	if r.FormValue("narrative") != "" {
		opts.Mode = domain.ModeNarrative
	}

	var (
		result domain.Result
		err    error
	)
	if r.FormValue("source") == "manual" {
		rows := manualRows(r)
		data.Manual = rows
		result, err = h.analyzer.AnalyzePeriods(ctx, periods(rows), opts)
	} else {
		var (
			body      io.Reader
			closeBody func()
		)
		body, closeBody, err = uploadedCSV(r)
		if err == nil {
			defer closeBody()
			result, err = h.analyzer.Analyze(ctx, body, opts)
		}
	}

	switch {
	case err != nil:
		zerolog.Ctx(ctx).Warn().Err(err).Msg("dashboard analysis failed")
		data.Error = err.Error()
		h.render(ctx, w, statusFor(err), data)
		return
	case result.Failed():
		data.Error = result.Error
		h.render(ctx, w, http.StatusBadRequest, data)
		return
	}

	h.fill(ctx, &data, result)
	h.render(ctx, w, http.StatusOK, data)
}

func (h *Handler) newPage() pageData {
	rows := make([]manualRow, defaultManualRows)
	for i := range rows {
		rows[i] = manualRow{Quarter: "Q" + strconv.Itoa(i+1), Revenue: "10000", Expenses: "5000"}
	}
	return pageData{Narrative: h.analyzer.NarrativeEnabled(), Manual: rows}
}

func (h *Handler) fill(ctx context.Context, data *pageData, result domain.Result) {
	data.Result = &result

	if result.Summary != nil {
		s := result.Summary
		data.Cards = []card{
			{Label: "Total Revenue", Value: report.FormatMoney(h.currency, s.TotalRevenue)},
			{Label: "Total Expenses", Value: report.FormatMoney(h.currency, s.TotalExpenses)},
			{Label: "Avg Profit", Value: report.FormatMoney(h.currency, s.AvgProfit)},
			{Label: "Profit Margin", Value: report.FormatPercent(s.AvgPeriodMargin)},
			{Label: "Avg Quarterly Growth", Value: report.FormatPercent(s.AvgQuarterlyGrowth)},
		}
	} else if result.SummaryError != "" {
		data.Notice = result.SummaryError
	}

	if c := result.Charts; c != nil {
		for _, chart := range []domain.Chart{c.Trend, c.Comparison, c.Ratio, c.ProfitWave} {
			data.Charts = append(data.Charts, chartView{Title: chart.Title, SVG: RenderChart(chart)})
		}
	}

	html, err := report.RenderHTML(result.Report)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to render report html")
		return
	}
	// goldmark drops raw HTML from the source, so the output is safe to embed
	data.ReportHTML = template.HTML(html)
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to render dashboard")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func uploadedCSV(r *http.Request) (io.Reader, func(), error) {
	if file, _, err := r.FormFile("file"); err == nil {
		return file, func() { _ = file.Close() }, nil
	}
	if text := r.FormValue("csv"); strings.TrimSpace(text) != "" {
		return strings.NewReader(text), func() {}, nil
	}
	return nil, nil, errNoUpload
}

func manualRows(r *http.Request) []manualRow {
	quarters := r.Form["quarter"]
	revenues := r.Form["revenue"]
	expenses := r.Form["expenses"]

	rows := make([]manualRow, len(quarters))
	for i := range quarters {
		rows[i] = manualRow{Quarter: quarters[i], Revenue: at(revenues, i), Expenses: at(expenses, i)}
	}
	return rows
}

func periods(rows []manualRow) []domain.Period {
	out := make([]domain.Period, len(rows))
	for i, row := range rows {
		out[i] = domain.Period{
			Quarter:  row.Quarter,
			Revenue:  parseAmount(row.Revenue),
			Expenses: parseAmount(row.Expenses),
		}
	}
	return out
}

func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrInvalidPeriods), errors.Is(err, errNoUpload):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrNarrativeUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
