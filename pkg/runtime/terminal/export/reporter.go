package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/de-tools/finreport/pkg/adapters"
	"github.com/de-tools/finreport/pkg/models/domain"
	"github.com/de-tools/finreport/pkg/services/report"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(value)); f {
	case FormatMarkdown, FormatTable, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q, expected one of markdown, table, json, html", value)
	}
}

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  24,
		ValueWidth: 20,
	}
}

type Reporter struct {
	writer   io.Writer
	config   TableConfig
	currency string
	table    *template.Template
}

func NewReporter(writer io.Writer, currency string) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if currency == "" {
		currency = report.DefaultCurrency
	}
	r := &Reporter{
		writer:   writer,
		config:   DefaultTableConfig(),
		currency: currency,
	}
	r.table = template.Must(template.New("metrics").Funcs(r.funcMap()).Parse(metricsTemplate))
	return r
}

const metricsTemplate = `
{{separator}}
{{formatRow "Metric" "Value"}}
{{separator}}
{{formatRow "Rows" (count .Metrics.TotalRows)}}
{{formatRow "Columns" (count .Metrics.TotalColumns)}}
{{formatRow "Total Revenue" (money .Metrics.TotalRevenue)}}
{{formatRow "Total Expenses" (money .Metrics.TotalExpenses)}}
{{formatRow "Total Profit" (money .Metrics.TotalProfit)}}
{{formatRow "Average Profit" (money .Metrics.AvgProfit)}}
{{formatRow "Profit Margin" (pct .Metrics.ProfitMargin)}}
{{formatRow "Revenue Growth" (pct .Metrics.RevenueGrowth)}}
{{separator}}
{{with .Summary}}
=== Summary ===
{{formatRow "Avg Period Margin" (pct .AvgPeriodMargin)}}
{{formatRow "Avg Quarterly Growth" (pct .AvgQuarterlyGrowth)}}
{{separator}}
{{end}}{{with .SummaryError}}
Summary unavailable: {{.}}
{{end}}`

type tableData struct {
	Metrics      domain.Metrics
	Summary      *domain.SummaryCards
	SummaryError string
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name, value string) string {
			return fmt.Sprintf("| %-*s | %*s |", c.config.NameWidth, name, c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"money": func(v float64) string { return report.FormatMoney(c.currency, v) },
		"pct":   report.FormatPercent,
		"count": func(v int) string { return humanize.Comma(int64(v)) },
	}
}

// HandleResult writes an analysis result in the requested format.
func (c *Reporter) HandleResult(result domain.Result, format Format) error {
	if result.Metrics == nil {
		return fmt.Errorf("result %s carries no metrics", result.ID)
	}

	switch format {
	case FormatTable:
		return c.table.Execute(c.writer, tableData{
			Metrics:      *result.Metrics,
			Summary:      result.Summary,
			SummaryError: result.SummaryError,
		})
	case FormatJSON:
		html, err := report.RenderHTML(result.Report)
		if err != nil {
			return err
		}
		return c.writeJSON(adapters.MapResultDomainToApi(result, html))
	case FormatHTML:
		return c.writeHTML(result.Report)
	default:
		return c.writeText(result.Report)
	}
}

// HandleAssembled writes a rendered report in the requested format.
func (c *Reporter) HandleAssembled(assembled domain.AssembledReport, format Format) error {
	switch format {
	case FormatTable:
		return c.table.Execute(c.writer, tableData{Metrics: assembled.Metrics})
	case FormatJSON:
		return c.writeJSON(map[string]any{
			"metrics": assembled.Metrics.AsMap(),
			"report":  assembled.Report,
		})
	case FormatHTML:
		return c.writeHTML(assembled.Report)
	default:
		return c.writeText(assembled.Report)
	}
}

func (c *Reporter) HandleProfiles(path string, profiles []domain.ConfigProfile) error {
	if _, err := fmt.Fprintf(c.writer, "Configuration found at `%s`\n", path); err != nil {
		return err
	}
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(c.writer, "No profiles found.")
		return err
	}
	for _, p := range profiles {
		provider := p.Provider
		if provider == "" {
			provider = "(no provider)"
		}
		if _, err := fmt.Fprintf(c.writer, "Name: `%s`, Provider: `%s`\n", p.Name, provider); err != nil {
			return err
		}
	}
	return nil
}

func (c *Reporter) writeText(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(c.writer, text)
	return err
}

func (c *Reporter) writeHTML(markdown string) error {
	html, err := report.RenderHTML(markdown)
	if err != nil {
		return err
	}
	return c.writeText(html)
}

func (c *Reporter) writeJSON(v any) error {
	encoder := json.NewEncoder(c.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
