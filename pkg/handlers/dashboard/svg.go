package dashboard

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/de-tools/finreport/pkg/models/domain"
)

const (
	chartWidth   = 480.0
	chartHeight  = 260.0
	chartPadding = 40.0
)

var palette = []string{"#2563eb", "#dc2626", "#16a34a", "#9333ea"}

type plot struct {
	min, max float64
	points   int
}

func newPlot(chart domain.Chart) plot {
	p := plot{min: 0, max: 0, points: len(chart.Labels)}
	for _, s := range chart.Series {
		for _, v := range s.Values {
			p.min = math.Min(p.min, v)
			p.max = math.Max(p.max, v)
		}
	}
	if p.max == p.min {
		p.max = p.min + 1
	}
	return p
}

func (p plot) x(i int) float64 {
	if p.points <= 1 {
		return chartWidth / 2
	}
	return chartPadding + float64(i)*(chartWidth-2*chartPadding)/float64(p.points-1)
}

func (p plot) y(v float64) float64 {
	return chartPadding + (p.max-v)/(p.max-p.min)*(chartHeight-2*chartPadding)
}

// RenderChart draws a chart as an inline SVG element.
func RenderChart(chart domain.Chart) template.HTML {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="chart" viewBox="0 0 %.0f %.0f" role="img" aria-label="%s">`,
		chartWidth, chartHeight, template.HTMLEscapeString(chart.Title))
	fmt.Fprintf(&b, `<text x="%.0f" y="20" text-anchor="middle" class="title">%s</text>`,
		chartWidth/2, template.HTMLEscapeString(chart.Title))

	switch chart.Kind {
	case domain.ChartLine:
		drawLines(&b, chart, false)
	case domain.ChartArea:
		drawLines(&b, chart, true)
	case domain.ChartBar:
		drawBars(&b, chart)
	case domain.ChartPie:
		drawPie(&b, chart)
	}

	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

func drawAxisLabels(b *strings.Builder, chart domain.Chart, p plot, x func(int) float64) {
	for i, label := range chart.Labels {
		fmt.Fprintf(b, `<text x="%.1f" y="%.0f" text-anchor="middle" class="label">%s</text>`,
			x(i), chartHeight-chartPadding/2, template.HTMLEscapeString(label))
	}
	fmt.Fprintf(b, `<line x1="%.0f" y1="%.1f" x2="%.0f" y2="%.1f" class="axis"/>`,
		chartPadding, p.y(0), chartWidth-chartPadding, p.y(0))
}

func drawLines(b *strings.Builder, chart domain.Chart, fill bool) {
	p := newPlot(chart)
	if p.points == 0 {
		return
	}

	// the band between the first two series is the profit wave
	if fill && len(chart.Series) >= 2 {
		upper, lower := chart.Series[0].Values, chart.Series[1].Values
		var pts []string
		for i := range upper {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", p.x(i), p.y(upper[i])))
		}
		for i := len(lower) - 1; i >= 0; i-- {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", p.x(i), p.y(lower[i])))
		}
		fmt.Fprintf(b, `<polygon points="%s" fill="%s" fill-opacity="0.2"/>`, strings.Join(pts, " "), palette[2])
	}

	for si, s := range chart.Series {
		if fill && si > 1 {
			break
		}
		color := palette[si%len(palette)]
		var pts []string
		for i, v := range s.Values {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", p.x(i), p.y(v)))
		}
		fmt.Fprintf(b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"><title>%s</title></polyline>`,
			strings.Join(pts, " "), color, template.HTMLEscapeString(s.Name))
		for i, v := range s.Values {
			fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`, p.x(i), p.y(v), color)
		}
	}
	drawAxisLabels(b, chart, p, p.x)
}

func drawBars(b *strings.Builder, chart domain.Chart) {
	p := newPlot(chart)
	if p.points == 0 || len(chart.Series) == 0 {
		return
	}

	group := (chartWidth - 2*chartPadding) / float64(p.points)
	width := group * 0.8 / float64(len(chart.Series))
	center := func(i int) float64 { return chartPadding + group*(float64(i)+0.5) }

	for si, s := range chart.Series {
		color := palette[si%len(palette)]
		for i, v := range s.Values {
			x := chartPadding + group*float64(i) + group*0.1 + width*float64(si)
			top, bottom := p.y(math.Max(v, 0)), p.y(math.Min(v, 0))
			fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s</title></rect>`,
				x, top, width, bottom-top, color, template.HTMLEscapeString(s.Name))
		}
	}
	drawAxisLabels(b, chart, p, center)
}

func drawPie(b *strings.Builder, chart domain.Chart) {
	const cx, cy, r = chartWidth / 2, chartHeight/2 + 10, 90.0

	total := 0.0
	for _, s := range chart.Slices {
		total += math.Max(s.Value, 0)
	}
	if total == 0 {
		fmt.Fprintf(b, `<text x="%.0f" y="%.0f" text-anchor="middle" class="label">no data</text>`, cx, cy)
		return
	}

	angle := -math.Pi / 2
	for i, s := range chart.Slices {
		share := math.Max(s.Value, 0) / total
		if share == 0 {
			continue
		}
		color := palette[i%len(palette)]
		label := fmt.Sprintf("%s %.1f%%", s.Label, share*100)

		if share >= 1 {
			fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>`,
				cx, cy, r, color, template.HTMLEscapeString(label))
			continue
		}

		end := angle + share*2*math.Pi
		large := 0
		if share > 0.5 {
			large = 1
		}
		fmt.Fprintf(b, `<path d="M %.1f %.1f L %.1f %.1f A %.1f %.1f 0 %d 1 %.1f %.1f Z" fill="%s"><title>%s</title></path>`,
			cx, cy,
			cx+r*math.Cos(angle), cy+r*math.Sin(angle),
			r, r, large,
			cx+r*math.Cos(end), cy+r*math.Sin(end),
			color, template.HTMLEscapeString(label))

		mid := (angle + end) / 2
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" class="label">%s</text>`,
			cx+(r+25)*math.Cos(mid), cy+(r+25)*math.Sin(mid), template.HTMLEscapeString(label))
		angle = end
	}
}
