package metrics

import (
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/finreport/pkg/models/domain"
)

// toNumber coerces a raw cell. Anything that does not parse as a finite number
// collapses to 0.
func toNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NumericColumn returns the coerced values of a column, ok=false when absent.
func NumericColumn(t *domain.Table, name string) ([]float64, bool) {
	raw, ok := t.Column(name)
	if !ok {
		return nil, false
	}
	values := make([]float64, len(raw))
	for i, cell := range raw {
		values[i] = toNumber(cell)
	}
	return values, true
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}
