package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/finreport/pkg/models/domain"
)

const (
	MinPeriods = 1
	MaxPeriods = 10
)

var ErrInvalidPeriods = errors.New("invalid periods")

// FromPeriods builds a Quarter/Revenue/Expenses table from manually entered
// periods. Blank labels default to Q1, Q2, ...
func FromPeriods(periods []domain.Period) (*domain.Table, error) {
	if len(periods) < MinPeriods || len(periods) > MaxPeriods {
		return nil, fmt.Errorf("%w: expected between %d and %d periods, got %d", ErrInvalidPeriods, MinPeriods, MaxPeriods, len(periods))
	}

	table := &domain.Table{
		Columns: []string{domain.ColumnQuarter, domain.ColumnRevenue, domain.ColumnExpenses},
		Rows:    make([][]string, 0, len(periods)),
	}

	for i, p := range periods {
		if p.Revenue < 0 {
			return nil, fmt.Errorf("%w: period %d: revenue must not be negative", ErrInvalidPeriods, i+1)
		}
		if p.Expenses < 0 {
			return nil, fmt.Errorf("%w: period %d: expenses must not be negative", ErrInvalidPeriods, i+1)
		}

		label := strings.TrimSpace(p.Quarter)
		if label == "" {
			label = fmt.Sprintf("Q%d", i+1)
		}

		table.Rows = append(table.Rows, []string{
			label,
			strconv.FormatFloat(p.Revenue, 'f', -1, 64),
			strconv.FormatFloat(p.Expenses, 'f', -1, 64),
		})
	}

	return table, nil
}
