package domain

import "strconv"

const (
	ColumnQuarter  = "Quarter"
	ColumnRevenue  = "Revenue"
	ColumnExpenses = "Expenses"
	ColumnProfit   = "Profit"
)

// Table is a rectangular dataset where every row is one reporting period.
// Cells are kept as raw text; numeric coercion is left to the consumers.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Period is a single manually entered reporting period.
type Period struct {
	Quarter  string  `json:"quarter"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// ColumnIndex returns the position of the named column or -1.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the raw value at row/column, or "" for a short row.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Column returns the raw values of the named column, ok=false if it is absent.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Cell(i, idx)
	}
	return values, true
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}

// WithProfit returns a copy of the table with a Profit column equal to
// Revenue - Expenses per row. Tables missing either column, or already
// carrying Profit, are returned as a plain copy.
func (t *Table) WithProfit(profit []float64) *Table {
	out := t.Clone()
	if out == nil || !out.HasColumn(ColumnRevenue) || !out.HasColumn(ColumnExpenses) || out.HasColumn(ColumnProfit) {
		return out
	}
	out.Columns = append(out.Columns, ColumnProfit)
	width := len(out.Columns)
	for i := range out.Rows {
		for len(out.Rows[i]) < width-1 {
			out.Rows[i] = append(out.Rows[i], "")
		}
		value := ""
		if i < len(profit) {
			value = strconv.FormatFloat(profit[i], 'f', -1, 64)
		}
		out.Rows[i] = append(out.Rows[i], value)
	}
	return out
}
