package dataset

import (
	"strings"
	"testing"

	"github.com/de-tools/finreport/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := "Quarter,Revenue,Expenses\nQ1,1000,400\nQ2,2000,800\n"

	tbl, err := ParseString(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"Quarter", "Revenue", "Expenses"}, tbl.Columns)
	assert.Equal(t, [][]string{{"Q1", "1000", "400"}, {"Q2", "2000", "800"}}, tbl.Rows)
}

func TestParse_HeaderOnly(t *testing.T) {
	tbl, err := ParseString("Quarter,Revenue,Expenses\n")
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumColumns())
}

func TestParse_StripsBOMAndSpaces(t *testing.T) {
	tbl, err := ParseString("\xEF\xBB\xBFQuarter, Revenue ,Expenses\nQ1, 10 ,5\n")
	require.NoError(t, err)

	assert.True(t, tbl.HasColumn(domain.ColumnQuarter))
	assert.True(t, tbl.HasColumn(domain.ColumnRevenue))
	assert.Equal(t, "10", tbl.Rows[0][1])
}

func TestParse_ShortRowsArePadded(t *testing.T) {
	tbl, err := ParseString("Quarter,Revenue,Expenses\nQ1,1000\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"Q1", "1000", ""}, tbl.Rows[0])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "no columns"},
		{name: "blank lines only", input: "\n\n", want: "no columns"},
		{name: "too many fields", input: "Quarter,Revenue\nQ1,1,2\n", want: "line 2: expected 2 fields, saw 3"},
		{name: "unterminated quote", input: "Quarter,Revenue\n\"Q1,100\n", want: "quote"},
		{name: "bare quote", input: "Quarter,Revenue\nQ\"1,100\n", want: "quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ParseString(tt.input)

			assert.Nil(t, tbl)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_NilReader(t *testing.T) {
	_, err := Parse(nil)

	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestEncode_RoundTrip(t *testing.T) {
	input := "Quarter,Revenue,Expenses\nQ1,1000,400\n\"Q2, late\",2000,800\n"
	tbl, err := ParseString(input)
	require.NoError(t, err)

	out, err := EncodeString(tbl)
	require.NoError(t, err)

	assert.Equal(t, input, out)
}

func TestEncode_PreservesHeaderOnly(t *testing.T) {
	out, err := EncodeString(&domain.Table{Columns: []string{"A", "B"}})
	require.NoError(t, err)

	assert.Equal(t, "A,B\n", out)
	assert.True(t, strings.HasSuffix(out, "\n"))
}
