package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/finreport/pkg/models/domain"
)

var ErrNoColumns = errors.New("no columns to parse from input")

// ParseError reports input that could not be read as a CSV table.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a CSV table with a header row. Rows shorter than the header are
// padded with empty cells; rows longer than the header are rejected.
func Parse(r io.Reader) (*domain.Table, error) {
	if r == nil {
		return nil, &ParseError{Err: ErrNoColumns}
	}

	br := bufio.NewReader(r)
	// Strip a UTF-8 byte order mark, spreadsheet exports often carry one.
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: ErrNoColumns}
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}
	if len(columns) == 1 && columns[0] == "" {
		return nil, &ParseError{Line: 1, Err: ErrNoColumns}
	}

	table := &domain.Table{Columns: columns, Rows: [][]string{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}

		if len(record) > len(columns) {
			line, _ := reader.FieldPos(0)
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(columns), len(record)),
			}
		}

		row := make([]string, len(columns))
		for i, v := range record {
			row[i] = strings.TrimSpace(v)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ParseString is Parse over raw CSV text.
func ParseString(text string) (*domain.Table, error) {
	return Parse(strings.NewReader(text))
}

func wrapCSVError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}

// Encode writes the table back as CSV, header first.
func Encode(w io.Writer, table *domain.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// EncodeString is Encode into a string.
func EncodeString(table *domain.Table) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, table); err != nil {
		return "", err
	}
	return buf.String(), nil
}
