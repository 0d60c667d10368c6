// Package csvrow reads CSV files whose first line is a header and exposes
// each record as a column-keyed row.
package csvrow

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMissingField is returned by Row.Require when a required cell is blank.
var ErrMissingField = errors.New("missing required field")

// Reader yields header-keyed rows.
type Reader struct {
	csv    *csv.Reader
	header []string
	line   int
}

// NewReader consumes the header line of r.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv: no header line")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return &Reader{csv: cr, header: header, line: 1}, nil
}

// Header returns the column names.
func (r *Reader) Header() []string {
	return r.header
}

// RowError reports a record that could not be parsed. Reading may continue
// after it.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("malformed csv line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Next returns the next row, or io.EOF when the file is exhausted.
// A record that fails to parse yields a *RowError.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			r.line++
			return Row{Line: pe.StartLine}, &RowError{Line: pe.StartLine, Err: pe.Err}
		}
		return Row{}, fmt.Errorf("read csv line %d: %w", r.line+1, err)
	}
	r.line++
	values := make(map[string]string, len(r.header))
	for i, col := range r.header {
		if i < len(record) {
			values[col] = record[i]
		}
	}
	line, _ := r.csv.FieldPos(0)
	return Row{Line: line, values: values}, nil
}

// ReadAll reads every row of r. Malformed records are kept as rows with Err
// set so callers can skip and count them.
func ReadAll(r io.Reader) ([]Row, error) {
	cr, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	var rows []Row
	for {
		row, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		var rowErr *RowError
		if errors.As(err, &rowErr) {
			row.Err = rowErr
			rows = append(rows, row)
			continue
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// Row is one CSV record keyed by header name.
type Row struct {
	Line   int
	values map[string]string
	// Err is set on rows ReadAll could not parse; such rows have no values.
	Err error
}

// NewRow builds a row from explicit values.
func NewRow(line int, values map[string]string) Row {
	return Row{Line: line, values: values}
}

// Get returns the trimmed cell for col, or "" when the column is absent.
func (r Row) Get(col string) string {
	return strings.TrimSpace(r.values[col])
}

// Raw returns the untrimmed cell for col.
func (r Row) Raw(col string) string {
	return r.values[col]
}

// Has reports whether the row has the column at all.
func (r Row) Has(col string) bool {
	_, ok := r.values[col]
	return ok
}

// Require fails when any of cols is blank.
func (r Row) Require(cols ...string) error {
	var missing []string
	for _, col := range cols {
		if r.Get(col) == "" {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// OptionalInt parses col as an integer. A blank cell yields nil.
func (r Row) OptionalInt(col string) (*int64, error) {
	s := r.Get(col)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %q is not an integer", col, s)
	}
	return &v, nil
}

// IntOr parses col as an integer, returning def for a blank cell.
func (r Row) IntOr(col string, def int64) (int64, error) {
	v, err := r.OptionalInt(col)
	if err != nil || v == nil {
		return def, err
	}
	return *v, nil
}
