package table

import (
	"strconv"
	"strings"

	"pgtadash/internal/errors"
)

// Row maps a column name to the cell's display text, exactly as read from the
// source file (trimmed). Numeric interpretation happens at the point of use.
type Row map[string]string

// Table is an ordered collection of rows sharing one column set. Tables are
// immutable by convention: every derivation allocates a new Table and shares
// the underlying Row maps, which are never written after load.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// WithRows returns a new table with the same column order and the given rows.
func (t *Table) WithRows(rows []Row) *Table {
	return &Table{Columns: t.Columns, Rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the column exists in the table schema.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Cell returns the display text of a cell, or "" when the column is absent.
func (r Row) Cell(column string) string {
	return r[column]
}

// Float parses a cell as a number; ok is false for blank or non-numeric cells.
func (r Row) Float(column string) (float64, bool) {
	return parseCell(r[column])
}

// FloatColumn extracts a column as float64 values. Cells that are blank or do
// not parse as numbers are dropped, mirroring how the dashboard's statistics
// ignore missing observations. Returns a MISSING_COLUMN error when the column
// is not part of the schema.
func (t *Table) FloatColumn(name string) ([]float64, error) {
	if !t.HasColumn(name) {
		return nil, errors.MissingColumn(name)
	}

	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, ok := parseCell(row[name]); ok {
			values = append(values, v)
		}
	}
	return values, nil
}

// AlignedFloatColumns extracts several columns as row-aligned vectors. Rows
// where any requested cell fails to parse are dropped from every vector, so
// the result is suitable for pairwise statistics. Column order follows names.
func (t *Table) AlignedFloatColumns(names []string) ([][]float64, error) {
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, errors.MissingColumn(name)
		}
	}

	vectors := make([][]float64, len(names))
	for i := range vectors {
		vectors[i] = make([]float64, 0, len(t.Rows))
	}

	parsed := make([]float64, len(names))
	for _, row := range t.Rows {
		ok := true
		for i, name := range names {
			v, valid := parseCell(row[name])
			if !valid {
				ok = false
				break
			}
			parsed[i] = v
		}
		if !ok {
			continue
		}
		for i, v := range parsed {
			vectors[i] = append(vectors[i], v)
		}
	}
	return vectors, nil
}

// parseCell converts cell text to a float64. Blank cells are not observations.
func parseCell(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
