// Package table holds the flat, header-first tabular model shared by the
// schedule and the key ledger, together with the file codecs used for
// import, export and the on-disk mirrors.
//
// Rows are stored as string slices aligned with Columns. Rows read from
// ragged sources may be shorter than the header; missing cells read as "".
package table

import "slices"

// Table is an in-memory table with a header row.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given header.
func New(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns)}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of column in the header, or -1.
func (t *Table) Index(column string) int {
	if t == nil {
		return -1
	}
	return slices.Index(t.Columns, column)
}

// Has reports whether the header contains column.
func (t *Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// Cell returns the value at (row, col), or "" when the row is shorter than
// the header.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Value returns the value of the named column in row, or "" when the column
// does not exist.
func (t *Table) Value(row int, column string) string {
	return t.Cell(row, t.Index(column))
}

// Append adds a row. Values beyond the header width are dropped and short
// rows are padded.
func (t *Table) Append(values ...string) {
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	if t == nil {
		return New()
	}
	c := &Table{
		Columns: slices.Clone(t.Columns),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = slices.Clone(row)
	}
	return c
}

// subset returns a table sharing t's header with copies of the given rows.
func (t *Table) subset(indexes []int) *Table {
	out := &Table{
		Columns: slices.Clone(t.Columns),
		Rows:    make([][]string, 0, len(indexes)),
	}
	for _, i := range indexes {
		out.Rows = append(out.Rows, slices.Clone(t.Rows[i]))
	}
	return out
}
