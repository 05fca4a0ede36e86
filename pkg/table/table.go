package table

import (
	"fmt"
	"math"
)

// Table is an immutable, column-oriented table.
type Table struct {
	cols  []*Column
	pos   map[string]int
	index []int
	rows  int
}

// New creates a table from columns. All columns must have the same length.
// Rows are indexed 0..n-1. Duplicate column names keep the last column.
func New(cols ...*Column) (*Table, error) {
	n := 0
	if len(cols) > 0 {
		n = cols[0].Len()
	}
	t := Empty(n)
	for _, c := range cols {
		if c.Len() != n {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name(), c.Len(), n)
		}
		t = t.put(c)
	}
	return t, nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(cols ...*Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// Empty returns a table with n rows and no columns.
func Empty(n int) *Table {
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	return &Table{pos: map[string]int{}, index: index, rows: n}
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name()
	}
	return names
}

// Has reports whether the table has a column named name.
func (t *Table) Has(name string) bool {
	_, ok := t.pos[name]
	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.pos[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// RowIndex returns the source position of row i.
func (t *Table) RowIndex(i int) int { return t.index[i] }

// Index returns a copy of the source positions of all rows.
func (t *Table) Index() []int { return append([]int(nil), t.index...) }

// With returns a copy of t with c added, or replacing the column of the same
// name in place.
func (t *Table) With(c *Column) (*Table, error) {
	if c.Len() != t.rows {
		return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name(), c.Len(), t.rows)
	}
	return t.put(c), nil
}

func (t *Table) put(c *Column) *Table {
	out := t.clone()
	if i, ok := out.pos[c.Name()]; ok {
		out.cols[i] = c
		return out
	}
	out.pos[c.Name()] = len(out.cols)
	out.cols = append(out.cols, c)
	return out
}

func (t *Table) clone() *Table {
	out := &Table{
		cols:  append([]*Column(nil), t.cols...),
		pos:   make(map[string]int, len(t.pos)),
		index: t.index,
		rows:  t.rows,
	}
	for k, v := range t.pos {
		out.pos[k] = v
	}
	return out
}

// Rename returns a copy of t with column from renamed to to. Renaming onto an
// existing column replaces it.
func (t *Table) Rename(from, to string) *Table {
	c, ok := t.Column(from)
	if !ok || from == to {
		return t
	}
	out := t.Drop(from)
	return out.put(c.rename(to))
}

// Drop returns a copy of t without the named columns.
func (t *Table) Drop(names ...string) *Table {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	out := Empty(0)
	out.index, out.rows = t.index, t.rows
	for _, c := range t.cols {
		if !skip[c.Name()] {
			out = out.put(c)
		}
	}
	return out
}

// Project returns a table with only the named columns, in the given order.
// Names that do not exist are skipped.
func (t *Table) Project(names ...string) *Table {
	out := Empty(0)
	out.index, out.rows = t.index, t.rows
	for _, n := range names {
		if c, ok := t.Column(n); ok {
			out = out.put(c)
		}
	}
	return out
}

// Filter returns the rows for which keep returns true, preserving order and
// source positions.
func (t *Table) Filter(keep func(i int) bool) *Table {
	var rows []int
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return t.Pick(rows)
}

// Pick returns the rows at the given positions.
func (t *Table) Pick(rows []int) *Table {
	out := &Table{
		cols:  make([]*Column, len(t.cols)),
		pos:   make(map[string]int, len(t.pos)),
		index: make([]int, len(rows)),
		rows:  len(rows),
	}
	for i, r := range rows {
		out.index[i] = t.index[r]
	}
	for i, c := range t.cols {
		out.cols[i] = c.pick(rows)
		out.pos[c.Name()] = i
	}
	return out
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	if n >= t.rows {
		return t
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return t.Pick(rows)
}

// MissingIn returns, for row i, the names of the given columns whose cell is
// missing. Absent columns count as missing.
func (t *Table) MissingIn(i int, names []string) []string {
	var missing []string
	for _, n := range names {
		c, ok := t.Column(n)
		if !ok || c.IsMissing(i) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Records returns the table as one map per row. Missing cells are nil.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, t.rows)
	for i := range out {
		rec := make(map[string]any, len(t.cols))
		for _, c := range t.cols {
			rec[c.Name()] = c.value(i)
		}
		out[i] = rec
	}
	return out
}

// Equal reports whether a and b have the same columns, kinds, cells, and row
// positions. Missing cells compare equal.
func Equal(a, b *Table) bool {
	if a.rows != b.rows || len(a.cols) != len(b.cols) {
		return false
	}
	for i := range a.index {
		if a.index[i] != b.index[i] {
			return false
		}
	}
	for i, ca := range a.cols {
		cb := b.cols[i]
		if ca.Name() != cb.Name() || ca.Kind() != cb.Kind() {
			return false
		}
		for r := 0; r < a.rows; r++ {
			if ca.IsMissing(r) != cb.IsMissing(r) {
				return false
			}
			if ca.IsMissing(r) {
				continue
			}
			if ca.Kind() == Text {
				if ca.texts[r] != cb.texts[r] {
					return false
				}
			} else if ca.nums[r] != cb.nums[r] && !(math.IsNaN(ca.nums[r]) && math.IsNaN(cb.nums[r])) {
				return false
			}
		}
	}
	return true
}
