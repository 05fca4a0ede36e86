package table

import "math"

// Field declares one expected column.
type Field struct {
	Name string
	Kind Kind
	num  float64
	text string
}

// NumField declares a numeric column filled with fill when absent.
// Use Missing to insert an all-missing column.
func NumField(name string, fill float64) Field {
	return Field{Name: name, Kind: Numeric, num: fill}
}

// TextField declares a text column filled with fill when absent.
// Use "" to insert an all-missing column.
func TextField(name, fill string) Field {
	return Field{Name: name, Kind: Text, text: fill}
}

// Column returns a column of n cells holding the field's fill value.
func (f Field) Column(n int) *Column {
	if f.Kind == Text {
		texts := make([]string, n)
		for i := range texts {
			texts[i] = f.text
		}
		return &Column{name: f.Name, kind: Text, texts: texts}
	}
	nums := make([]float64, n)
	for i := range nums {
		nums[i] = f.num
	}
	return &Column{name: f.Name, kind: Numeric, nums: nums}
}

// FillsMissing reports whether the field inserts missing cells.
func (f Field) FillsMissing() bool {
	if f.Kind == Text {
		return f.text == ""
	}
	return math.IsNaN(f.num)
}

// Schema is an ordered set of expected columns.
type Schema []Field

// Names returns the field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the field named name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Merge returns a table in which every field of s exists with the declared
// kind. Absent columns are appended, in schema order, filled with the field's
// fill value; present columns keep their cells and position and are converted
// to the declared kind when necessary. Columns not named in s are kept.
func (t *Table) Merge(s Schema) *Table {
	out := t
	for _, f := range s {
		if c, ok := out.Column(f.Name); ok {
			if c.Kind() != f.Kind {
				out = out.put(c.As(f.Kind))
			}
			continue
		}
		out = out.put(f.Column(out.rows))
	}
	return out
}

// Absent returns the names of the fields of s that t lacks.
func (t *Table) Absent(s Schema) []string {
	var names []string
	for _, f := range s {
		if !t.Has(f.Name) {
			names = append(names, f.Name)
		}
	}
	return names
}
