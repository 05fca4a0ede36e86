package table

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the storage kind of a column.
type Kind int

const (
	// Numeric columns hold float64 values; NaN is missing.
	Numeric Kind = iota
	// Text columns hold strings; "" is missing.
	Text
)

// String returns "numeric" or "text".
func (k Kind) String() string {
	if k == Text {
		return "text"
	}
	return "numeric"
}

// Missing is the numeric missing value.
var Missing = math.NaN()

// Column is a named, immutable vector of cells.
type Column struct {
	name  string
	kind  Kind
	nums  []float64
	texts []string
}

// NewNumeric creates a numeric column. The slice is copied.
func NewNumeric(name string, values []float64) *Column {
	return &Column{name: name, kind: Numeric, nums: append([]float64(nil), values...)}
}

// NewText creates a text column. The slice is copied; values are trimmed.
func NewText(name string, values []string) *Column {
	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = strings.TrimSpace(v)
	}
	return &Column{name: name, kind: Text, texts: texts}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the column kind.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of cells.
func (c *Column) Len() int {
	if c.kind == Text {
		return len(c.texts)
	}
	return len(c.nums)
}

// Num returns the numeric value of cell i. Text cells are parsed; cells that
// do not parse are reported as Missing.
func (c *Column) Num(i int) float64 {
	if c.kind == Numeric {
		return c.nums[i]
	}
	return parseNum(c.texts[i])
}

// Text returns cell i as a string. Numeric cells are formatted with the
// shortest representation that round-trips; missing numeric cells are "".
func (c *Column) Text(i int) string {
	if c.kind == Text {
		return c.texts[i]
	}
	return formatNum(c.nums[i])
}

// IsMissing reports whether cell i is missing.
func (c *Column) IsMissing(i int) bool {
	if c.kind == Text {
		return c.texts[i] == ""
	}
	return math.IsNaN(c.nums[i])
}

// Nums returns a copy of the column as float64 values.
func (c *Column) Nums() []float64 {
	out := make([]float64, c.Len())
	for i := range out {
		out[i] = c.Num(i)
	}
	return out
}

// Texts returns a copy of the column as strings.
func (c *Column) Texts() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.Text(i)
	}
	return out
}

// As returns the column converted to kind k. The receiver is returned when it
// already has kind k.
func (c *Column) As(k Kind) *Column {
	if c.kind == k {
		return c
	}
	if k == Text {
		return &Column{name: c.name, kind: Text, texts: c.Texts()}
	}
	return &Column{name: c.name, kind: Numeric, nums: c.Nums()}
}

// rename returns a shallow copy of c with a new name.
func (c *Column) rename(name string) *Column {
	cp := *c
	cp.name = name
	return &cp
}

// pick returns a new column holding the cells at the given positions.
func (c *Column) pick(rows []int) *Column {
	out := &Column{name: c.name, kind: c.kind}
	if c.kind == Text {
		out.texts = make([]string, len(rows))
		for i, r := range rows {
			out.texts[i] = c.texts[r]
		}
		return out
	}
	out.nums = make([]float64, len(rows))
	for i, r := range rows {
		out.nums[i] = c.nums[r]
	}
	return out
}

// value returns cell i as a JSON-friendly value: float64, string, or nil.
func (c *Column) value(i int) any {
	if c.IsMissing(i) {
		return nil
	}
	if c.kind == Text {
		return c.texts[i]
	}
	return c.nums[i]
}

func parseNum(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return Missing
	}
	return f
}

func formatNum(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseNumber parses a spreadsheet cell as a number. Empty or non-numeric
// cells yield Missing and ok=false.
func ParseNumber(s string) (float64, bool) {
	f := parseNum(s)
	return f, !math.IsNaN(f)
}
