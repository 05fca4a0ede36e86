package normalize

import (
	"github.com/matzehuels/hydrochem/pkg/diagram"
	"github.com/matzehuels/hydrochem/pkg/errors"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// DroppedRow describes one row excluded from a diagram.
type DroppedRow struct {
	Index   int      `json:"index"`   // Source row position
	Label   string   `json:"label"`   // Row label
	Missing []string `json:"missing"` // Required columns with missing values
}

// Selection is the outcome of selecting rows for one diagram kind.
type Selection struct {
	Kind     diagram.Kind `json:"kind"`
	Required []string     `json:"required"`
	Total    int          `json:"total"`
	Kept     int          `json:"kept"`
	Dropped  []DroppedRow `json:"dropped,omitempty"`

	// Table holds the kept rows: the required columns, then any major ion
	// the kind does not require, then the display columns.
	Table *table.Table `json:"-"`
}

// Empty reports whether no row survived selection.
func (s *Selection) Empty() bool { return s.Kept == 0 }

// Select returns the rows plottable on a diagram of kind k. A row is kept
// exactly when none of k's required columns is missing; kept rows are never
// modified. When no row survives, Select returns an error with code
// NO_PLOTTABLE_ROWS.
func (p *Prepared) Select(k diagram.Kind) (*table.Table, error) {
	s, err := p.Report(k)
	if err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, errors.New(errors.ErrCodeNoPlottableRows, "no complete samples to plot a %s diagram", k.Title())
	}
	return s.Table, nil
}

// Report selects rows for kind k like Select and also describes every dropped
// row. An empty selection is not an error here; check Selection.Empty.
func (p *Prepared) Report(k diagram.Kind) (*Selection, error) {
	required := k.Required()
	if required == nil {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "unknown diagram %q", k)
	}

	t := p.Table.Merge(requiredSchema(p.Table, required))
	labels, _ := t.Column(ColLabel)

	var keep []int
	var dropped []DroppedRow
	for i := 0; i < t.Len(); i++ {
		missing := t.MissingIn(i, required)
		if len(missing) == 0 {
			keep = append(keep, i)
			continue
		}
		d := DroppedRow{Index: t.RowIndex(i), Missing: missing}
		if labels != nil {
			d.Label = labels.Text(i)
		}
		dropped = append(dropped, d)
	}

	cols := append(append([]string(nil), required...), ionColumns()...)
	cols = append(cols, displayColumns...)
	return &Selection{
		Kind:     k,
		Required: required,
		Total:    t.Len(),
		Kept:     len(keep),
		Dropped:  dropped,
		Table:    t.Pick(keep).Project(dedupe(cols)...),
	}, nil
}

// requiredSchema declares any required column the table lacks, filled as
// missing. Prepare already completes the numeric columns, so in practice this
// only adds Sample for Stiff diagrams.
func requiredSchema(t *table.Table, required []string) table.Schema {
	input := InputSchema()
	var s table.Schema
	for _, name := range required {
		if t.Has(name) {
			continue
		}
		if f, ok := input.Lookup(name); ok && f.FillsMissing() {
			s = append(s, f)
			continue
		}
		s = append(s, table.NumField(name, table.Missing))
	}
	return s
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// Normalize prepares raw and selects the rows for kind k in one pass.
func Normalize(raw *table.Table, k diagram.Kind, opts ...Option) (*table.Table, error) {
	return Prepare(raw, opts...).Select(k)
}
