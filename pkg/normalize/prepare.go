package normalize

import (
	"strconv"

	"github.com/matzehuels/hydrochem/pkg/palette"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// Options configures Prepare.
type Options struct {
	Palette palette.Palette
}

// Option mutates Options.
type Option func(*Options)

// WithPalette sets the palette labels draw colors from.
func WithPalette(p palette.Palette) Option {
	return func(o *Options) { o.Palette = p }
}

// Prepared is a column-complete, labeled, colored table built from one upload.
// It is the input to every per-diagram selection for that upload.
type Prepared struct {
	// Table holds every input row with completed columns, labels, display
	// attributes and label colors.
	Table *table.Table

	// Colors maps each distinct label to its color.
	Colors *palette.ColorMap

	// Completed lists the expected columns that were absent from the input.
	Completed []string

	// LabelSource records where labels came from: LabelFromColumn,
	// LabelFromSample or LabelFromIndex.
	LabelSource string
}

// Prepare completes columns, derives labels, applies display defaults and
// assigns label colors. raw is not modified.
func Prepare(raw *table.Table, opts ...Option) *Prepared {
	o := Options{Palette: palette.Default}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Palette.Len() == 0 {
		o.Palette = palette.Default
	}

	completion := completionSchema()
	completed := raw.Absent(completion)
	t := raw.Merge(completion)

	t, source := deriveLabels(t)
	t = t.Merge(displaySchema())

	labels, _ := t.Column(ColLabel)
	colors := palette.Build(labels.Texts(), o.Palette)
	t = applyColors(t, colors)

	return &Prepared{
		Table:       t,
		Colors:      colors,
		Completed:   completed,
		LabelSource: source,
	}
}

// deriveLabels guarantees a text Label column. An existing Label column is
// kept as is; otherwise labels are the stringified Sample identifiers, or the
// row positions when there is no Sample column.
func deriveLabels(t *table.Table) (*table.Table, string) {
	if c, ok := t.Column(ColLabel); ok {
		return mustWith(t, c.As(table.Text)), LabelFromColumn
	}
	if sample, ok := t.Column(ColSample); ok {
		return mustWith(t, table.NewText(ColLabel, sample.Texts())), LabelFromSample
	}
	labels := make([]string, t.Len())
	for i := range labels {
		labels[i] = strconv.Itoa(t.RowIndex(i))
	}
	return mustWith(t, table.NewText(ColLabel, labels)), LabelFromIndex
}

// applyColors sets the Color column to each row's label color.
func applyColors(t *table.Table, m *palette.ColorMap) *table.Table {
	labels, _ := t.Column(ColLabel)
	colors := make([]string, t.Len())
	for i := range colors {
		colors[i], _ = m.Color(labels.Text(i))
	}
	return mustWith(t, table.NewText(ColColor, colors))
}

// mustWith adds a column built from t itself; the lengths always agree.
func mustWith(t *table.Table, c *table.Column) *table.Table {
	out, err := t.With(c)
	if err != nil {
		panic(err)
	}
	return out
}
