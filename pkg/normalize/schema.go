package normalize

import (
	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/diagram"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// Column names of the display attributes.
const (
	ColSample = diagram.ColSample
	ColLabel  = "Label"
	ColColor  = "Color"
	ColMarker = "Marker"
	ColSize   = "Size"
	ColAlpha  = "Alpha"
)

// Display defaults applied when the column is absent.
const (
	DefaultMarker = "o"
	DefaultSize   = 40.0
	DefaultAlpha  = 1.0
)

// Label sources reported by Prepare.
const (
	LabelFromColumn = "label"
	LabelFromSample = "sample"
	LabelFromIndex  = "index"
)

// completionSchema lists the numeric columns inserted as missing when absent.
func completionSchema() table.Schema {
	s := make(table.Schema, 0, 10)
	for _, ion := range chem.Ions() {
		s = append(s, table.NumField(ion.Symbol, table.Missing))
	}
	return append(s,
		table.NumField(diagram.ColPH, table.Missing),
		table.NumField(diagram.ColTDS, table.Missing),
	)
}

// displaySchema lists the display attributes with their defaults.
func displaySchema() table.Schema {
	return table.Schema{
		table.TextField(ColMarker, DefaultMarker),
		table.NumField(ColSize, DefaultSize),
		table.NumField(ColAlpha, DefaultAlpha),
	}
}

// InputSchema declares every column the tool recognizes in an uploaded
// spreadsheet, with its storage kind. Readers use it to canonicalize headers
// and decide how to parse cells.
func InputSchema() table.Schema {
	s := completionSchema()
	return append(s,
		table.TextField(ColSample, ""),
		table.TextField(ColLabel, ""),
		table.TextField(ColColor, ""),
		table.TextField(ColMarker, ""),
		table.NumField(ColSize, table.Missing),
		table.NumField(ColAlpha, table.Missing),
	)
}

// ionColumns lists the major-ion columns. Every selected table carries all
// of them, so optional ions such as CO3 still reach the renderers.
func ionColumns() []string {
	ions := chem.Ions()
	cols := make([]string, len(ions))
	for i, ion := range ions {
		cols[i] = ion.Symbol
	}
	return cols
}

// displayColumns are carried into every selected table after the ion
// columns.
var displayColumns = []string{ColSample, ColLabel, ColColor, ColMarker, ColSize, ColAlpha}
