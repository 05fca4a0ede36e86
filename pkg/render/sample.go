package render

import (
	"math"

	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/palette"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// Fallback display values for tables that were not normalized.
const (
	fallbackColor  = "#1f77b4"
	fallbackMarker = "o"
	fallbackSize   = 40.0
	fallbackAlpha  = 1.0
)

// Sample is one table row prepared for drawing.
type Sample struct {
	Name   string // Sample name, or the label when there is none
	Label  string
	Color  string
	Marker string
	Size   float64
	Alpha  float64
	PH     float64
	TDS    float64
	Meq    map[string]float64 // Concentrations in meq/L keyed by ion symbol
	Comp   chem.Composition
}

// Samples extracts drawable samples from t. Concentrations are read in unit u
// and converted to meq/L; missing values stay NaN in Meq. Colors that are
// not hex codes fall back to the default color.
func Samples(t *table.Table, u chem.Unit) []Sample {
	text := func(name string, i int, def string) string {
		if c, ok := t.Column(name); ok && !c.IsMissing(i) {
			return c.Text(i)
		}
		return def
	}
	num := func(name string, i int, def float64) float64 {
		if c, ok := t.Column(name); ok && !c.IsMissing(i) {
			return c.Num(i)
		}
		return def
	}

	out := make([]Sample, t.Len())
	for i := range out {
		raw := make(map[string]float64, 8)
		meq := make(map[string]float64, 8)
		for _, ion := range chem.Ions() {
			v := num(ion.Symbol, i, math.NaN())
			raw[ion.Symbol] = v
			meq[ion.Symbol] = chem.ToMeq(ion, v, u)
		}
		label := text("Label", i, "")
		color := text("Color", i, fallbackColor)
		if !palette.Valid(color) {
			color = fallbackColor
		}
		out[i] = Sample{
			Name:   text("Sample", i, label),
			Label:  label,
			Color:  color,
			Marker: text("Marker", i, fallbackMarker),
			Size:   num("Size", i, fallbackSize),
			Alpha:  clamp(num("Alpha", i, fallbackAlpha), 0, 1),
			PH:     num("pH", i, math.NaN()),
			TDS:    num("TDS", i, math.NaN()),
			Meq:    meq,
			Comp:   chem.NewComposition(raw, u),
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
