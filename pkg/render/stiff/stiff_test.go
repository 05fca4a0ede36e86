package stiff

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/diagram"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/palette"
	"github.com/matzehuels/hydrochem/pkg/render"
	"github.com/matzehuels/hydrochem/pkg/table"
)

func TestShape(t *testing.T) {
	got := Shape(chem.Composition{Ca: 2, Mg: 1, NaK: 3, HCO3CO3: 4, Cl: 5, SO4: 6})
	want := []render.Point{{X: -3, Y: 0}, {X: -2, Y: 1}, {X: -1, Y: 2}, {X: 6, Y: 2}, {X: 4, Y: 1}, {X: 5, Y: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Shape() = %v, want %v", got, want)
	}
}

func TestShapeIncludesCO3(t *testing.T) {
	raw := table.MustNew(
		table.NewText("Sample", []string{"S-1"}),
		table.NewNumeric("Ca", []float64{40}),
		table.NewNumeric("Mg", []float64{10}),
		table.NewNumeric("Na", []float64{20}),
		table.NewNumeric("K", []float64{2}),
		table.NewNumeric("HCO3", []float64{150}),
		table.NewNumeric("CO3", []float64{60}),
		table.NewNumeric("Cl", []float64{30}),
		table.NewNumeric("SO4", []float64{25}),
	)
	tbl, err := normalize.Normalize(raw, diagram.Stiff)
	if err != nil {
		t.Fatal(err)
	}
	samples := render.Samples(tbl, chem.MgL)
	if len(samples) != 1 {
		t.Fatalf("samples = %d, want 1", len(samples))
	}

	want := chem.ToMeq(chem.HCO3, 150, chem.MgL) + chem.ToMeq(chem.CO3, 60, chem.MgL)
	alk := Shape(samples[0].Comp)[4].X
	if math.Abs(alk-want) > 1e-9 {
		t.Errorf("HCO3+CO3 vertex = %v meq/L, want %v", alk, want)
	}
}

func TestExtent(t *testing.T) {
	samples := []render.Sample{
		{Comp: chem.Composition{Ca: 2, Cl: 3.3}},
		{Comp: chem.Composition{NaK: 7.2}},
	}
	if got := Extent(samples); got < 7.2 {
		t.Errorf("Extent() = %v, want >= 7.2", got)
	}
	if got := Extent(nil); got != 1 {
		t.Errorf("Extent(nil) = %v, want 1", got)
	}
}

func TestGrid(t *testing.T) {
	tests := []struct{ n, cols, rows int }{
		{0, 1, 1},
		{1, 1, 1},
		{2, 2, 1},
		{4, 2, 2},
		{5, 3, 2},
		{10, 4, 3},
	}
	for _, tt := range tests {
		if c, r := Grid(tt.n); c != tt.cols || r != tt.rows {
			t.Errorf("Grid(%d) = %d, %d, want %d, %d", tt.n, c, r, tt.cols, tt.rows)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	tbl, err := normalize.Normalize(pkgio.Template(), diagram.Stiff)
	if err != nil {
		t.Fatal(err)
	}
	s := string(RenderSVG(tbl))
	if got := strings.Count(s, `class="sample"`); got != tbl.Len() {
		t.Errorf("panels = %d, want %d", got, tbl.Len())
	}
	for _, name := range []string{"W-01", "W-02", "W-03", "S-01", "R-01"} {
		if !strings.Contains(s, ">"+name+"</text>") {
			t.Errorf("missing panel title %q", name)
		}
	}
}

func TestRenderSVGFillIsLightenedOutline(t *testing.T) {
	tbl, err := normalize.Normalize(pkgio.Template(), diagram.Stiff)
	if err != nil {
		t.Fatal(err)
	}
	samples := render.Samples(tbl, chem.MgL)
	s := string(RenderSVG(tbl))

	color := samples[0].Color
	fill := palette.Lighten(color, fillLighten)
	if fill == color {
		t.Fatalf("Lighten(%s) left the color unchanged", color)
	}
	if !strings.Contains(s, `fill="`+fill+`"`) {
		t.Errorf("no panel filled with %s", fill)
	}
	if !strings.Contains(s, `stroke="`+color+`"`) {
		t.Errorf("no panel outlined with %s", color)
	}
}
