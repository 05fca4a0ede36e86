package schoeller

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/hydrochem/pkg/diagram"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/render"
)

func TestValues(t *testing.T) {
	s := render.Sample{Meq: map[string]float64{
		"Ca": 2, "Mg": 1, "Na": 0, "K": math.NaN(), "Cl": 3, "SO4": -1, "HCO3": 4,
	}}
	got := Values(s)
	want := []float64{2, 1, math.NaN(), math.NaN(), 3, math.NaN(), 4}
	for i := range want {
		if math.IsNaN(want[i]) != math.IsNaN(got[i]) || (!math.IsNaN(want[i]) && got[i] != want[i]) {
			t.Errorf("Values()[%d] (%s) = %v, want %v", i, Ions[i].Symbol, got[i], want[i])
		}
	}
}

func TestDecades(t *testing.T) {
	samples := []render.Sample{
		{Meq: map[string]float64{"Ca": 0.05, "HCO3": 12}},
		{Meq: map[string]float64{"Cl": 3}},
	}
	if lo, hi := Decades(samples); lo != -2 || hi != 2 {
		t.Errorf("Decades() = %d, %d, want -2, 2", lo, hi)
	}
	if lo, hi := Decades([]render.Sample{{Meq: map[string]float64{"Ca": 1}}}); lo != 0 || hi != 1 {
		t.Errorf("Decades(single) = %d, %d, want 0, 1", lo, hi)
	}
	if lo, hi := Decades(nil); lo != -1 || hi != 1 {
		t.Errorf("Decades(nil) = %d, %d", lo, hi)
	}
}

func TestRenderSVG(t *testing.T) {
	tbl, err := normalize.Normalize(pkgio.Template(), diagram.Schoeller)
	if err != nil {
		t.Fatal(err)
	}
	s := string(RenderSVG(tbl, render.WithTitle("Schoeller")))
	if got := strings.Count(s, `class="sample"`); got != tbl.Len() {
		t.Errorf("sample groups = %d, want %d", got, tbl.Len())
	}
	for _, ion := range Ions {
		if !strings.Contains(s, ">"+ion.Symbol+"</text>") {
			t.Errorf("missing axis label %s", ion.Symbol)
		}
	}
	if !strings.Contains(s, ">meq/L</text>") {
		t.Error("missing y axis label")
	}
}
