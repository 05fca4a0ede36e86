package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/diagram"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/table"
)

func TestColumnStats(t *testing.T) {
	tbl := table.MustNew(
		table.NewText("Sample", []string{"a", "b", "c", "d"}),
		table.NewNumeric("Ca", []float64{1, 2, 3, table.Missing}),
		table.NewNumeric("Mg", []float64{table.Missing, 5, table.Missing, table.Missing}),
	)

	got := columnStats(tbl)
	if len(got) != 2 {
		t.Fatalf("columnStats returned %d columns, want 2 numeric", len(got))
	}

	ca := got[0]
	if ca.Name != "Ca" || ca.Count != 3 || ca.Missing != 1 {
		t.Errorf("Ca = %+v", ca)
	}
	if ca.Min != 1 || ca.Max != 3 || ca.Mean != 2 {
		t.Errorf("Ca bounds/mean = %v %v %v", ca.Min, ca.Mean, ca.Max)
	}
	if math.IsNaN(ca.StdDev) || ca.StdDev <= 0 {
		t.Errorf("Ca StdDev = %v", ca.StdDev)
	}

	mg := got[1]
	if mg.Count != 1 || mg.Min != 5 || mg.Max != 5 {
		t.Errorf("Mg = %+v", mg)
	}
	if !math.IsNaN(mg.StdDev) {
		t.Errorf("StdDev of one value = %v, want NaN", mg.StdDev)
	}
}

func TestIonBalanceTemplate(t *testing.T) {
	sel, err := normalize.Prepare(pkgio.Template()).Report(diagram.Piper)
	if err != nil {
		t.Fatal(err)
	}

	rows := ionBalance(sel.Table, chem.MgL)
	if len(rows) != sel.Kept {
		t.Fatalf("ionBalance returned %d rows, want %d", len(rows), sel.Kept)
	}
	for _, r := range rows {
		if r.Label == "" {
			t.Error("row without label")
		}
		if math.IsNaN(r.Error) {
			t.Errorf("%s: balance error is NaN", r.Label)
		}
		if !strings.Contains(r.WaterType, "-") {
			t.Errorf("%s: water type %q", r.Label, r.WaterType)
		}
	}
}

func TestStatsTableRendersMissing(t *testing.T) {
	out := statsTable([]colStat{{Name: "pH", Min: math.NaN(), Mean: math.NaN(), Max: math.NaN(), StdDev: math.NaN(), Missing: 2}})
	if !strings.Contains(out, "pH") || !strings.Contains(out, "—") {
		t.Errorf("statsTable output:\n%s", out)
	}
}

func TestFmtStat(t *testing.T) {
	if got := fmtStat(math.NaN()); got != "—" {
		t.Errorf("fmtStat(NaN) = %q", got)
	}
	if got := fmtStat(12.3456); got != "12.35" {
		t.Errorf("fmtStat(12.3456) = %q", got)
	}
}
