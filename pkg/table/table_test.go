package table

import (
	"math"
	"reflect"
	"testing"
)

func fixture() *Table {
	return MustNew(
		NewText("Sample", []string{"P-1", "P-2", "P-3"}),
		NewNumeric("Ca", []float64{40, 52.5, Missing}),
		NewNumeric("SO4", []float64{12, Missing, 30}),
	)
}

func TestNewLengthMismatch(t *testing.T) {
	_, err := New(
		NewNumeric("Ca", []float64{1, 2}),
		NewNumeric("Mg", []float64{1}),
	)
	if err == nil {
		t.Fatal("New() should reject columns of different lengths")
	}
}

func TestColumnsOrder(t *testing.T) {
	tbl := fixture()
	want := []string{"Sample", "Ca", "SO4"}
	if got := tbl.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if tbl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tbl.Len())
	}
}

func TestColumnConversions(t *testing.T) {
	c := NewText("Sample", []string{" 7 ", "abc", ""})
	if c.Text(0) != "7" {
		t.Errorf("text cells should be trimmed, got %q", c.Text(0))
	}
	if c.Num(0) != 7 {
		t.Errorf("Num(0) = %v, want 7", c.Num(0))
	}
	if !math.IsNaN(c.Num(1)) {
		t.Errorf("Num(1) = %v, want NaN", c.Num(1))
	}
	if !c.IsMissing(2) {
		t.Error("empty text cell should be missing")
	}

	n := NewNumeric("Sample", []float64{1, 2.5, Missing})
	if got := n.As(Text).Texts(); !reflect.DeepEqual(got, []string{"1", "2.5", ""}) {
		t.Errorf("As(Text) = %v", got)
	}
	if n.As(Numeric) != n {
		t.Error("As() with the same kind should return the receiver")
	}
}

func TestWithDoesNotMutate(t *testing.T) {
	tbl := fixture()
	out, err := tbl.With(NewText("Label", []string{"a", "b", "c"}))
	if err != nil {
		t.Fatalf("With() error: %v", err)
	}
	if tbl.Has("Label") {
		t.Error("With() mutated its receiver")
	}
	if !out.Has("Label") {
		t.Error("With() result lacks the new column")
	}

	replaced, err := out.With(NewNumeric("Ca", []float64{1, 2, 3}))
	if err != nil {
		t.Fatalf("With() error: %v", err)
	}
	if got := replaced.Columns(); !reflect.DeepEqual(got, []string{"Sample", "Ca", "SO4", "Label"}) {
		t.Errorf("replacing should keep position, got %v", got)
	}
	if c, _ := out.Column("Ca"); !c.IsMissing(2) {
		t.Error("replacing mutated the previous table")
	}

	if _, err := tbl.With(NewNumeric("K", []float64{1})); err == nil {
		t.Error("With() should reject a short column")
	}
}

func TestFilterKeepsIndex(t *testing.T) {
	tbl := fixture()
	ca, _ := tbl.Column("Ca")
	out := tbl.Filter(func(i int) bool { return !ca.IsMissing(i) })

	if out.Len() != 2 {
		t.Fatalf("Filter() rows = %d, want 2", out.Len())
	}
	if got := out.Index(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("Index() = %v", got)
	}

	second := out.Filter(func(i int) bool { return i == 1 })
	if second.RowIndex(0) != 1 {
		t.Errorf("RowIndex(0) = %d, want 1", second.RowIndex(0))
	}
}

func TestProjectAndDrop(t *testing.T) {
	tbl := fixture()
	p := tbl.Project("SO4", "Nope", "Sample")
	if got := p.Columns(); !reflect.DeepEqual(got, []string{"SO4", "Sample"}) {
		t.Errorf("Project() = %v", got)
	}
	d := tbl.Drop("Ca")
	if got := d.Columns(); !reflect.DeepEqual(got, []string{"Sample", "SO4"}) {
		t.Errorf("Drop() = %v", got)
	}
	if d.Len() != 3 {
		t.Errorf("Drop() rows = %d", d.Len())
	}
}

func TestRename(t *testing.T) {
	tbl := fixture().Rename("Sample", "ID")
	if tbl.Has("Sample") || !tbl.Has("ID") {
		t.Errorf("Rename() columns = %v", tbl.Columns())
	}
}

func TestMissingIn(t *testing.T) {
	tbl := fixture()
	got := tbl.MissingIn(1, []string{"Ca", "SO4", "Mg"})
	want := []string{"SO4", "Mg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingIn() = %v, want %v", got, want)
	}
}

func TestRecords(t *testing.T) {
	recs := fixture().Records()
	if len(recs) != 3 {
		t.Fatalf("Records() len = %d", len(recs))
	}
	if recs[1]["SO4"] != nil {
		t.Errorf("missing cell should be nil, got %v", recs[1]["SO4"])
	}
	if recs[0]["Sample"] != "P-1" || recs[0]["Ca"] != 40.0 {
		t.Errorf("unexpected record %v", recs[0])
	}
}

func TestHead(t *testing.T) {
	if got := fixture().Head(2).Len(); got != 2 {
		t.Errorf("Head(2) = %d rows", got)
	}
	if got := fixture().Head(10).Len(); got != 3 {
		t.Errorf("Head(10) = %d rows", got)
	}
}

func TestEqual(t *testing.T) {
	if !Equal(fixture(), fixture()) {
		t.Error("identical tables should be equal (NaN cells included)")
	}
	other := fixture().Rename("Ca", "Mg")
	if Equal(fixture(), other) {
		t.Error("tables with different columns should differ")
	}
	picked := fixture().Pick([]int{0, 1, 2})
	if !Equal(fixture(), picked) {
		t.Error("Pick of all rows should equal the source")
	}
}
