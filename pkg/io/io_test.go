package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/hydrochem/pkg/errors"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// workbook builds an .xlsx in memory from rows of cell values.
func workbook(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := workbook(t,
		[]any{"Sample", "ca (mg/L)", " MG ", "SO4", "Notes"},
		[]any{101, 40.5, 12, "<0.5", "dry"},
		[]any{},
		[]any{"P-2", 38, nil, 22, ""},
	)

	res, err := ReadXLSX(bytes.NewReader(data), WithSchema(normalize.InputSchema()))
	if err != nil {
		t.Fatalf("ReadXLSX() error: %v", err)
	}

	if res.Sheet != "Sheet1" {
		t.Errorf("Sheet = %q", res.Sheet)
	}
	if want := []string{"Sample", "Ca", "Mg", "SO4", "Notes"}; !reflect.DeepEqual(res.Headers, want) {
		t.Errorf("Headers = %v, want %v", res.Headers, want)
	}
	if res.Table.Len() != 2 {
		t.Fatalf("rows = %d, want 2", res.Table.Len())
	}
	if res.Blank != 1 {
		t.Errorf("Blank = %d, want 1", res.Blank)
	}
	if want := []int{2, 4}; !reflect.DeepEqual(res.Lines, want) {
		t.Errorf("Lines = %v, want %v", res.Lines, want)
	}
	if got := res.Line(1); got != 4 {
		t.Errorf("Line(1) = %d, want 4", got)
	}

	sample, _ := res.Table.Column("Sample")
	if sample.Kind() != table.Text || sample.Text(0) != "101" {
		t.Errorf("Sample = %v %q", sample.Kind(), sample.Text(0))
	}
	ca, _ := res.Table.Column("Ca")
	if ca.Num(0) != 40.5 || ca.Num(1) != 38 {
		t.Errorf("Ca = %v", ca.Nums())
	}
	mg, _ := res.Table.Column("Mg")
	if !mg.IsMissing(1) {
		t.Errorf("blank Mg should be missing, got %v", mg.Num(1))
	}
	so4, _ := res.Table.Column("SO4")
	if !so4.IsMissing(0) {
		t.Errorf("\"<0.5\" should be missing, got %v", so4.Num(0))
	}

	want := []CellRef{{Cell: "D2", Column: "SO4", Value: "<0.5"}}
	if !reflect.DeepEqual(res.Coerced, want) {
		t.Errorf("Coerced = %+v, want %+v", res.Coerced, want)
	}

	notes, _ := res.Table.Column("Notes")
	if notes.Kind() != table.Text {
		t.Errorf("Notes kind = %v, want text", notes.Kind())
	}
	if got := res.Table.Index(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("Index() = %v", got)
	}
}

func TestReadXLSXHeaderOnly(t *testing.T) {
	data := workbook(t, []any{"Ca", "Mg"})
	res, err := ReadXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadXLSX() error: %v", err)
	}
	if res.Table.Len() != 0 {
		t.Errorf("rows = %d, want 0", res.Table.Len())
	}
}

func TestReadXLSXInvalid(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("Ca,Mg\n1,2\n"))
	if !errors.Is(err, errors.ErrCodeInvalidSpreadsheet) {
		t.Errorf("err = %v, want INVALID_SPREADSHEET", err)
	}

	empty := workbook(t)
	if _, err := ReadXLSX(bytes.NewReader(empty)); !errors.Is(err, errors.ErrCodeInvalidSpreadsheet) {
		t.Errorf("empty sheet err = %v, want INVALID_SPREADSHEET", err)
	}

	data := workbook(t, []any{"Ca"})
	if _, err := ReadXLSX(bytes.NewReader(data), WithSheet("Nope")); !errors.Is(err, errors.ErrCodeInvalidSpreadsheet) {
		t.Errorf("missing sheet err = %v, want INVALID_SPREADSHEET", err)
	}
}

func TestCanonicalHeaders(t *testing.T) {
	got := canonicalHeaders(
		[]string{"ph", "TDS [mg/L]", "", "Site", "Site", "hco3"},
		normalize.InputSchema(),
	)
	want := []string{"pH", "TDS", "Unnamed: 2", "Site", "Site.1", "HCO3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("canonicalHeaders() = %v, want %v", got, want)
	}
}

func TestCanonicalHeader(t *testing.T) {
	tests := map[string]string{
		" Ca ":         "Ca",
		"Na (mg/L)":    "Na",
		"Cl [meq/L]":   "Cl",
		"(weird)":      "(weird)",
		"Café":   "Café",
		"SO4 (mg/L) x": "SO4 (mg/L) x",
	}
	for in, want := range tests {
		if got := CanonicalHeader(in); got != want {
			t.Errorf("CanonicalHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		t.Fatalf("WriteTemplate() error: %v", err)
	}
	res, err := ReadXLSX(&buf, WithSchema(normalize.InputSchema()))
	if err != nil {
		t.Fatalf("ReadXLSX(template) error: %v", err)
	}
	if !table.Equal(res.Table, Template()) {
		t.Errorf("template did not round-trip: %v", res.Table.Columns())
	}
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	src := table.MustNew(
		table.NewText("Sample", []string{"a", "b"}),
		table.NewNumeric("Ca", []float64{1.5, table.Missing}),
	)
	if err := ExportXLSX(src, path); err != nil {
		t.Fatalf("ExportXLSX() error: %v", err)
	}
	res, err := ImportXLSX(path, WithSchema(normalize.InputSchema()))
	if err != nil {
		t.Fatalf("ImportXLSX() error: %v", err)
	}
	if !table.Equal(res.Table, src) {
		t.Error("exported table did not round-trip")
	}
}

func TestImportXLSXRejectsFilename(t *testing.T) {
	if _, err := ImportXLSX("samples.csv"); !errors.Is(err, errors.ErrCodeInvalidFilename) {
		t.Errorf("err = %v, want INVALID_FILENAME", err)
	}
}

func TestWriteJSON(t *testing.T) {
	src := table.MustNew(table.NewNumeric("Ca", []float64{2, table.Missing}))
	var buf bytes.Buffer
	if err := WriteJSON(&buf, src); err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 2 || got[0]["Ca"] != 2.0 || got[1]["Ca"] != nil {
		t.Errorf("WriteJSON() = %s", buf.String())
	}
}

func TestResultLineFallback(t *testing.T) {
	var nilRes *Result
	if got := nilRes.Line(0); got != 2 {
		t.Errorf("nil Line(0) = %d, want 2", got)
	}
	res := &Result{Lines: []int{3}}
	if got := res.Line(0); got != 3 {
		t.Errorf("Line(0) = %d, want 3", got)
	}
	if got := res.Line(5); got != 7 {
		t.Errorf("Line(5) = %d, want 7", got)
	}
}
