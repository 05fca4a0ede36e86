package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/hydrochem/pkg/table"
)

// sheetName is the worksheet written by WriteXLSX and WriteTemplate.
const sheetName = "Sheet1"

// WriteXLSX writes t as a single-sheet workbook: a bold header row followed
// by one row per table row. Missing cells are left blank.
func WriteXLSX(w io.Writer, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	cols := t.Columns()
	header := make([]any, len(cols))
	for j, name := range cols {
		header[j] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < t.Len(); i++ {
		row := make([]any, len(cols))
		for j, name := range cols {
			c, _ := t.Column(name)
			switch {
			case c.IsMissing(i):
				row[j] = nil
			case c.Kind() == table.Text:
				row[j] = c.Text(i)
			default:
				row[j] = c.Num(i)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(cols) > 0 {
		if err := styleHeader(f, len(cols)); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func styleHeader(f *excelize.File, ncols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(ncols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, "A1", last, style)
}

// ExportXLSX writes t to a workbook file at path.
func ExportXLSX(t *table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteXLSX(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Template returns the example sample table offered to users: five samples in
// three groups with every recognized chemistry column filled, concentrations
// in mg/L.
func Template() *table.Table {
	return table.MustNew(
		table.NewText("Sample", []string{"W-01", "W-02", "W-03", "S-01", "R-01"}),
		table.NewText("Label", []string{"Aquifer A", "Aquifer A", "Aquifer B", "Spring", "River"}),
		table.NewNumeric("Ca", []float64{62, 58, 24, 88, 35}),
		table.NewNumeric("Mg", []float64{18, 16.5, 9.2, 32, 8}),
		table.NewNumeric("Na", []float64{25, 30, 118, 14, 12}),
		table.NewNumeric("K", []float64{3.1, 2.8, 5.4, 1.9, 2.2}),
		table.NewNumeric("HCO3", []float64{245, 230, 180, 320, 120}),
		table.NewNumeric("CO3", []float64{0, 0, 6, 0, 0}),
		table.NewNumeric("Cl", []float64{32, 38, 145, 18, 15}),
		table.NewNumeric("SO4", []float64{48, 52, 60, 95, 22}),
		table.NewNumeric("pH", []float64{7.4, 7.3, 8.1, 7.0, 7.8}),
		table.NewNumeric("TDS", []float64{420, 410, 560, 530, 210}),
	)
}

// WriteTemplate writes the example workbook to w.
func WriteTemplate(w io.Writer) error {
	return WriteXLSX(w, Template())
}

// WriteJSON writes t as a JSON array of row objects. Missing cells are null.
func WriteJSON(w io.Writer, t *table.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Records())
}
