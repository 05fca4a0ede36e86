package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/hydrochem/pkg/errors"
	"github.com/matzehuels/hydrochem/pkg/table"
)

// MaxRows bounds the number of sample rows read from one sheet.
const MaxRows = 100000

// CellRef identifies a spreadsheet cell whose value could not be used.
type CellRef struct {
	Cell   string `json:"cell"`   // A1-style reference, e.g. "C7"
	Column string `json:"column"` // Canonical column name
	Value  string `json:"value"`  // Raw cell text
}

// Result is the outcome of reading a workbook.
type Result struct {
	Table   *table.Table
	Sheet   string    // Name of the sheet read
	Headers []string  // Canonical column names in sheet order
	Coerced []CellRef // Numeric cells that did not parse
	Blank   int       // Blank rows skipped
	Lines   []int     // 1-based sheet row of each table row
}

// Line returns the sheet row number for table row index i, or i+2 when the
// index is out of range.
func (r *Result) Line(i int) int {
	if r == nil || i < 0 || i >= len(r.Lines) {
		return i + 2
	}
	return r.Lines[i]
}

type readOptions struct {
	sheet  string
	schema table.Schema
}

// ReadOption configures ReadXLSX.
type ReadOption func(*readOptions)

// WithSheet reads the named sheet instead of the first one.
func WithSheet(name string) ReadOption {
	return func(o *readOptions) { o.sheet = name }
}

// WithSchema declares the known columns, used for header matching and cell
// typing.
func WithSchema(s table.Schema) ReadOption {
	return func(o *readOptions) { o.schema = s }
}

// ReadXLSX decodes an .xlsx workbook from r.
//
// Errors carry code INVALID_SPREADSHEET when the workbook cannot be opened,
// the sheet is missing, or it has no header row. ReadXLSX does not close r.
func ReadXLSX(r io.Reader, opts ...ReadOption) (*Result, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpreadsheet, err, "cannot open workbook")
	}
	defer f.Close()

	sheet := o.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidSpreadsheet, "workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpreadsheet, err, "cannot read sheet %q", sheet)
	}
	return decodeRows(sheet, rows, o.schema)
}

// ImportXLSX reads the workbook at path. The filename must pass
// errors.ValidateUploadFilename.
func ImportXLSX(path string, opts ...ReadOption) (*Result, error) {
	if err := errors.ValidateUploadFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	res, err := ReadXLSX(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return res, nil
}

func decodeRows(sheet string, rows [][]string, schema table.Schema) (*Result, error) {
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, errors.New(errors.ErrCodeInvalidSpreadsheet, "sheet %q has no header row", sheet)
	}

	headers := canonicalHeaders(rows[0], schema)
	res := &Result{Sheet: sheet, Headers: headers}

	var body [][]string
	var lines []int
	for r, row := range rows[1:] {
		if isBlank(row) {
			res.Blank++
			continue
		}
		body = append(body, row)
		lines = append(lines, r+2)
		if len(body) > MaxRows {
			return nil, errors.New(errors.ErrCodeTooLarge, "sheet %q has more than %d rows", sheet, MaxRows)
		}
	}

	cols := make([]*table.Column, len(headers))
	for j, name := range headers {
		cells := make([]string, len(body))
		for i, row := range body {
			if j < len(row) {
				cells[i] = strings.TrimSpace(row[j])
			}
		}
		kind, known := columnKind(name, cells, schema)
		if kind == table.Text {
			cols[j] = table.NewText(name, cells)
			continue
		}
		nums := make([]float64, len(cells))
		for i, cell := range cells {
			v, ok := table.ParseNumber(cell)
			if !ok && cell != "" && known {
				ref, _ := excelize.CoordinatesToCellName(j+1, lines[i])
				res.Coerced = append(res.Coerced, CellRef{Cell: ref, Column: name, Value: cell})
			}
			nums[i] = v
		}
		cols[j] = table.NewNumeric(name, nums)
	}

	t := table.Empty(len(body))
	for _, c := range cols {
		var err error
		if t, err = t.With(c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "build table")
		}
	}
	res.Table = t
	res.Lines = lines
	return res, nil
}

// columnKind decides how to parse a column. Schema columns use their declared
// kind; other columns are numeric when every non-blank cell parses.
func columnKind(name string, cells []string, schema table.Schema) (table.Kind, bool) {
	if f, ok := schema.Lookup(name); ok {
		return f.Kind, true
	}
	seen := false
	for _, c := range cells {
		if c == "" {
			continue
		}
		if _, ok := table.ParseNumber(c); !ok {
			return table.Text, false
		}
		seen = true
	}
	if !seen {
		return table.Text, false
	}
	return table.Numeric, false
}

// canonicalHeaders maps raw header cells to column names.
func canonicalHeaders(raw []string, schema table.Schema) []string {
	known := make(map[string]string, len(schema))
	for _, f := range schema {
		known[strings.ToLower(f.Name)] = f.Name
	}

	out := make([]string, len(raw))
	used := make(map[string]int, len(raw))
	for i, h := range raw {
		name := CanonicalHeader(h)
		if c, ok := known[strings.ToLower(name)]; ok {
			name = c
		} else if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		} else {
			name = norm.NFC.String(strings.TrimSpace(h))
		}
		if n := used[name]; n > 0 {
			used[name]++
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			used[name] = 1
		}
		out[i] = name
	}
	return out
}

// CanonicalHeader normalizes a header cell for matching: NFC, trimmed, with
// a trailing "(unit)" or "[unit]" removed.
func CanonicalHeader(h string) string {
	h = strings.TrimSpace(norm.NFC.String(h))
	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}} {
		if strings.HasSuffix(h, pair[1]) {
			if i := strings.LastIndex(h, pair[0]); i > 0 {
				h = strings.TrimSpace(h[:i])
			}
		}
	}
	return h
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
