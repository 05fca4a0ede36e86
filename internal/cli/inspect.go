package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/stats"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/diagram"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/palette"
	"github.com/matzehuels/hydrochem/pkg/render"
	hctable "github.com/matzehuels/hydrochem/pkg/table"
)

// balanceTolerance is the charge-balance error, in percent, above which a
// sample is flagged.
const balanceTolerance = 5.0

// colStat summarizes one numeric column.
type colStat struct {
	Name           string
	Count, Missing int
	Min, Mean, Max float64
	StdDev         float64
}

// balanceRow is the charge balance of one complete sample.
type balanceRow struct {
	Label     string
	Error     float64 // percent
	WaterType string
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		rows    int
		unit    string
		sheet   string
		palName string
	)

	cmd := &cobra.Command{
		Use:   "inspect [file.xlsx]",
		Short: "Preview a workbook and check its chemistry",
		Long: `Inspect a sample workbook without rendering.

Prints the first rows as read, statistics for every numeric column, the
charge balance and water type of every sample with all major ions, and how
many rows each diagram kind would keep.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if unit == "" {
				unit = c.Config.Render.Unit
			}
			u, err := chem.ParseUnit(unit)
			if err != nil {
				return err
			}
			if palName == "" {
				palName = c.Config.Render.Palette
			}
			p, err := palette.ByName(palName)
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], sheet, u, p, rows)
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "number of rows to preview")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "unit of the input concentrations: mg/L (default), meq/L, mmol/L")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet to read (default: first sheet)")
	cmd.Flags().StringVar(&palName, "palette", "", "label color palette")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, path, sheet string, u chem.Unit, p palette.Palette, rows int) error {
	logger := loggerFromContext(ctx)
	readOpts := []pkgio.ReadOption{pkgio.WithSchema(normalize.InputSchema())}
	if sheet != "" {
		readOpts = append(readOpts, pkgio.WithSheet(sheet))
	}
	res, err := pkgio.ImportXLSX(path, readOpts...)
	if err != nil {
		return err
	}
	logger.Debug("workbook read", "sheet", res.Sheet, "rows", res.Table.Len())
	prepared := normalize.Prepare(res.Table, normalize.WithPalette(p))

	printInfo("%s", StyleTitle.Render(path))
	printKeyValue("Sheet", res.Sheet)
	printKeyValue("Rows", strconv.Itoa(res.Table.Len()))
	printKeyValue("Columns", strconv.Itoa(len(res.Headers)))
	printKeyValue("Labels", fmt.Sprintf("%d (from %s)", prepared.Colors.Len(), prepared.LabelSource))
	if res.Blank > 0 {
		printKeyValue("Blank rows", strconv.Itoa(res.Blank))
	}
	if len(prepared.Completed) > 0 {
		printWarning("absent columns treated as missing: %v", prepared.Completed)
	}
	printCoerced(res.Coerced)
	printNewline()

	fmt.Println(previewTable(res.Table, rows))
	printNewline()

	printInfo("%s", StyleTitle.Render("Column statistics"))
	fmt.Println(statsTable(columnStats(res.Table)))
	printNewline()

	sel, err := prepared.Report(diagram.Piper)
	if err != nil {
		return err
	}
	if balance := ionBalance(sel.Table, u); len(balance) > 0 {
		printInfo("%s %s", StyleTitle.Render("Ion balance"), StyleDim.Render("("+string(u)+" input)"))
		fmt.Println(balanceTable(balance))
		printNewline()
	}

	printInfo("%s", StyleTitle.Render("Diagrams"))
	for _, k := range diagram.Kinds {
		s, err := prepared.Report(k)
		if err != nil {
			return err
		}
		if s.Empty() {
			printWarning("%-10s no plottable rows", k.Title())
			continue
		}
		printSuccess("%-10s %s of %d rows", k.Title(), StyleNumber.Render(strconv.Itoa(s.Kept)), s.Total)
	}
	return nil
}

// columnStats summarizes every numeric column of t, in column order.
func columnStats(t *hctable.Table) []colStat {
	var out []colStat
	for _, name := range t.Columns() {
		col, _ := t.Column(name)
		if col.Kind() != hctable.Numeric {
			continue
		}
		var xs []float64
		for _, v := range col.Nums() {
			if !math.IsNaN(v) {
				xs = append(xs, v)
			}
		}
		s := colStat{Name: name, Count: len(xs), Missing: col.Len() - len(xs)}
		s.Min, s.Mean, s.Max, s.StdDev = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		if len(xs) > 0 {
			s.Min, s.Max = stats.Bounds(xs)
			s.Mean = stats.Mean(xs)
		}
		if len(xs) > 1 {
			s.StdDev = stats.StdDev(xs)
		}
		out = append(out, s)
	}
	return out
}

// ionBalance computes the charge balance of every row of t, which must carry
// the eight major ions.
func ionBalance(t *hctable.Table, u chem.Unit) []balanceRow {
	samples := render.Samples(t, u)
	out := make([]balanceRow, len(samples))
	for i, s := range samples {
		out[i] = balanceRow{
			Label:     s.Name,
			Error:     s.Comp.BalanceError(),
			WaterType: s.Comp.WaterType(),
		}
	}
	return out
}

// =============================================================================
// Tables
// =============================================================================

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableDimStyle    = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	tableWarnStyle   = lipgloss.NewStyle().Foreground(colorYellow).Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

func previewTable(t *hctable.Table, n int) string {
	head := t.Head(n)
	names := head.Columns()
	rows := make([][]string, head.Len())
	for i := range rows {
		row := make([]string, len(names))
		for j, name := range names {
			col, _ := head.Column(name)
			if col.IsMissing(i) {
				row[j] = "—"
				continue
			}
			row[j] = col.Text(i)
		}
		rows[i] = row
	}
	return newTable(names...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if rows[row][col] == "—" {
				return tableDimStyle
			}
			return tableCellStyle
		}).
		Render()
}

func statsTable(cs []colStat) string {
	rows := make([][]string, len(cs))
	for i, s := range cs {
		rows[i] = []string{s.Name, strconv.Itoa(s.Count), strconv.Itoa(s.Missing),
			fmtStat(s.Min), fmtStat(s.Mean), fmtStat(s.Max), fmtStat(s.StdDev)}
	}
	return newTable("Column", "n", "missing", "min", "mean", "max", "sd").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 2 && cs[row].Missing > 0:
				return tableWarnStyle
			}
			return tableCellStyle
		}).
		Render()
}

func balanceTable(bs []balanceRow) string {
	rows := make([][]string, len(bs))
	for i, b := range bs {
		rows[i] = []string{b.Label, fmt.Sprintf("%+.1f%%", b.Error), b.WaterType}
	}
	return newTable("Sample", "balance", "type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 1 && math.Abs(bs[row].Error) > balanceTolerance:
				return tableWarnStyle
			}
			return tableCellStyle
		}).
		Render()
}

func fmtStat(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
