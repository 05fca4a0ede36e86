package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hydrochem/pkg/diagram"
	"github.com/matzehuels/hydrochem/pkg/errors"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/pipeline"
)

// maxListedDrops bounds how many skipped rows are listed per diagram.
const maxListedDrops = 5

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		kindsStr   string
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [file.xlsx]",
		Short: "Render diagrams from a sample workbook",
		Long: `Render one or more diagrams from a sample workbook.

The workbook's first sheet is read with the first row as header. Each diagram
keeps only the rows that have every value it needs; skipped rows are listed.
Several kinds render in parallel from one read of the workbook.

Outputs default to <input>-<kind>.<format> next to the input file.`,
		Example: `  hydrochem render wells.xlsx
  hydrochem render wells.xlsx -k all -f svg,png
  hydrochem render wells.xlsx -k schoeller -u meq/L -o schoeller.pdf -f pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(kindsStr)
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			c.renderDefaults(&opts)
			return c.runRender(cmd.Context(), args[0], kinds, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&kindsStr, "kind", "k", "", "diagram kind(s): piper (default), durov, stiff, schoeller, all (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single kind and format) or base path")
	cmd.Flags().StringVarP(&opts.Unit, "unit", "u", "", "unit of the input concentrations: mg/L (default), meq/L, mmol/L")
	cmd.Flags().StringVar(&opts.Title, "title", "", "diagram title (default \"<Kind> diagram\")")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "canvas width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "label color palette: tab10 (default), tab20, set2")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "sheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the workbook once and renders every kind concurrently.
func (c *CLI) runRender(ctx context.Context, input string, kinds []diagram.Kind, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	data, err := readWorkbook(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Source = filepath.Base(input)
	opts.Logger = logger
	prog := newProgress(logger)

	spinner := newSpinner(ctx, fmt.Sprintf("Reading %s", opts.Source), len(kinds))
	spinner.Start()
	defer spinner.Stop()

	up, err := runner.Load(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Cannot read workbook")
		return err
	}
	spinner.SetMessage(fmt.Sprintf("Rendering %s", opts.Source))

	results := make([]*pipeline.Result, len(kinds))
	warnings := make([]error, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		g.Go(func() error {
			o := opts
			o.Kind = string(k)
			res, err := runner.Render(gctx, up, o)
			if err != nil && !errors.IsWarning(err) {
				return fmt.Errorf("%s: %w", k, err)
			}
			results[i], warnings[i] = res, err
			spinner.Advance()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printCoerced(up.Workbook.Coerced)

	written := 0
	for i, k := range kinds {
		res := results[i]
		if warnings[i] != nil {
			printWarning("%s: %s", k.Title(), errors.UserMessage(warnings[i]))
			printDropped(res.Report, up.Workbook)
			continue
		}
		printSuccess("%s diagram", k.Title())
		printStats(res.Stats.Kept, res.Stats.Dropped, res.CacheInfo.RenderHit)
		printDropped(res.Report, up.Workbook)

		paths := artifactPaths(output, input, k, len(kinds) > 1, opts.Formats)
		for _, format := range opts.Formats {
			if err := os.WriteFile(paths[format], res.Artifacts[format], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", paths[format], err)
			}
			printFile(paths[format])
		}
		written++
	}

	if written == 0 {
		return errors.New(errors.ErrCodeNoPlottableRows, "nothing rendered: no requested diagram has plottable rows")
	}
	prog.done("Rendered diagrams", "count", written, "source", opts.Source)
	return nil
}

// readWorkbook reads a workbook file after checking its name.
func readWorkbook(path string) ([]byte, error) {
	if err := errors.ValidateUploadFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// artifactPaths returns the output path for each format.
//
// With an explicit output, a single kind and a single format, the output is
// used verbatim. Otherwise the output (or the input) minus its extension is a
// base path, suffixed with the kind when several kinds are rendered or when
// no output was given.
func artifactPaths(output, input string, kind diagram.Kind, multiKind bool, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && !multiKind && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := strings.TrimSuffix(output, filepath.Ext(output))
	if output == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	if output == "" || multiKind {
		base += "-" + string(kind)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// printDropped lists the rows a diagram skipped, by sheet row number.
func printDropped(sel *normalize.Selection, wb *pkgio.Result) {
	if sel == nil {
		return
	}
	for i, d := range sel.Dropped {
		if i == maxListedDrops {
			printDetail("… and %d more", len(sel.Dropped)-maxListedDrops)
			break
		}
		printDetail("%s", droppedLine(d, wb))
	}
}

func droppedLine(d normalize.DroppedRow, wb *pkgio.Result) string {
	return fmt.Sprintf("skipped row %d (%s): missing %s", wb.Line(d.Index), d.Label, strings.Join(d.Missing, ", "))
}

// printCoerced lists numeric cells that could not be parsed.
func printCoerced(cells []pkgio.CellRef) {
	if len(cells) == 0 {
		return
	}
	printWarning("%d cell(s) are not numbers and were treated as missing", len(cells))
	for i, c := range cells {
		if i == maxListedDrops {
			printDetail("… and %d more", len(cells)-maxListedDrops)
			break
		}
		printDetail("%s (%s): %q", c.Cell, c.Column, c.Value)
	}
}
