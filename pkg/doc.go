// Package pkg provides the core libraries for hydrochem, which draws
// hydrogeochemical diagrams from spreadsheets of water samples.
//
// # Overview
//
// A workbook holds one sample per row: major-ion concentrations plus optional
// pH, TDS, sample name, label and display attributes. Each diagram kind needs
// a different set of those values, so one upload is completed once and then
// filtered per diagram. Rows missing a required value are dropped and
// reported, never imputed.
//
// # Architecture
//
// The typical data flow:
//
//	.xlsx workbook
//	     ↓
//	[io] (decode first sheet, canonical headers, typed columns)
//	     ↓
//	[normalize] (complete columns, derive labels, assign colors)
//	     ↓
//	[normalize.Prepared.Report] (per-kind row selection)
//	     ↓
//	[render] subpackages (Piper, Durov, Stiff, Schoeller)
//	     ↓
//	SVG/PNG/PDF/JSON output
//
// [pipeline] runs that flow for the CLI and the HTTP server alike, with
// rendered artifacts kept in a [cache].
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, data, pipeline.Options{
//	    Kind:    "piper",
//	    Formats: []string{"svg"},
//	})
//	if errors.IsWarning(err) {
//	    // No row had every value the diagram needs; res.Report says why.
//	}
//	svg := res.Artifacts["svg"]
//
// # Main Packages
//
// ## Data
//
// [table] - A small column-oriented table with numeric and text columns, NaN
// as the missing marker and stable source-row indexes.
//
// [chem] - Ion definitions, unit conversion between mg/L, meq/L and mmol/L,
// and per-sample compositions (percent meq, charge balance, water type).
//
// [io] - Workbook import and export with excelize, plus the JSON row export
// and the example template.
//
// [normalize] - The sample table normalizer: column completion, labels,
// display defaults, label colors and per-diagram selection reports.
//
// [palette] - Qualitative color palettes and the label to color map.
//
// ## Rendering
//
// [diagram] - Diagram kinds and the columns each one requires.
//
// [render] - Shared SVG canvas, markers and format conversion (PNG, PDF).
// The piper, durov, stiff and schoeller subpackages draw one kind each.
//
// ## Infrastructure
//
// [pipeline] - Load, normalize and render with caching and hooks.
//
// [cache] - Artifact caches: null, file, Redis and MongoDB.
//
// [session] - Upload sessions for the web interface: memory, file and Redis.
//
// [server] - The HTTP API and browser interface.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [buildinfo] - Version information set at build time.
//
// [table]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/table
// [chem]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/chem
// [io]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/io
// [normalize]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/normalize
// [normalize.Prepared.Report]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/normalize#Prepared.Report
// [palette]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/palette
// [diagram]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/session
// [server]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/hydrochem/pkg/buildinfo
package pkg
