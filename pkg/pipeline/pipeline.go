// Package pipeline provides the read → normalize → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// One run is a single deterministic pass over the uploaded workbook:
//
//  1. Load: decode the .xlsx bytes and prepare the sample table (column
//     completion, labels, display defaults, label colors)
//  2. Select: keep the rows plottable on the requested diagram
//  3. Render: produce the diagram in each requested format (SVG, PNG, PDF,
//     JSON)
//
// Only rendered artifacts are cached, keyed by the hash of the upload bytes
// and the render options. Loading and selection always run.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Kind:    "piper",
//	    Formats: []string{"svg", "png"},
//	})
//	if errors.Is(err, errors.ErrCodeNoPlottableRows) {
//	    // result.Report lists the dropped rows
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hydrochem/pkg/cache"
	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/diagram"
	"github.com/matzehuels/hydrochem/pkg/errors"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/palette"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultKind is the diagram rendered when none is requested.
	DefaultKind = diagram.Piper

	// DefaultPNGScale is the rasterization scale for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps each format to its media type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Kind    string   `json:"kind"`
	Formats []string `json:"formats,omitempty"`
	Unit    string   `json:"unit,omitempty"` // Unit of the input concentrations
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
	Title   string   `json:"title,omitempty"`
	Palette string   `json:"palette,omitempty"`
	Sheet   string   `json:"sheet,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // Bypass cached artifacts

	// Source names the upload in logs and hooks, e.g. the file name.
	Source string `json:"-"`

	Logger *log.Logger `json:"-"`

	kind      diagram.Kind
	unit      chem.Unit
	palette   palette.Palette
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Hash is the content hash of the upload bytes.
	Hash string

	// Report describes which rows were kept for the diagram and why the
	// others were dropped.
	Report *normalize.Selection

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows          int
	Kept          int
	Dropped       int
	Coerced       int // Numeric cells that did not parse
	LoadTime      time.Duration
	NormalizeTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks artifact cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if o.Kind == "" {
		o.Kind = string(DefaultKind)
	}
	k, err := diagram.ParseKind(o.Kind)
	if err != nil {
		return err
	}
	o.kind, o.Kind = k, string(k)
	if o.Title == "" {
		o.Title = k.Title() + " diagram"
	}

	if o.Unit == "" {
		o.Unit = string(k.DefaultUnit())
	}
	u, err := chem.ParseUnit(o.Unit)
	if err != nil {
		return err
	}
	o.unit, o.Unit = u, string(u)

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must not be negative")
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the fields needed to load an upload: the palette
// and the logger.
func (o *Options) ValidateForLoad() error {
	p, err := palette.ByName(o.Palette)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "palette")
	}
	o.palette, o.Palette = p, p.Name()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// DiagramKind returns the parsed diagram kind. Valid after
// ValidateAndSetDefaults.
func (o *Options) DiagramKind() diagram.Kind { return o.kind }

// InputUnit returns the parsed input unit. Valid after
// ValidateAndSetDefaults.
func (o *Options) InputUnit() chem.Unit { return o.unit }

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Kind:    o.Kind,
		Format:  format,
		Unit:    o.Unit,
		Width:   o.Width,
		Height:  o.Height,
		Title:   o.Title,
		Palette: o.Palette,
		Sheet:   o.Sheet,
	}
}
