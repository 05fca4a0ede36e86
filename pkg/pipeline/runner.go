package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hydrochem/pkg/cache"
	"github.com/matzehuels/hydrochem/pkg/errors"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it so that caching and logging behave the same.
//
// The Runner holds no per-upload state. Multiple goroutines can safely use
// the same Runner with different uploads and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached artifacts.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Upload is a decoded and prepared workbook. It is immutable and can be
// rendered any number of times.
type Upload struct {
	// Hash is the content hash of the workbook bytes.
	Hash string

	// Workbook is the raw decode result, including coerced cells.
	Workbook *pkgio.Result

	// Prepared is the completed, labeled and colored sample table.
	Prepared *normalize.Prepared

	LoadTime time.Duration
}

// Execute loads data and renders one diagram.
//
// When no row is plottable for the requested kind, Execute returns the
// Result together with a NO_PLOTTABLE_ROWS error; Result.Report lists the
// dropped rows and Artifacts is empty.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	up, err := r.Load(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, up, opts)
}

// Load decodes the workbook bytes and prepares the sample table.
func (r *Runner) Load(ctx context.Context, data []byte, opts Options) (*Upload, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnParseStart(ctx, opts.Source)

	readOpts := []pkgio.ReadOption{pkgio.WithSchema(normalize.InputSchema())}
	if opts.Sheet != "" {
		readOpts = append(readOpts, pkgio.WithSheet(opts.Sheet))
	}
	wb, err := pkgio.ReadXLSX(bytes.NewReader(data), readOpts...)
	if err != nil {
		hooks.OnParseComplete(ctx, opts.Source, 0, time.Since(start), err)
		return nil, err
	}
	prepared := normalize.Prepare(wb.Table, normalize.WithPalette(opts.palette))

	up := &Upload{
		Hash:     cache.Hash(data),
		Workbook: wb,
		Prepared: prepared,
		LoadTime: time.Since(start),
	}
	hooks.OnParseComplete(ctx, opts.Source, wb.Table.Len(), up.LoadTime, nil)

	opts.Logger.Debug("loaded workbook",
		"sheet", wb.Sheet,
		"rows", wb.Table.Len(),
		"coerced", len(wb.Coerced),
		"completed", len(prepared.Completed),
		"labels", prepared.Colors.Len(),
		"duration", up.LoadTime)
	return up, nil
}

// Render selects the rows of up for opts.Kind and renders the requested
// formats, serving artifacts from the cache when possible.
func (r *Runner) Render(ctx context.Context, up *Upload, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	kind := opts.DiagramKind()

	result := &Result{
		Hash:      up.Hash,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.LoadTime = up.LoadTime
	result.Stats.Coerced = len(up.Workbook.Coerced)

	normStart := time.Now()
	sel, err := up.Prepared.Report(kind)
	if err != nil {
		return nil, err
	}
	result.Report = sel
	result.Stats.NormalizeTime = time.Since(normStart)
	result.Stats.Rows = sel.Total
	result.Stats.Kept = sel.Kept
	result.Stats.Dropped = len(sel.Dropped)
	hooks.OnNormalize(ctx, kind.String(), sel.Kept, len(sel.Dropped), result.Stats.NormalizeTime)

	opts.Logger.Info("selected rows",
		"kind", kind,
		"rows", sel.Total,
		"kept", sel.Kept,
		"dropped", len(sel.Dropped))

	if sel.Empty() {
		return result, errors.New(errors.ErrCodeNoPlottableRows,
			"no complete samples to plot a %s diagram (%d rows, all missing required values)", kind.Title(), sel.Total)
	}

	renderStart := time.Now()
	hooks.OnRenderStart(ctx, kind.String(), opts.Formats)
	artifacts, hit, err := r.renderWithCache(ctx, up.Hash, sel, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, kind.String(), opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"kind", kind,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// renderWithCache returns every requested format, rendering only those not
// already cached. The bool reports whether all formats came from the cache.
func (r *Runner) renderWithCache(ctx context.Context, hash string, sel *normalize.Selection, opts Options) (map[string][]byte, bool, error) {
	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))

	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(sel.Table, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
