package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hydrochem/pkg/buildinfo"
	"github.com/matzehuels/hydrochem/pkg/cache"
	"github.com/matzehuels/hydrochem/pkg/diagram"
	"github.com/matzehuels/hydrochem/pkg/observability"
	"github.com/matzehuels/hydrochem/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "hydrochem"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level == LogDebug {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "hydrochem",
		Short: "hydrochem draws hydrogeochemical diagrams from spreadsheets",
		Long: `hydrochem reads water-chemistry samples from an .xlsx workbook and draws
Piper, Durov, Stiff and Schoeller diagrams as SVG, PNG or PDF.

Rows missing a value the selected diagram needs are skipped and reported;
nothing is imputed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default ~/.config/hydrochem/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.templateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and attaches the logger to the command
// context.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	path, explicit := c.configFile, c.configFile != ""
	if !explicit {
		if p, err := configPath(); err == nil {
			path = p
		}
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("configuration loaded", "path", path, "cache", cfg.Cache.Backend)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner over the configured artifact cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := ""
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		d, err := cfg.artifactDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.Open(ctx, cache.Config{
		Backend:   cfg.Backend,
		Dir:       dir,
		RedisAddr: cfg.RedisAddr,
		MongoURI:  cfg.MongoURI,
	})
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderDefaults fills unset pipeline options from the [render] config table.
func (c *CLI) renderDefaults(opts *pipeline.Options) {
	rc := c.Config.Render
	if opts.Width == 0 {
		opts.Width = rc.Width
	}
	if opts.Height == 0 {
		opts.Height = rc.Height
	}
	if opts.Unit == "" {
		opts.Unit = rc.Unit
	}
	if opts.Palette == "" {
		opts.Palette = rc.Palette
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return splitList(s)
}

// parseKinds parses a comma-separated list of diagram kinds. "all" selects
// every kind; an empty string selects the default kind.
func parseKinds(s string) ([]diagram.Kind, error) {
	if s == "" {
		return []diagram.Kind{pipeline.DefaultKind}, nil
	}
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return diagram.Kinds, nil
	}
	var kinds []diagram.Kind
	seen := make(map[diagram.Kind]bool)
	for _, name := range splitList(s) {
		k, err := diagram.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
