package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hydrochem/pkg/server"
	"github.com/matzehuels/hydrochem/pkg/session"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		maxUploadMB int
		sessionTTL  time.Duration
		sessions    string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Long: `Serve the browser interface and its HTTP API.

Each upload becomes a session; diagrams are rendered on request from the
session's workbook and cached per session.`,
		Example: `  hydrochem serve
  hydrochem serve --addr :9000 --sessions redis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := c.Config.Server
			if cmd.Flags().Changed("addr") {
				sc.Addr = addr
			}
			if cmd.Flags().Changed("max-upload-mb") {
				sc.MaxUploadMB = maxUploadMB
			}
			if cmd.Flags().Changed("session-ttl") {
				sc.SessionTTL.Duration = sessionTTL
			}
			if cmd.Flags().Changed("sessions") {
				sc.Sessions = sessions
			}
			return c.runServe(cmd.Context(), sc, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&maxUploadMB, "max-upload-mb", int(server.DefaultMaxUploadBytes>>20), "largest accepted upload in MiB")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", session.DefaultTTL, "how long uploads are kept")
	cmd.Flags().StringVar(&sessions, "sessions", sessionsMemory, "session store: memory, file, redis")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the diagram cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, sc ServerConfig, noCache bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := c.newSessionStore(ctx, sc)
	if err != nil {
		return fmt.Errorf("initialize session store: %w", err)
	}
	defer store.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:           sc.Addr,
		MaxUploadBytes: int64(sc.MaxUploadMB) << 20,
		SessionTTL:     sc.SessionTTL.Duration,
	}, runner, store, c.Logger)

	printSuccess("Serving on %s", StyleLink.Render(displayURL(sc.Addr)))
	printDetail("Sessions: %s, cache: %s", sc.Sessions, c.cacheName(noCache))
	if err := srv.ListenAndServe(ctx); err != nil {
		printError("Server stopped: %v", err)
		return err
	}
	printInfo("Server stopped")
	return nil
}

// newSessionStore opens the configured session backend.
func (c *CLI) newSessionStore(ctx context.Context, sc ServerConfig) (session.Store, error) {
	switch sc.Sessions {
	case "", sessionsMemory:
		return session.NewMemoryStore(), nil
	case sessionsFile:
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return session.NewFileStore(filepath.Join(dir, "sessions"))
	case sessionsRedis:
		return session.NewRedisStore(ctx, sc.RedisAddr)
	}
	return nil, fmt.Errorf("unknown session store %q (want %s, %s or %s)", sc.Sessions, sessionsMemory, sessionsFile, sessionsRedis)
}

func (c *CLI) cacheName(noCache bool) string {
	switch {
	case noCache:
		return "off"
	case c.Config.Cache.Backend == "":
		return "file"
	}
	return c.Config.Cache.Backend
}

// displayURL turns a listen address into a browsable URL.
func displayURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
