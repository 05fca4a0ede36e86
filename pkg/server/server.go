// Package server exposes the diagram pipeline over HTTP.
//
// Routes:
//
//	GET  /                                       upload form
//	POST /uploads                                multipart "file" → session + preview
//	GET  /uploads/{id}/preview                   preview of a stored upload
//	GET  /uploads/{id}/diagrams/{kind}.{format}  rendered diagram (?unit=&title=&width=&height=)
//	GET  /template.xlsx                          example workbook
//	GET  /healthz                                liveness and build info
//
// Every upload becomes its own [session.Session]; each diagram request re-runs
// the full read → normalize → render pass over that session's bytes, so no
// label colors or rows leak between uploads. Rendered artifacts are cached
// under session-scoped keys.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/hydrochem/pkg/pipeline"
	"github.com/matzehuels/hydrochem/pkg/session"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultMaxUploadBytes bounds the size of an uploaded workbook.
	DefaultMaxUploadBytes = 20 << 20

	// DefaultCleanupInterval is how often expired sessions are purged.
	DefaultCleanupInterval = 10 * time.Minute

	previewRows = 10
)

// Config holds server settings.
type Config struct {
	Addr            string
	MaxUploadBytes  int64
	SessionTTL      time.Duration
	CleanupInterval time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = session.DefaultTTL
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = DefaultCleanupInterval
	}
}

// Server serves the upload form and the diagram API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	store  session.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil store defaults to an in-memory store; a nil
// logger defaults to the runner's logger.
func New(cfg Config, runner *pipeline.Runner, store session.Store, logger *log.Logger) *Server {
	cfg.setDefaults()
	if store == nil {
		store = session.NewMemoryStore()
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		store:  store,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			}
		}
	}
}
