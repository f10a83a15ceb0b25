// Package api serves tier-list rendering over HTTP.
//
// The surface is small: POST /v1/tierlist renders a config and
// returns the PNG, /healthz and /version support deployment probes.
// All rendering goes through the shared pipeline Runner, so the HTTP
// server gets the same caching and safety behavior as the CLI and the
// MCP tool.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carmex/tierMCP/pkg/pipeline"
	"github.com/carmex/tierMCP/pkg/render"
)

const (
	// maxRequestBytes bounds the accepted config JSON size.
	maxRequestBytes = 1 << 20

	// shutdownTimeout bounds how long in-flight renders may finish
	// after the serve context is canceled.
	shutdownTimeout = 5 * time.Second
)

// Server is the tiermcp HTTP API.
type Server struct {
	addr    string
	runner  *pipeline.Runner
	logger  *log.Logger
	fetcher render.Fetcher
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithFetcher sets the fetcher used for all renders, replacing the
// pipeline default. Deployments use this to apply server-wide fetch
// limits.
func WithFetcher(f render.Fetcher) Option {
	return func(s *Server) {
		s.fetcher = f
	}
}

// New creates a Server listening on addr once ListenAndServe is
// called. A nil logger falls back to the default logger.
func New(addr string, runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		addr:   addr,
		runner: runner,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/tierlist", s.handleRender)
	})

	s.router = r
	return s
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving HTTP until ctx is canceled, then
// drains in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
