// Package server exposes package headers over HTTP.
//
// Routes:
//
//	GET /healthz                       liveness
//	GET /api/packages                  names of all packages in the store
//	GET /api/header/{pkg}[@{version}]  header for a version or dist-tag
//	                                   (?filename=/path selects the file)
//
// Scoped packages are addressed as /api/header/@scope/name@1.0.0. Without a
// version the "latest" dist-tag is used.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pkgview/pkg/header"
	"github.com/matzehuels/pkgview/pkg/hrefs"
	"github.com/matzehuels/pkgview/pkg/registry"
)

// Options configures a Server.
type Options struct {
	// Origin is prepended to file URLs in responses. Empty means
	// origin-relative URLs.
	Origin string

	// Resolver defaults to header.Default().
	Resolver *header.Resolver

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Server serves headers for the records of a registry.Store.
type Server struct {
	store    registry.Store
	resolver *header.Resolver
	hrefs    hrefs.Builder
	logger   *log.Logger
}

// New creates a Server reading from store.
func New(store registry.Store, opts Options) *Server {
	if opts.Resolver == nil {
		opts.Resolver = header.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Server{
		store:    store,
		resolver: opts.Resolver,
		hrefs:    hrefs.Builder{Origin: opts.Origin},
		logger:   opts.Logger,
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/packages", s.listPackages)
		r.Get("/header/*", s.getHeader)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, waiting at most shutdownTimeout for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
