// Package server exposes the canvas pipeline over HTTP.
//
// A renderer posts a GraphQL request body, receives the positioned canvas and
// an ID, and then works against the stored canvas: renaming nodes, editing
// variable values, rendering images and projecting the edited canvas back
// into a request body.
package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gqlcanvas/pkg/layout"
	"github.com/matzehuels/gqlcanvas/pkg/pipeline"
	"github.com/matzehuels/gqlcanvas/pkg/store"
)

// maxBodyBytes bounds request bodies and canvas uploads.
const maxBodyBytes = 4 << 20

// Config holds the dependencies and settings of a [Server].
type Config struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger

	Addr              string
	ReadHeaderTimeout time.Duration

	// Mode is used when a create request has no ?mode= parameter.
	Mode layout.Mode

	// SnapshotTTL is how long stored canvases live. Zero keeps them forever.
	SnapshotTTL time.Duration

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// Server is the HTTP API server.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger

	addr              string
	readHeaderTimeout time.Duration
	mode              layout.Mode
	ttl               time.Duration
	metrics           http.Handler
}

// New creates a server. Runner and Store are required.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = 10 * time.Second
	}
	if cfg.Mode == "" {
		cfg.Mode = layout.ModePrecomputed
	}
	return &Server{
		runner:            cfg.Runner,
		store:             cfg.Store,
		logger:            cfg.Logger,
		addr:              cfg.Addr,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		mode:              cfg.Mode,
		ttl:               cfg.SnapshotTTL,
		metrics:           cfg.Metrics,
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		s.logRequests,
	)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/output", s.handleProjectOutput)

		r.Route("/canvases", func(r chi.Router) {
			r.Post("/", s.handleCreateCanvas)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetCanvas)
				r.Delete("/", s.handleDeleteCanvas)
				r.Patch("/nodes/{nodeID}", s.handlePatchNode)
				r.Get("/output", s.handleCanvasOutput)
				r.Get("/render/{format}", s.handleRender)
			})
		})
	})

	return r
}

// Serve starts the server and blocks until ctx is cancelled. Expired
// canvases are swept once a minute while it runs.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	s.logger.Info("starting API server", "addr", s.addr)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		s.sweep(egctx, time.Minute)
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.store.Cleanup(ctx)
			if err != nil {
				s.logger.Warn("canvas cleanup failed", "err", err)
				continue
			}
			if n > 0 {
				s.logger.Debug("removed expired canvases", "count", n)
			}
		}
	}
}
