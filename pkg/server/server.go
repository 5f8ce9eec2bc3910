// Package server exposes the heatmap pipeline over HTTP.
//
// Routes:
//
//	POST /render?format=svg|json|png|pdf   render records to one artifact
//	GET  /presets                          list built-in gradients
//	GET  /healthz                          liveness and version
//
// A render request carries the records and pipeline options as JSON:
//
//	{"records": [{"x": 10, "y": 20, "weight": 2}], "options": {"preset": "Sunrise", "radius": 30}}
//
// Every response carries an X-Request-ID header, taken from the request when
// present and generated otherwise.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatsvg/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds render request bodies.
const DefaultMaxBodyBytes = 32 << 20

// Config configures a Server.
type Config struct {
	Addr         string
	Runner       *pipeline.Runner
	Logger       *log.Logger
	MaxBodyBytes int64
}

// Server serves the HTTP API until its context is cancelled.
type Server struct {
	srv    *http.Server
	router http.Handler
	logger *log.Logger
}

// New builds a server; nil Runner and Logger fields get defaults.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	router := NewRouter(&Handler{
		Runner:       cfg.Runner,
		Logger:       cfg.Logger,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
	return &Server{
		router: router,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
