// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz              liveness and build info
//	POST /render               render a JSON tree body; query: style, format, viz, radius, title, branch_lengths, leaves_aligned
//	GET  /renders/{id}         a stored artifact
//	GET  /renders/{id}/meta    metadata of a stored artifact
//
// Errors are JSON objects {"error": {"code": ..., "message": ...}} with a
// status derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Babdus/protolanguage-v2/pkg/pipeline"
	"github.com/Babdus/protolanguage-v2/pkg/storage"
)

const (
	defaultMaxBodyBytes = 4 << 20
	shutdownTimeout     = 10 * time.Second
)

// Server serves render requests.
type Server struct {
	runner   *pipeline.Runner
	store    storage.Store
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
	started  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the options used when a request does not override them.
func WithDefaults(o pipeline.Options) Option { return func(s *Server) { s.defaults = o } }

// WithMaxBodyBytes limits the size of request bodies. n <= 0 keeps the
// default.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New returns a server rendering with runner and keeping artifacts in store.
func New(runner *pipeline.Runner, store storage.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		store:   store,
		logger:  logger,
		maxBody: defaultMaxBodyBytes,
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Route("/renders/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetRender)
		r.Get("/meta", s.handleGetMeta)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" is not allowed on "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
