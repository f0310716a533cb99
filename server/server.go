// Package server serves the session viewer over HTTP: the list and detail
// pages, the upload endpoint that replaces the dataset, and a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sonnes/chatview/loader"
	htmlrender "github.com/sonnes/chatview/render/html"
	jsonrender "github.com/sonnes/chatview/render/json"
	"github.com/sonnes/chatview/store"
)

const (
	// DefaultMaxUpload is the default upload body limit.
	DefaultMaxUpload = 50_000_000

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves one Store. Uploads replace its contents wholesale.
type Server struct {
	store     *store.Store
	loader    *loader.Loader
	html      *htmlrender.Renderer
	json      *jsonrender.Renderer
	logger    *log.Logger
	maxUpload int64
	router    chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for requests and dataset events.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithLoader sets the loader used for uploads, e.g. one that redacts.
func WithLoader(l *loader.Loader) Option {
	return func(s *Server) { s.loader = l }
}

// WithMaxUpload sets the upload body limit in bytes.
func WithMaxUpload(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// New creates a Server for st.
func New(st *store.Store, opts ...Option) *Server {
	s := &Server{
		store:     st,
		loader:    &loader.Loader{},
		html:      htmlrender.New(),
		json:      jsonrender.New(),
		logger:    log.Default(),
		maxUpload: DefaultMaxUpload,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Get("/chat/{sessionId}", s.chat)
	r.Post("/upload", s.upload)

	r.Route("/api", func(r chi.Router) {
		r.Get("/sessions", s.apiSessions)
		r.Get("/sessions/{sessionId}", s.apiSession)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(htmlrender.Static())))
	r.Get("/health", s.health)

	return r
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is done, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("serving", "addr", "http://"+ln.Addr().String(), "sessions", s.store.Len())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
