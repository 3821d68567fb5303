// Package api exposes the gallery DataAccess contract as a JSON HTTP API.
//
// Routes live under /gallery/api; /health and /metrics are served at the
// root. Backend calls are serialised by a mutex because backends are not
// safe for concurrent use.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/repositories/gallery"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options configures a Server. Zero timeouts fall back to package defaults.
type Options struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	opts    Options
	store   gallery.DataAccess
	mu      sync.Mutex
	logger  logging.Logger
	metrics *Metrics
	router  *chi.Mux
}

func NewServer(opts Options, store gallery.DataAccess, logger logging.Logger) *Server {
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		opts:    opts,
		store:   store,
		logger:  logger.With("module", "http_server"),
		metrics: NewMetrics(),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(assignRequestID)
	s.router.Use(middleware.RequestID)
	s.router.Use(echoRequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.instrument)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/gallery/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.handleCreateUser)
			r.Get("/", s.handleListUsers)
			r.Get("/{id}", s.handleGetUser)
			r.Delete("/{id}", s.handleDeleteUser)
			r.Get("/{id}/albums", s.handleAlbumsOfUser)
			r.Get("/{id}/statistics", s.handleUserStatistics)
			r.Get("/{id}/tagged-pictures", s.handlePicturesTaggedByUser)
		})

		r.Route("/albums", func(r chi.Router) {
			r.Post("/", s.handleCreateAlbum)
			r.Get("/", s.handleListAlbums)
			r.Get("/{name}", s.handleOpenAlbum)
			r.Delete("/{name}", s.handleDeleteAlbum)
			r.Post("/{name}/pictures", s.handleAddPicture)
			r.Delete("/{name}/pictures/{picture}", s.handleRemovePicture)
			r.Post("/{name}/pictures/{picture}/tags", s.handleTagUser)
			r.Delete("/{name}/pictures/{picture}/tags/{userID}", s.handleUntagUser)
		})

		r.Get("/statistics/top-user", s.handleTopTaggedUser)
		r.Get("/statistics/top-picture", s.handleTopTaggedPicture)
		r.Delete("/db", s.handleClear)
	})
}

// locked runs fn while holding the backend mutex.
func (s *Server) locked(fn func(store gallery.DataAccess) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Address,
		Handler:      s,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)
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

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
