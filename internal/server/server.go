// Package server is the HTTP adapter over climb.Service. It owns the wire
// format and the mapping of core errors to status codes; the core packages
// know nothing about HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/cache"
	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/logging"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/climb"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/scene"
)

// Options configures the adapter.
type Options struct {
	Port          int
	RateLimit     int // requests per RateWindow and client IP; 0 disables
	RateWindow    time.Duration
	CacheTTL      time.Duration
	CacheCapacity int
	SceneTimeout  time.Duration // bound on one shared 3D synthesis
}

// DefaultSceneTimeout bounds a 3D synthesis when Options leaves it unset.
const DefaultSceneTimeout = 2 * time.Minute

// Server serves the climb operations over HTTP.
type Server struct {
	svc    *climb.Service
	opts   Options
	scenes *cache.Cache[*scene.Descriptor]
	log    zerolog.Logger
}

// New creates a server for svc.
func New(svc *climb.Service, opts Options) *Server {
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Minute
	}
	if opts.SceneTimeout <= 0 {
		opts.SceneTimeout = DefaultSceneTimeout
	}
	return &Server{
		svc:    svc,
		opts:   opts,
		scenes: cache.New[*scene.Descriptor](opts.CacheTTL, opts.CacheCapacity),
		log:    logging.WithComponent("server"),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit())
		r.Use(recordMetrics)

		r.Post("/profile/analyze", s.handleAnalyzeProfile)

		r.Get("/passes", s.handleListPasses)
		r.Route("/passes/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetPass)
			r.Get("/analysis", s.handlePassAnalysis)
			r.Get("/visualization", s.handleVisualization)
			r.Get("/visualization/3d", s.handleVisualization3D)
			r.Get("/chart", s.handleChart)
		})
	})

	return r
}

// Start listens on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Int("port", s.opts.Port).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
