// Package server exposes the labor-market API over HTTP: wage resolution,
// metro population, LAUS unemployment timeseries, institution counts, and
// the program-overlay endpoint.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/metrolens/metrolens/internal/bls"
	"github.com/metrolens/metrolens/internal/cache"
	"github.com/metrolens/metrolens/internal/config"
	"github.com/metrolens/metrolens/internal/institutions"
	"github.com/metrolens/metrolens/internal/msa"
	"github.com/metrolens/metrolens/internal/overlay"
	"github.com/metrolens/metrolens/internal/wage"
)

// WageResolver is the slice of the wage service the handlers call.
type WageResolver interface {
	Resolve(ctx context.Context, q wage.Query) (*wage.Record, []wage.Attempt, error)
	CacheStats() cache.Stats
}

// LAUSFetcher fetches unemployment timeseries for a metro.
type LAUSFetcher interface {
	FetchTimeseries(ctx context.Context, cbsa string) ([]bls.Point, error)
}

// PopulationFetcher fetches ACS population for a metro.
type PopulationFetcher interface {
	FetchPopulation(ctx context.Context, cbsa string) (int, bool, error)
}

// OverlayService computes program overlays.
type OverlayService interface {
	Compute(ctx context.Context, msaCode, soc string) (*overlay.Result, error)
	CacheStats() cache.Stats
}

// Server holds the handler dependencies.
type Server struct {
	cfg *config.Config

	wages        WageResolver
	laus         LAUSFetcher
	population   PopulationFetcher
	overlay      OverlayService
	boundaries   *msa.Index
	institutions *institutions.Store

	popCache  *cache.Cache[int]
	lausCache *cache.Cache[[]bls.Point]
}

// Options bundles the collaborators a Server needs.
type Options struct {
	Config       *config.Config
	Wages        WageResolver
	LAUS         LAUSFetcher
	Population   PopulationFetcher
	Overlay      OverlayService
	Boundaries   *msa.Index
	Institutions *institutions.Store
}

// New creates a Server. Population and LAUS responses get their own caches
// with the configured TTL.
func New(opts Options) *Server {
	ttl := cache.DefaultTTL
	if opts.Config != nil && opts.Config.Cache.TTLHours > 0 {
		ttl = time.Duration(opts.Config.Cache.TTLHours) * time.Hour
	}
	return &Server{
		cfg:          opts.Config,
		wages:        opts.Wages,
		laus:         opts.LAUS,
		population:   opts.Population,
		overlay:      opts.Overlay,
		boundaries:   opts.Boundaries,
		institutions: opts.Institutions,
		popCache:     cache.New[int](ttl),
		lausCache:    cache.New[[]bls.Point](ttl),
	}
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/wage", s.handleWage)
	r.Get("/population", s.handlePopulation)
	r.Get("/laus", s.handleLAUS)
	r.Get("/institutions", s.handleInstitutions)
	r.Get("/overlay", s.handleOverlay)
	r.Get("/cache/stats", s.handleCacheStats)

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("server: listening", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}
