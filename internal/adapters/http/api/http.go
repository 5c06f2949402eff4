// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/primecheck/internal/adapters/cache"
	service "github.com/okian/primecheck/internal/app"
)

// Dependencies required by HTTP handlers. Using an interface keeps the
// handler layer loosely coupled to the checker implementation.
type Dependencies interface {
	Check(ctx context.Context, req service.Request) service.Outcome
}

// Server wires HTTP routes for the prime-check API.
type Server struct {
	primeHandler  *PrimeHandler
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	cache         cache.Cache
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCache enables response caching on GET /prime/cached.
func WithCache(c cache.Cache) Option {
	return func(s *Server) {
		s.cache = c
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		primeHandler:  NewPrimeHandler(deps),
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux. Method patterns make the mux
// answer 405 for any other method on a registered path.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	cached := s.primeHandler.HandleGet
	if s.cache != nil {
		cached = CacheMiddleware(s.cache, s.primeHandler.HandleGet)
	}

	mux.HandleFunc("GET /prime", route(s.primeHandler.HandleGet, "prime"))
	mux.HandleFunc("POST /prime", route(s.primeHandler.HandlePost, "prime"))
	mux.HandleFunc("GET /prime/cached", route(cached, "prime_cached"))
	// Only GET responses are cached.
	mux.HandleFunc("POST /prime/cached", route(s.primeHandler.HandlePost, "prime_cached"))
	mux.HandleFunc("GET /healthz", route(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", route(s.statsHandler.HandleStats, "stats"))
}

// route applies the per-endpoint middleware. Recovery sits inside the
// metrics wrapper so recovered panics are counted as 500s.
func route(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return MetricsMiddleware(RecoverMiddleware(h, endpoint), endpoint)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
