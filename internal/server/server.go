package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/RaxHax/fratak/internal/cache"
	"github.com/RaxHax/fratak/internal/config"
	"github.com/RaxHax/fratak/internal/scenario"
)

// Server wires the calculation engine, scenario store and result cache
// behind the HTTP surface.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	cache  cache.Cache
	store  scenario.Store
}

func New(cfg *config.Config, logger *zap.Logger, c cache.Cache, store scenario.Store) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		cache:  c,
		store:  store,
	}
}

// Routes builds the ServeMux with rate limiting on the calculation
// endpoints.
func (s *Server) Routes(limiter *RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, s.LoggingMiddleware(h))
	}

	mux.Handle("/loan/schedule", limited(s.HandleSchedule))
	mux.Handle("/loan/schedule/csv", limited(s.HandleScheduleCSV))
	mux.Handle("/loan/compare", limited(s.HandleCompare))
	mux.Handle("/loan/investment", limited(s.HandleInvestment))
	mux.Handle("/rental/net", limited(s.HandleNetRent))
	mux.Handle("/scenarios", s.LoggingMiddleware(s.HandleScenarios))
	mux.Handle("/scenarios/", s.LoggingMiddleware(s.HandleScenarioByID))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}
