package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/config"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/internal/querycache"
	"github.com/me/backoffice/internal/ui"
)

// Version is reported by the health endpoint.
const Version = "0.3.0"

// Server is the dashboard HTTP server: HTML pages plus a small JSON API.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	client    *api.Client
	resolver  *period.Resolver
	cache     *querycache.Cache // optional; reported by /health
	ui        *ui.UI
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithCache reports the size of qc on the health endpoint. The cache itself
// is attached to the API client.
func WithCache(qc *querycache.Cache) Option {
	return func(s *Server) {
		s.cache = qc
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, client *api.Client, resolver *period.Resolver, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		client:    client,
		resolver:  resolver,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ui = ui.New(client, resolver, logger)

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	r.Use(metricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	// UI routes (HTML)
	s.ui.RegisterRoutes(r)

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.corsHandler().Handler)

		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)
		r.Get("/range", s.handleRange)
		r.Get("/months", s.handleMonths)
		r.Get("/summary", s.handleSummary)
	})
}

func (s *Server) corsHandler() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}
