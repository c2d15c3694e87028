// Package server exposes the tooltip resolver and the reference client over
// HTTP for the knowledge-base front-end.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/oncokb/kbtip/internal/api"
	"github.com/oncokb/kbtip/internal/levels"
	"github.com/oncokb/kbtip/internal/metrics"
	"github.com/oncokb/kbtip/internal/tooltip"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	client   *api.Client
	resolver *tooltip.Resolver
	levels   levels.Descriptions
	logger   *zap.Logger
	origins  []string
	registry *prometheus.Registry
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithCORSOrigins sets the origins allowed to call the API from a browser.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// New creates a server around the reference client, the tooltip resolver and
// the level table served under /api/v1/levels.
func New(client *api.Client, resolver *tooltip.Resolver, table levels.Descriptions, opts ...Option) (*Server, error) {
	s := &Server{
		client:   client,
		resolver: resolver,
		levels:   table,
		logger:   zap.NewNop(),
		origins:  []string{"*"},
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(s.registry); err != nil {
		return nil, err
	}
	return s, nil
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(countRequests)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tooltips", wrap(s.resolveTooltip))

		r.Get("/levels", wrap(s.listLevels))
		r.Get("/levels/{code}", wrap(s.getLevel))

		r.Route("/ref", func(r chi.Router) {
			r.Get("/numbers/{scope}", s.proxy(s.numbers))
			r.Get("/numbers/gene/{symbol}", s.proxy(s.geneNumbers))
			r.Get("/search/gene", s.proxy(s.searchGene))
			r.Get("/genes", s.proxy(s.genes))
			r.Get("/genes/{symbol}/summary", s.proxy(s.geneSummary))
			r.Get("/genes/{symbol}/background", s.proxy(s.geneBackground))
			r.Get("/genes/{symbol}/variants/clinical", s.proxy(s.clinicalVariants))
			r.Get("/genes/{symbol}/variants/biological", s.proxy(s.biologicalVariants))
			r.Get("/genes/{symbol}/mutations", s.proxy(s.mutationMapperData))
			r.Get("/samples", s.proxy(s.sampleCount))
			r.Get("/studies", s.proxy(s.studies))
			r.Get("/articles", s.proxy(s.articles))
			r.Get("/treatments", s.proxy(s.treatments))
			r.Get("/publications", wrap(s.publications))
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
