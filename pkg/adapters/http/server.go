// Package http exposes the operations endpoints of a Tapestry process:
// a health probe and Prometheus metrics. Readers never talk to it.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aretw0/tapestry/internal/logging"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SessionLister reports the open sessions. *session.Manager implements it.
type SessionLister interface {
	List() []string
}

// Health is the body of GET /healthz.
type Health struct {
	Status   string `json:"status"`
	Title    string `json:"title,omitempty"`
	Nodes    int    `json:"nodes,omitempty"`
	Sessions int    `json:"sessions"`
}

type server struct {
	gatherer prometheus.Gatherer
	sessions SessionLister
	story    *domain.Story
	logger   *slog.Logger
}

// Option configures the ops handler.
type Option func(*server)

// WithGatherer serves /metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *server) {
		s.gatherer = g
	}
}

// WithSessions reports the session count in /healthz.
func WithSessions(l SessionLister) Option {
	return func(s *server) {
		s.sessions = l
	}
}

// WithStory reports the loaded story in /healthz.
func WithStory(story *domain.Story) Option {
	return func(s *server) {
		s.story = story
	}
}

// WithLogger sets the logger used for encode failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *server) {
		s.logger = logger
	}
}

// NewHandler creates the ops router.
func NewHandler(opts ...Option) http.Handler {
	s := &server{
		gatherer: prometheus.DefaultGatherer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	resp := Health{Status: "ok"}
	if s.story != nil {
		resp.Title = s.story.TitleID
		resp.Nodes = len(s.story.Nodes)
	}
	if s.sessions != nil {
		resp.Sessions = len(s.sessions.List())
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("health response encode failed", "err", err)
	}
}
