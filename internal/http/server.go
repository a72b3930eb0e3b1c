package http

import (
	"net/http"

	"github.com/lborup/dinkhouse/internal/config"
	"github.com/lborup/dinkhouse/internal/generator"
	"github.com/lborup/dinkhouse/internal/match"
	"github.com/lborup/dinkhouse/internal/metrics"
	"github.com/lborup/dinkhouse/internal/players"
	"github.com/lborup/dinkhouse/internal/pubsub"
	"github.com/lborup/dinkhouse/internal/snapshot"
)

func NewServer(store *match.Store, sink *snapshot.Sink, roster *players.Roster, coordinator *generator.Coordinator, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, events pubsub.Client) *Server {
	server := &Server{
		Store:          store,
		Sink:           sink,
		Roster:         roster,
		Coordinator:    coordinator,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		events:         events,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/rankings.json", Chain(s.RankingsHandler(), paramsMiddleware))
	s.Router.Handle("/api/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/api/matches", Chain(s.SubmitMatchHandler(), paramsMiddleware))
	s.Router.Handle("/generate", Chain(s.GenerateHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
