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

type Server struct {
	Store          *match.Store
	Sink           *snapshot.Sink
	Roster         *players.Roster
	Coordinator    *generator.Coordinator
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	events         pubsub.Client
}
