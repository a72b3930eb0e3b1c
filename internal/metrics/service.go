package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	GenerationRuns      prometheus.Counter
	GenerationSkips     prometheus.Counter
	GenerationFailures  prometheus.Counter
	RecordsProcessed    *prometheus.CounterVec
	RecordsSkipped      *prometheus.CounterVec
	GenerationDuration  prometheus.Histogram
	LastGenerationTime  prometheus.Gauge
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
	StartupTime         prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GenerationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankings_generation_runs_total",
			Help: "The total number of completed generation runs.",
		}),
		GenerationSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankings_generation_skips_total",
			Help: "The total number of runs skipped because no new matches existed.",
		}),
		GenerationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankings_generation_failures_total",
			Help: "The total number of generation runs that aborted with an error.",
		}),
		RecordsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rankings_records_processed_total",
			Help: "The total number of match records folded into the ratings.",
		}, []string{"category"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rankings_records_skipped_total",
			Help: "The total number of match records skipped as malformed.",
		}, []string{"category"}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankings_generation_duration_seconds",
			Help:    "The duration of a full generation run.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LastGenerationTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rankings_last_generation_timestamp_seconds",
			Help: "Epoch time of the last successful generation.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankings_notifications_sent_total",
			Help: "The total number of leaderboard notifications successfully sent.",
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankings_notifications_failed_total",
			Help: "The total number of leaderboard notifications that failed to send.",
		}),
		StartupTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rankings_startup_time_seconds",
			Help: "Time taken for the application to start.",
		}),
	}

	reg.MustRegister(
		s.GenerationRuns,
		s.GenerationSkips,
		s.GenerationFailures,
		s.RecordsProcessed,
		s.RecordsSkipped,
		s.GenerationDuration,
		s.LastGenerationTime,
		s.NotificationsSent,
		s.NotificationsFailed,
		s.StartupTime,
	)

	return s
}

func (s *Service) IncGenerationRuns() {
	s.GenerationRuns.Inc()
}

func (s *Service) IncGenerationSkips() {
	s.GenerationSkips.Inc()
}

func (s *Service) IncGenerationFailures() {
	s.GenerationFailures.Inc()
}

func (s *Service) AddRecordsProcessed(category string, count int) {
	s.RecordsProcessed.WithLabelValues(category).Add(float64(count))
}

func (s *Service) AddRecordsSkipped(category string, count int) {
	s.RecordsSkipped.WithLabelValues(category).Add(float64(count))
}

func (s *Service) ObserveGenerationDuration(seconds float64) {
	s.GenerationDuration.Observe(seconds)
}

func (s *Service) SetLastGenerationTime(epochSeconds float64) {
	s.LastGenerationTime.Set(epochSeconds)
}

func (s *Service) IncNotificationsSent() {
	s.NotificationsSent.Inc()
}

func (s *Service) IncNotificationsFailed() {
	s.NotificationsFailed.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTime.Set(seconds)
}
