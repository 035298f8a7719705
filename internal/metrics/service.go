package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

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
		PollRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "live_poll_runs_total",
			Help: "The total number of poll cycles per query.",
		}, []string{"query"}),
		PollFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "live_poll_failures_total",
			Help: "The total number of failed poll cycles per query.",
		}, []string{"query"}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "live_poll_duration_seconds",
			Help:    "The duration of individual poll cycles.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		MatchesHeld: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "live_matches_held",
			Help: "The number of normalized matches currently cached per query.",
		}, []string{"query"}),
		RegressionsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "live_regressions_rejected_total",
			Help: "The total number of fetches rejected for regressing cached data.",
		}),
		Hydrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "live_hydrations_total",
			Help: "The total number of per-match detail fetches issued.",
		}),
		HydrationsCoalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "live_hydrations_coalesced_total",
			Help: "The total number of hydrate calls that joined an in-flight fetch.",
		}),
		HydrationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "live_hydration_failures_total",
			Help: "The total number of failed per-match detail fetches.",
		}),
		AnomaliesFlagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "live_anomalies_flagged_total",
			Help: "The total number of upstream data-quality anomalies flagged, by kind.",
		}, []string{"kind"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "live_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PollRuns,
		s.PollFailures,
		s.PollDuration,
		s.MatchesHeld,
		s.RegressionsRejected,
		s.Hydrations,
		s.HydrationsCoalesced,
		s.HydrationFailures,
		s.AnomaliesFlagged,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPollRuns(query string) {
	s.PollRuns.WithLabelValues(query).Inc()
}

func (s *Service) IncPollFailures(query string) {
	s.PollFailures.WithLabelValues(query).Inc()
}

func (s *Service) ObservePollDuration(seconds float64) {
	s.PollDuration.Observe(seconds)
}

func (s *Service) SetMatchesHeld(query string, count int) {
	s.MatchesHeld.WithLabelValues(query).Set(float64(count))
}

func (s *Service) IncRegressionsRejected() {
	s.RegressionsRejected.Inc()
}

func (s *Service) IncHydrations() {
	s.Hydrations.Inc()
}

func (s *Service) IncHydrationsCoalesced() {
	s.HydrationsCoalesced.Inc()
}

func (s *Service) IncHydrationFailures() {
	s.HydrationFailures.Inc()
}

func (s *Service) IncAnomaliesFlagged(kind string) {
	s.AnomaliesFlagged.WithLabelValues(kind).Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
