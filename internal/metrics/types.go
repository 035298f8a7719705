package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the engine.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	PollRuns            *prometheus.CounterVec
	PollFailures        *prometheus.CounterVec
	PollDuration        prometheus.Histogram
	MatchesHeld         *prometheus.GaugeVec
	RegressionsRejected prometheus.Counter
	Hydrations          prometheus.Counter
	HydrationsCoalesced prometheus.Counter
	HydrationFailures   prometheus.Counter
	AnomaliesFlagged    *prometheus.CounterVec
	StartupTimeSeconds  prometheus.Gauge
}
