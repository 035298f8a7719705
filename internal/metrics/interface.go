package metrics

// Metrics defines the interface for collecting engine metrics.
// This decouples the engine from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPollRuns(query string)
	IncPollFailures(query string)
	ObservePollDuration(seconds float64)
	SetMatchesHeld(query string, count int)
	IncRegressionsRejected()
	IncHydrations()
	IncHydrationsCoalesced()
	IncHydrationFailures()
	IncAnomaliesFlagged(kind string)
	SetStartupTime(seconds float64)
}
