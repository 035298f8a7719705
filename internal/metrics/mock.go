package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	pollRuns            map[string]int
	pollFailures        map[string]int
	pollDurations       []float64
	matchesHeld         map[string]int
	regressionsRejected int
	hydrations          int
	hydrationsCoalesced int
	hydrationFailures   int
	anomaliesFlagged    map[string]int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		pollRuns:         make(map[string]int),
		pollFailures:     make(map[string]int),
		matchesHeld:      make(map[string]int),
		anomaliesFlagged: make(map[string]int),
	}
}

func (m *Mock) IncPollRuns(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollRuns[query]++
}

func (m *Mock) IncPollFailures(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollFailures[query]++
}

func (m *Mock) ObservePollDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollDurations = append(m.pollDurations, seconds)
}

func (m *Mock) SetMatchesHeld(query string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesHeld[query] = count
}

func (m *Mock) IncRegressionsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regressionsRejected++
}

func (m *Mock) IncHydrations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hydrations++
}

func (m *Mock) IncHydrationsCoalesced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hydrationsCoalesced++
}

func (m *Mock) IncHydrationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hydrationFailures++
}

func (m *Mock) IncAnomaliesFlagged(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anomaliesFlagged[kind]++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// PollRuns returns the number of poll cycles recorded for a query.
func (m *Mock) PollRuns(query string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollRuns[query]
}

// RegressionsRejected returns the number of rejected regressions.
func (m *Mock) RegressionsRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regressionsRejected
}

// Hydrations returns the number of detail fetches recorded.
func (m *Mock) Hydrations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hydrations
}

// HydrationsCoalesced returns the number of coalesced hydrate calls.
func (m *Mock) HydrationsCoalesced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hydrationsCoalesced
}
