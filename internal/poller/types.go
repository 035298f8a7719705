package poller

import (
	"sync"
	"time"

	"github.com/chathedev/hhf-live/internal/matchapi"
	"github.com/chathedev/hhf-live/internal/metrics"
	"github.com/chathedev/hhf-live/internal/normalize"
	"github.com/chathedev/hhf-live/internal/status"
)

// Options configures one polling data source.
type Options struct {
	DataType matchapi.DataType
	Limit    int
	// Interval is the automatic poll cadence. Live-sensitive queries
	// run tight (1s); historical ones much slower.
	Interval time.Duration
	// ApplyRetention drops finished matches past their retention window
	// from this query's result set. Enabled for the live+upcoming
	// query; the historical query keeps everything.
	ApplyRetention bool
}

// Snapshot is a point-in-time copy of a source's state, safe for the
// caller to hold.
type Snapshot struct {
	Matches []normalize.NormalizedMatch
	// Loading is true only while no successful response has ever been
	// received for this source.
	Loading bool
	// HasPayload distinguishes "still loading" from "loaded and
	// legitimately empty".
	HasPayload bool
	// Error is the last fetch failure, cleared on the next success.
	Error string
	// IsRefreshing is true during any in-flight fetch after the first.
	IsRefreshing bool
}

// call is one in-flight fetch that concurrent refreshers share.
type call struct {
	wg      sync.WaitGroup
	matches []normalize.NormalizedMatch
	err     error
}

// Source owns one polling cycle against one logical query. All state is
// behind the mutex; reads go through Snapshot.
type Source struct {
	client   matchapi.Client
	resolver *status.Resolver
	metrics  metrics.Metrics
	opts     Options

	mu         sync.Mutex
	matches    []normalize.NormalizedMatch
	hasPayload bool
	lastErr    string
	refreshing bool
	inflight   *call
	lastFetch  time.Time

	now func() time.Time
}

// New creates a polling source. It does not start polling; call Run.
func New(client matchapi.Client, resolver *status.Resolver, m metrics.Metrics, opts Options) *Source {
	return &Source{
		client:   client,
		resolver: resolver,
		metrics:  m,
		opts:     opts,
		now:      time.Now,
	}
}
