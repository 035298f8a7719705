package hydrator

import (
	"sync"
	"time"

	"github.com/chathedev/hhf-live/internal/clock"
	"github.com/chathedev/hhf-live/internal/matchapi"
	"github.com/chathedev/hhf-live/internal/metrics"
	"github.com/chathedev/hhf-live/internal/normalize"
	"github.com/chathedev/hhf-live/internal/timeline"
)

// Entry is one match's hydrated detail. Each successful fetch replaces
// the whole entry; there is no partial merging across fetches.
type Entry struct {
	Events     []timeline.Event
	Clock      *clock.State
	Penalties  []clock.Penalty
	TopScorers []normalize.TopScorer
	FetchedAt  time.Time
}

// flight is one outstanding detail fetch shared by concurrent callers.
type flight struct {
	wg  sync.WaitGroup
	err error
}

// Hydrator fetches and caches per-match detail (event feed, clock
// state, penalties, scoring leaders) on demand. The in-flight map is
// the only cross-caller wait device: a second hydrate for the same
// match joins the outstanding fetch instead of issuing a duplicate
// request.
type Hydrator struct {
	client  matchapi.Client
	metrics metrics.Metrics
	// ttl is how long a cache entry satisfies non-forced hydrates.
	ttl time.Duration

	mu       sync.Mutex
	cache    map[string]Entry
	sims     map[string]*clock.Simulator
	inflight map[string]*flight

	now func() time.Time
}

// New creates a hydrator. The cache lives for the lifetime of the
// engine instance that owns it.
func New(client matchapi.Client, m metrics.Metrics, ttl time.Duration) *Hydrator {
	return &Hydrator{
		client:   client,
		metrics:  m,
		ttl:      ttl,
		cache:    make(map[string]Entry),
		sims:     make(map[string]*clock.Simulator),
		inflight: make(map[string]*flight),
		now:      time.Now,
	}
}
