// Package engine composes the polling data sources and the timeline
// hydrator into the flat API the presentation layer consumes. It is the
// only surface outside code may depend on.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chathedev/hhf-live/internal/hydrator"
	"github.com/chathedev/hhf-live/internal/matchapi"
	"github.com/chathedev/hhf-live/internal/metrics"
	"github.com/chathedev/hhf-live/internal/normalize"
	"github.com/chathedev/hhf-live/internal/poller"
	"github.com/chathedev/hhf-live/internal/status"
)

// Options carries the per-query poll cadences and the hydration cache
// TTL.
type Options struct {
	LiveUpcomingInterval time.Duration
	LiveInterval         time.Duration
	OldInterval          time.Duration
	Limit                int
	HydrateTTL           time.Duration
}

// Engine owns one source per logical query plus the shared hydrator.
type Engine struct {
	sources  map[matchapi.DataType]*poller.Source
	hydrator *hydrator.Hydrator
}

// New wires the three standard sources (live+upcoming, live only,
// historical) and the hydrator around one upstream client.
func New(client matchapi.Client, resolver *status.Resolver, m metrics.Metrics, opts Options) *Engine {
	sources := map[matchapi.DataType]*poller.Source{
		matchapi.DataTypeLiveUpcoming: poller.New(client, resolver, m, poller.Options{
			DataType:       matchapi.DataTypeLiveUpcoming,
			Limit:          opts.Limit,
			Interval:       opts.LiveUpcomingInterval,
			ApplyRetention: true,
		}),
		matchapi.DataTypeLive: poller.New(client, resolver, m, poller.Options{
			DataType: matchapi.DataTypeLive,
			Limit:    opts.Limit,
			Interval: opts.LiveInterval,
		}),
		matchapi.DataTypeOld: poller.New(client, resolver, m, poller.Options{
			DataType: matchapi.DataTypeOld,
			Limit:    opts.Limit,
			Interval: opts.OldInterval,
		}),
	}
	return &Engine{
		sources:  sources,
		hydrator: hydrator.New(client, m, opts.HydrateTTL),
	}
}

// Start launches the poll loops and the shared 1-second clock tick.
// Everything stops when the context is cancelled.
func (e *Engine) Start(ctx context.Context) {
	for _, src := range e.sources {
		go src.Run(ctx)
	}
	go e.hydrator.RunClocks(ctx)
	log.Info("Live engine started", "sources", len(e.sources))
}

// Snapshot returns the state of one query's source.
func (e *Engine) Snapshot(dt matchapi.DataType) (poller.Snapshot, error) {
	src, ok := e.sources[dt]
	if !ok {
		return poller.Snapshot{}, fmt.Errorf("unknown data type: %s", dt)
	}
	return src.Snapshot(), nil
}

// Matches returns the current best-known list for one query.
func (e *Engine) Matches(dt matchapi.DataType) []normalize.NormalizedMatch {
	if src, ok := e.sources[dt]; ok {
		return src.Matches()
	}
	return nil
}

// Refresh forces an out-of-cycle fetch for one query.
func (e *Engine) Refresh(ctx context.Context, dt matchapi.DataType, force bool) ([]normalize.NormalizedMatch, error) {
	src, ok := e.sources[dt]
	if !ok {
		return nil, fmt.Errorf("unknown data type: %s", dt)
	}
	return src.Refresh(ctx, force)
}

// AllCurrent concatenates the live+upcoming list with the historical
// one, deduplicated by match id. The live+upcoming source wins ties
// since each source owns its cache independently.
func (e *Engine) AllCurrent() []normalize.NormalizedMatch {
	current := e.Matches(matchapi.DataTypeLiveUpcoming)
	old := e.Matches(matchapi.DataTypeOld)
	seen := make(map[string]struct{}, len(current))
	for _, m := range current {
		seen[m.ID] = struct{}{}
	}
	for _, m := range old {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		current = append(current, m)
	}
	return current
}

// FindByAPIMatchID locates a match record across all sources.
func (e *Engine) FindByAPIMatchID(apiMatchID string) (normalize.NormalizedMatch, bool) {
	for _, src := range e.sources {
		for _, m := range src.Matches() {
			if m.APIMatchID == apiMatchID {
				return m, true
			}
		}
	}
	return normalize.NormalizedMatch{}, false
}

// Hydrator exposes the per-match detail surface.
func (e *Engine) Hydrator() *hydrator.Hydrator {
	return e.hydrator
}

// LiveCount reports how many matches are currently in a live bucket
// across the current view.
func (e *Engine) LiveCount() int {
	n := 0
	for _, m := range e.Matches(matchapi.DataTypeLiveUpcoming) {
		if status.Bucket(m.MatchStatus) == normalize.StatusLive {
			n++
		}
	}
	return n
}
