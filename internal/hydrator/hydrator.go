// Package hydrator performs the on-demand, per-match detail fetch. It
// coalesces concurrent requests for the same match and keeps a
// per-match cache that each successful fetch replaces wholesale.
package hydrator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chathedev/hhf-live/internal/clock"
	"github.com/chathedev/hhf-live/internal/normalize"
	"github.com/chathedev/hhf-live/internal/timeline"
)

// Hydrate fetches the detail feed for one match, keyed by its upstream
// APIMatchID. Concurrent calls for the same match share one network
// request. Without force, a cache entry younger than the TTL is reused.
// The fetch always completes and updates the cache even if the caller
// stopped waiting; a viewer closing only stops its timers.
func (h *Hydrator) Hydrate(ctx context.Context, m *normalize.NormalizedMatch, force bool) error {
	if m == nil || m.APIMatchID == "" {
		return fmt.Errorf("match has no api match id, detail not supported")
	}
	key := m.APIMatchID

	h.mu.Lock()
	if f, ok := h.inflight[key]; ok {
		h.mu.Unlock()
		h.metrics.IncHydrationsCoalesced()
		f.wg.Wait()
		return f.err
	}
	if !force {
		if e, ok := h.cache[key]; ok && h.now().Sub(e.FetchedAt) < h.ttl {
			h.mu.Unlock()
			return nil
		}
	}
	f := &flight{}
	f.wg.Add(1)
	h.inflight[key] = f
	h.mu.Unlock()

	// The fetch is shared by every waiter on the flight; it must not be
	// cancelled by whichever caller happened to start it.
	f.err = h.fetch(context.WithoutCancel(ctx), m, key)

	h.mu.Lock()
	delete(h.inflight, key)
	h.mu.Unlock()
	f.wg.Done()
	return f.err
}

func (h *Hydrator) fetch(ctx context.Context, m *normalize.NormalizedMatch, key string) error {
	h.metrics.IncHydrations()
	detail, err := h.client.GetMatchDetail(ctx, key, true)
	if err != nil {
		h.metrics.IncHydrationFailures()
		log.Error("Match detail fetch failed", "apiMatchID", key, "error", err)
		return fmt.Errorf("failed to hydrate match %s: %w", key, err)
	}

	// The detail feed is the higher-fidelity source; the match's own
	// partial feed from the list endpoint fills whatever it misses.
	events := timeline.Merge(normalize.DetailEvents(detail), m.MatchFeed)
	state := normalize.NormalizeClockState(detail)
	penalties := normalize.NormalizePenalties(detail)

	entry := Entry{
		Events:     events,
		Clock:      state,
		Penalties:  penalties,
		TopScorers: normalize.NormalizeTopScorers(detail),
		FetchedAt:  h.now(),
	}

	h.mu.Lock()
	h.cache[key] = entry
	if state != nil {
		sim, ok := h.sims[key]
		if !ok {
			sim = clock.NewSimulator()
			h.sims[key] = sim
		}
		// Fresh snapshot resets the local tick count, so drift never
		// compounds past one fetch interval.
		sim.SetSnapshot(*state, penalties)
	}
	h.mu.Unlock()

	log.Debug("Hydrated match detail", "apiMatchID", key, "events", len(events), "penalties", len(penalties))
	return nil
}

// MergedTimeline returns the hydrated event feed when present, falling
// back to whatever partial feed the match record itself carried, so a
// consumer always has something to show before hydration completes.
func (h *Hydrator) MergedTimeline(m *normalize.NormalizedMatch) []timeline.Event {
	if m == nil {
		return nil
	}
	h.mu.Lock()
	e, ok := h.cache[m.APIMatchID]
	h.mu.Unlock()
	if ok {
		return e.Events
	}
	return m.MatchFeed
}

// ClockStateFor returns the last authoritative clock snapshot for a
// match, or nil when none has been fetched.
func (h *Hydrator) ClockStateFor(apiMatchID string) *clock.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.cache[apiMatchID]; ok {
		return e.Clock
	}
	return nil
}

// SimulatorFor returns the running clock simulator for a match, or nil
// when the match has no clock state yet.
func (h *Hydrator) SimulatorFor(apiMatchID string) *clock.Simulator {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sims[apiMatchID]
}

// PenaltiesFor returns the simulated active penalty set for a match.
func (h *Hydrator) PenaltiesFor(apiMatchID string) []clock.Penalty {
	h.mu.Lock()
	sim := h.sims[apiMatchID]
	h.mu.Unlock()
	if sim == nil {
		return nil
	}
	return sim.ActivePenalties()
}

// TopScorersFor returns the scoring leaders from the last hydration.
func (h *Hydrator) TopScorersFor(apiMatchID string) []normalize.TopScorer {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.cache[apiMatchID]; ok {
		return e.TopScorers
	}
	return nil
}

// TickClocks advances every active simulator by one second. The owner
// drives this from a single fixed 1-second timer.
func (h *Hydrator) TickClocks() {
	h.mu.Lock()
	sims := make([]*clock.Simulator, 0, len(h.sims))
	for _, sim := range h.sims {
		sims = append(sims, sim)
	}
	h.mu.Unlock()
	for _, sim := range sims {
		if sim.Active() {
			sim.Tick()
		}
	}
}

// RunClocks drives TickClocks until the context is cancelled.
func (h *Hydrator) RunClocks(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.TickClocks()
		}
	}
}

// Clear drops the whole cache and all simulators. Used at lifecycle
// boundaries when the host application resets its data layer.
func (h *Hydrator) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache = make(map[string]Entry)
	h.sims = make(map[string]*clock.Simulator)
}
