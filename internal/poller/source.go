// Package poller owns the polling cycle against one logical upstream
// query. It guards against request races and against data regression:
// a fresh response that carries less information than the cache never
// silently overwrites it.
package poller

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chathedev/hhf-live/internal/matchapi"
	"github.com/chathedev/hhf-live/internal/normalize"
	"github.com/chathedev/hhf-live/internal/status"
	"github.com/chathedev/hhf-live/internal/timeline"
	"github.com/google/uuid"
)

// minRefreshGap is how recent a completed fetch must be for a
// non-forced refresh to reuse it instead of hitting the network.
const minRefreshGap = 500 * time.Millisecond

// Run polls the upstream on the configured interval until the context
// is cancelled. The first fetch happens immediately.
func (s *Source) Run(ctx context.Context) {
	if _, err := s.Refresh(ctx, false); err != nil {
		log.Error("Initial poll failed", "query", s.opts.DataType, "error", err)
	}
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx, false); err != nil {
				log.Debug("Poll failed, next cycle will retry", "query", s.opts.DataType, "error", err)
			}
		}
	}
}

// Refresh triggers an immediate out-of-cycle fetch and returns the
// freshly merged match list. Concurrent callers (including the
// automatic poll) coalesce onto one network request. Without force, a
// fetch completed moments ago is reused. A started fetch always runs to
// completion and updates the source, even if the initiating caller's
// context is cancelled while it is in flight.
func (s *Source) Refresh(ctx context.Context, force bool) ([]normalize.NormalizedMatch, error) {
	s.mu.Lock()
	if c := s.inflight; c != nil {
		s.mu.Unlock()
		c.wg.Wait()
		return c.matches, c.err
	}
	if !force && s.hasPayload && s.now().Sub(s.lastFetch) < minRefreshGap {
		matches := copyMatches(s.matches)
		s.mu.Unlock()
		return matches, nil
	}
	c := &call{}
	c.wg.Add(1)
	s.inflight = c
	if s.hasPayload {
		s.refreshing = true
	}
	s.mu.Unlock()

	// The fetch is shared with every caller that joins the in-flight
	// call; it must not be cancelled by whichever caller started it.
	matches, err := s.fetchOnce(context.WithoutCancel(ctx))
	c.matches, c.err = matches, err

	s.mu.Lock()
	if s.inflight == c {
		s.inflight = nil
	}
	s.refreshing = false
	s.mu.Unlock()
	c.wg.Done()

	return matches, err
}

// Snapshot returns a copy of the source's current state.
func (s *Source) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Matches:      copyMatches(s.matches),
		Loading:      !s.hasPayload,
		HasPayload:   s.hasPayload,
		Error:        s.lastErr,
		IsRefreshing: s.refreshing,
	}
}

// Matches returns a copy of the current best-known match list.
func (s *Source) Matches() []normalize.NormalizedMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMatches(s.matches)
}

// DataType returns the logical query this source polls.
func (s *Source) DataType() matchapi.DataType {
	return s.opts.DataType
}

func (s *Source) fetchOnce(ctx context.Context) ([]normalize.NormalizedMatch, error) {
	cycleID := uuid.NewString()
	start := s.now()
	s.metrics.IncPollRuns(string(s.opts.DataType))

	raw, err := s.client.GetMatches(ctx, matchapi.ListParams{
		DataType: s.opts.DataType,
		Limit:    s.opts.Limit,
	})
	if err != nil {
		s.metrics.IncPollFailures(string(s.opts.DataType))
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		log.Error("Poll cycle failed", "query", s.opts.DataType, "cycle", cycleID, "error", err)
		return nil, err
	}

	now := s.now()
	fresh := make([]normalize.NormalizedMatch, 0, len(raw))
	for _, r := range raw {
		m := normalize.NormalizeMatch(r)
		m.MatchStatus = s.resolver.Resolve(&m, now)
		s.resolver.Annotate(&m, now)
		if m.ResultUnpublished {
			s.metrics.IncAnomaliesFlagged("result_unpublished")
		}
		if m.FeedStalled {
			s.metrics.IncAnomaliesFlagged("feed_stalled")
		}
		fresh = append(fresh, m)
	}

	merged := s.apply(fresh, now, cycleID)
	s.metrics.ObservePollDuration(s.now().Sub(start).Seconds())
	log.Debug("Poll cycle applied", "query", s.opts.DataType, "cycle", cycleID, "fetched", len(fresh), "held", len(merged))
	return merged, nil
}

// apply merges a fresh fetch into the cache under the regression guard
// and records the result as the source's new state. Responses land here
// in completion order; the guard keeps an out-of-order sparse response
// from clobbering richer state.
func (s *Source) apply(fresh []normalize.NormalizedMatch, now time.Time, cycleID string) []normalize.NormalizedMatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached := make(map[string]normalize.NormalizedMatch, len(s.matches))
	for _, m := range s.matches {
		cached[m.ID] = m
	}

	merged := make([]normalize.NormalizedMatch, 0, len(fresh))
	seen := make(map[string]struct{}, len(fresh))
	for _, f := range fresh {
		if _, dup := seen[f.ID]; dup {
			continue
		}
		seen[f.ID] = struct{}{}
		if c, ok := cached[f.ID]; ok {
			f = s.guard(f, c, cycleID)
		}
		merged = append(merged, f)
	}

	// A shorter fresh list never silently drops matches we already
	// hold; kept entries only leave through the retention window.
	for _, c := range s.matches {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		log.Warn("Fresh response missing cached match, keeping cached entry", "query", s.opts.DataType, "cycle", cycleID, "matchID", c.ID)
		s.metrics.IncRegressionsRejected()
		merged = append(merged, c)
	}

	if s.opts.ApplyRetention {
		retained := merged[:0]
		for _, m := range merged {
			if s.resolver.WithinRetention(&m, now) {
				retained = append(retained, m)
			}
		}
		merged = retained
	}

	s.matches = merged
	s.hasPayload = true
	s.lastErr = ""
	s.lastFetch = now
	s.metrics.SetMatchesHeld(string(s.opts.DataType), len(merged))
	return copyMatches(merged)
}

// guard resolves one fresh-vs-cached conflict per match id. Fresh data
// wins except where it would reduce information.
func (s *Source) guard(fresh, cached normalize.NormalizedMatch, cycleID string) normalize.NormalizedMatch {
	// A real score never reverts to a placeholder unless the match is
	// back in play.
	if status.HasRealResult(cached.Result) && !status.HasRealResult(fresh.Result) &&
		status.Bucket(fresh.MatchStatus) != normalize.StatusLive {
		log.Warn("Rejecting result regression", "query", s.opts.DataType, "cycle", cycleID,
			"matchID", fresh.ID, "cached", cached.Result, "fresh", fresh.Result)
		s.metrics.IncRegressionsRejected()
		fresh.Result = cached.Result
		if fresh.MatchStatus != normalize.StatusFinished && cached.MatchStatus == normalize.StatusFinished {
			fresh.MatchStatus = cached.MatchStatus
		}
	}

	// Events already seen stay; the fresh feed wins ties.
	fresh.MatchFeed = timeline.Merge(fresh.MatchFeed, cached.MatchFeed)

	// Display fields that upstream intermittently omits.
	fresh.APIMatchID = keepNonEmpty(fresh.APIMatchID, cached.APIMatchID)
	fresh.Venue = keepNonEmpty(fresh.Venue, cached.Venue)
	fresh.Series = keepNonEmpty(fresh.Series, cached.Series)
	fresh.InfoURL = keepNonEmpty(fresh.InfoURL, cached.InfoURL)
	fresh.PlayURL = keepNonEmpty(fresh.PlayURL, cached.PlayURL)
	return fresh
}

func keepNonEmpty(fresh, cached string) string {
	if fresh == "" {
		return cached
	}
	return fresh
}

func copyMatches(matches []normalize.NormalizedMatch) []normalize.NormalizedMatch {
	out := make([]normalize.NormalizedMatch, len(matches))
	copy(out, matches)
	return out
}
