// Package status derives a four-state match status from authoritative
// upstream hints plus time-based heuristics, and flags known upstream
// data-quality issues. The precedence lives in one ordered rule table
// so it stays auditable rather than scattered across conditionals.
package status

import (
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chathedev/hhf-live/internal/normalize"
)

// scorePattern matches a real reported score; placeholderPattern
// matches the 0–0 the upstream publishes before any result exists.
// Upstream is not consistent about which dash it uses.
var (
	scorePattern       = regexp.MustCompile(`^\s*\d+\s*[-–—:]\s*\d+\s*$`)
	placeholderPattern = regexp.MustCompile(`^\s*0\s*[-–—:]\s*0\s*$`)
)

// rule is one named row of the resolution table. Rules run in order;
// the first one that applies decides the status.
type rule struct {
	name  string
	apply func(r *Resolver, m *normalize.NormalizedMatch, now time.Time) (normalize.MatchStatus, bool)
}

var rules = []rule{
	{
		// Upstream status is authoritative when present.
		name: "upstream_status",
		apply: func(_ *Resolver, m *normalize.NormalizedMatch, _ time.Time) (normalize.MatchStatus, bool) {
			if m.MatchStatus != "" {
				return m.MatchStatus, true
			}
			return "", false
		},
	},
	{
		name: "before_kickoff",
		apply: func(_ *Resolver, m *normalize.NormalizedMatch, now time.Time) (normalize.MatchStatus, bool) {
			if !m.Date.IsZero() && now.Before(m.Date) {
				return normalize.StatusUpcoming, true
			}
			return "", false
		},
	},
	{
		name: "inside_live_window",
		apply: func(r *Resolver, m *normalize.NormalizedMatch, now time.Time) (normalize.MatchStatus, bool) {
			if !m.Date.IsZero() && !now.Before(m.Date) && !now.After(m.Date.Add(r.cfg.LiveWindow)) {
				return normalize.StatusLive, true
			}
			return "", false
		},
	},
	{
		name: "reported_result",
		apply: func(_ *Resolver, m *normalize.NormalizedMatch, _ time.Time) (normalize.MatchStatus, bool) {
			if HasRealResult(m.Result) {
				return normalize.StatusFinished, true
			}
			return "", false
		},
	},
}

// Resolve derives the canonical status of a match at the given instant.
func (r *Resolver) Resolve(m *normalize.NormalizedMatch, now time.Time) normalize.MatchStatus {
	for _, rule := range rules {
		if s, ok := rule.apply(r, m, now); ok {
			log.Debug("Resolved match status", "matchID", m.ID, "rule", rule.name, "status", s)
			return s
		}
	}
	return normalize.StatusUpcoming
}

// Bucket collapses the four states into the three buckets that matter
// for filtering: a paused match is still a live match.
func Bucket(s normalize.MatchStatus) normalize.MatchStatus {
	if s == normalize.StatusHalftime {
		return normalize.StatusLive
	}
	return s
}

// Annotate layers the advisory data-quality checks on top of an
// already-resolved status. Flags never change the status itself.
func (r *Resolver) Annotate(m *normalize.NormalizedMatch, now time.Time) {
	m.ResultUnpublished = r.resultLikelyUnpublished(m, now)
	m.FeedStalled = r.feedLikelyStalled(m, now)
	if m.ResultUnpublished {
		log.Warn("Result likely unpublished upstream", "matchID", m.ID, "result", m.Result)
	}
	if m.FeedStalled {
		log.Warn("Upstream feed may be stalled", "matchID", m.ID, "status", m.MatchStatus)
	}
}

// resultLikelyUnpublished detects the stale zero-score case: a 0–0
// result long after kickoff on a match that is not in play.
func (r *Resolver) resultLikelyUnpublished(m *normalize.NormalizedMatch, now time.Time) bool {
	if m.Date.IsZero() || Bucket(m.MatchStatus) == normalize.StatusLive {
		return false
	}
	if !placeholderPattern.MatchString(m.Result) {
		return false
	}
	return now.Sub(m.Date) > r.cfg.StaleResultAfter
}

// feedLikelyStalled detects a live match whose timeline shows no
// progress despite elapsed play time.
func (r *Resolver) feedLikelyStalled(m *normalize.NormalizedMatch, now time.Time) bool {
	if Bucket(m.MatchStatus) != normalize.StatusLive || m.Date.IsZero() {
		return false
	}
	return len(m.MatchFeed) == 0 && now.Sub(m.Date) > r.cfg.StallAfter
}

// WithinRetention reports whether a finished match is still eligible
// for "current" views. Matches that are not finished are always
// eligible.
func (r *Resolver) WithinRetention(m *normalize.NormalizedMatch, now time.Time) bool {
	if m.MatchStatus != normalize.StatusFinished || m.Date.IsZero() {
		return true
	}
	estimatedEnd := m.Date.Add(r.cfg.TypicalDuration)
	return now.Sub(estimatedEnd) <= r.cfg.Retention
}

// HasRealResult reports whether the result string is a parseable,
// non-placeholder score.
func HasRealResult(result string) bool {
	return scorePattern.MatchString(result) && !placeholderPattern.MatchString(result)
}

// IsPlaceholderResult reports whether the result string is a 0–0
// placeholder in any dash variant.
func IsPlaceholderResult(result string) bool {
	return placeholderPattern.MatchString(result)
}
