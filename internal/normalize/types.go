package normalize

import (
	"time"

	"github.com/chathedev/hhf-live/internal/timeline"
)

// MatchStatus is the canonical four-state status of a fixture.
type MatchStatus string

const (
	StatusUpcoming MatchStatus = "upcoming"
	StatusLive     MatchStatus = "live"
	StatusHalftime MatchStatus = "halftime"
	StatusFinished MatchStatus = "finished"
)

// NormalizedMatch is one scheduled or completed fixture in canonical
// form. IDs are stable across polls for the same fixture; everything
// else is best-known state from the most recent trustworthy fetch.
type NormalizedMatch struct {
	ID string
	// APIMatchID is the opaque upstream identifier used to fetch match
	// detail. Empty for matches without detail support.
	APIMatchID string

	TeamType string
	// NormalizedTeam is the canonical team key used for filtering,
	// insensitive to case, diacritics and whitespace.
	NormalizedTeam string

	Opponent string
	IsHome   bool

	Date        time.Time
	DisplayDate string
	Time        string
	Venue       string
	Series      string
	InfoURL     string
	PlayURL     string

	// Result is the raw score string as last reported by upstream,
	// possibly stale or absent.
	Result string

	// MatchStatus carries the upstream status hint after normalization
	// (empty when upstream supplied none) and the resolved status after
	// the status resolver has run. The resolved value is authoritative
	// for presentation.
	MatchStatus MatchStatus

	// MatchFeed is the best-known ordered event list for this match,
	// possibly partial.
	MatchFeed []timeline.Event

	// Advisory data-quality flags, set by the status resolver. They
	// never change MatchStatus.
	ResultUnpublished bool
	FeedStalled       bool
}

// TopScorer is one entry of the per-match scoring leaders from the
// detail payload.
type TopScorer struct {
	Name   string
	Number string
	Team   string
	Goals  int
}
