package status

import "time"

// Config holds the time heuristics the resolver works with. One
// constant per purpose; call sites never carry their own magic numbers.
type Config struct {
	// LiveWindow is how long after kickoff a match without upstream
	// status is still considered in play.
	LiveWindow time.Duration
	// TypicalDuration estimates a match's end time from its kickoff.
	TypicalDuration time.Duration
	// Retention is how long past its estimated end a finished match
	// stays eligible for "current" views.
	Retention time.Duration
	// StaleResultAfter is how long after kickoff an untouched 0–0
	// result is flagged as likely unpublished.
	StaleResultAfter time.Duration
	// StallAfter is how long a live match may go without any timeline
	// progress before the feed is flagged as stalled.
	StallAfter time.Duration
}

// DefaultConfig returns the standard heuristics.
func DefaultConfig() Config {
	return Config{
		LiveWindow:       150 * time.Minute,
		TypicalDuration:  2 * time.Hour,
		Retention:        3 * time.Hour,
		StaleResultAfter: 120 * time.Minute,
		StallAfter:       10 * time.Minute,
	}
}

// Resolver derives a trustworthy match status from authoritative
// backend hints plus time-based heuristics.
type Resolver struct {
	cfg Config
}

// NewResolver creates a resolver with the given heuristics.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}
