package timeline

import "strconv"

// Event represents a single in-match occurrence from the upstream feed.
type Event struct {
	// Time is the match clock at the event, "MM:SS" with an optional
	// stoppage suffix ("45:00+2").
	Time string
	// Period is the half/period index. 0 means the event is not tied to
	// a specific half (kickoff, general match notes).
	Period      int
	Type        string
	Description string

	Team         string
	Player       string
	PlayerNumber string

	// HomeScore/AwayScore carry the score after the event, when known.
	HomeScore *int
	AwayScore *int

	// EventID is the upstream identity, the primary dedup key when present.
	EventID string
}

// Key returns the identity of an event for deduplication. The upstream
// id wins when present; otherwise a composite of the fields that make
// two events "the same" across differently-shaped sources.
func (e Event) Key() string {
	if e.EventID != "" {
		return "id:" + e.EventID
	}
	home, away := "", ""
	if e.HomeScore != nil {
		home = strconv.Itoa(*e.HomeScore)
	}
	if e.AwayScore != nil {
		away = strconv.Itoa(*e.AwayScore)
	}
	return e.Time + "|" + e.Type + "|" + e.Description + "|" + home + "|" + away
}
