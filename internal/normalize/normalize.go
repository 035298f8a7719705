// Package normalize converts raw, shape-varying payloads from the
// upstream match API into canonical match and timeline records. It
// never fails: missing or malformed fields fall back to safe defaults,
// because absence of optional data is normal upstream behavior.
package normalize

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"time"

	"github.com/chathedev/hhf-live/internal/clock"
	"github.com/chathedev/hhf-live/internal/matchapi"
	"github.com/chathedev/hhf-live/internal/timeline"
)

// DefaultEventLabel is used when upstream gives no usable event type or
// description.
const DefaultEventLabel = "Händelse"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// homeAwaySuffix matches the "(hemma)" / "(borta)" annotations some
// list endpoints append to the opponent name.
var homeAwaySuffix = regexp.MustCompile(`(?i)\s*\((hemma|borta|h|b)\)\s*$`)

// NormalizeMatch converts one raw list record into a NormalizedMatch.
// The returned MatchStatus is the upstream hint only; the status
// resolver derives the authoritative value.
func NormalizeMatch(raw matchapi.RawMatch) NormalizedMatch {
	m := map[string]any(raw)

	teamType := firstString(m, "teamType", "team", "teamName", "lag")
	opponentRaw := firstString(m, "opponent", "opponentName", "motstandare", "awayTeam")
	opponent, annotatedHome := stripHomeAway(opponentRaw)

	isHome := annotatedHome
	if v, ok := firstBool(m, "isHome", "home", "hemmamatch"); ok {
		isHome = v
	}

	date := parseDate(firstString(m, "date", "startTime", "kickoff", "datum"))

	match := NormalizedMatch{
		APIMatchID:     firstString(m, "apiMatchId", "api_match_id", "matchUuid", "externalId"),
		TeamType:       teamType,
		NormalizedTeam: TeamKey(teamType),
		Opponent:       opponent,
		IsHome:         isHome,
		Date:           date,
		DisplayDate:    firstString(m, "displayDate", "dateText", "datumText"),
		Time:           firstString(m, "time", "startTimeText", "tid"),
		Venue:          firstString(m, "venue", "arena", "location"),
		Series:         firstString(m, "series", "league", "competition", "serie"),
		InfoURL:        firstString(m, "infoUrl", "matchUrl", "url"),
		PlayURL:        firstString(m, "playUrl", "streamUrl", "broadcastUrl"),
		Result:         firstString(m, "result", "score", "finalScore", "resultat"),
		MatchStatus:    mapUpstreamStatus(firstString(m, "matchStatus", "status", "state")),
	}

	match.ID = firstString(m, "id", "matchId", "match_id")
	if match.ID == "" {
		match.ID = deriveID(teamType, opponent, date)
	}

	if events := firstList(m, "matchFeed", "events", "timeline"); events != nil {
		match.MatchFeed = NormalizeEvents(events)
	}
	return match
}

// NormalizeEvents converts and dedupes a raw event list, preserving
// source order.
func NormalizeEvents(raw []any) []timeline.Event {
	events := make([]timeline.Event, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		events = append(events, NormalizeEvent(m))
	}
	return timeline.Dedupe(events)
}

// NormalizeEvent converts one raw event record into a timeline.Event.
// Two raw shapes with the same semantic values produce structurally
// equal events regardless of which key names they used.
func NormalizeEvent(raw map[string]any) timeline.Event {
	e := timeline.Event{
		Time:         firstString(raw, "time", "matchTime", "clock", "payload.time"),
		Type:         firstString(raw, "type", "eventType", "payload.eventType"),
		Description:  firstString(raw, "description", "text", "payload.description"),
		Team:         firstString(raw, "team", "teamName", "payload.team"),
		Player:       firstString(raw, "player", "playerName", "payload.player"),
		PlayerNumber: firstString(raw, "playerNumber", "number", "payload.playerNumber"),
		EventID:      firstString(raw, "eventId", "event_id", "payload.eventId"),
	}
	if period, ok := firstInt(raw, "period", "half", "payload.period"); ok {
		e.Period = period
	}
	if home, ok := firstInt(raw, "homeScore", "home", "payload.homeScore"); ok {
		e.HomeScore = &home
	}
	if away, ok := firstInt(raw, "awayScore", "away", "payload.awayScore"); ok {
		e.AwayScore = &away
	}
	if e.Type == "" {
		e.Type = DefaultEventLabel
	}
	if e.Description == "" {
		e.Description = e.Type
	}
	return e
}

// NormalizeClockState converts the detail payload's clock object.
// Returns nil when no clock state is present.
func NormalizeClockState(detail matchapi.RawDetail) *clock.State {
	m := firstMap(detail, "clockState", "clock", "matchClock")
	if m == nil {
		return nil
	}
	state := &clock.State{}
	if running, ok := firstBool(m, "running", "isRunning"); ok {
		state.Running = running
	}
	state.Reason = mapClockReason(firstString(m, "reason", "state"))
	if period, ok := firstInt(m, "period", "half"); ok {
		state.Period = period
	}
	if secs, ok := firstInt(m, "currentSeconds", "seconds", "elapsedSeconds"); ok {
		state.CurrentSeconds = secs
	}
	if left, ok := firstInt(m, "timeout.timeoutSecondsLeft", "timeoutSecondsLeft"); ok {
		state.TimeoutSecondsLeft = left
	}
	if drift, ok := firstInt(m, "source.driftSeconds", "driftSeconds"); ok {
		state.DriftSeconds = drift
	}
	if used, ok := firstBool(m, "source.usedEventTime", "usedEventTime"); ok {
		state.UsedEventTime = used
	}
	return state
}

// NormalizePenalties converts the detail payload's penalty list.
func NormalizePenalties(detail matchapi.RawDetail) []clock.Penalty {
	raw := firstList(detail, "penalties", "suspensions")
	if raw == nil {
		return nil
	}
	penalties := make([]clock.Penalty, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := clock.Penalty{
			Team:         firstString(m, "team", "teamName"),
			Player:       firstString(m, "player", "playerName"),
			PlayerNumber: firstString(m, "playerNumber", "number"),
			Active:       true,
		}
		if period, ok := firstInt(m, "period", "half"); ok {
			p.Period = period
		}
		if secs, ok := firstInt(m, "remainingSeconds", "secondsLeft"); ok {
			p.RemainingSeconds = secs
		}
		if active, ok := firstBool(m, "active", "isActive"); ok {
			p.Active = active
		}
		penalties = append(penalties, p)
	}
	return penalties
}

// NormalizeTopScorers converts the detail payload's player stats into
// scoring leaders, most goals first being the upstream order.
func NormalizeTopScorers(detail matchapi.RawDetail) []TopScorer {
	raw := firstList(detail, "playerStats", "topScorers", "scorers")
	if raw == nil {
		return nil
	}
	scorers := make([]TopScorer, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := TopScorer{
			Name:   firstString(m, "name", "player", "playerName"),
			Number: firstString(m, "number", "playerNumber"),
			Team:   firstString(m, "team", "teamName"),
		}
		if goals, ok := firstInt(m, "goals", "mal", "score"); ok {
			s.Goals = goals
		}
		if s.Name == "" {
			continue
		}
		scorers = append(scorers, s)
	}
	return scorers
}

// DetailEvents extracts and normalizes the event feed from a detail
// payload, whichever key it arrived under.
func DetailEvents(detail matchapi.RawDetail) []timeline.Event {
	raw := firstList(detail, "events", "timeline", "matchFeed")
	if raw == nil {
		return nil
	}
	return NormalizeEvents(raw)
}

func mapUpstreamStatus(s string) MatchStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upcoming", "scheduled", "kommande":
		return StatusUpcoming
	case "live", "inprogress", "in_progress", "pågående", "pagaende":
		return StatusLive
	case "halftime", "paused", "halvtid", "paus":
		return StatusHalftime
	case "finished", "ended", "final", "slutspelad", "avslutad":
		return StatusFinished
	default:
		return ""
	}
}

func mapClockReason(s string) clock.Reason {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "running":
		return clock.ReasonRunning
	case "timeout":
		return clock.ReasonTimeout
	case "stopped":
		return clock.ReasonStopped
	default:
		return clock.ReasonNoEvents
	}
}

// stripHomeAway removes a trailing home/away annotation from the
// opponent name. The second return reports whether the annotation said
// the club plays at home.
func stripHomeAway(opponent string) (string, bool) {
	loc := homeAwaySuffix.FindStringSubmatchIndex(opponent)
	if loc == nil {
		return strings.TrimSpace(opponent), false
	}
	marker := strings.ToLower(opponent[loc[2]:loc[3]])
	stripped := strings.TrimSpace(opponent[:loc[0]])
	return stripped, marker == "hemma" || marker == "h"
}

// deriveID builds a stable fallback identifier for fixtures whose list
// record carries no upstream id. It must not change between polls for
// the same fixture.
func deriveID(teamType, opponent string, date time.Time) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d", TeamKey(teamType), strings.ToLower(opponent), date.Unix())
	return fmt.Sprintf("m-%x", h.Sum64())
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
