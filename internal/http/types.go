package http

import (
	"net/http"

	"github.com/chathedev/hhf-live/internal/config"
	"github.com/chathedev/hhf-live/internal/engine"
	"github.com/chathedev/hhf-live/internal/metrics"
)

type Server struct {
	Engine         *engine.Engine
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

// matchView is the JSON shape of one normalized match on the wire.
type matchView struct {
	ID                string       `json:"id"`
	APIMatchID        string       `json:"apiMatchId,omitempty"`
	TeamType          string       `json:"teamType"`
	NormalizedTeam    string       `json:"normalizedTeam"`
	Opponent          string       `json:"opponent"`
	IsHome            bool         `json:"isHome"`
	Date              string       `json:"date,omitempty"`
	DisplayDate       string       `json:"displayDate,omitempty"`
	Time              string       `json:"time,omitempty"`
	Venue             string       `json:"venue,omitempty"`
	Series            string       `json:"series,omitempty"`
	InfoURL           string       `json:"infoUrl,omitempty"`
	PlayURL           string       `json:"playUrl,omitempty"`
	Result            string       `json:"result,omitempty"`
	MatchStatus       string       `json:"matchStatus"`
	ResultUnpublished bool         `json:"resultUnpublished,omitempty"`
	FeedStalled       bool         `json:"feedStalled,omitempty"`
	MatchFeed         []eventView  `json:"matchFeed,omitempty"`
}

type eventView struct {
	Time         string `json:"time,omitempty"`
	Period       int    `json:"period,omitempty"`
	Type         string `json:"type"`
	Description  string `json:"description,omitempty"`
	Team         string `json:"team,omitempty"`
	Player       string `json:"player,omitempty"`
	PlayerNumber string `json:"playerNumber,omitempty"`
	HomeScore    *int   `json:"homeScore,omitempty"`
	AwayScore    *int   `json:"awayScore,omitempty"`
	EventID      string `json:"eventId,omitempty"`
}

type penaltyView struct {
	Team             string `json:"team,omitempty"`
	Player           string `json:"player,omitempty"`
	PlayerNumber     string `json:"playerNumber,omitempty"`
	Period           int    `json:"period,omitempty"`
	RemainingSeconds int    `json:"remainingSeconds"`
}

type scorerView struct {
	Name   string `json:"name"`
	Number string `json:"number,omitempty"`
	Team   string `json:"team,omitempty"`
	Goals  int    `json:"goals"`
}

type listResponse struct {
	Matches      []matchView `json:"matches"`
	Loading      bool        `json:"loading"`
	HasPayload   bool        `json:"hasPayload"`
	Error        string      `json:"error,omitempty"`
	IsRefreshing bool        `json:"isRefreshing"`
}

type timelineResponse struct {
	Events           []eventView   `json:"events"`
	ClockDisplay     string        `json:"clockDisplay"`
	ClockRunning     bool          `json:"clockRunning"`
	ClockReason      string        `json:"clockReason,omitempty"`
	Period           int           `json:"period,omitempty"`
	TimeoutRemaining int           `json:"timeoutRemaining,omitempty"`
	Penalties        []penaltyView `json:"penalties,omitempty"`
	TopScorers       []scorerView  `json:"topScorers,omitempty"`
}
