package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chathedev/hhf-live/internal/clock"
	"github.com/chathedev/hhf-live/internal/matchapi"
	"github.com/chathedev/hhf-live/internal/normalize"
	"github.com/chathedev/hhf-live/internal/timeline"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		respondJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"liveMatches": s.Engine.LiveCount(),
		})
	}
}

// ListMatchesHandler serves the per-query match list plus the source's
// loading/error/refresh state. dataType=all merges live+upcoming with
// historical, deduped by id.
func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("dataType")
		if raw == "all" {
			// The merged view is loading until every backing source has
			// its first payload, and has a payload as soon as one does.
			cur, _ := s.Engine.Snapshot(matchapi.DataTypeLiveUpcoming)
			old, _ := s.Engine.Snapshot(matchapi.DataTypeOld)
			respondJSON(w, http.StatusOK, listResponse{
				Matches:      toMatchViews(s.Engine.AllCurrent()),
				Loading:      cur.Loading && old.Loading,
				HasPayload:   cur.HasPayload || old.HasPayload,
				IsRefreshing: cur.IsRefreshing || old.IsRefreshing,
			})
			return
		}

		dt, err := parseDataType(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		snap, err := s.Engine.Snapshot(dt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusOK, listResponse{
			Matches:      toMatchViews(snap.Matches),
			Loading:      snap.Loading,
			HasPayload:   snap.HasPayload,
			Error:        snap.Error,
			IsRefreshing: snap.IsRefreshing,
		})
	}
}

// RefreshHandler triggers an immediate out-of-cycle fetch for one query.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		dt, err := parseDataType(r.URL.Query().Get("dataType"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		force := r.URL.Query().Get("force") == "true"

		matches, err := s.Engine.Refresh(r.Context(), dt, force)
		if err != nil {
			http.Error(w, "Failed to refresh matches", http.StatusBadGateway)
			return
		}
		respondJSON(w, http.StatusOK, listResponse{
			Matches:    toMatchViews(matches),
			HasPayload: true,
		})
	}
}

// TimelineHandler hydrates one match on demand and serves its merged
// timeline, simulated clock and active penalties.
// Route shape: /matches/{apiMatchId}/timeline.
func (s *Server) TimelineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiMatchID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/matches/"), "/timeline")
		if apiMatchID == "" || strings.Contains(apiMatchID, "/") {
			http.Error(w, "invalid match id", http.StatusBadRequest)
			return
		}

		match, ok := s.Engine.FindByAPIMatchID(apiMatchID)
		if !ok {
			// The match may not be in any poll window yet; hydrate by
			// id alone so a deep link still works.
			match = normalize.NormalizedMatch{APIMatchID: apiMatchID}
		}

		force := r.URL.Query().Get("force") == "true"
		if err := s.Engine.Hydrator().Hydrate(r.Context(), &match, force); err != nil {
			// Serve whatever partial feed we already hold; the error is
			// transport-level and the next poll recovers.
			log.Error("Hydration failed, serving partial feed", "apiMatchID", apiMatchID, "error", err)
		}

		events := timeline.SortForDisplay(s.Engine.Hydrator().MergedTimeline(&match))
		resp := timelineResponse{
			Events:     toEventViews(events),
			TopScorers: toScorerViews(s.Engine.Hydrator().TopScorersFor(apiMatchID)),
			Penalties:  toPenaltyViews(s.Engine.Hydrator().PenaltiesFor(apiMatchID)),
		}
		if sim := s.Engine.Hydrator().SimulatorFor(apiMatchID); sim != nil {
			resp.ClockDisplay = sim.Display()
			resp.TimeoutRemaining = sim.TimeoutRemaining()
			if state, ok := sim.State(); ok {
				resp.ClockRunning = state.Running
				resp.ClockReason = string(state.Reason)
				resp.Period = state.Period
			}
		} else {
			resp.ClockDisplay = timeline.FormatClock(0)
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// parseDataType maps the query parameter to a known query. An empty
// value defaults to live+upcoming; unknown values are rejected.
func parseDataType(s string) (matchapi.DataType, error) {
	switch s {
	case "", string(matchapi.DataTypeLiveUpcoming):
		return matchapi.DataTypeLiveUpcoming, nil
	case string(matchapi.DataTypeLive):
		return matchapi.DataTypeLive, nil
	case string(matchapi.DataTypeOld):
		return matchapi.DataTypeOld, nil
	default:
		return "", fmt.Errorf("unknown data type: %s", s)
	}
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func toMatchViews(matches []normalize.NormalizedMatch) []matchView {
	views := make([]matchView, 0, len(matches))
	for _, m := range matches {
		v := matchView{
			ID:                m.ID,
			APIMatchID:        m.APIMatchID,
			TeamType:          m.TeamType,
			NormalizedTeam:    m.NormalizedTeam,
			Opponent:          m.Opponent,
			IsHome:            m.IsHome,
			DisplayDate:       m.DisplayDate,
			Time:              m.Time,
			Venue:             m.Venue,
			Series:            m.Series,
			InfoURL:           m.InfoURL,
			PlayURL:           m.PlayURL,
			Result:            m.Result,
			MatchStatus:       string(m.MatchStatus),
			ResultUnpublished: m.ResultUnpublished,
			FeedStalled:       m.FeedStalled,
			MatchFeed:         toEventViews(m.MatchFeed),
		}
		if !m.Date.IsZero() {
			v.Date = m.Date.Format(time.RFC3339)
		}
		views = append(views, v)
	}
	return views
}

func toEventViews(events []timeline.Event) []eventView {
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, eventView{
			Time:         e.Time,
			Period:       e.Period,
			Type:         e.Type,
			Description:  e.Description,
			Team:         e.Team,
			Player:       e.Player,
			PlayerNumber: e.PlayerNumber,
			HomeScore:    e.HomeScore,
			AwayScore:    e.AwayScore,
			EventID:      e.EventID,
		})
	}
	return views
}

func toPenaltyViews(penalties []clock.Penalty) []penaltyView {
	views := make([]penaltyView, 0, len(penalties))
	for _, p := range penalties {
		views = append(views, penaltyView{
			Team:             p.Team,
			Player:           p.Player,
			PlayerNumber:     p.PlayerNumber,
			Period:           p.Period,
			RemainingSeconds: p.RemainingSeconds,
		})
	}
	return views
}

func toScorerViews(scorers []normalize.TopScorer) []scorerView {
	views := make([]scorerView, 0, len(scorers))
	for _, s := range scorers {
		views = append(views, scorerView{
			Name:   s.Name,
			Number: s.Number,
			Team:   s.Team,
			Goals:  s.Goals,
		})
	}
	return views
}
