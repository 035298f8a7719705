package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chathedev/hhf-live/internal/config"
	"github.com/chathedev/hhf-live/internal/engine"
	"github.com/chathedev/hhf-live/internal/matchapi"
	"github.com/chathedev/hhf-live/internal/metrics"
	"github.com/chathedev/hhf-live/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(client matchapi.Client) *Server {
	m := metrics.NewMock()
	eng := engine.New(client, status.NewResolver(status.DefaultConfig()), m, engine.Options{
		LiveUpcomingInterval: time.Second,
		LiveInterval:         time.Second,
		OldInterval:          time.Minute,
		Limit:                50,
		HydrateTTL:           15 * time.Second,
	})
	return NewServer(eng, m, http.NotFoundHandler(), config.Config{Port: "8080"})
}

func listPayload(client *matchapi.MockClient, matches []matchapi.RawMatch) {
	client.GetMatchesFunc = func(ctx context.Context, params matchapi.ListParams) ([]matchapi.RawMatch, error) {
		return matches, nil
	}
}

func TestHealthCheckHandler(t *testing.T) {
	srv := newTestServer(matchapi.NewMockClient())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 0, body["liveMatches"])
}

func TestListMatchesHandler(t *testing.T) {
	client := matchapi.NewMockClient()
	listPayload(client, []matchapi.RawMatch{
		{"id": "m1", "teamType": "Herrar A", "opponent": "Alingsås HK (borta)"},
	})
	srv := newTestServer(client)

	t.Run("loading before the first payload", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches?dataType=liveUpcoming", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Loading)
		assert.False(t, body.HasPayload)
		assert.Empty(t, body.Matches)
	})

	t.Run("dataType=all is loading before any source has a payload", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches?dataType=all", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Loading)
		assert.False(t, body.HasPayload)
	})

	t.Run("unknown dataType is a 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches?dataType=bogus", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	_, err := srv.Engine.Refresh(context.Background(), matchapi.DataTypeLiveUpcoming, true)
	require.NoError(t, err)

	t.Run("serves normalized matches after a poll", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches?dataType=liveUpcoming", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.HasPayload)
		require.Len(t, body.Matches, 1)
		assert.Equal(t, "m1", body.Matches[0].ID)
		assert.Equal(t, "Alingsås HK", body.Matches[0].Opponent)
		assert.False(t, body.Matches[0].IsHome)
	})

	t.Run("dataType=all merges the current views", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches?dataType=all", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.HasPayload, "one source with a payload is enough")
		assert.False(t, body.Loading)
		assert.Len(t, body.Matches, 1)
	})
}

func TestRefreshHandler(t *testing.T) {
	client := matchapi.NewMockClient()
	listPayload(client, []matchapi.RawMatch{{"id": "m1"}})
	srv := newTestServer(client)

	t.Run("rejects GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/refresh", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("rejects an unknown dataType", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh?dataType=bogus", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("forces a fetch and returns the fresh list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh?dataType=liveUpcoming&force=true", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Matches, 1)
		assert.Len(t, client.GetMatchesCalls, 1)
	})
}

func TestTimelineHandler(t *testing.T) {
	client := matchapi.NewMockClient()
	listPayload(client, []matchapi.RawMatch{{"id": "m1", "apiMatchId": "abc"}})
	client.GetMatchDetailFunc = func(ctx context.Context, apiMatchID string, includeEvents bool) (matchapi.RawDetail, error) {
		return matchapi.RawDetail{
			"events": []any{
				map[string]any{"eventId": "e1", "type": "Mål", "time": "12:30", "period": 1},
				map[string]any{"eventId": "e2", "type": "Utvisning", "time": "08:00", "period": 1},
			},
			"clockState": map[string]any{
				"running":        true,
				"reason":         "running",
				"period":         1,
				"currentSeconds": 900,
			},
		}, nil
	}
	srv := newTestServer(client)
	_, err := srv.Engine.Refresh(context.Background(), matchapi.DataTypeLiveUpcoming, true)
	require.NoError(t, err)

	t.Run("rejects malformed paths", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/a/b/timeline", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("hydrates and serves the sorted feed with clock", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/abc/timeline", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body timelineResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Events, 2)
		assert.Equal(t, "e1", body.Events[0].EventID, "later events first")
		assert.Equal(t, "15:00", body.ClockDisplay)
		assert.True(t, body.ClockRunning)
		assert.Equal(t, "running", body.ClockReason)
		assert.Equal(t, 1, body.Period)
	})

	t.Run("deep link to an unpolled match still hydrates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/unknown/timeline", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, client.GetMatchDetailCalls, "unknown")
	})
}
