package engine

import (
	"context"
	"testing"
	"time"

	"github.com/chathedev/hhf-live/internal/matchapi"
	"github.com/chathedev/hhf-live/internal/metrics"
	"github.com/chathedev/hhf-live/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(client matchapi.Client) *Engine {
	return New(client, status.NewResolver(status.DefaultConfig()), metrics.NewMock(), Options{
		LiveUpcomingInterval: time.Second,
		LiveInterval:         time.Second,
		OldInterval:          time.Minute,
		Limit:                50,
		HydrateTTL:           15 * time.Second,
	})
}

func payloadByQuery(client *matchapi.MockClient, byQuery map[matchapi.DataType][]matchapi.RawMatch) {
	client.GetMatchesFunc = func(ctx context.Context, params matchapi.ListParams) ([]matchapi.RawMatch, error) {
		return byQuery[params.DataType], nil
	}
}

func TestEngineQueries(t *testing.T) {
	client := matchapi.NewMockClient()
	payloadByQuery(client, map[matchapi.DataType][]matchapi.RawMatch{
		matchapi.DataTypeLiveUpcoming: {
			{"id": "m1", "apiMatchId": "abc", "teamType": "Herrar A"},
			{"id": "m2", "teamType": "Damer A"},
		},
		matchapi.DataTypeOld: {
			{"id": "m2", "teamType": "Damer A"},
			{"id": "m3", "teamType": "HU16"},
		},
	})
	eng := newTestEngine(client)

	ctx := context.Background()
	_, err := eng.Refresh(ctx, matchapi.DataTypeLiveUpcoming, true)
	require.NoError(t, err)
	_, err = eng.Refresh(ctx, matchapi.DataTypeOld, true)
	require.NoError(t, err)

	t.Run("unknown data type is rejected", func(t *testing.T) {
		_, err := eng.Snapshot("bogus")
		require.Error(t, err)
		_, err = eng.Refresh(ctx, "bogus", true)
		require.Error(t, err)
		assert.Nil(t, eng.Matches("bogus"))
	})

	t.Run("each query keeps its own cache", func(t *testing.T) {
		assert.Len(t, eng.Matches(matchapi.DataTypeLiveUpcoming), 2)
		assert.Len(t, eng.Matches(matchapi.DataTypeOld), 2)
		assert.Empty(t, eng.Matches(matchapi.DataTypeLive))
	})

	t.Run("all current dedupes across queries, current wins", func(t *testing.T) {
		all := eng.AllCurrent()
		require.Len(t, all, 3)
		ids := make([]string, 0, len(all))
		for _, m := range all {
			ids = append(ids, m.ID)
		}
		assert.Equal(t, []string{"m1", "m2", "m3"}, ids)
	})

	t.Run("find by upstream id searches all sources", func(t *testing.T) {
		m, ok := eng.FindByAPIMatchID("abc")
		require.True(t, ok)
		assert.Equal(t, "m1", m.ID)

		_, ok = eng.FindByAPIMatchID("nope")
		assert.False(t, ok)
	})
}

func TestLiveCount(t *testing.T) {
	kickoff := time.Now().Add(-30 * time.Minute).UTC().Format("2006-01-02T15:04:05")
	client := matchapi.NewMockClient()
	payloadByQuery(client, map[matchapi.DataType][]matchapi.RawMatch{
		matchapi.DataTypeLiveUpcoming: {
			{"id": "m1", "date": kickoff},
			{"id": "m2", "status": "halvtid"},
			{"id": "m3", "status": "kommande"},
		},
	})
	eng := newTestEngine(client)

	_, err := eng.Refresh(context.Background(), matchapi.DataTypeLiveUpcoming, true)
	require.NoError(t, err)

	assert.Equal(t, 2, eng.LiveCount(), "halftime counts as live")
}
