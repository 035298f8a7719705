package status

import (
	"testing"
	"time"

	"github.com/chathedev/hhf-live/internal/normalize"
	"github.com/chathedev/hhf-live/internal/timeline"
	"github.com/stretchr/testify/assert"
)

func newTestResolver() *Resolver {
	return NewResolver(DefaultConfig())
}

func TestResolve(t *testing.T) {
	kickoff := time.Date(2026, 2, 7, 15, 0, 0, 0, time.UTC)
	r := newTestResolver()

	t.Run("upstream status wins", func(t *testing.T) {
		m := &normalize.NormalizedMatch{MatchStatus: normalize.StatusHalftime, Date: kickoff}

		got := r.Resolve(m, kickoff.Add(-time.Hour))

		assert.Equal(t, normalize.StatusHalftime, got)
	})

	t.Run("before kickoff is upcoming", func(t *testing.T) {
		m := &normalize.NormalizedMatch{Date: kickoff}

		got := r.Resolve(m, kickoff.Add(-10*time.Minute))

		assert.Equal(t, normalize.StatusUpcoming, got)
	})

	t.Run("inside live window is live", func(t *testing.T) {
		m := &normalize.NormalizedMatch{Date: kickoff}

		got := r.Resolve(m, kickoff.Add(60*time.Minute))

		assert.Equal(t, normalize.StatusLive, got)
	})

	t.Run("past window with real result is finished", func(t *testing.T) {
		m := &normalize.NormalizedMatch{Date: kickoff, Result: "24–21"}

		got := r.Resolve(m, kickoff.Add(200*time.Minute))

		assert.Equal(t, normalize.StatusFinished, got)
	})

	t.Run("past window with placeholder result stays upcoming", func(t *testing.T) {
		m := &normalize.NormalizedMatch{Date: kickoff, Result: "0–0"}

		got := r.Resolve(m, kickoff.Add(200*time.Minute))

		assert.Equal(t, normalize.StatusUpcoming, got)
	})
}

func TestBucket(t *testing.T) {
	assert.Equal(t, normalize.StatusLive, Bucket(normalize.StatusHalftime))
	assert.Equal(t, normalize.StatusLive, Bucket(normalize.StatusLive))
	assert.Equal(t, normalize.StatusFinished, Bucket(normalize.StatusFinished))
}

func TestAnnotate(t *testing.T) {
	kickoff := time.Date(2026, 2, 7, 15, 0, 0, 0, time.UTC)
	r := newTestResolver()

	t.Run("stale zero score is flagged", func(t *testing.T) {
		m := &normalize.NormalizedMatch{
			Date:        kickoff,
			Result:      "0 - 0",
			MatchStatus: normalize.StatusUpcoming,
		}

		r.Annotate(m, kickoff.Add(3*time.Hour))

		assert.True(t, m.ResultUnpublished)
	})

	t.Run("live match is never flagged for zero score", func(t *testing.T) {
		m := &normalize.NormalizedMatch{
			Date:        kickoff,
			Result:      "0–0",
			MatchStatus: normalize.StatusLive,
		}

		r.Annotate(m, kickoff.Add(3*time.Hour))

		assert.False(t, m.ResultUnpublished)
	})

	t.Run("live match without timeline progress is flagged as stalled", func(t *testing.T) {
		m := &normalize.NormalizedMatch{Date: kickoff, MatchStatus: normalize.StatusLive}

		r.Annotate(m, kickoff.Add(20*time.Minute))

		assert.True(t, m.FeedStalled)
	})

	t.Run("live match with events is not stalled", func(t *testing.T) {
		m := &normalize.NormalizedMatch{
			Date:        kickoff,
			MatchStatus: normalize.StatusLive,
			MatchFeed:   []timeline.Event{{Type: "Mål"}},
		}

		r.Annotate(m, kickoff.Add(20*time.Minute))

		assert.False(t, m.FeedStalled)
	})
}

func TestWithinRetention(t *testing.T) {
	kickoff := time.Date(2026, 2, 7, 15, 0, 0, 0, time.UTC)
	r := newTestResolver()
	finished := &normalize.NormalizedMatch{Date: kickoff, MatchStatus: normalize.StatusFinished}

	t.Run("finished match stays current within the window", func(t *testing.T) {
		// Estimated end is kickoff+2h; retention runs 3h past that.
		assert.True(t, r.WithinRetention(finished, kickoff.Add(4*time.Hour)))
	})

	t.Run("finished match drops out after the window", func(t *testing.T) {
		assert.False(t, r.WithinRetention(finished, kickoff.Add(6*time.Hour)))
	})

	t.Run("non-finished matches are always eligible", func(t *testing.T) {
		live := &normalize.NormalizedMatch{Date: kickoff, MatchStatus: normalize.StatusLive}
		assert.True(t, r.WithinRetention(live, kickoff.Add(48*time.Hour)))
	})
}

func TestResultHelpers(t *testing.T) {
	assert.True(t, HasRealResult("24–21"))
	assert.True(t, HasRealResult("24 - 21"))
	assert.True(t, HasRealResult("24:21"))
	assert.False(t, HasRealResult("0–0"))
	assert.False(t, HasRealResult(""))
	assert.False(t, HasRealResult("kommande"))

	assert.True(t, IsPlaceholderResult("0-0"))
	assert.True(t, IsPlaceholderResult(" 0 – 0 "))
	assert.False(t, IsPlaceholderResult("1–0"))
}
