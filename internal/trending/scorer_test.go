package trending_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunelytics/internal/core"
	"tunelytics/internal/trending"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func play(id, token int64, listener string, at time.Time) core.PlayEvent {
	return core.PlayEvent{
		ID:        id,
		Timestamp: at.UnixMilli(),
		TokenID:   token,
		Listener:  listener,
		Duration:  180,
		Source:    "player",
	}
}

func TestScore_MorePlaysAndListenersRankHigher(t *testing.T) {
	t.Parallel()

	plays := []core.PlayEvent{
		play(1, 100, "0xaaa", now.Add(-time.Hour)),
		play(2, 100, "0xbbb", now.Add(-2*time.Hour)),
		play(3, 100, "0xccc", now.Add(-3*time.Hour)),
		play(4, 200, "0xaaa", now.Add(-time.Hour)),
	}

	scores := trending.Score(plays, []int64{100, 200}, trending.DefaultWindow, 0, now)

	require.Len(t, scores, 2)
	assert.Equal(t, int64(100), scores[0].TokenID)
	assert.Equal(t, 3, scores[0].PlayCount)
	assert.Equal(t, 3, scores[0].UniqueListeners)
	assert.Greater(t, scores[0].Score, scores[1].Score)
}

func TestScore_Formula(t *testing.T) {
	t.Parallel()

	at := now.Add(-time.Hour)
	plays := []core.PlayEvent{
		play(1, 100, "0xaaa", at),
		play(2, 100, "0xAAA", at), // same listener, different case
	}

	scores := trending.Score(plays, []int64{100}, trending.DefaultWindow, 0, now)

	require.Len(t, scores, 1)
	s := scores[0]
	assert.Equal(t, 2, s.PlayCount)
	assert.Equal(t, 1, s.UniqueListeners)

	windowStart := now.Add(-trending.DefaultWindow).UnixMilli()
	wantBoost := float64(at.UnixMilli()-windowStart) / float64(trending.DefaultWindow.Milliseconds()) * 10.0
	assert.InDelta(t, wantBoost, s.RecencyBoost, 1e-9)
	assert.InDelta(t, 0.7*2+0.3*1+wantBoost, s.Score, 1e-9)
}

func TestScore_RecentPlaysBoostOverOldOnes(t *testing.T) {
	t.Parallel()

	plays := []core.PlayEvent{
		play(1, 100, "0xaaa", now.Add(-time.Hour)),
		play(2, 200, "0xaaa", now.Add(-6*24*time.Hour)),
	}

	scores := trending.Score(plays, []int64{100, 200}, trending.DefaultWindow, 0, now)

	require.Len(t, scores, 2)
	assert.Equal(t, int64(100), scores[0].TokenID)
	assert.Greater(t, scores[0].RecencyBoost, scores[1].RecencyBoost)
}

func TestScore_PlaysOutsideWindowAreIgnored(t *testing.T) {
	t.Parallel()

	plays := []core.PlayEvent{
		play(1, 100, "0xaaa", now.Add(-8*24*time.Hour)), // too old
		play(2, 100, "0xaaa", now.Add(time.Hour)),       // in the future
		play(3, 100, "0xaaa", now.Add(-time.Hour)),
	}

	scores := trending.Score(plays, []int64{100}, trending.DefaultWindow, 0, now)

	require.Len(t, scores, 1)
	assert.Equal(t, 1, scores[0].PlayCount)
}

func TestScore_CandidateWithoutPlaysScoresZero(t *testing.T) {
	t.Parallel()

	plays := []core.PlayEvent{play(1, 100, "0xaaa", now.Add(-time.Hour))}

	scores := trending.Score(plays, []int64{100, 999}, trending.DefaultWindow, 0, now)

	require.Len(t, scores, 2)
	assert.Equal(t, int64(999), scores[1].TokenID)
	assert.Zero(t, scores[1].Score)
	assert.Zero(t, scores[1].PlayCount)
}

func TestScore_Limit(t *testing.T) {
	t.Parallel()

	plays := []core.PlayEvent{
		play(1, 100, "0xaaa", now.Add(-time.Hour)),
		play(2, 100, "0xbbb", now.Add(-time.Hour)),
		play(3, 200, "0xaaa", now.Add(-time.Hour)),
	}

	scores := trending.Score(plays, []int64{100, 200, 300}, trending.DefaultWindow, 2, now)

	require.Len(t, scores, 2)
	assert.Equal(t, int64(100), scores[0].TokenID)
	assert.Equal(t, int64(200), scores[1].TokenID)
}

func TestScore_TieBreaksByTokenID(t *testing.T) {
	t.Parallel()

	scores := trending.Score(nil, []int64{300, 100, 200}, trending.DefaultWindow, 0, now)

	require.Len(t, scores, 3)
	assert.Equal(t, int64(100), scores[0].TokenID)
	assert.Equal(t, int64(200), scores[1].TokenID)
	assert.Equal(t, int64(300), scores[2].TokenID)
}

func TestScore_DuplicateCandidatesScoredOnce(t *testing.T) {
	t.Parallel()

	scores := trending.Score(nil, []int64{100, 100, 100}, trending.DefaultWindow, 0, now)

	assert.Len(t, scores, 1)
}
