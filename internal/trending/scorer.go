package trending

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"

	"tunelytics/internal/core"
)

// DefaultWindow is the trailing interval plays are scored over.
const DefaultWindow = 7 * 24 * time.Hour

// Documented formula: score = 0.7*playCount + 0.3*uniqueListeners +
// recencyBoost, where the boost is a 0-10 scale rewarding events
// concentrated near now. The weights are platform-defined constants, they
// are reproduced as documented, not tuned.
const (
	playWeight     = 0.7
	listenerWeight = 0.3
	recencyScale   = 10.0
)

// Score ranks the candidate tokens by recent play popularity, descending,
// truncated to limit (limit <= 0 means no truncation). A candidate with no
// plays inside the window scores zero and ranks last rather than being
// dropped.
//
// The scorer trusts the event stream it is given: recording-time de-dup is
// HasPlayedToday's concern, upstream of here.
func Score(plays []core.PlayEvent, candidates []int64, window time.Duration, limit int, now time.Time) []core.TokenScore {
	if window <= 0 {
		window = DefaultWindow
	}

	windowStart := now.Add(-window).UnixMilli()
	nowMilli := now.UnixMilli()

	byToken := map[int64][]core.PlayEvent{}
	for _, play := range plays {
		if play.Timestamp < windowStart || play.Timestamp > nowMilli {
			continue
		}
		byToken[play.TokenID] = append(byToken[play.TokenID], play)
	}

	scores := lo.Map(lo.Uniq(candidates), func(tokenID int64, _ int) core.TokenScore {
		return scoreToken(tokenID, byToken[tokenID], windowStart, window)
	})

	slices.SortFunc(scores, func(a, b core.TokenScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.TokenID, b.TokenID)
	})

	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

func scoreToken(tokenID int64, windowed []core.PlayEvent, windowStart int64, window time.Duration) core.TokenScore {
	score := core.TokenScore{TokenID: tokenID}
	if len(windowed) == 0 {
		return score
	}

	score.PlayCount = len(windowed)
	score.UniqueListeners = len(lo.UniqBy(windowed, func(p core.PlayEvent) string {
		return core.AddressKey(p.Listener)
	}))

	var sum int64
	for _, p := range windowed {
		sum += p.Timestamp
	}
	avg := float64(sum) / float64(len(windowed))
	score.RecencyBoost = (avg - float64(windowStart)) / float64(window.Milliseconds()) * recencyScale

	score.Score = playWeight*float64(score.PlayCount) +
		listenerWeight*float64(score.UniqueListeners) +
		score.RecencyBoost
	return score
}
