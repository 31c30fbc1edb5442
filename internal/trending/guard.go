package trending

import (
	"time"

	"tunelytics/internal/core"
)

// HasPlayedToday reports whether the (token, listener) pair already produced
// a play since local midnight of at's day. Callers use it to decide whether
// to record a new play at all; the scorer never re-applies it.
//
// "Local" is the process's local day, deliberately not normalized across
// listener time zones — this mirrors the platform's recording behavior.
func HasPlayedToday(plays []core.PlayEvent, tokenID int64, listener string, at time.Time) bool {
	year, month, day := at.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, at.Location()).UnixMilli()
	cutoff := at.UnixMilli()

	for _, play := range plays {
		if play.TokenID != tokenID || !core.SameAddress(play.Listener, listener) {
			continue
		}
		if play.Timestamp >= midnight && play.Timestamp <= cutoff {
			return true
		}
	}
	return false
}
