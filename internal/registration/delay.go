package registration

import (
	"math"
	"time"
)

// DefaultMargin is how long before the lease deadline a heartbeat is sent.
const DefaultMargin = 5 * time.Second

// maxDelaySeconds is the largest wait a time.Duration can hold
var maxDelaySeconds = float64(math.MaxInt64) / float64(time.Second)

// HeartbeatDelay returns how long to wait before the next heartbeat:
// refreshBefore - now - margin, with now truncated to whole seconds and the
// result clamped to zero. refreshBefore is a unix timestamp in seconds.
// Deadlines beyond the range of time.Duration saturate at its maximum.
func HeartbeatDelay(refreshBefore float64, now time.Time, margin time.Duration) time.Duration {
	seconds := refreshBefore - float64(now.Unix()) - margin.Seconds()
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	// преобразование float -> int64 вне диапазона дает MinInt64
	if seconds >= maxDelaySeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}
