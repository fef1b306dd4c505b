package ledger

import "time"

// lastResetBoundary returns the most recent daily reset instant at or
// before now. The reset happens at a fixed UTC hour rather than at
// midnight, so "today" runs from one reset to the next.
func lastResetBoundary(now time.Time, resetHourUTC int) time.Time {
	now = now.UTC()
	b := time.Date(now.Year(), now.Month(), now.Day(), resetHourUTC, 0, 0, 0, time.UTC)
	if now.Before(b) {
		b = b.AddDate(0, 0, -1)
	}
	return b
}

// claimedWithin reports whether lastClaim falls on or after the boundary,
// i.e. the grant for the current window was already issued.
func claimedWithin(lastClaim *time.Time, boundary time.Time) bool {
	return lastClaim != nil && !lastClaim.Before(boundary)
}
