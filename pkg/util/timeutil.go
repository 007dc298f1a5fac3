// Package util holds small time helpers shared across domains.
package util

import "time"

// NowUTC is the clock the services inject so tests can pin time.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// MidnightUTC truncates t to the start of its UTC calendar day. Plan
// workouts are keyed by day, not by instant.
func MidnightUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
