// Package clock provides the timestamp source used by both repository backends.
package clock

import "time"

// Now returns the current time in UTC truncated to microseconds, the
// precision every supported store can hold without rounding.
func Now() time.Time {
	return Normalize(time.Now())
}

// Normalize converts t to UTC at microsecond precision.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
