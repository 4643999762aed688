package usecase

import (
	"strings"
	"time"

	"task_backend/internal/shared/clock"
)

// deadlineLayouts are tried in order. Layouts without a zone are read as UTC.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDeadline accepts ISO 8601 date and date-time strings.
func parseDeadline(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return clock.Normalize(t), true
		}
	}
	return time.Time{}, false
}

// next7Days returns the rolling window from the start of today to the last
// millisecond of the seventh day ahead, in now's location.
func next7Days(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end = time.Date(y, m, d+7, 23, 59, 59, int(999*time.Millisecond), now.Location())
	return start, end
}
