package export

import (
	"time"

	"github.com/chronicle-cli/chronicle/internal/models"
)

// FilterByDate keeps entries whose local date falls inside [from, to],
// both boundaries inclusive. Zero time values mean unbounded.
func FilterByDate(entries []*models.Entry, from, to time.Time) []*models.Entry {
	var out []*models.Entry
	for _, e := range entries {
		date := truncateToDate(e.Timestamp.Local())
		if !from.IsZero() && date.Before(truncateToDate(from)) {
			continue
		}
		if !to.IsZero() && date.After(truncateToDate(to)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
