package logbook

import (
	"strings"
	"time"

	"github.com/chronicle-cli/chronicle/internal/models"
)

// Format serializes an entry to its @entry/@end block, without a trailing
// newline. Bracket groups appear in the fixed order tags, people, review,
// ref, and empty fields are omitted, so Parse(Format(e)) reproduces e for any
// entry whose tags and people contain no commas.
func Format(e *models.Entry) string {
	header := []string{
		EntryMarker,
		e.ID,
		e.Timestamp.Format(time.RFC3339Nano),
		e.Type,
	}
	if len(e.Tags) > 0 {
		header = append(header, "["+strings.Join(e.Tags, ",")+"]")
	}
	if len(e.People) > 0 {
		header = append(header, "[people:"+strings.Join(e.People, ",")+"]")
	}
	if e.ReviewDate != nil {
		header = append(header, "[review:"+e.ReviewDate.Format("2006-01-02")+"]")
	}
	if e.Ref != "" {
		header = append(header, "[ref:"+e.Ref+"]")
	}

	lines := []string{strings.Join(header, " ")}
	if e.Body != "" {
		lines = append(lines, e.Body)
	}
	lines = append(lines, EndMarker)
	return strings.Join(lines, "\n")
}

// FormatAll serializes entries separated by cosmetic blank lines, with a
// trailing newline, matching the on-disk layout of the log file.
func FormatAll(entries []*models.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = Format(e)
	}
	return strings.Join(parts, "\n\n") + "\n"
}
