package logbook

import (
	"os"
	"strings"

	"github.com/chronicle-cli/chronicle/internal/models"
)

// Parse converts a full chronicle log text into its ordered entry sequence.
// The first structural anomaly aborts the parse with a *StructuralError.
func Parse(text string) ([]*models.Entry, error) {
	entries := []*models.Entry{}
	var current *models.Entry
	var body []string
	var failure *StructuralError

	scan(text, func(ev scanEvent) bool {
		switch ev.kind {
		case eventOpen:
			current = ev.header
			body = body[:0]
		case eventNestedOpen:
			failure = structuralErrorf(ev.line, "missing %s before new %s", EndMarker, EntryMarker)
		case eventHeaderError:
			failure = ev.err
		case eventBody:
			body = append(body, ev.text)
		case eventClose:
			current.Body = trimBlankEdges(body)
			entries = append(entries, current)
			current = nil
		case eventStrayEnd:
			failure = structuralErrorf(ev.line, "%s without matching %s", EndMarker, EntryMarker)
		case eventUnclosed:
			failure = structuralErrorf(0, "unclosed %s at end of file", EntryMarker)
		}
		return failure == nil
	})

	if failure != nil {
		return nil, failure
	}
	return entries, nil
}

// ParseFile parses a chronicle log file.
func ParseFile(path string) ([]*models.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// trimBlankEdges joins body lines, dropping leading and trailing entirely
// blank lines while keeping interior blanks verbatim.
func trimBlankEdges(lines []string) string {
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
