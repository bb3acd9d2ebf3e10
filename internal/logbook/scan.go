package logbook

import (
	"bufio"
	"regexp"
	"strings"
	"time"

	"github.com/chronicle-cli/chronicle/internal/models"
)

type eventKind int

const (
	// eventOpen: a header line opened a new entry while none was open.
	eventOpen eventKind = iota
	// eventNestedOpen: a header line appeared while an entry was still open.
	// The scanner reports it and then opens the new entry, so a collecting
	// consumer can keep walking the rest of the file.
	eventNestedOpen
	// eventHeaderError: a header line failed to parse. The entry is treated
	// as open (with no record) so subsequent lines frame correctly.
	eventHeaderError
	// eventBody: a verbatim body line inside an open entry.
	eventBody
	// eventClose: the end marker closed the open entry.
	eventClose
	// eventStrayEnd: an end marker with no open entry.
	eventStrayEnd
	// eventUnclosed: end of input with an entry still open.
	eventUnclosed
)

type scanEvent struct {
	kind     eventKind
	line     int            // line number of this event (0 for end-of-input)
	openedAt int            // line where the current entry opened (nested/unclosed)
	header   *models.Entry  // parsed header for open events, body empty
	err      *StructuralError
	text     string // body line text
}

// scan walks text line by line, emitting one event per structural step.
// The emit callback returns false to abort the walk.
func scan(text string, emit func(scanEvent) bool) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	open := false
	openedAt := 0

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()

		switch {
		case strings.HasPrefix(line, EntryMarker+" "):
			kind := eventOpen
			if open {
				kind = eventNestedOpen
			}
			header, err := ParseHeader(line, lineNum)
			if err != nil {
				if kind == eventNestedOpen {
					if !emit(scanEvent{kind: eventNestedOpen, line: lineNum, openedAt: openedAt}) {
						return
					}
				}
				open = true
				openedAt = lineNum
				if !emit(scanEvent{kind: eventHeaderError, line: lineNum, err: err}) {
					return
				}
				continue
			}
			ev := scanEvent{kind: kind, line: lineNum, header: header, openedAt: openedAt}
			open = true
			openedAt = lineNum
			if !emit(ev) {
				return
			}

		case line == EndMarker:
			if !open {
				if !emit(scanEvent{kind: eventStrayEnd, line: lineNum}) {
					return
				}
				continue
			}
			open = false
			if !emit(scanEvent{kind: eventClose, line: lineNum}) {
				return
			}

		default:
			if !open {
				continue // inter-entry whitespace or comments
			}
			if !emit(scanEvent{kind: eventBody, line: lineNum, text: line}) {
				return
			}
		}
	}

	if open {
		emit(scanEvent{kind: eventUnclosed, openedAt: openedAt})
	}
}

var bracketPattern = regexp.MustCompile(`\[[^\]]*\]`)

// timestampLayouts accepts ISO-8601 instants with an explicit offset and,
// for hand-edited logs, without one (interpreted as UTC).
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// ParseHeader parses an @entry header line into an Entry with an empty body.
//
// Bracket groups are extracted first; the remainder must carry at least three
// whitespace-separated tokens: id, timestamp and type, in that order. Groups
// with a people:/review:/ref: prefix fill the respective field; any other
// group is the comma-split tags list. When several un-prefixed groups appear
// on one header the last one wins, matching the historical on-disk behavior.
func ParseHeader(line string, lineNum int) (*models.Entry, *StructuralError) {
	if !strings.HasPrefix(line, EntryMarker+" ") {
		return nil, structuralErrorf(lineNum, "line does not start with %q", EntryMarker+" ")
	}
	rest := strings.TrimSpace(line[len(EntryMarker)+1:])

	brackets := bracketPattern.FindAllString(rest, -1)
	fields := strings.Fields(bracketPattern.ReplaceAllString(rest, ""))

	if len(fields) < 3 {
		return nil, structuralErrorf(lineNum, "header must have at least id, timestamp, and type")
	}

	ts, err := parseTimestamp(fields[1])
	if err != nil {
		return nil, structuralErrorf(lineNum, "invalid timestamp %q: %v", fields[1], err)
	}

	entry := &models.Entry{ID: fields[0], Timestamp: ts, Type: fields[2]}

	for _, group := range brackets {
		inner := group[1 : len(group)-1]
		switch {
		case strings.HasPrefix(inner, "people:"):
			entry.People = splitCommaList(inner[len("people:"):])
		case strings.HasPrefix(inner, "review:"):
			raw := strings.TrimSpace(inner[len("review:"):])
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, structuralErrorf(lineNum, "invalid review date %q", raw)
			}
			entry.ReviewDate = &d
		case strings.HasPrefix(inner, "ref:"):
			entry.Ref = strings.TrimSpace(inner[len("ref:"):])
		default:
			entry.Tags = splitCommaList(inner)
		}
	}

	return entry, nil
}

func splitCommaList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
