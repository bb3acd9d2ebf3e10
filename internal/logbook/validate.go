package logbook

import "fmt"

// Validate walks the same grammar as Parse but never fails: every structural
// anomaly becomes a human-readable diagnostic and scanning continues, so one
// broken block does not hide problems later in the file. On top of the parse
// rules it reports duplicate entry IDs (each occurrence after the first).
//
// An empty result means the text is fully well-formed. The diagnostics are
// purely advisory; the caller decides how to report them and with what exit
// status.
func Validate(text string) []string {
	diags := []string{}
	seen := map[string]bool{}

	scan(text, func(ev scanEvent) bool {
		switch ev.kind {
		case eventOpen, eventNestedOpen:
			if ev.kind == eventNestedOpen {
				diags = append(diags, fmt.Sprintf(
					"Line %d: %s without closing %s (opened at line %d)",
					ev.line, EntryMarker, EndMarker, ev.openedAt))
			}
			if ev.header != nil {
				if seen[ev.header.ID] {
					diags = append(diags, fmt.Sprintf("Line %d: duplicate ID %q", ev.line, ev.header.ID))
				}
				seen[ev.header.ID] = true
			}
		case eventHeaderError:
			diags = append(diags, fmt.Sprintf("Line %d: %s", ev.line, ev.err.Msg))
		case eventStrayEnd:
			diags = append(diags, fmt.Sprintf("Line %d: %s without matching %s", ev.line, EndMarker, EntryMarker))
		case eventUnclosed:
			diags = append(diags, fmt.Sprintf("Line %d: unclosed %s at end of file", ev.openedAt, EntryMarker))
		}
		return true
	})

	return diags
}
