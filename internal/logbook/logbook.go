// Package logbook implements the chronicle log codec: parsing, structural
// validation and serialization of the @entry/@end plain-text format.
//
// The grammar is walked exactly once, by an event-driven scanner shared by
// Parse and Validate. Parse fails on the first structural anomaly; Validate
// collects every anomaly as a human-readable diagnostic and keeps scanning.
package logbook

import "fmt"

const (
	// EntryMarker opens an entry header line.
	EntryMarker = "@entry"
	// EndMarker closes the current entry on a line of its own.
	EndMarker = "@end"
)

// StructuralError is a fatal strict-parse failure: malformed header, too few
// header tokens, unclosed entry, stray end marker or a header opened while
// another entry is still open. Line is 1-based; 0 means end of input.
type StructuralError struct {
	Line int
	Msg  string
}

func (e *StructuralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func structuralErrorf(line int, format string, args ...any) *StructuralError {
	return &StructuralError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
