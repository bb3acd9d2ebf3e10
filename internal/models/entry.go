// Package models defines the chronicle entry record and ID generation.
package models

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is a single journal record.
//
// ID is unique across the whole log and is the sole deduplication key during
// sync merges. Tags and People keep their insertion order for display, but
// order carries no identity. ReviewDate is a calendar date with no
// time-of-day component; a nil pointer means no review is scheduled. Ref
// optionally names another entry's ID and is not validated against existence.
type Entry struct {
	ID         string
	Timestamp  time.Time
	Type       string
	Tags       []string
	People     []string
	ReviewDate *time.Time
	Ref        string
	Body       string
}

// GenerateID builds an entry ID in the form YYYYMMDD-HHMM-<4 lowercase hex>,
// combining the given timestamp with a random suffix.
func GenerateID(ts time.Time) string {
	u := uuid.New()
	return fmt.Sprintf("%s-%s", ts.Format("20060102-1504"), hex.EncodeToString(u[:2]))
}

// Equal reports whether two entries carry identical data. Timestamps are
// compared as instants, so an entry round-tripped through serialization
// compares equal even when the offset representation changed.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.ID != other.ID || e.Type != other.Type || e.Ref != other.Ref || e.Body != other.Body {
		return false
	}
	if !e.Timestamp.Equal(other.Timestamp) {
		return false
	}
	if !stringsEqual(e.Tags, other.Tags) || !stringsEqual(e.People, other.People) {
		return false
	}
	if (e.ReviewDate == nil) != (other.ReviewDate == nil) {
		return false
	}
	if e.ReviewDate != nil && !e.ReviewDate.Equal(*other.ReviewDate) {
		return false
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
