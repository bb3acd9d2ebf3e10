package logbook

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicle-cli/chronicle/internal/models"
)

const sampleLog = `@entry 20260101-1200-ab12 2026-01-01T12:00:00+00:00 win [coding,python] [people:Alice]
Finished the first module of the project.
@end

@entry 20260115-0900-cd34 2026-01-15T09:00:00+00:00 decision [career] [people:Bob] [review:2026-04-15]
Decided to switch to the new framework.
@end
`

func TestParse_SampleLog(t *testing.T) {
	entries, err := Parse(sampleLog)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	e := entries[0]
	assert.Equal(t, "20260101-1200-ab12", e.ID)
	assert.Equal(t, "win", e.Type)
	assert.Equal(t, []string{"coding", "python"}, e.Tags)
	assert.Equal(t, []string{"Alice"}, e.People)
	assert.Equal(t, "Finished the first module of the project.", e.Body)
	assert.True(t, e.Timestamp.Equal(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Nil(t, e.ReviewDate)
	assert.Empty(t, e.Ref)

	d := entries[1]
	require.NotNil(t, d.ReviewDate)
	assert.Equal(t, "2026-04-15", d.ReviewDate.Format("2006-01-02"))
}

func TestParse_EmptyInput(t *testing.T) {
	entries, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_LinesOutsideEntriesIgnored(t *testing.T) {
	text := "stray prose\n\n" + sampleLog + "\ntrailing noise\n"
	entries, err := Parse(text)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestParse_BodyBlankLineHandling(t *testing.T) {
	text := "@entry 20260101-1200-ab12 2026-01-01T12:00:00Z entry\n" +
		"\n" +
		"first paragraph\n" +
		"\n" +
		"second paragraph\n" +
		"\n" +
		"@end\n"
	entries, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// Leading/trailing blank lines stripped, interior blank preserved.
	assert.Equal(t, "first paragraph\n\nsecond paragraph", entries[0].Body)
}

func TestParse_MissingEndBeforeNewEntry(t *testing.T) {
	text := "@entry a1 2026-01-01T12:00:00Z entry\nbody\n" +
		"@entry a2 2026-01-01T12:01:00Z entry\nbody\n@end\n"
	_, err := Parse(text)
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 3, serr.Line)
	assert.Contains(t, serr.Msg, "missing @end")
}

func TestParse_StrayEndMarker(t *testing.T) {
	_, err := Parse("@end\n")
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Line)
	assert.Contains(t, serr.Msg, "@end without matching @entry")
}

func TestParse_UnclosedEntryAtEOF(t *testing.T) {
	_, err := Parse("@entry a1 2026-01-01T12:00:00Z entry\nbody\n")
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Msg, "unclosed @entry")
}

func TestParse_InvalidTimestampNamesOffender(t *testing.T) {
	_, err := Parse("@entry a1 not-a-time entry\n@end\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"not-a-time"`)
}

func TestParseHeader_TooFewTokens(t *testing.T) {
	_, serr := ParseHeader("@entry onlyid 2026-01-01T12:00:00Z", 7)
	require.NotNil(t, serr)
	assert.Equal(t, 7, serr.Line)
	assert.Contains(t, serr.Msg, "id, timestamp, and type")
}

func TestParseHeader_BracketFields(t *testing.T) {
	e, serr := ParseHeader(
		"@entry a1 2026-01-01T12:00:00Z note [a, b, ,c] [people:Alice, Bob] [review:2026-04-15] [ref:prev-01]", 1)
	require.Nil(t, serr)
	assert.Equal(t, []string{"a", "b", "c"}, e.Tags)
	assert.Equal(t, []string{"Alice", "Bob"}, e.People)
	require.NotNil(t, e.ReviewDate)
	assert.Equal(t, "2026-04-15", e.ReviewDate.Format("2006-01-02"))
	assert.Equal(t, "prev-01", e.Ref)
}

func TestParseHeader_BracketOrderIrrelevant(t *testing.T) {
	e, serr := ParseHeader("@entry a1 2026-01-01T12:00:00Z note [ref:x] [tagged]", 1)
	require.Nil(t, serr)
	assert.Equal(t, "x", e.Ref)
	assert.Equal(t, []string{"tagged"}, e.Tags)
}

// Multiple un-prefixed bracket groups each overwrite the tags list; the last
// one wins. Historical on-disk behavior, kept for compatibility.
func TestParseHeader_MultipleTagGroupsLastWins(t *testing.T) {
	e, serr := ParseHeader("@entry a1 2026-01-01T12:00:00Z note [first,one] [second,two]", 1)
	require.Nil(t, serr)
	assert.Equal(t, []string{"second", "two"}, e.Tags)
}

// An unrecognized prefix falls through to the tags branch, raw prefix and all.
func TestParseHeader_UnknownPrefixBecomesTags(t *testing.T) {
	e, serr := ParseHeader("@entry a1 2026-01-01T12:00:00Z note [mood:happy]", 1)
	require.Nil(t, serr)
	assert.Equal(t, []string{"mood:happy"}, e.Tags)
}

func TestParseHeader_InvalidReviewDate(t *testing.T) {
	_, serr := ParseHeader("@entry a1 2026-01-01T12:00:00Z note [review:April-15]", 3)
	require.NotNil(t, serr)
	assert.Contains(t, serr.Msg, "invalid review date")
}

func TestParseHeader_TimestampWithoutOffset(t *testing.T) {
	e, serr := ParseHeader("@entry a1 2026-01-01T12:00:00 note", 1)
	require.Nil(t, serr)
	assert.True(t, e.Timestamp.Equal(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestParse_LargeBody(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("@entry a1 2026-01-01T12:00:00Z entry\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "Line %d\n", i)
	}
	sb.WriteString("@end\n")

	entries, err := Parse(sb.String())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 499, strings.Count(entries[0].Body, "\n"))
}

func TestParse_UnicodeBody(t *testing.T) {
	body := "Today was great! \U0001F389\nJapanese: 日本語\nArabic: مرحبا"
	e := &models.Entry{ID: "a1", Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), Type: "entry", Body: body}
	entries, err := Parse(Format(e) + "\n")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, body, entries[0].Body)
}
