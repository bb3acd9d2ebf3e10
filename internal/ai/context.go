package ai

import (
	"fmt"
	"strings"

	"github.com/chronicle-cli/chronicle/internal/models"
)

// FormatContext renders entries into a text block suitable as LLM context.
func FormatContext(entries []*models.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		header := fmt.Sprintf("[%s] (%s)", e.Timestamp.Format("2006-01-02 15:04"), e.Type)
		if len(e.Tags) > 0 {
			header += " tags: " + strings.Join(e.Tags, ", ")
		}
		if len(e.People) > 0 {
			header += " people: " + strings.Join(e.People, ", ")
		}
		parts = append(parts, header+"\n"+e.Body)
	}
	return strings.Join(parts, "\n\n---\n\n")
}
