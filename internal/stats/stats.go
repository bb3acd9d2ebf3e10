// Package stats renders the categorized entry overview built from the
// AI-processed index.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chronicle-cli/chronicle/internal/ai"
	"github.com/chronicle-cli/chronicle/internal/models"
)

// categoryOrder fixes the display order of the category sections.
var categoryOrder = []string{"win", "decision_needed", "block", "failure", "lesson_learned"}

// CategoryLabels maps category identifiers to display headings.
var CategoryLabels = map[string]string{
	"win":             "Wins",
	"decision_needed": "Decisions Needed",
	"block":           "Blocks",
	"failure":         "Failures/Mistakes",
	"lesson_learned":  "Lessons Learned",
}

// Options filters the stats display. Zero time values mean unbounded;
// both boundary dates are inclusive.
type Options struct {
	Category string
	From     time.Time
	To       time.Time
}

type item struct {
	date    time.Time
	summary string
}

// Generate builds the categorized stats display from the processed index.
func Generate(entries []*models.Entry, processedPath string, opts Options) (string, error) {
	processed, err := ai.LoadProcessed(processedPath)
	if err != nil {
		return "", err
	}
	if len(processed) == 0 {
		return "No processed entries found. Run 'chronicle process' first.", nil
	}

	entryMap := make(map[string]*models.Entry, len(entries))
	for _, e := range entries {
		entryMap[e.ID] = e
	}

	byCategory := make(map[string][]item, len(categoryOrder))
	for id, data := range processed {
		e, ok := entryMap[id]
		if !ok {
			continue
		}
		date := dateOf(e.Timestamp.Local())
		if !opts.From.IsZero() && date.Before(dateOf(opts.From)) {
			continue
		}
		if !opts.To.IsZero() && date.After(dateOf(opts.To)) {
			continue
		}
		summary := data.Summary
		if summary == "" {
			summary = firstLine(e.Body, 60)
		}
		for _, cat := range data.Categories {
			if _, known := CategoryLabels[cat]; known {
				byCategory[cat] = append(byCategory[cat], item{date: date, summary: summary})
			}
		}
	}

	for _, items := range byCategory {
		sort.Slice(items, func(i, j int) bool {
			if !items[i].date.Equal(items[j].date) {
				return items[i].date.Before(items[j].date)
			}
			return items[i].summary < items[j].summary
		})
	}

	show := categoryOrder
	if _, known := CategoryLabels[opts.Category]; known {
		show = []string{opts.Category}
	}

	lines := []string{"=== Chronicle Stats ===", ""}
	for _, cat := range show {
		items := byCategory[cat]
		lines = append(lines, fmt.Sprintf("%s (%d):", CategoryLabels[cat], len(items)))
		if len(items) == 0 {
			lines = append(lines, "  (none)")
		}
		for _, it := range items {
			lines = append(lines, fmt.Sprintf("  %s  %s", it.date.Format("2006-01-02"), it.summary))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func firstLine(s string, max int) string {
	line, _, _ := strings.Cut(s, "\n")
	if len(line) > max {
		line = line[:max]
	}
	return line
}
