package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chronicle-cli/chronicle/internal/ai"
	"github.com/chronicle-cli/chronicle/internal/models"
)

// GenerateWeeklyBrief builds the weekly brief for entries in the given date
// range. When processedPath names an existing AI index the brief groups
// entries by category, otherwise it lists them flat.
func GenerateWeeklyBrief(entries []*models.Entry, start, end time.Time, processedPath string) (string, error) {
	categories, err := loadCategories(processedPath)
	if err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("# Weekly Brief: %s to %s",
		start.Format("2006-01-02"), end.Format("2006-01-02")))
	lines = append(lines, "")

	lines = append(lines, "## Summary")
	if len(entries) > 0 {
		lines = append(lines, fmt.Sprintf("- %d entries this week", len(entries)))
	} else {
		lines = append(lines, "No entries this week.")
	}
	lines = append(lines, "")

	if hasCategories(entries, categories) {
		for _, section := range []struct {
			heading  string
			category string
		}{
			{"## Wins", "win"},
			{"## Blocks", "block"},
			{"## Decisions Needed", "decision_needed"},
		} {
			lines = append(lines, section.heading)
			matched := byCategory(entries, categories, section.category)
			if len(matched) == 0 {
				lines = append(lines, "None this week.")
			}
			for _, e := range matched {
				lines = append(lines, "- "+firstBodyLine(e, 0))
			}
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, "## Entries")
		if len(entries) == 0 {
			lines = append(lines, "None this week.")
		}
		for _, e := range entries {
			lines = append(lines, fmt.Sprintf("- **[%s]** %s", e.Type, firstBodyLine(e, 0)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## People")
	people := countValues(entries, func(e *models.Entry) []string { return e.People })
	if len(people) == 0 {
		lines = append(lines, "None this week.")
	}
	for _, c := range topN(people, 10) {
		lines = append(lines, fmt.Sprintf("- %s: %d mention(s)", c.name, c.count))
	}
	lines = append(lines, "")

	lines = append(lines, "## Tags")
	tags := countValues(entries, func(e *models.Entry) []string { return e.Tags })
	if len(tags) == 0 {
		lines = append(lines, "None this week.")
	}
	for _, c := range topN(tags, 10) {
		lines = append(lines, fmt.Sprintf("- %s: %d", c.name, c.count))
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n"), nil
}

// loadCategories reads the AI index and keeps only the category lists.
// An empty path or a missing file yields an empty map.
func loadCategories(processedPath string) (map[string][]string, error) {
	if processedPath == "" {
		return map[string][]string{}, nil
	}
	processed, err := ai.LoadProcessed(processedPath)
	if err != nil {
		return nil, err
	}
	categories := make(map[string][]string, len(processed))
	for id, data := range processed {
		categories[id] = data.Categories
	}
	return categories, nil
}

func hasCategories(entries []*models.Entry, categories map[string][]string) bool {
	for _, e := range entries {
		if len(categories[e.ID]) > 0 {
			return true
		}
	}
	return false
}

func byCategory(entries []*models.Entry, categories map[string][]string, cat string) []*models.Entry {
	var matched []*models.Entry
	for _, e := range entries {
		for _, c := range categories[e.ID] {
			if c == cat {
				matched = append(matched, e)
				break
			}
		}
	}
	return matched
}

// firstBodyLine returns the first line of the body, truncated to max bytes
// when max is positive. Entries without a body render as "(no body)".
func firstBodyLine(e *models.Entry, max int) string {
	if e.Body == "" {
		return "(no body)"
	}
	line, _, _ := strings.Cut(e.Body, "\n")
	if max > 0 && len(line) > max {
		line = line[:max]
	}
	return line
}

type nameCount struct {
	name  string
	count int
}

func countValues(entries []*models.Entry, values func(*models.Entry) []string) map[string]int {
	counts := map[string]int{}
	for _, e := range entries {
		for _, v := range values(e) {
			counts[v]++
		}
	}
	return counts
}

// topN returns the n highest counts, ties broken alphabetically. n <= 0
// means all.
func topN(counts map[string]int, n int) []nameCount {
	out := make([]nameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, nameCount{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
