package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chronicle-cli/chronicle/internal/models"
)

// GenerateLifeStory builds the long-form story document: a timeline grouped
// by month, people and tag indexes, highlights and an appendix index.
func GenerateLifeStory(entries []*models.Entry, processedPath string) (string, error) {
	var lines []string
	lines = append(lines, "# My Chronicle", "")

	if len(entries) == 0 {
		lines = append(lines, "No entries found in the specified range.")
		return strings.Join(lines, "\n"), nil
	}

	categories, err := loadCategories(processedPath)
	if err != nil {
		return "", err
	}
	useCategories := hasCategories(entries, categories)

	lines = append(lines, "## Timeline", "")
	byMonth := map[string][]*models.Entry{}
	for _, e := range entries {
		key := e.Timestamp.Format("2006-01")
		byMonth[key] = append(byMonth[key], e)
	}
	months := make([]string, 0, len(byMonth))
	for key := range byMonth {
		months = append(months, key)
	}
	sort.Strings(months)
	for _, month := range months {
		lines = append(lines, "### "+month)
		for _, e := range byMonth[month] {
			label := e.Type
			if useCategories && len(categories[e.ID]) > 0 {
				label = strings.Join(categories[e.ID], ", ")
			}
			lines = append(lines, fmt.Sprintf("- [%s] %s", label, firstBodyLine(e, 80)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## Key People", "")
	people := countValues(entries, func(e *models.Entry) []string { return e.People })
	if len(people) == 0 {
		lines = append(lines, "No people mentioned.")
	}
	for _, c := range topN(people, 0) {
		lines = append(lines, fmt.Sprintf("- **%s**: %d mention(s)", c.name, c.count))
	}
	lines = append(lines, "")

	lines = append(lines, "## Themes & Tags", "")
	tags := countValues(entries, func(e *models.Entry) []string { return e.Tags })
	if len(tags) == 0 {
		lines = append(lines, "No tags found.")
	}
	for _, c := range topN(tags, 0) {
		lines = append(lines, fmt.Sprintf("- **%s**: %d", c.name, c.count))
	}
	lines = append(lines, "")

	lines = append(lines, "## Highlights", "")
	type highlight struct {
		heading string
		entries []*models.Entry
	}
	var highlights []highlight
	if useCategories {
		highlights = []highlight{
			{"### Wins", byCategory(entries, categories, "win")},
			{"### Decisions Needed", byCategory(entries, categories, "decision_needed")},
			{"### Blocks", byCategory(entries, categories, "block")},
			{"### Lessons Learned", byCategory(entries, categories, "lesson_learned")},
		}
	} else {
		highlights = []highlight{
			{"### Wins", byType(entries, "win")},
			{"### Decisions", byType(entries, "decision")},
			{"### Recurring Blocks", byType(entries, "block")},
		}
	}
	for _, h := range highlights {
		if len(h.entries) == 0 {
			continue
		}
		lines = append(lines, h.heading)
		for _, e := range h.entries {
			lines = append(lines, fmt.Sprintf("- %s: %s",
				e.Timestamp.Format("2006-01-02"), firstBodyLine(e, 0)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## Appendix: Entry Index", "")
	lines = append(lines, "| ID | Date | Type | Tags |")
	lines = append(lines, "|---|---|---|---|")
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s |",
			e.ID, e.Timestamp.Format("2006-01-02"), e.Type, strings.Join(e.Tags, ", ")))
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n"), nil
}

func byType(entries []*models.Entry, entryType string) []*models.Entry {
	var matched []*models.Entry
	for _, e := range entries {
		if e.Type == entryType {
			matched = append(matched, e)
		}
	}
	return matched
}
