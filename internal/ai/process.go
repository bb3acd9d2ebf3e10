package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chronicle-cli/chronicle/internal/models"
)

// Categories an entry may be assigned during processing.
var Categories = []string{
	"win",
	"decision_needed",
	"block",
	"failure",
	"lesson_learned",
}

// BatchSize is the number of entries sent per request.
const BatchSize = 20

const processSystemPrompt = `You are a journal entry processor. For each entry provided, you must:
1. Categorize it into zero or more of these categories: win, decision_needed, block, failure, lesson_learned
2. Write a short one-line summary (max 80 chars)
3. Fix any spelling and grammar mistakes in the body text. Keep the meaning and tone identical.

Respond with a JSON array (no markdown fences). Each element must have:
- "id": the entry ID (string)
- "categories": list of category strings (may be empty)
- "summary": one-line summary string
- "corrected_body": the body text with spelling/grammar fixed

Example response:
[{"id": "20260101-1200-ab12", "categories": ["win"], "summary": "Completed project milestone", "corrected_body": "Finished the first module of the project."}]
`

// Result is one processed entry as returned by the model.
type Result struct {
	ID            string   `json:"id"`
	Categories    []string `json:"categories"`
	Summary       string   `json:"summary"`
	CorrectedBody string   `json:"corrected_body"`
}

// Process sends entries to the model in batches and collects the results.
func Process(ctx context.Context, c Completer, entries []*models.Entry) ([]Result, error) {
	var results []Result
	for i := 0; i < len(entries); i += BatchSize {
		end := i + BatchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[i:end]

		resp, err := c.Complete(ctx, processSystemPrompt, buildBatchPrompt(batch))
		if err != nil {
			return nil, err
		}

		var parsed []Result
		if err := json.Unmarshal([]byte(stripFences(resp)), &parsed); err != nil {
			return nil, fmt.Errorf("parsing model response: %w", err)
		}
		results = append(results, parsed...)
	}
	return results, nil
}

func buildBatchPrompt(entries []*models.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("--- Entry ID: %s ---\n%s", e.ID, e.Body))
	}
	return strings.Join(parts, "\n\n")
}

// stripFences removes a surrounding markdown code fence, which models add
// despite instructions not to.
func stripFences(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = text[3:]
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
