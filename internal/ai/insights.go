package ai

import (
	"context"

	"github.com/chronicle-cli/chronicle/internal/models"
)

const insightsSystemPrompt = `You are a personal journal analyst. The user will provide their journal entries and you will analyze them for patterns, themes, mood trends, and actionable observations.

Provide your analysis in clear sections:
- **Patterns & Themes**: Recurring topics or behaviors
- **Mood & Energy Trends**: Emotional trajectory over the period
- **Key Wins**: Notable accomplishments or positive moments
- **Blockers & Challenges**: Ongoing struggles or unresolved issues
- **Actionable Observations**: Concrete suggestions based on what you see

Be empathetic, insightful, and concise. Ground your observations in the actual entries, and do not invent details.`

// GenerateInsights analyzes journal entries and returns the model's report.
func GenerateInsights(ctx context.Context, c Completer, entries []*models.Entry) (string, error) {
	user := "Here are my journal entries:\n\n" + FormatContext(entries) +
		"\n\nPlease analyze these entries and provide your insights."
	return c.Complete(ctx, insightsSystemPrompt, user)
}
