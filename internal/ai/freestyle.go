package ai

import (
	"context"

	"github.com/chronicle-cli/chronicle/internal/models"
)

const freestyleSystemPrompt = `You are a helpful assistant with access to the user's personal journal entries. Use the journal entries provided as context to answer the user's question. Reference specific entries when relevant. If the journal entries don't contain enough information to fully answer, say so honestly.

Be empathetic, thoughtful, and concise.`

// FreestyleQuery answers a freeform question using journal entries as context.
func FreestyleQuery(ctx context.Context, c Completer, entries []*models.Entry, question string) (string, error) {
	user := "Here are my journal entries:\n\n" + FormatContext(entries) +
		"\n\nMy question: " + question
	return c.Complete(ctx, freestyleSystemPrompt, user)
}
