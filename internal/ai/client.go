// Package ai sends journal entries to an LLM for categorization,
// spelling correction, insight generation and freeform Q&A.
package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when no Gemini API key is configured.
var ErrNoAPIKey = errors.New("no API key found; run 'chronicle add-key' or set the GEMINI_API_KEY environment variable")

// Completer produces a completion for a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}

// GeminiClient implements Completer over the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client for the given model. The API key must be
// non-empty.
func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Complete(ctx context.Context, system string, user string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned an empty response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
