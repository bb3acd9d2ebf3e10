package ai

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ProcessedEntry is the stored record of one processed entry.
type ProcessedEntry struct {
	Categories  []string  `json:"categories"`
	Summary     string    `json:"summary"`
	ProcessedAt time.Time `json:"processed_at"`
}

// LoadProcessed reads the processed index, returning an empty map when the
// file does not exist.
func LoadProcessed(path string) (map[string]ProcessedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]ProcessedEntry{}, nil
		}
		return nil, fmt.Errorf("reading processed index: %w", err)
	}
	processed := map[string]ProcessedEntry{}
	if err := json.Unmarshal(data, &processed); err != nil {
		return nil, fmt.Errorf("parsing processed index: %w", err)
	}
	return processed, nil
}

// SaveProcessed writes the processed index.
func SaveProcessed(processed map[string]ProcessedEntry, path string) error {
	data, err := json.MarshalIndent(processed, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding processed index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing processed index: %w", err)
	}
	return nil
}
