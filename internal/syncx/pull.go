package syncx

import (
	"context"
	"fmt"
	"strings"

	"github.com/chronicle-cli/chronicle/internal/cryptox"
	"github.com/chronicle-cli/chronicle/internal/logbook"
	"github.com/chronicle-cli/chronicle/internal/models"
	"github.com/chronicle-cli/chronicle/internal/storage"
)

// Pull fetches the remote blob, decrypts every token, and appends to the
// local log each remote entry whose ID is not yet known, preserving remote
// order. Deduplication is by ID only; content is never compared, so the first
// version seen (local, or earliest in remote order) wins.
//
// A decryption failure on any token aborts the whole pull before anything is
// applied: silently dropping an undecryptable entry could hide data loss.
// Returns the number of entries appended; pulling twice in a row with no new
// remote content yields 0 the second time.
func Pull(ctx context.Context, backend Backend, key []byte, logPath string) (int, error) {
	remote, err := backend.Read(ctx)
	if err != nil {
		return 0, err
	}
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return 0, nil
	}

	var candidates []*models.Entry
	for _, line := range strings.Split(remote, "\n") {
		token := strings.TrimSpace(line)
		if token == "" || strings.HasPrefix(token, "#") {
			continue
		}
		plaintext, err := cryptox.Decrypt(token, key)
		if err != nil {
			return 0, fmt.Errorf("pull aborted: %w", err)
		}
		// A token normally carries one entry, but a full log document is
		// accepted too.
		entries, err := logbook.Parse(plaintext)
		if err != nil {
			return 0, fmt.Errorf("pull aborted: remote entry does not parse: %w", err)
		}
		candidates = append(candidates, entries...)
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	local, err := storage.ReadAll(logPath)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(local))
	for _, e := range local {
		known[e.ID] = true
	}

	added := 0
	for _, e := range candidates {
		if known[e.ID] {
			continue
		}
		if err := storage.Append(e, logPath); err != nil {
			return added, err
		}
		known[e.ID] = true
		added++
	}
	return added, nil
}
