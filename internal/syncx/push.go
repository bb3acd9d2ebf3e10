package syncx

import (
	"context"
	"strings"

	"github.com/chronicle-cli/chronicle/internal/cryptox"
	"github.com/chronicle-cli/chronicle/internal/logbook"
	"github.com/chronicle-cli/chronicle/internal/storage"
)

// Push encrypts every local entry as one token and overwrites the remote
// blob with the full set: call-and-forget full-state replication, with the
// backend's own history (Gist revisions, bucket versioning) as the only
// recovery path for superseded remote state. Remote-only entries written by
// another device since the last pull are lost; pull first on shared remotes.
//
// A missing or empty local log returns 0 without touching the remote.
// Returns the number of entries pushed.
func Push(ctx context.Context, backend Backend, key []byte, logPath string) (int, error) {
	entries, err := storage.ReadAll(logPath)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	tokens := make([]string, len(entries))
	for i, e := range entries {
		token, err := cryptox.Encrypt(logbook.Format(e), key)
		if err != nil {
			return 0, err
		}
		tokens[i] = token
	}

	if err := backend.Write(ctx, strings.Join(tokens, "\n")+"\n"); err != nil {
		return 0, err
	}
	return len(entries), nil
}
