// Package syncx implements chronicle's encrypted sync: a pluggable remote
// blob store holding one encrypted token per line, an incremental
// dedup-merging pull and a full-replication push.
package syncx

import (
	"context"
	"errors"
)

// ErrBackend wraps transport or auth failures against the remote store.
// Callers match it with errors.Is; no retries happen below this layer.
var ErrBackend = errors.New("sync backend error")

// Backend is a remote blob store holding the encrypted sync content.
// Implementations are swappable (Gist, S3, Redis); the protocol only ever
// sees the three operations below.
//
// The single-writer assumption applies throughout: Append is read-modify-write
// and is not atomic against concurrent writers.
type Backend interface {
	// Read returns the full current remote content, or "" when nothing has
	// been stored yet. It fails only on genuine transport/auth errors, never
	// on "not found".
	Read(ctx context.Context) (string, error)

	// Write replaces the entire remote content.
	Write(ctx context.Context, content string) error

	// Append adds one line to the remote content, inserting a newline after
	// the existing content first when it lacks one.
	Append(ctx context.Context, line string) error
}

// appendLine implements the shared Append glue on top of Read and Write.
func appendLine(ctx context.Context, b Backend, line string) error {
	existing, err := b.Read(ctx)
	if err != nil {
		return err
	}
	switch {
	case existing == "":
		return b.Write(ctx, line+"\n")
	case existing[len(existing)-1] != '\n':
		return b.Write(ctx, existing+"\n"+line+"\n")
	default:
		return b.Write(ctx, existing+line+"\n")
	}
}
