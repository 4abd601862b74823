// Package vault uploads fixture database snapshots to a configured sink so
// prepared databases can be shared between machines and CI jobs.
package vault

import (
	"context"
	"io"
)

// Sink stores named fixture snapshots.
type Sink interface {
	// PutSnapshot stores size bytes from r under the given name,
	// replacing any previous snapshot with the same name.
	PutSnapshot(ctx context.Context, name string, r io.Reader, size int64) error
}
