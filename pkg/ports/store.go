package ports

import (
	"context"

	"github.com/aretw0/silo/pkg/domain"
)

// SnapshotStore is the persistence boundary of the engine. Implementations
// own the snapshot encoding and the atomicity of the write (e.g. the file
// adapter writes to a temp file and renames); the engine never looks inside
// a serialized snapshot.
//
// The durable location (directory, server address, key prefix) is adapter
// construction state; Load and Save address a logical collection within it.
type SnapshotStore interface {
	// Load retrieves the snapshot for a collection.
	// Returns domain.ErrSnapshotNotFound if no prior snapshot exists.
	Load(ctx context.Context, collection string) (domain.Snapshot, error)

	// Save persists a full snapshot of the collection, replacing any
	// previous one.
	Save(ctx context.Context, collection string, snap domain.Snapshot) error
}
