package ports

import (
	"context"

	"github.com/aretw0/depsnap/pkg/snapshot"
)

// SnapshotStore keeps the latest snapshot per key.
// Snapshots are immutable, so implementations may hand out the stored pointer.
type SnapshotStore interface {
	// Save stores snap under key, replacing any previous snapshot.
	Save(ctx context.Context, key string, snap *snapshot.Snapshot) error

	// Load retrieves the snapshot stored under key.
	// Returns domain.ErrSnapshotNotFound if there is none.
	Load(ctx context.Context, key string) (*snapshot.Snapshot, error)

	// Delete removes the snapshot stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the stored keys.
	List(ctx context.Context) ([]string, error)
}
