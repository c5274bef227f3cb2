package ports

import (
	"context"
	"testing"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	t.Helper()
	ctx := context.Background()
	tf := domain.NewTargetFramework("net8.0")

	newSnapshot := func(t *testing.T, ids ...string) *snapshot.Snapshot {
		world := snapshot.NewWorldBuilder()
		top := snapshot.NewTopLevelBuilder()
		for _, id := range ids {
			d := domain.Dependency{ID: id, TopLevel: true}
			world.Set(d)
			top.Add(d)
		}
		snap, err := snapshot.Freeze("/src/contract.csproj", tf, world, top)
		require.NoError(t, err)
		return snap
	}

	t.Run("Save and Load", func(t *testing.T) {
		snap := newSnapshot(t, "a", "b")
		require.NoError(t, store.Save(ctx, "contract-save", snap))

		loaded, err := store.Load(ctx, "contract-save")
		require.NoError(t, err)
		assert.Equal(t, snap.View(), loaded.View())
	})

	t.Run("Save replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract-replace", newSnapshot(t, "a")))
		require.NoError(t, store.Save(ctx, "contract-replace", newSnapshot(t, "b", "c")))

		loaded, err := store.Load(ctx, "contract-replace")
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Len())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "contract-missing")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract-delete", newSnapshot(t, "a")))
		require.NoError(t, store.Delete(ctx, "contract-delete"))

		_, err := store.Load(ctx, "contract-delete")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")

		assert.NoError(t, store.Delete(ctx, "contract-delete"), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "contract-list-1", newSnapshot(t)))
		require.NoError(t, store.Save(ctx, "contract-list-2", newSnapshot(t)))

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, "contract-list-1")
		assert.Contains(t, keys, "contract-list-2")
	})
}
