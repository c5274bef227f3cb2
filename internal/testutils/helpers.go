package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/depsnap/pkg/dsl"
	"github.com/aretw0/depsnap/pkg/snapshot"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// NewRedis starts an in-process Redis server and returns it with a connected client.
// Both are shut down when the test ends.
func NewRedis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// Snapshot freezes the nodes of b for projectPath.
// It fails the test immediately on error.
func Snapshot(t *testing.T, b *dsl.Builder, projectPath string) *snapshot.Snapshot {
	t.Helper()

	snap, err := b.Snapshot(projectPath)
	require.NoError(t, err, "Failed to build snapshot")
	return snap
}
