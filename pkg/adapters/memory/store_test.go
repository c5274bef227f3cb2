package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/depsnap/pkg/adapters/memory"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/ports"
	"github.com/aretw0/depsnap/pkg/snapshot"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSnapshotStoreContract(t, store)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	snap := snapshot.Empty("/src/app.csproj", domain.NewTargetFramework("net8.0"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, "shared", snap)
			_, _ = store.Load(ctx, "shared")
			_, _ = store.List(ctx)
		}()
	}
	wg.Wait()

	loaded, err := store.Load(ctx, "shared")
	assert.NoError(t, err)
	assert.Same(t, snap, loaded)
}
