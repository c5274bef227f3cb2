package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/depsnap/pkg/adapters/memory"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/ports"
	"github.com/aretw0/depsnap/pkg/session"
	"github.com/aretw0/depsnap/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var tf = domain.NewTargetFramework("net8.0")

// SlowStore simulates latency to provoke lost updates if locking is missing.
type SlowStore struct {
	inner *memory.Store
}

func (s *SlowStore) Save(ctx context.Context, key string, snap *snapshot.Snapshot) error {
	time.Sleep(2 * time.Millisecond) // Simulate IO
	return s.inner.Save(ctx, key, snap)
}

func (s *SlowStore) Load(ctx context.Context, key string) (*snapshot.Snapshot, error) {
	time.Sleep(2 * time.Millisecond) // Simulate IO
	return s.inner.Load(ctx, key)
}

func (s *SlowStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

func addDependency(id string) session.UpdateFunc {
	return func(ctx context.Context, current *snapshot.Snapshot) (*snapshot.Snapshot, error) {
		if current == nil {
			current = snapshot.Empty("/src/app.csproj", tf)
		}
		world, top := current.Builders()
		world.Set(domain.Dependency{ID: id})
		return snapshot.Freeze(current.ProjectPath(), tf, world, top)
	}
}

func TestManager_UpdatesAreSerialized(t *testing.T) {
	manager := session.NewManager(&SlowStore{inner: memory.NewStore()})
	ctx := context.Background()
	key := session.Key("/src/app.csproj", tf)

	var wg sync.WaitGroup
	concurrentWrites := 10
	for i := 0; i < concurrentWrites; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			_, err := manager.Update(ctx, key, addDependency(fmt.Sprintf("dep-%d", val)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	snap, err := manager.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, concurrentWrites, snap.Len(), "no update may be lost")
}

func TestManager_FailedUpdateIsNotSaved(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()
	key := session.Key("/src/app.csproj", tf)

	_, err := manager.Update(ctx, key, addDependency("a"))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = manager.Update(ctx, key, func(ctx context.Context, current *snapshot.Snapshot) (*snapshot.Snapshot, error) {
		require.NotNil(t, current)
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	snap, err := manager.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())
}

func TestManager_LoadMissing(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	_, err := manager.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	args := m.Called(ctx, key, ttl)
	unlock, _ := args.Get(0).(ports.UnlockFunc)
	return unlock, args.Error(1)
}

func TestManager_DistributedLock(t *testing.T) {
	key := session.Key("/src/app.csproj", tf)

	unlocked := 0
	unlock := ports.UnlockFunc(func(ctx context.Context) error {
		unlocked++
		return errors.New("already expired")
	})
	locker := new(MockLocker)
	locker.On("Lock", mock.Anything, key, time.Second).Return(unlock, nil).Once()

	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Second))
	_, err := manager.Update(context.Background(), key, addDependency("a"))
	require.NoError(t, err, "unlock failures are logged, not returned")
	assert.Equal(t, 1, unlocked)
	locker.AssertExpectations(t)

	down := new(MockLocker)
	down.On("Lock", mock.Anything, key, mock.Anything).Return(nil, errors.New("down"))
	failing := session.NewManager(memory.NewStore(), session.WithLocker(down))
	_, err = failing.Update(context.Background(), key, addDependency("a"))
	assert.ErrorContains(t, err, "failed to acquire distributed lock")
	down.AssertNumberOfCalls(t, "Lock", 1)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "/src/app.csproj|net8.0", session.Key("/src/app.csproj", tf))
}

func TestKey_SeparatorInPath(t *testing.T) {
	// without escaping both would read "/src/a|b|net8.0"
	piped := session.Key("/src/a|b", tf)
	other := session.Key("/src/a", domain.NewTargetFramework("b|net8.0"))

	assert.Equal(t, "/src/a%7Cb|net8.0", piped)
	assert.NotEqual(t, piped, other)
	assert.NotEqual(t, session.Key("/src/a%7Cb", tf), piped, "a literal escape sequence is escaped too")
}
