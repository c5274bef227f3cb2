package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/depsnap/internal/logging"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/ports"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// Key returns the store key of the snapshot for projectPath and tf, "{path}|{moniker}".
// A "%" or "|" inside either part is percent-encoded so the separator stays unique.
func Key(projectPath string, tf domain.TargetFramework) string {
	return keyEscaper.Replace(projectPath) + "|" + keyEscaper.Replace(tf.Moniker)
}

var keyEscaper = strings.NewReplacer("%", "%25", "|", "%7C")

// UpdateFunc derives the next snapshot from the current one.
// current is nil when no snapshot exists yet.
type UpdateFunc func(ctx context.Context, current *snapshot.Snapshot) (*snapshot.Snapshot, error)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates snapshot access, ensuring updates to one key never interleave.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock TTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a new Manager over the given store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (m *Manager) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

// WithLock executes fn while holding the lock for key.
func (m *Manager) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, key, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Update loads the snapshot under key, passes it to fn and saves the result,
// all while holding the key's lock. Nothing is saved when fn fails.
func (m *Manager) Update(ctx context.Context, key string, fn UpdateFunc) (*snapshot.Snapshot, error) {
	var next *snapshot.Snapshot
	err := m.WithLock(ctx, key, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, key)
		if err != nil {
			if !errors.Is(err, domain.ErrSnapshotNotFound) {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}
			current = nil
		}

		next, err = fn(ctx, current)
		if err != nil {
			return err
		}

		if err := m.store.Save(ctx, key, next); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Load retrieves the snapshot under key.
func (m *Manager) Load(ctx context.Context, key string) (*snapshot.Snapshot, error) {
	var snap *snapshot.Snapshot
	err := m.WithLock(ctx, key, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, key)
		return err
	})
	return snap, err
}

// Delete removes the snapshot under key.
func (m *Manager) Delete(ctx context.Context, key string) error {
	return m.WithLock(ctx, key, func(ctx context.Context) error {
		return m.store.Delete(ctx, key)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}
