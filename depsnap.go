package depsnap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/depsnap/internal/logging"
	"github.com/aretw0/depsnap/internal/runtime"
	"github.com/aretw0/depsnap/pkg/adapters/memory"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/filters"
	"github.com/aretw0/depsnap/pkg/ports"
	"github.com/aretw0/depsnap/pkg/session"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// Engine is the high-level entry point of the library.
// It keeps one snapshot per project and target framework and serializes
// updates to each of them.
type Engine struct {
	pipeline *runtime.Pipeline
	manager  *session.Manager

	filters []filters.Filter
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	store   ports.SnapshotStore
	locker  ports.DistributedLocker
	lockTTL time.Duration
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithFilters replaces the default filter chain. Filters run in the given order.
func WithFilters(chain ...filters.Filter) Option {
	return func(e *Engine) {
		e.filters = chain
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore injects a snapshot store. Defaults to an in-memory store.
func WithStore(store ports.SnapshotStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking around each update.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLockTTL sets the distributed lock TTL (default session.DefaultLockTTL).
func WithLockTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.lockTTL = ttl
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{filters: filters.Default()}
	for _, opt := range opts {
		opt(eng)
	}

	// Fill defaults left unset by options
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	eng.pipeline = runtime.NewPipeline(
		runtime.WithFilters(eng.filters...),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)

	managerOpts := []session.Option{session.WithLogger(eng.logger), session.WithLockTTL(eng.lockTTL)}
	if eng.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(eng.locker))
	}
	eng.manager = session.NewManager(eng.store, managerOpts...)

	return eng
}

// Apply runs changes through the filter chain against the current snapshot of
// projectPath and tf and stores the result. On error nothing is stored.
func (e *Engine) Apply(ctx context.Context, projectPath string, tf domain.TargetFramework, changes domain.Changes) (*snapshot.Snapshot, error) {
	key := session.Key(projectPath, tf)
	next, err := e.manager.Update(ctx, key, func(ctx context.Context, current *snapshot.Snapshot) (*snapshot.Snapshot, error) {
		return e.pipeline.Apply(ctx, projectPath, tf, current, changes)
	})
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", key, err)
	}
	return next, nil
}

// Snapshot returns the current snapshot, or domain.ErrSnapshotNotFound if
// projectPath and tf were never updated.
func (e *Engine) Snapshot(ctx context.Context, projectPath string, tf domain.TargetFramework) (*snapshot.Snapshot, error) {
	return e.manager.Load(ctx, session.Key(projectPath, tf))
}

// Forget drops the snapshot of projectPath and tf.
func (e *Engine) Forget(ctx context.Context, projectPath string, tf domain.TargetFramework) error {
	return e.manager.Delete(ctx, session.Key(projectPath, tf))
}

// Keys lists the stored snapshot keys ("{projectPath}|{moniker}").
func (e *Engine) Keys(ctx context.Context) ([]string, error) {
	return e.manager.List(ctx)
}

// Filters returns the names of the configured filters in execution order.
func (e *Engine) Filters() []string {
	names := make([]string, 0, len(e.filters))
	for _, f := range e.filters {
		names = append(names, f.Name())
	}
	return names
}
