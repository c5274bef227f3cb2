package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/depsnap/internal/logging"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/filters"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// Pipeline turns a snapshot and a batch of changes into the next snapshot by
// running every change through the filter chain.
type Pipeline struct {
	filters []filters.Filter
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	now     func() time.Time
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithFilters replaces the filter chain. Filters run in the given order.
func WithFilters(chain ...filters.Filter) PipelineOption {
	return func(p *Pipeline) {
		p.filters = chain
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) PipelineOption {
	return func(p *Pipeline) {
		p.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a pipeline running filters.Default unless WithFilters is given.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		filters: filters.Default(),
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Filters returns the chain in execution order.
func (p *Pipeline) Filters() []filters.Filter {
	return append([]filters.Filter(nil), p.filters...)
}

// Apply computes the snapshot following previous once changes are applied.
// previous may be nil and is never mutated. Removals run before additions.
func (p *Pipeline) Apply(ctx context.Context, projectPath string, tf domain.TargetFramework, previous *snapshot.Snapshot, changes domain.Changes) (*snapshot.Snapshot, error) {
	start := p.now()
	if previous == nil {
		previous = snapshot.Empty(projectPath, tf)
	}
	world, topLevel := previous.Builders()

	next, err := p.apply(ctx, projectPath, tf, world, topLevel, changes)
	p.emitCommit(ctx, projectPath, tf, changes, world, topLevel, p.now().Sub(start), err)
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (p *Pipeline) apply(ctx context.Context, projectPath string, tf domain.TargetFramework, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder, changes domain.Changes) (*snapshot.Snapshot, error) {
	for _, id := range changes.RemovedIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dep, ok := world.Get(id)
		if !ok {
			p.logger.Debug("Skipping removal of unknown dependency", "project", projectPath, "dependency", id)
			continue
		}
		for _, f := range p.filters {
			before := revision(world, topLevel)
			err := f.BeforeRemove(projectPath, tf, dep, world, topLevel)
			p.emitFilter(ctx, projectPath, tf, f, domain.OperationBeforeRemove, id, before != revision(world, topLevel), err)
			if err != nil {
				return nil, fmt.Errorf("filter %s: %s %q: %w", f.Name(), domain.OperationBeforeRemove, id, err)
			}
		}
		world.Remove(id)
		topLevel.RemoveID(id)
	}

	for _, dep := range changes.Added {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dep.ID == "" {
			return nil, fmt.Errorf("%w: %q", domain.ErrEmptyDependencyID, dep.Name)
		}
		current := dep
		for _, f := range p.filters {
			before := revision(world, topLevel)
			result, err := f.BeforeAdd(projectPath, tf, current, world, topLevel)
			changed := before != revision(world, topLevel) || (err == nil && !result.Equal(current))
			p.emitFilter(ctx, projectPath, tf, f, domain.OperationBeforeAdd, dep.ID, changed, err)
			if err != nil {
				return nil, fmt.Errorf("filter %s: %s %q: %w", f.Name(), domain.OperationBeforeAdd, dep.ID, err)
			}
			current = result
		}
		world.Set(current)
		topLevel.RemoveID(current.ID)
		if current.TopLevel && !current.Hidden {
			topLevel.Add(current)
		}
	}

	return snapshot.Freeze(projectPath, tf, world, topLevel)
}

func revision(world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) [2]uint64 {
	return [2]uint64{world.Revision(), topLevel.Revision()}
}

func (p *Pipeline) base(projectPath string, tf domain.TargetFramework) domain.EventBase {
	return domain.EventBase{
		Timestamp:       p.now(),
		ProjectPath:     projectPath,
		TargetFramework: tf.Moniker,
	}
}

func (p *Pipeline) emitFilter(ctx context.Context, projectPath string, tf domain.TargetFramework, f filters.Filter, op domain.Operation, id string, changed bool, err error) {
	if err != nil {
		p.logger.Error("Filter failed", "filter", f.Name(), "operation", op, "dependency", id, "err", err)
	} else if changed {
		p.logger.Debug("Filter rewrote dependency state", "filter", f.Name(), "operation", op, "dependency", id)
	}
	if p.hooks.OnFilter == nil {
		return
	}
	p.hooks.OnFilter(ctx, &domain.FilterEvent{
		EventBase:    p.base(projectPath, tf),
		Filter:       f.Name(),
		Operation:    op,
		DependencyID: id,
		Changed:      changed,
		Err:          err,
	})
}

func (p *Pipeline) emitCommit(ctx context.Context, projectPath string, tf domain.TargetFramework, changes domain.Changes, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder, elapsed time.Duration, err error) {
	if err == nil {
		p.logger.Debug("Snapshot updated",
			"project", projectPath,
			"target_framework", tf.Moniker,
			"added", len(changes.Added),
			"removed", len(changes.RemovedIDs),
			"world", world.Len(),
			"top_level", topLevel.Len(),
		)
	}
	if p.hooks.OnCommit == nil {
		return
	}
	p.hooks.OnCommit(ctx, &domain.CommitEvent{
		EventBase:    p.base(projectPath, tf),
		Added:        len(changes.Added),
		Removed:      len(changes.RemovedIDs),
		WorldSize:    world.Len(),
		TopLevelSize: topLevel.Len(),
		Duration:     elapsed,
		Err:          err,
	})
}
