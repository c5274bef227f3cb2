package domain

import (
	"context"
	"time"
)

// Operation names the filter hook that ran.
type Operation string

const (
	OperationBeforeAdd    Operation = "before_add"
	OperationBeforeRemove Operation = "before_remove"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp       time.Time `json:"timestamp"`
	ProjectPath     string    `json:"project_path"`
	TargetFramework string    `json:"target_framework"`
}

// FilterEvent describes one filter invocation for one dependency.
type FilterEvent struct {
	EventBase
	Filter       string    `json:"filter"`
	Operation    Operation `json:"operation"`
	DependencyID string    `json:"dependency_id"`
	// Changed is true when the filter replaced the dependency or touched the builders.
	Changed bool  `json:"changed"`
	Err     error `json:"-"`
}

// CommitEvent describes the outcome of applying a batch of changes to a snapshot.
type CommitEvent struct {
	EventBase
	Added        int           `json:"added"`
	Removed      int           `json:"removed"`
	WorldSize    int           `json:"world_size"`
	TopLevelSize int           `json:"top_level_size"`
	Duration     time.Duration `json:"duration"`
	Err          error         `json:"-"`
}

// LifecycleHooks defines callbacks for pipeline observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnFilter func(context.Context, *FilterEvent)
	OnCommit func(context.Context, *CommitEvent)
}

// Merge returns hooks invoking h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnFilter: chainHook(h.OnFilter, other.OnFilter),
		OnCommit: chainHook(h.OnCommit, other.OnCommit),
	}
}

func chainHook[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
