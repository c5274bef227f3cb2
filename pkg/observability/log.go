package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/depsnap/pkg/domain"
)

// LogHooks returns lifecycle hooks that write an audit trail to logger.
// Filter calls that changed nothing are logged at debug level only.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFilter: func(ctx context.Context, e *domain.FilterEvent) {
			level := slog.LevelDebug
			if e.Err != nil {
				level = slog.LevelWarn
			} else if e.Changed {
				level = slog.LevelInfo
			}
			logger.Log(ctx, level, "filter",
				"project", e.ProjectPath,
				"target_framework", e.TargetFramework,
				"filter", e.Filter,
				"operation", e.Operation,
				"dependency", e.DependencyID,
				"changed", e.Changed,
				"error", e.Err,
			)
		},
		OnCommit: func(ctx context.Context, e *domain.CommitEvent) {
			level := slog.LevelInfo
			if e.Err != nil {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "commit",
				"project", e.ProjectPath,
				"target_framework", e.TargetFramework,
				"added", e.Added,
				"removed", e.Removed,
				"world", e.WorldSize,
				"top_level", e.TopLevelSize,
				"duration", e.Duration,
				"error", e.Err,
			)
		},
	}
}
