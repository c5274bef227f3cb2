package ports

import (
	"context"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// Engine is the driving port served by the transport adapters (HTTP, MCP).
type Engine interface {
	Apply(ctx context.Context, projectPath string, tf domain.TargetFramework, changes domain.Changes) (*snapshot.Snapshot, error)
	Snapshot(ctx context.Context, projectPath string, tf domain.TargetFramework) (*snapshot.Snapshot, error)
	Forget(ctx context.Context, projectPath string, tf domain.TargetFramework) error
	Keys(ctx context.Context) ([]string, error)
	Filters() []string
}
