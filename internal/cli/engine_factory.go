package cli

import (
	"log/slog"

	"github.com/aretw0/depsnap"
	"github.com/aretw0/depsnap/pkg/adapters/file"
	"github.com/aretw0/depsnap/pkg/adapters/redis"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/registry"
	backend "github.com/redis/go-redis/v9"
)

// Engine is a configured engine plus the resources it holds open.
type Engine struct {
	*depsnap.Engine
	closers []func() error
}

// Close releases backend connections.
func (e *Engine) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CreateEngine initializes an engine with standard CLI conventions.
func CreateEngine(opts Options, logger *slog.Logger, hooks domain.LifecycleHooks) (*Engine, error) {
	// 1. Filters
	chain, err := registry.Default().Build(opts.Filters...)
	if err != nil {
		return nil, err
	}

	engineOpts := []depsnap.Option{
		depsnap.WithFilters(chain...),
		depsnap.WithLogger(logger),
		depsnap.WithLifecycleHooks(hooks),
		depsnap.WithLockTTL(opts.LockTTL),
	}
	eng := &Engine{}

	// 2. Storage
	switch {
	case opts.RedisAddr != "":
		prefix := opts.RedisPrefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		client := backend.NewClient(&backend.Options{Addr: opts.RedisAddr})
		eng.closers = append(eng.closers, client.Close)
		engineOpts = append(engineOpts,
			depsnap.WithStore(redis.NewStore(client, redis.WithPrefix(prefix))),
			depsnap.WithLocker(redis.NewLocker(client, prefix)),
		)
		logger.Debug("Using redis store", "addr", opts.RedisAddr, "prefix", prefix)
	case opts.StateDir != "":
		engineOpts = append(engineOpts, depsnap.WithStore(file.NewStore(opts.StateDir)))
		logger.Debug("Using file store", "dir", opts.StateDir)
	}

	// 3. Initialize
	eng.Engine = depsnap.New(engineOpts...)
	return eng, nil
}
