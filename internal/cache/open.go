package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"postMint/internal/storage/postgres"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend string
	Path    string
	PGDSN   string
}

// Open builds the configured backend. The returned close func releases it.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Store, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	backend, err := ParseBackend(opts.Backend)
	if err != nil {
		return nil, nil, err
	}
	noop := func() {}

	switch backend {
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	case BackendFile:
		if opts.Path == "" {
			return nil, nil, fmt.Errorf("cache path is required for file backend")
		}
		return &FileStore{Path: opts.Path}, noop, nil
	case BackendBolt:
		store, err := OpenBoltStore(opts.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open bolt cache: %w", err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("close bolt cache", zap.Error(err))
			}
		}, nil
	case BackendPostgres:
		pg, err := postgres.NewStore(ctx, opts.PGDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return &DBStore{Store: pg}, pg.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown cache backend: %s", backend)
}
