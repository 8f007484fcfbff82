package cache

import (
	"context"

	"postMint/internal/storage/postgres"
)

// DBStore stores entries in the cache_entries table.
type DBStore struct {
	Store *postgres.Store
}

func (s *DBStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.Store == nil {
		return "", false, nil
	}
	return s.Store.LoadEntry(ctx, key)
}

func (s *DBStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.Store == nil {
		return nil
	}
	return s.Store.SaveEntry(ctx, key, value)
}

var _ Store = (*DBStore)(nil)
