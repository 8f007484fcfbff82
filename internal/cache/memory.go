package cache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process memory without expiry.
type MemoryStore struct {
	items *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: gocache.New(gocache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := s.items.Get(key)
	if !ok {
		return "", false, nil
	}
	str, ok := value.(string)
	return str, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.items.Set(key, value, gocache.NoExpiration)
	return nil
}

var _ Store = (*MemoryStore)(nil)
