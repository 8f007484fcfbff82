// Package cache persists each creator's confirmed coins in a key-value store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const keyPrefix = "user_coins_"

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
)

// ErrCorrupt is returned when a cache entry cannot be decoded.
var ErrCorrupt = errors.New("corrupt cache entry")

// Store is a string key-value store. Get reports false when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Key returns the cache key holding the coins of creator.
func Key(creator string) string {
	return keyPrefix + creator
}

// ParseBackend validates a backend name.
func ParseBackend(name string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(name))
	switch backend {
	case BackendMemory, BackendFile, BackendBolt, BackendPostgres:
		return backend, nil
	case "":
		return BackendFile, nil
	default:
		return "", fmt.Errorf("unknown cache backend: %s", name)
	}
}
