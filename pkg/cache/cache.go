// Package cache provides small key/value caches used to remember slow
// lookups between CLI runs, such as resolving a system font name to a file.
//
// [FileCache] persists entries as files below a directory; [NullCache]
// stores nothing and is used when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key. A zero ttl means the entry never
// expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
