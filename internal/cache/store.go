package cache

import (
	"context"
	"time"
)

// Store is the key-value port the entity caches are built on. Values are
// serialized text (JSON for objects, decimal strings for counters).
//
// Implementations must treat their own outages as recoverable: callers log
// and swallow every error, so the worst a broken Store can do is force
// direct database reads.
type Store interface {
	// Get returns the value for key. ok is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del removes the given keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error
	// DelPattern removes every key matching a redis-style glob pattern.
	DelPattern(ctx context.Context, pattern string) error
}
