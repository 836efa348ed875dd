// Package cache implements the read cache shared by the project, tech and
// skill domains: deterministic keys, read-through accessors and the
// invalidation fan-out that mutations run after commit.
//
// The database is the source of truth. Every cache failure, connection or
// deserialization, is logged and degrades to a miss; invalidation failures
// are logged and swallowed, bounded by the key TTLs.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"
)

func readJSON[T any](ctx context.Context, s Store, key string) (T, bool) {
	var v T

	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		log.Printf("[cache] miss (error) key=%s: %v", key, err)
		return v, false
	}
	if !ok {
		log.Printf("[cache] miss key=%s", key)
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("[cache] miss (decode) key=%s: %v", key, err)
		var zero T
		return zero, false
	}

	log.Printf("[cache] hit key=%s", key)
	return v, true
}

func writeJSON[T any](ctx context.Context, s Store, key string, v T, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[cache] encode failed key=%s: %v", key, err)
		return
	}
	if err := s.Set(ctx, key, raw, ttl); err != nil {
		log.Printf("[cache] set failed key=%s: %v", key, err)
	}
}

func readCount(ctx context.Context, s Store, key string) (int64, bool) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		log.Printf("[cache] miss (error) key=%s: %v", key, err)
		return 0, false
	}
	if !ok {
		log.Printf("[cache] miss key=%s", key)
		return 0, false
	}

	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		log.Printf("[cache] miss (decode) key=%s: %v", key, err)
		return 0, false
	}

	log.Printf("[cache] hit key=%s", key)
	return n, true
}

func writeCount(ctx context.Context, s Store, key string, n int64, ttl time.Duration) {
	if err := s.Set(ctx, key, []byte(strconv.FormatInt(n, 10)), ttl); err != nil {
		log.Printf("[cache] set failed key=%s: %v", key, err)
	}
}

func del(ctx context.Context, s Store, keys ...string) {
	if err := s.Del(ctx, keys...); err != nil {
		log.Printf("[cache] delete failed keys=%v: %v", keys, err)
	}
}

func sweep(ctx context.Context, s Store, pattern string) {
	if err := s.DelPattern(ctx, pattern); err != nil {
		log.Printf("[cache] sweep failed pattern=%s: %v", pattern, err)
	}
}
