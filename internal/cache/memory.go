package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	val []byte
	exp time.Time // zero => no TTL
}

// MemoryStore is an in-process Store. It backs tests and deployments
// without a redis instance.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(s.m, key)
		return nil, false, nil
	}
	return e.val, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.m[key] = memoryEntry{val: value, exp: exp}
	return nil
}

func (s *MemoryStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.m, key)
	}
	return nil
}

func (s *MemoryStore) DelPattern(_ context.Context, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.m {
		if matchPattern(pattern, key) {
			delete(s.m, key)
		}
	}
	return nil
}

// matchPattern implements the subset of redis glob matching the key space
// uses: literal characters and '*'.
func matchPattern(pattern, key string) bool {
	if pattern == "" {
		return key == ""
	}
	if pattern[0] == '*' {
		for i := 0; i <= len(key); i++ {
			if matchPattern(pattern[1:], key[i:]) {
				return true
			}
		}
		return false
	}
	if key == "" || pattern[0] != key[0] {
		return false
	}
	return matchPattern(pattern[1:], key[1:])
}
