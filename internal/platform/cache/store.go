package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/scorecast/internal/platform/resilience"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Options tune a Store. A non-positive TTL disables caching entirely; loads
// still go through the single-flight group.
type Options struct {
	TTL        time.Duration
	MaxEntries int
	Now        func() time.Time
}

// Store is an in-process TTL cache bounded by entry count.
type Store[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	flight     resilience.Group[V]
}

func NewStore[V any](opts Options) *Store[V] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store[V]{
		entries:    make(map[string]entry[V]),
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		now:        now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" || s.ttl <= 0 {
		return zero, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !e.expiresAt.After(now) {
		s.dropExpired(key, now)
		return zero, false
	}

	return e.value, true
}

// dropExpired re-reads the entry under the write lock so a Set that refreshed
// the key after the read is kept.
func (s *Store[V]) dropExpired(key string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok && !e.expiresAt.After(now) {
		delete(s.entries, key)
	}
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" || s.ttl <= 0 {
		return
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictLocked(now)
	}
	s.entries[key] = entry[V]{value: value, expiresAt: now.Add(s.ttl)}
}

// evictLocked drops expired entries and, if still full, one arbitrary entry.
func (s *Store[V]) evictLocked(now time.Time) {
	for key, e := range s.entries {
		if !e.expiresAt.After(now) {
			delete(s.entries, key)
		}
	}
	if len(s.entries) < s.maxEntries {
		return
	}
	for key := range s.entries {
		delete(s.entries, key)
		return
	}
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers. Errors are returned to every waiter and never cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(ctx, key, func() (V, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return zero, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	return value, err
}
