package caching

import (
	"context"
	"sync"
	"time"

	"github.com/motify/sitekit/pkg/interfaces"
)

type entry struct {
	value     any
	expiresAt time.Time
	tags      []string
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is an in-process TTL cache with a tag index. It satisfies
// interfaces.TagStore and is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	byTag   map[string]map[string]struct{}
	clock   func() time.Time
}

var _ interfaces.TagStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		byTag:   make(map[string]map[string]struct{}),
		clock:   time.Now,
	}
}

// Get returns the cached value for key, or nil when absent or expired.
func (s *MemoryStore) Get(_ context.Context, key string) (any, error) {
	s.mu.RLock()
	item, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if item.expired(s.clock()) {
		s.mu.Lock()
		s.deleteLocked(key)
		s.mu.Unlock()
		return nil, nil
	}
	return item.value, nil
}

// Set stores value under key without tags.
func (s *MemoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return s.SetWithTags(ctx, key, value, ttl)
}

// SetWithTags stores value under key and registers it with the given tags.
// A zero ttl means no expiry.
func (s *MemoryStore) SetWithTags(_ context.Context, key string, value any, ttl time.Duration, tags ...string) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.clock().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteLocked(key)
	s.entries[key] = entry{value: value, expiresAt: expiresAt, tags: append([]string(nil), tags...)}
	for _, tag := range tags {
		keys, ok := s.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

// Delete removes one key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	s.deleteLocked(key)
	s.mu.Unlock()
	return nil
}

// Clear drops every entry and the whole tag index.
func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.byTag = make(map[string]map[string]struct{})
	s.mu.Unlock()
	return nil
}

// InvalidateTags removes every key registered under any of the tags.
func (s *MemoryStore) InvalidateTags(_ context.Context, tags ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tag := range tags {
		for key := range s.byTag[tag] {
			s.deleteLocked(key)
		}
		delete(s.byTag, tag)
	}
	return nil
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) deleteLocked(key string) {
	item, ok := s.entries[key]
	if !ok {
		return
	}
	for _, tag := range item.tags {
		if keys, ok := s.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, tag)
			}
		}
	}
	delete(s.entries, key)
}
