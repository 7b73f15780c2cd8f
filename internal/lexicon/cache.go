// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache stores successful lexical responses by query key. Failures are
// never cached.
type Cache interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Put(ctx context.Context, key string, words []string) error
}

// MemoryCache is an in-process LRU tier, optionally backed by a slower
// Cache such as the SQLite store. Hits on the backing tier are promoted.
type MemoryCache struct {
	lru  *lru.Cache[string, []string]
	next Cache
}

// NewMemoryCache returns an LRU holding up to size entries. next may be nil.
func NewMemoryCache(size int, next Cache) (*MemoryCache, error) {
	if size <= 0 {
		size = 1024
	}
	l, err := lru.New[string, []string](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: l, next: next}, nil
}

// Get returns a copy of the cached words for key.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	if words, ok := m.lru.Get(key); ok {
		return clone(words), true, nil
	}
	if m.next == nil {
		return nil, false, nil
	}
	words, ok, err := m.next.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	m.lru.Add(key, clone(words))
	return words, true, nil
}

// Put stores words in memory and in the backing tier.
func (m *MemoryCache) Put(ctx context.Context, key string, words []string) error {
	m.lru.Add(key, clone(words))
	if m.next != nil {
		return m.next.Put(ctx, key, words)
	}
	return nil
}

// Len returns the number of in-memory entries.
func (m *MemoryCache) Len() int { return m.lru.Len() }

func clone(words []string) []string {
	if words == nil {
		return []string{}
	}
	return append([]string(nil), words...)
}
