// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is a trivial backing tier for promotion tests.
type mapCache struct {
	m    map[string][]string
	gets int
}

func (c *mapCache) Get(_ context.Context, key string) ([]string, bool, error) {
	c.gets++
	w, ok := c.m[key]
	return w, ok, nil
}

func (c *mapCache) Put(_ context.Context, key string, words []string) error {
	c.m[key] = words
	return nil
}

func TestMemoryCachePromotesFromBackingTier(t *testing.T) {
	backing := &mapCache{m: map[string][]string{"k": {"from-disk"}}}
	mc, err := NewMemoryCache(4, backing)
	require.NoError(t, err)

	words, ok, err := mc.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"from-disk"}, words)

	// Second lookup stays in memory.
	_, _, _ = mc.Get(context.Background(), "k")
	assert.Equal(t, 1, backing.gets)
}

func TestMemoryCachePutWritesThrough(t *testing.T) {
	backing := &mapCache{m: map[string][]string{}}
	mc, err := NewMemoryCache(4, backing)
	require.NoError(t, err)

	require.NoError(t, mc.Put(context.Background(), "k", []string{"a"}))
	assert.Equal(t, []string{"a"}, backing.m["k"])
	assert.Equal(t, 1, mc.Len())
}

func TestMemoryCacheReturnsCopies(t *testing.T) {
	mc, err := NewMemoryCache(4, nil)
	require.NoError(t, err)
	require.NoError(t, mc.Put(context.Background(), "k", []string{"a", "b"}))

	words, _, _ := mc.Get(context.Background(), "k")
	words[0] = "mutated"

	again, _, _ := mc.Get(context.Background(), "k")
	assert.Equal(t, []string{"a", "b"}, again)
}

func TestMemoryCacheEmptyResultIsAHit(t *testing.T) {
	mc, err := NewMemoryCache(4, nil)
	require.NoError(t, err)
	require.NoError(t, mc.Put(context.Background(), "k", nil))

	words, ok, err := mc.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, words)
}
