package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()
	base.Set([]byte("one"), []byte("1"))

	cache := base.CacheWrap()
	assert.Equal(t, []byte("1"), cache.Get([]byte("one")))
	assert.True(t, cache.Has([]byte("one")))

	// writes in the cache are not visible below before Write
	cache.Set([]byte("two"), []byte("2"))
	assert.Nil(t, base.Get([]byte("two")))
	assert.Equal(t, []byte("2"), cache.Get([]byte("two")))

	cache.Write()
	assert.Equal(t, []byte("2"), base.Get([]byte("two")))
}

func TestBTreeCacheDiscard(t *testing.T) {
	base := MemStore()
	base.Set([]byte("one"), []byte("1"))

	cache := base.CacheWrap()
	cache.Set([]byte("two"), []byte("2"))
	cache.Delete([]byte("one"))
	assert.Nil(t, cache.Get([]byte("one")))

	cache.Discard()

	// base is untouched
	assert.Equal(t, []byte("1"), base.Get([]byte("one")))
	assert.Nil(t, base.Get([]byte("two")))
}

func TestBTreeCacheNested(t *testing.T) {
	base := MemStore()

	outer := base.CacheWrap()
	outer.Set([]byte("a"), []byte("1"))

	inner := outer.CacheWrap()
	assert.Equal(t, []byte("1"), inner.Get([]byte("a")))
	inner.Set([]byte("b"), []byte("2"))

	// discarding the inner wrap must not lose outer writes
	inner.Discard()
	assert.Equal(t, []byte("1"), outer.Get([]byte("a")))
	assert.Nil(t, outer.Get([]byte("b")))

	outer.Write()
	assert.Equal(t, []byte("1"), base.Get([]byte("a")))
}

func TestBTreeCacheDeleteCommits(t *testing.T) {
	base := MemStore()
	base.Set([]byte("gone"), []byte("soon"))

	cache := base.CacheWrap()
	cache.Delete([]byte("gone"))
	cache.Write()

	assert.Nil(t, base.Get([]byte("gone")))
	assert.False(t, base.Has([]byte("gone")))
}
