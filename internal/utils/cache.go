package utils

import (
	"strconv"
	"sync/atomic"

	"github.com/Laisky/errors/v2"
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ResultCache is a bounded LRU of computed results keyed by request content.
type ResultCache[V any] struct {
	items  *lru.Cache[uint64, V]
	hits   atomic.Int64
	misses atomic.Int64
}

func NewResultCache[V any](size int) (*ResultCache[V], error) {
	items, err := lru.New[uint64, V](size)
	if err != nil {
		return nil, errors.Wrapf(err, "create result cache of size %d", size)
	}
	return &ResultCache[V]{items: items}, nil
}

// Key hashes the parts into a cache key. Parts are length-prefixed so
// ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(strconv.Itoa(len(p)))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(p)
	}
	return d.Sum64()
}

func (c *ResultCache[V]) Get(key uint64) (V, bool) {
	v, ok := c.items.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

func (c *ResultCache[V]) Add(key uint64, value V) {
	c.items.Add(key, value)
}

func (c *ResultCache[V]) Size() int {
	return c.items.Len()
}

func (c *ResultCache[V]) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	if hits+misses > 0 {
		return float64(hits) / float64(hits+misses)
	} else {
		return 0.0
	}
}
