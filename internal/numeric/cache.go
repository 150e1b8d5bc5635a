package numeric

import (
	"math/big"
	"sync"
	"sync/atomic"
)

// Cache memoizes factorial results. Entry i holds i!, and the chain is always
// contiguous from 0, so it is stored as a slice rather than a map.
// Entries are never evicted.
type Cache struct {
	mu     sync.RWMutex
	values []*big.Int

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats is a point-in-time snapshot of cache activity.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns a copy of n! if it has been computed.
func (c *Cache) Get(n uint64) (*big.Int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n >= uint64(len(c.values)) {
		return nil, false
	}
	return new(big.Int).Set(c.values[n]), true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// Stats returns entry and hit/miss counts.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// lookup is Get plus hit/miss accounting.
func (c *Cache) lookup(n uint64) (*big.Int, bool) {
	v, ok := c.Get(n)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// extend fills the chain up to and including n and returns a copy of n!.
// The second return value is how many new entries were added; zero means a
// concurrent caller got there first.
func (c *Cache) extend(n uint64) (*big.Int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for i := uint64(len(c.values)); i <= n; i++ {
		next := big.NewInt(1)
		if i >= 2 {
			next.Mul(c.values[i-1], new(big.Int).SetUint64(i))
		}
		c.values = append(c.values, next)
		added++
	}
	return new(big.Int).Set(c.values[n]), added
}
