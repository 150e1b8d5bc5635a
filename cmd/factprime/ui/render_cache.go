package ui

import (
	"hash/fnv"
	"sync"
)

// RenderCache keeps rendered markdown so View does not re-run glamour on
// every frame. Entries are keyed by source text, width and palette.
type RenderCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	order   []uint64
	maxSize int
}

// NewRenderCache creates a cache holding at most maxSize renders.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &RenderCache{
		entries: make(map[uint64]string, maxSize),
		maxSize: maxSize,
	}
}

// ComputeKey hashes the inputs that determine a render.
func ComputeKey(markdown string, width int, dark bool) uint64 {
	h := fnv.New64a()
	h.Write([]byte(markdown))

	var b [9]byte
	u := uint64(width)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
	if dark {
		b[8] = 1
	}
	h.Write(b[:])
	return h.Sum64()
}

// GetOrCompute returns the cached render for key, calling render on a miss.
// The oldest entry is evicted once the cache is full.
func (rc *RenderCache) GetOrCompute(key uint64, render func() string) string {
	rc.mu.Lock()
	if content, ok := rc.entries[key]; ok {
		rc.mu.Unlock()
		return content
	}
	rc.mu.Unlock()

	content := render()

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if _, ok := rc.entries[key]; !ok {
		if len(rc.order) >= rc.maxSize {
			delete(rc.entries, rc.order[0])
			rc.order = rc.order[1:]
		}
		rc.order = append(rc.order, key)
	}
	rc.entries[key] = content
	return content
}

// Len returns the number of cached renders.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}

// Clear empties the cache.
func (rc *RenderCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[uint64]string, rc.maxSize)
	rc.order = nil
}
