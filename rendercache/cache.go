// Package rendercache stores rasterized bitmaps keyed by item identity,
// so decoded images, composited layers and blurred shadows survive
// across repaints. The cache does not track content: dependent
// properties are read inside the compute callback, and the runtime's
// dependency tracking decides when an entry must be invalidated.
package rendercache

import (
	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/itemtree"
)

// Cache maps item identities to bitmaps, one live bitmap per identity
// at most. It is owned and mutated by the UI thread only.
type Cache struct {
	entries map[itemtree.ItemRef]*graphics.Pixmap

	hits   uint64
	misses uint64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[itemtree.ItemRef]*graphics.Pixmap)}
}

// GetOrUpdate returns the cached bitmap for the identity, invoking
// compute on the first access. A nil compute result is not cached, so a
// transiently degenerate item retries on the next repaint.
func (c *Cache) GetOrUpdate(ref itemtree.ItemRef, compute func() *graphics.Pixmap) *graphics.Pixmap {
	if pm, ok := c.entries[ref]; ok {
		c.hits++
		return pm
	}
	c.misses++
	pm := compute()
	if pm != nil {
		c.entries[ref] = pm
	}
	return pm
}

// Invalidate drops the entry for a single identity.
func (c *Cache) Invalidate(ref itemtree.ItemRef) {
	delete(c.entries, ref)
}

// ComponentDestroyed purges every entry owned by items of the given
// tree. It must run before the tree is released, otherwise the cache
// keeps identities of deallocated items alive.
func (c *Cache) ComponentDestroyed(tree *itemtree.Tree) {
	for ref := range c.entries {
		if ref.Tree == tree {
			delete(c.entries, ref)
		}
	}
}

// Len returns the number of cached bitmaps.
func (c *Cache) Len() int { return len(c.entries) }

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}
