package rendercache

import (
	"testing"

	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/itemtree"
)

func buildTree(items int) *itemtree.Tree {
	tree := itemtree.NewTree()
	root := tree.Add(-1, graphics.NewRect(0, 0, 100, 100), itemtree.Rectangle{})
	for i := 1; i < items; i++ {
		tree.Add(root, graphics.NewRect(0, 0, 10, 10), itemtree.Rectangle{})
	}
	return tree
}

func TestGetOrUpdateComputesOnce(t *testing.T) {
	c := New()
	tree := buildTree(1)
	ref := tree.Ref(0)

	calls := 0
	compute := func() *graphics.Pixmap {
		calls++
		return graphics.NewPixmap(4, 4)
	}

	first := c.GetOrUpdate(ref, compute)
	second := c.GetOrUpdate(ref, compute)
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
	if first != second {
		t.Error("repeated access returned a different bitmap instance")
	}
}

func TestNilResultNotCached(t *testing.T) {
	c := New()
	tree := buildTree(1)
	ref := tree.Ref(0)

	calls := 0
	c.GetOrUpdate(ref, func() *graphics.Pixmap { calls++; return nil })
	c.GetOrUpdate(ref, func() *graphics.Pixmap { calls++; return nil })
	if calls != 2 {
		t.Errorf("compute called %d times, want 2 for nil results", calls)
	}
	if c.Len() != 0 {
		t.Errorf("cache holds %d entries, want 0", c.Len())
	}
}

func TestComponentDestroyedPurges(t *testing.T) {
	c := New()
	doomed := buildTree(3)
	survivor := buildTree(2)

	for i := 0; i < doomed.Len(); i++ {
		c.GetOrUpdate(doomed.Ref(i), func() *graphics.Pixmap { return graphics.NewPixmap(1, 1) })
	}
	kept := c.GetOrUpdate(survivor.Ref(0), func() *graphics.Pixmap { return graphics.NewPixmap(1, 1) })

	c.ComponentDestroyed(doomed)

	if c.Len() != 1 {
		t.Errorf("cache holds %d entries after purge, want 1", c.Len())
	}

	// The destroyed tree's identities recompute instead of reusing
	// stale bitmaps.
	recomputed := false
	c.GetOrUpdate(doomed.Ref(0), func() *graphics.Pixmap {
		recomputed = true
		return graphics.NewPixmap(1, 1)
	})
	if !recomputed {
		t.Error("identity of destroyed tree was served from cache")
	}

	// The surviving tree's entry is untouched.
	still := c.GetOrUpdate(survivor.Ref(0), func() *graphics.Pixmap { return nil })
	if still != kept {
		t.Error("surviving entry was purged")
	}
}

func TestInvalidateSingleEntry(t *testing.T) {
	c := New()
	tree := buildTree(2)

	c.GetOrUpdate(tree.Ref(0), func() *graphics.Pixmap { return graphics.NewPixmap(1, 1) })
	c.GetOrUpdate(tree.Ref(1), func() *graphics.Pixmap { return graphics.NewPixmap(1, 1) })
	c.Invalidate(tree.Ref(0))

	if c.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", c.Len())
	}
	calls := 0
	c.GetOrUpdate(tree.Ref(0), func() *graphics.Pixmap { calls++; return graphics.NewPixmap(1, 1) })
	if calls != 1 {
		t.Error("invalidated entry not recomputed")
	}
}
