// Package itemtree holds the immutable per-frame scene tree consumed by
// the renderer. The runtime builds a Tree each time the scene changes;
// the renderer only borrows it for the duration of a paint pass and
// keys its caches on stable item references.
package itemtree

import (
	"github.com/slint-ui/slint-sub001/graphics"
)

// Item is one node of the scene tree. Bounds is the item's geometry
// relative to its parent's origin.
type Item struct {
	Bounds  graphics.Rect
	Variant Variant

	// Accessible marks items exposed to the accessibility bridge.
	Accessible bool

	parent   int
	children []int
}

// Tree is an immutable scene tree. Index 0 is the root once any item has
// been added.
type Tree struct {
	items []Item
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Add appends an item under the given parent and returns its index.
// Pass parent -1 for the root item.
func (t *Tree) Add(parent int, bounds graphics.Rect, variant Variant) int {
	index := len(t.items)
	t.items = append(t.items, Item{
		Bounds:  bounds,
		Variant: variant,
		parent:  parent,
	})
	if parent >= 0 && parent < index {
		t.items[parent].children = append(t.items[parent].children, index)
	}
	return index
}

// MarkAccessible flags an item as exposed to the accessibility bridge.
func (t *Tree) MarkAccessible(index int) {
	t.items[index].Accessible = true
}

// Len returns the number of items.
func (t *Tree) Len() int { return len(t.items) }

// Item returns the item at an index.
func (t *Tree) Item(index int) *Item {
	return &t.items[index]
}

// Children returns the child indices of an item.
func (t *Tree) Children(index int) []int {
	return t.items[index].children
}

// Parent returns the parent index of an item, or -1 for the root.
func (t *Tree) Parent(index int) int {
	return t.items[index].parent
}

// Ref returns the stable identity of an item, usable as a cache key.
func (t *Tree) Ref(index int) ItemRef {
	return ItemRef{Tree: t, Index: index}
}

// ItemRef identifies an item across paint passes. Refs of a destroyed
// tree must be purged from caches before the tree is released.
type ItemRef struct {
	Tree  *Tree
	Index int
}

// VisitDepthFirst calls visit for every item in the subtree rooted at
// from, parents before children. Returning false from visit skips the
// item's subtree.
func (t *Tree) VisitDepthFirst(from int, visit func(index int, item *Item) bool) {
	if from < 0 || from >= len(t.items) {
		return
	}
	if !visit(from, &t.items[from]) {
		return
	}
	for _, child := range t.items[from].children {
		t.VisitDepthFirst(child, visit)
	}
}

// ChildrenBoundingRect returns the union of the subtree's geometry in
// coordinates relative to the item's own origin, including the item's
// own bounds at the origin.
func (t *Tree) ChildrenBoundingRect(index int) graphics.Rect {
	item := &t.items[index]
	result := graphics.NewRect(0, 0, item.Bounds.W, item.Bounds.H)
	for _, child := range item.children {
		result = result.Union(t.subtreeBounds(child, graphics.Pt(0, 0)))
	}
	return result
}

func (t *Tree) subtreeBounds(index int, origin graphics.Point) graphics.Rect {
	item := &t.items[index]
	pos := origin.Add(graphics.Pt(item.Bounds.X, item.Bounds.Y))
	result := graphics.NewRect(pos.X, pos.Y, item.Bounds.W, item.Bounds.H)
	for _, child := range item.children {
		result = result.Union(t.subtreeBounds(child, pos))
	}
	return result
}

// NeedsLayer reports whether the item's subtree must be composited
// through an offscreen layer rather than by scaling the opacity of
// individual draws: either the item has several children, or a child
// itself introduces layered compositing.
func (t *Tree) NeedsLayer(index int) bool {
	children := t.items[index].children
	if len(children) > 1 {
		return true
	}
	for _, child := range children {
		if t.introducesLayer(child) {
			return true
		}
	}
	return false
}

func (t *Tree) introducesLayer(index int) bool {
	switch v := t.items[index].Variant.(type) {
	case Layer:
		return v.CacheRendering
	case Opacity:
		return t.NeedsLayer(index)
	default:
		return false
	}
}
