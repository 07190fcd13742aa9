// Package accessibility carries the two hooks the runtime's assistive
// technology layer attaches to a window: a structure-change
// notification deferred until the next paint, and focus changes
// resolved to the nearest accessible item.
package accessibility

import (
	"github.com/slint-ui/slint-sub001/itemtree"
)

// Bridge connects one window to the platform accessibility layer. All
// calls happen on the UI thread.
type Bridge struct {
	// OnTreeChanged fires after the first paint following a structure
	// change. Repeated changes between paints collapse into one call.
	OnTreeChanged func()

	// OnFocusChanged receives the index of the nearest accessible
	// ancestor of the newly focused item, or -1 when none exists.
	OnFocusChanged func(index int)

	treeChanged bool
}

// NewBridge creates a bridge with no hooks attached.
func NewBridge() *Bridge {
	return &Bridge{}
}

// NotifyTreeChanged records that the item tree's structure changed.
// The notification is latched and delivered at the next paint.
func (b *Bridge) NotifyTreeChanged() {
	if b != nil {
		b.treeChanged = true
	}
}

// Pending reports whether a structure change awaits delivery.
func (b *Bridge) Pending() bool {
	return b != nil && b.treeChanged
}

// PaintCompleted delivers a latched structure-change notification.
func (b *Bridge) PaintCompleted() {
	if b == nil || !b.treeChanged {
		return
	}
	b.treeChanged = false
	if b.OnTreeChanged != nil {
		b.OnTreeChanged()
	}
}

// FocusChanged resolves the focused item to its nearest accessible
// ancestor, the item itself included, and delivers it. Items outside
// the tree and trees with no accessible ancestor resolve to -1.
func (b *Bridge) FocusChanged(tree *itemtree.Tree, index int) {
	if b == nil || b.OnFocusChanged == nil {
		return
	}
	b.OnFocusChanged(ResolveAccessible(tree, index))
}

// ResolveAccessible walks from the item toward the root and returns the
// first accessible item, or -1.
func ResolveAccessible(tree *itemtree.Tree, index int) int {
	if tree == nil {
		return -1
	}
	for index >= 0 && index < tree.Len() {
		if tree.Item(index).Accessible {
			return index
		}
		index = tree.Parent(index)
	}
	return -1
}
