package renderer

import (
	"math"

	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/painter"
)

// renderAndBlendLayer renders an item's subtree into an offscreen
// pixmap and composites it onto the current painter with the given
// alpha. Cached layers are keyed on the item identity and reuse the
// pixmap across repaints; uncached layers are sized to the subtree's
// bounds under the current clip.
func (r *Renderer) renderAndBlendLayer(alpha float64, index int, cached bool) {
	bounds := r.tree.ChildrenBoundingRect(index)
	if !cached {
		bounds = bounds.Intersect(r.painter.ClipBounds())
	}
	if bounds.IsEmpty() {
		return
	}

	var layer *graphics.Pixmap
	if cached {
		layer = r.cache.GetOrUpdate(r.tree.Ref(index), func() *graphics.Pixmap {
			return r.renderLayerPixmap(index, bounds)
		})
	} else {
		layer = r.renderLayerPixmap(index, bounds)
	}
	if layer.IsEmpty() {
		return
	}

	src := graphics.NewRect(0, 0, float64(layer.Width()), float64(layer.Height()))
	r.painter.Save()
	r.painter.ApplyOpacity(alpha)
	r.painter.DrawPixmap(bounds, layer, src, true)
	r.painter.Restore()
}

// renderLayerPixmap renders the children of an item into a fresh
// pixmap covering bounds at the current device scale. The outer
// painter's state stack is untouched; the subtree paints through its
// own painter rooted at the bounds origin.
func (r *Renderer) renderLayerPixmap(index int, bounds graphics.Rect) *graphics.Pixmap {
	scale := r.painter.ScaleFactor()
	pw := int(math.Ceil(bounds.W * scale))
	ph := int(math.Ceil(bounds.H * scale))
	if pw <= 0 || ph <= 0 {
		return nil
	}

	layer := graphics.NewPixmap(pw, ph)
	inner := painter.NewSoftwarePainter(layer, scale)
	inner.Translate(-bounds.X, -bounds.Y)

	outer := r.painter
	r.painter = inner
	for _, child := range r.tree.Children(index) {
		r.renderItem(child)
	}
	r.painter = outer

	r.metrics.layerCreated()
	return layer
}
