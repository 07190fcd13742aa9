// Package renderer walks an item tree and paints it onto a Painter.
// Each item variant maps to a fixed draw sequence; subtrees that need
// compositing are rendered through offscreen layers.
package renderer

import (
	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/itemtree"
	"github.com/slint-ui/slint-sub001/painter"
	"github.com/slint-ui/slint-sub001/rendercache"
	"github.com/slint-ui/slint-sub001/textlayout"
)

// Renderer paints item trees. It keeps the render cache and the text
// engine across frames; the painter and tree are borrowed per pass.
type Renderer struct {
	painter painter.Painter
	cache   *rendercache.Cache
	engine  *textlayout.Engine
	fonts   *textlayout.Registry
	metrics *Metrics

	tree *itemtree.Tree
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCache supplies a shared render cache.
func WithCache(c *rendercache.Cache) Option {
	return func(r *Renderer) { r.cache = c }
}

// WithTextEngine supplies the text layout engine.
func WithTextEngine(e *textlayout.Engine) Option {
	return func(r *Renderer) { r.engine = e }
}

// WithFonts supplies the font registry used to resolve font requests.
func WithFonts(reg *textlayout.Registry) Option {
	return func(r *Renderer) { r.fonts = reg }
}

// WithMetrics supplies a metrics recorder shared with the window's
// collector.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// New creates a renderer painting onto p.
func New(p painter.Painter, opts ...Option) *Renderer {
	r := &Renderer{
		painter: p,
		cache:   rendercache.New(),
		engine:  textlayout.DefaultEngine(),
		fonts:   textlayout.NewRegistry(),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cache returns the render cache, so the runtime can purge entries when
// a component is destroyed.
func (r *Renderer) Cache() *rendercache.Cache { return r.cache }

// Metrics returns the metrics recorder.
func (r *Renderer) Metrics() *Metrics { return r.metrics }

// Fonts returns the font registry.
func (r *Renderer) Fonts() *textlayout.Registry { return r.fonts }

// SetPainter redirects subsequent passes onto a different painter.
func (r *Renderer) SetPainter(p painter.Painter) { r.painter = p }

// RenderTree paints one frame of the given tree.
func (r *Renderer) RenderTree(tree *itemtree.Tree) {
	if tree == nil || tree.Len() == 0 {
		return
	}
	r.tree = tree
	r.renderItem(0)
	r.tree = nil
	r.metrics.frameRendered()
}

func (r *Renderer) renderItem(index int) {
	item := r.tree.Item(index)
	r.painter.Save()
	defer r.painter.Restore()
	r.painter.Translate(item.Bounds.X, item.Bounds.Y)

	switch v := item.Variant.(type) {
	case itemtree.Rectangle:
		r.drawRectangle(item, v)
	case itemtree.BorderRectangle:
		r.drawBorderRectangle(item, v)
		if v.Clip {
			rect := graphics.NewRect(0, 0, item.Bounds.W, item.Bounds.H)
			if !r.painter.CombineClip(rect, v.Radii, v.BorderWidth) {
				return
			}
		}
	case itemtree.Text:
		r.drawText(item, v)
	case itemtree.TextInput:
		r.drawTextInput(item, v)
	case itemtree.Image:
		r.drawImage(index, item, v)
	case itemtree.Path:
		r.drawPathItem(item, v)
	case itemtree.BoxShadow:
		r.drawBoxShadow(index, item, v)
	case itemtree.Opacity:
		if r.tree.NeedsLayer(index) {
			r.renderAndBlendLayer(v.Opacity, index, false)
			return
		}
		r.painter.ApplyOpacity(v.Opacity)
	case itemtree.Layer:
		if v.CacheRendering {
			r.renderAndBlendLayer(1.0, index, true)
			return
		}
	}

	for _, child := range r.tree.Children(index) {
		r.renderItem(child)
	}
}

// degenerate reports whether an item's geometry is smaller than one
// device pixel in either dimension. Such items draw nothing.
func (r *Renderer) degenerate(bounds graphics.Rect) bool {
	scale := r.painter.ScaleFactor()
	return bounds.W*scale < 1 || bounds.H*scale < 1
}

func (r *Renderer) drawRectangle(item *itemtree.Item, v itemtree.Rectangle) {
	if r.degenerate(item.Bounds) {
		return
	}
	w, h := item.Bounds.W, item.Bounds.H
	paint := graphics.BuildPaint(v.Fill, w, h)
	if paint.IsTransparent() {
		return
	}
	r.painter.FillRect(graphics.NewRect(0, 0, w, h), paint)
}

func (r *Renderer) drawBorderRectangle(item *itemtree.Item, v itemtree.BorderRectangle) {
	if r.degenerate(item.Bounds) {
		return
	}
	w, h := item.Bounds.W, item.Bounds.H
	rect := graphics.NewRect(0, 0, w, h)
	radii := v.Radii.ClampedToRect(rect)

	bw := v.BorderWidth
	if shorter := min(w, h) / 2; bw > shorter {
		bw = shorter
	}
	if bw < 0 || graphics.IsTransparentBrush(v.Border) {
		bw = 0
	}

	fill := graphics.BuildPaint(v.Fill, w, h)
	border := graphics.BuildPaint(v.Border, w, h)

	// A translucent border blended over the fill's edge would show a
	// seam where the two overlap. Fill the whole outer shape first,
	// then stroke the inset outline on its own.
	if bw > 1 && paintIsTranslucent(border) {
		if !fill.IsTransparent() {
			outer := painter.NewPath()
			outer.RoundedRectangle(rect, radii)
			r.painter.FillPath(outer, fill, painter.FillNonzero)
		}
		r.painter.DrawRect(rect, radii, graphics.SolidPaint(graphics.Transparent), border, bw)
		return
	}
	r.painter.DrawRect(rect, radii, fill, border, bw)
}

func (r *Renderer) drawPathItem(item *itemtree.Item, v itemtree.Path) {
	if v.Geometry == nil || v.Geometry.IsEmpty() {
		return
	}
	w, h := item.Bounds.W, item.Bounds.H
	fill := graphics.BuildPaint(v.Fill, w, h)
	if !fill.IsTransparent() {
		r.painter.FillPath(v.Geometry, fill, v.FillRule)
	}
	stroke := graphics.BuildPaint(v.Stroke, w, h)
	if !stroke.IsTransparent() && v.StrokeWidth >= 0 {
		r.painter.StrokePath(v.Geometry, stroke, painter.DefaultStroke().WithWidth(v.StrokeWidth))
	}
}

// paintIsTranslucent reports whether a paint has partial alpha anywhere.
func paintIsTranslucent(p graphics.Paint) bool {
	if p.IsTransparent() {
		return false
	}
	if p.IsSolid() {
		return p.SolidColor().A < 1
	}
	for _, stop := range p.Stops() {
		if stop.Color.A < 1 {
			return true
		}
	}
	return false
}

func (r *Renderer) resolveFace(req textlayout.FontRequest) (textlayout.Face, bool) {
	return r.fonts.Resolve(req.WithDefaults())
}
