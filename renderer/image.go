package renderer

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/itemtree"
)

// drawImage resolves the source bitmap (cropped to the source clip,
// colorized and pre-scaled once, then cached), computes the destination
// from the fit mode and paints it, tiled when requested.
func (r *Renderer) drawImage(index int, item *itemtree.Item, v itemtree.Image) {
	if r.degenerate(item.Bounds) || v.Source.IsEmpty() {
		return
	}
	bounds := graphics.NewRect(0, 0, item.Bounds.W, item.Bounds.H)
	full := graphics.NewRect(0, 0, float64(v.Source.Width()), float64(v.Source.Height()))
	src := v.SourceClip
	if src.IsEmpty() {
		src = full
	} else {
		src = src.Intersect(full)
		if src.IsEmpty() {
			return
		}
	}

	dst := fitRect(bounds, src.W, src.H, v.Fit, v.Alignment)
	if dst.IsEmpty() {
		return
	}
	tiled := v.TilingH != itemtree.TilingNone || v.TilingV != itemtree.TilingNone

	scale := r.painter.ScaleFactor()
	devW := int(math.Round(dst.W * scale))
	devH := int(math.Round(dst.H * scale))
	prescale := !tiled && v.Smooth && (devW != int(src.W) || devH != int(src.H))
	colorized := !graphics.IsTransparentBrush(v.Colorize)

	pm := v.Source
	if colorized || prescale {
		pm = r.cache.GetOrUpdate(r.tree.Ref(index), func() *graphics.Pixmap {
			out := cropPixmap(v.Source, src)
			if colorized {
				colorizePixmap(out, graphics.BuildPaint(v.Colorize, src.W, src.H))
			}
			if prescale {
				out = scalePixmap(out, devW, devH, true)
			}
			return out
		})
		if pm.IsEmpty() {
			return
		}
		src = graphics.NewRect(0, 0, float64(pm.Width()), float64(pm.Height()))
	}

	r.painter.Save()
	defer r.painter.Restore()
	if !r.painter.CombineClip(bounds, graphics.CornerRadii{}, 0) {
		return
	}
	if tiled {
		r.drawTiledImage(bounds, dst, pm, src, v)
		return
	}
	r.painter.DrawPixmap(dst, pm, src, v.Smooth && !prescale)
}

// drawTiledImage repeats the tile across the item bounds. Round tiling
// adjusts the tile size so a whole number of tiles fits the axis.
func (r *Renderer) drawTiledImage(bounds, tile graphics.Rect, pm *graphics.Pixmap, src graphics.Rect, v itemtree.Image) {
	tw, th := tile.W, tile.H
	if v.TilingH == itemtree.TilingRound && tw > 0 {
		n := math.Max(1, math.Round(bounds.W/tw))
		tw = bounds.W / n
	}
	if v.TilingV == itemtree.TilingRound && th > 0 {
		n := math.Max(1, math.Round(bounds.H/th))
		th = bounds.H / n
	}
	if tw <= 0 || th <= 0 {
		return
	}

	xs := []float64{tile.X}
	if v.TilingH != itemtree.TilingNone {
		xs = xs[:0]
		for x := 0.0; x < bounds.W; x += tw {
			xs = append(xs, x)
		}
	}
	ys := []float64{tile.Y}
	if v.TilingV != itemtree.TilingNone {
		ys = ys[:0]
		for y := 0.0; y < bounds.H; y += th {
			ys = append(ys, y)
		}
	}
	for _, y := range ys {
		for _, x := range xs {
			r.painter.DrawPixmap(graphics.NewRect(x, y, tw, th), pm, src, v.Smooth)
		}
	}
}

// fitRect maps a source of the given size into bounds according to the
// fit mode. Alignment components are normalized to [0, 1] per axis and
// only matter when the fitted size differs from the bounds.
func fitRect(bounds graphics.Rect, sw, sh float64, fit itemtree.ImageFit, align graphics.Point) graphics.Rect {
	if sw <= 0 || sh <= 0 {
		return graphics.Rect{}
	}
	var s float64
	switch fit {
	case itemtree.ImageFitFill:
		return bounds
	case itemtree.ImageFitContain:
		s = math.Min(bounds.W/sw, bounds.H/sh)
	case itemtree.ImageFitCover:
		s = math.Max(bounds.W/sw, bounds.H/sh)
	default:
		s = 1
	}
	dw, dh := sw*s, sh*s
	return graphics.NewRect(
		bounds.X+(bounds.W-dw)*align.X,
		bounds.Y+(bounds.H-dh)*align.Y,
		dw, dh)
}

// cropPixmap copies a sub-rectangle of a pixmap.
func cropPixmap(pm *graphics.Pixmap, src graphics.Rect) *graphics.Pixmap {
	x0, y0 := int(src.X), int(src.Y)
	w, h := int(math.Ceil(src.W)), int(math.Ceil(src.H))
	out := graphics.NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetPixel(x, y, pm.GetPixel(x0+x, y0+y))
		}
	}
	return out
}

// colorizePixmap tints a pixmap in place: each pixel takes the tint's
// color sampled at its position and keeps the product of both alphas.
func colorizePixmap(pm *graphics.Pixmap, tint graphics.Paint) {
	for y := 0; y < pm.Height(); y++ {
		for x := 0; x < pm.Width(); x++ {
			px := pm.GetPixel(x, y)
			if px.A <= 0 {
				continue
			}
			c := tint.ColorAt(float64(x)+0.5, float64(y)+0.5)
			c.A *= px.A
			pm.SetPixel(x, y, c)
		}
	}
}

// scalePixmap resamples a pixmap to the given size, Catmull-Rom for
// smooth scaling and nearest neighbor otherwise.
func scalePixmap(pm *graphics.Pixmap, w, h int, smooth bool) *graphics.Pixmap {
	if w <= 0 || h <= 0 || pm.IsEmpty() {
		return nil
	}
	srcImg := pm.ToImage()
	dstImg := image.NewNRGBA(image.Rect(0, 0, w, h))
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if smooth {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), xdraw.Src, nil)
	return graphics.FromImage(dstImg)
}
