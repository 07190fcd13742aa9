package renderer

import (
	"math"

	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/itemtree"
	"github.com/slint-ui/slint-sub001/painter"
)

// drawBoxShadow rasterizes the item's rounded rectangle into a padded
// offscreen pixmap, blurs it, caches the result per item and composites
// it behind the item at the configured offset.
func (r *Renderer) drawBoxShadow(index int, item *itemtree.Item, v itemtree.BoxShadow) {
	if r.degenerate(item.Bounds) || v.Color.IsTransparent() {
		return
	}
	w, h := item.Bounds.W, item.Bounds.H
	blur := math.Max(v.Blur, 0)
	scale := r.painter.ScaleFactor()

	shadow := r.cache.GetOrUpdate(r.tree.Ref(index), func() *graphics.Pixmap {
		pw := int(math.Ceil((w + 2*blur) * scale))
		ph := int(math.Ceil((h + 2*blur) * scale))
		if pw <= 0 || ph <= 0 {
			return nil
		}
		pm := graphics.NewPixmap(pw, ph)
		sp := painter.NewSoftwarePainter(pm, scale)
		box := graphics.NewRect(blur, blur, w, h)
		radii := graphics.UniformRadii(v.Radius).ClampedToRect(box)
		path := painter.NewPath()
		path.RoundedRectangle(box, radii)
		sp.FillPath(path, graphics.SolidPaint(v.Color), painter.FillNonzero)
		if blur > 0 {
			blurPixmap(pm, blur*scale)
		}
		return pm
	})
	if shadow.IsEmpty() {
		return
	}

	dst := graphics.NewRect(v.OffsetX-blur, v.OffsetY-blur, w+2*blur, h+2*blur)
	src := graphics.NewRect(0, 0, float64(shadow.Width()), float64(shadow.Height()))
	r.painter.DrawPixmap(dst, shadow, src, true)
}

// gaussianKernel returns a normalized 1D Gaussian kernel with sigma
// equal to radius and a half size of three sigmas.
func gaussianKernel(radius float64) []float64 {
	if radius <= 0 {
		return []float64{1}
	}
	half := int(math.Ceil(radius * 3))
	kernel := make([]float64, half*2+1)
	twoSigmaSq := 2 * radius * radius
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// blurPixmap applies a separable Gaussian blur in place. The
// convolution runs on premultiplied components so translucent edges
// fade without darkening. Pixels outside the pixmap count as
// transparent, which is the correct boundary for an isolated shadow.
func blurPixmap(pm *graphics.Pixmap, radius float64) {
	if pm.IsEmpty() || radius <= 0 {
		return
	}
	w, h := pm.Width(), pm.Height()
	kernel := gaussianKernel(radius)
	half := len(kernel) / 2
	data := pm.Data()

	pre := make([]float64, w*h*4)
	for i := 0; i < w*h; i++ {
		a := float64(data[i*4+3]) / 255
		pre[i*4+0] = float64(data[i*4+0]) / 255 * a
		pre[i*4+1] = float64(data[i*4+1]) / 255 * a
		pre[i*4+2] = float64(data[i*4+2]) / 255 * a
		pre[i*4+3] = a
	}

	tmp := make([]float64, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for k, weight := range kernel {
				sx := x + k - half
				if sx < 0 || sx >= w {
					continue
				}
				i := (y*w + sx) * 4
				r += pre[i+0] * weight
				g += pre[i+1] * weight
				b += pre[i+2] * weight
				a += pre[i+3] * weight
			}
			i := (y*w + x) * 4
			tmp[i+0], tmp[i+1], tmp[i+2], tmp[i+3] = r, g, b, a
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for k, weight := range kernel {
				sy := y + k - half
				if sy < 0 || sy >= h {
					continue
				}
				i := (sy*w + x) * 4
				r += tmp[i+0] * weight
				g += tmp[i+1] * weight
				b += tmp[i+2] * weight
				a += tmp[i+3] * weight
			}
			i := (y*w + x) * 4
			if a > 0 {
				data[i+0] = clampByte(r / a * 255)
				data[i+1] = clampByte(g / a * 255)
				data[i+2] = clampByte(b / a * 255)
			} else {
				data[i+0], data[i+1], data[i+2] = 0, 0, 0
			}
			data[i+3] = clampByte(a * 255)
		}
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
