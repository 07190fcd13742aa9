package painter

import (
	"math"

	"github.com/slint-ui/slint-sub001/graphics"
)

// roundedClip is a rounded rectangle clip in device coordinates. The
// visible region is the intersection of the rectangular clip bounds and
// every rounded clip on the stack.
type roundedClip struct {
	rect  graphics.Rect
	radii graphics.CornerRadii
}

// contains tests a device-space point against the rounded rectangle.
func (rc *roundedClip) contains(x, y float64) bool {
	r := rc.rect
	if x < r.X || x >= r.Right() || y < r.Y || y >= r.Bottom() {
		return false
	}
	check := func(cx, cy, radius float64) bool {
		if radius <= 0 {
			return true
		}
		dx, dy := x-cx, y-cy
		if (dx < 0) == (cx > r.X+r.W/2) || (dy < 0) == (cy > r.Y+r.H/2) {
			return true
		}
		return dx*dx+dy*dy <= radius*radius
	}
	rr := rc.radii
	return check(r.X+rr.TopLeft, r.Y+rr.TopLeft, rr.TopLeft) &&
		check(r.Right()-rr.TopRight, r.Y+rr.TopRight, rr.TopRight) &&
		check(r.Right()-rr.BottomRight, r.Bottom()-rr.BottomRight, rr.BottomRight) &&
		check(r.X+rr.BottomLeft, r.Bottom()-rr.BottomLeft, rr.BottomLeft)
}

// painterState is one entry of the Save/Restore stack.
type painterState struct {
	matrix  graphics.Matrix
	clip    graphics.Rect
	rounded []roundedClip
	opacity float64
}

// SoftwarePainter renders into a Pixmap using the in-package scanline
// rasterizer. It implements Painter.
type SoftwarePainter struct {
	target *graphics.Pixmap
	scale  float64
	state  painterState
	stack  []painterState
}

var _ Painter = (*SoftwarePainter)(nil)

// NewSoftwarePainter creates a painter targeting the given pixmap. The
// scale factor maps logical to device pixels.
func NewSoftwarePainter(target *graphics.Pixmap, scaleFactor float64) *SoftwarePainter {
	if scaleFactor <= 0 {
		scaleFactor = 1
	}
	return &SoftwarePainter{
		target: target,
		scale:  scaleFactor,
		state: painterState{
			matrix:  graphics.Scale(scaleFactor, scaleFactor),
			clip:    graphics.NewRect(0, 0, float64(target.Width()), float64(target.Height())),
			opacity: 1,
		},
	}
}

// Save pushes the current state onto the state stack.
func (sp *SoftwarePainter) Save() {
	sp.stack = append(sp.stack, sp.state)
}

// Restore pops the state stack.
func (sp *SoftwarePainter) Restore() {
	if len(sp.stack) == 0 {
		return
	}
	sp.state = sp.stack[len(sp.stack)-1]
	sp.stack = sp.stack[:len(sp.stack)-1]
}

// Translate moves the origin of the coordinate system.
func (sp *SoftwarePainter) Translate(x, y float64) {
	sp.state.matrix = sp.state.matrix.Multiply(graphics.Translate(x, y))
}

// Rotate rotates the coordinate system clockwise by degrees.
func (sp *SoftwarePainter) Rotate(angleDegrees float64) {
	sp.state.matrix = sp.state.matrix.Multiply(graphics.Rotate(angleDegrees * math.Pi / 180))
}

// ApplyOpacity multiplies the accumulated opacity by factor.
func (sp *SoftwarePainter) ApplyOpacity(factor float64) {
	sp.state.opacity *= math.Max(0, math.Min(1, factor))
}

// ScaleFactor returns the device pixel ratio of the target.
func (sp *SoftwarePainter) ScaleFactor() float64 { return sp.scale }

// CombineClip intersects the clip region with a rounded rectangle. The
// rectangle is first adjusted inward for the border width: the border
// width is capped at half the rectangle width, then the rectangle and
// its radii are inset by half of it, so the clip edge runs through the
// middle of the border.
func (sp *SoftwarePainter) CombineClip(rect graphics.Rect, radii graphics.CornerRadii, borderWidth float64) bool {
	rect, radii, _ = adjustRectAndBorderForInnerDrawing(rect, radii, borderWidth)

	if sp.state.matrix.IsAxisAligned() {
		deviceRect := sp.state.matrix.TransformRect(rect)
		sp.state.clip = sp.state.clip.Intersect(deviceRect)
		if !radii.IsZero() {
			scaled := scaleRadii(radii, sp.state.matrix)
			sp.appendRoundedClip(roundedClip{rect: deviceRect, radii: scaled.ClampedToRect(deviceRect)})
		}
	} else {
		// Rotated clips fall back to the device-space bounding box of
		// the transformed path.
		path := NewPath()
		path.RoundedRectangle(rect, radii)
		sp.state.clip = sp.state.clip.Intersect(path.Transform(sp.state.matrix).Bounds())
	}
	return !sp.state.clip.IsEmpty()
}

// appendRoundedClip adds a rounded clip without aliasing the parent
// state's slice.
func (sp *SoftwarePainter) appendRoundedClip(rc roundedClip) {
	for _, existing := range sp.state.rounded {
		if existing == rc {
			return
		}
	}
	rounded := make([]roundedClip, len(sp.state.rounded), len(sp.state.rounded)+1)
	copy(rounded, sp.state.rounded)
	sp.state.rounded = append(rounded, rc)
}

// ClipBounds returns the clip bounding rectangle in the current
// coordinate system.
func (sp *SoftwarePainter) ClipBounds() graphics.Rect {
	if sp.state.clip.IsEmpty() {
		return graphics.Rect{}
	}
	return sp.state.matrix.Invert().TransformRect(sp.state.clip)
}

// adjustRectAndBorderForInnerDrawing caps the border width at half the
// rectangle width and shifts the rectangle inward by half the border, so
// that a stroke of the returned width along the returned rectangle edge
// stays inside the original bounds.
func adjustRectAndBorderForInnerDrawing(rect graphics.Rect, radii graphics.CornerRadii, borderWidth float64) (graphics.Rect, graphics.CornerRadii, float64) {
	bw := math.Min(borderWidth, rect.W/2)
	if bw <= 0 {
		return rect, radii.ClampedToRect(rect), 0
	}
	inner := graphics.NewRect(rect.X+bw/2, rect.Y+bw/2, rect.W-bw, rect.H-bw)
	return inner, radii.Inset(bw / 2).ClampedToRect(inner), bw
}

func scaleRadii(radii graphics.CornerRadii, m graphics.Matrix) graphics.CornerRadii {
	s := math.Abs(m.A)
	return graphics.CornerRadii{
		TopLeft:     radii.TopLeft * s,
		TopRight:    radii.TopRight * s,
		BottomRight: radii.BottomRight * s,
		BottomLeft:  radii.BottomLeft * s,
	}
}

// FillRect fills a rectangle with a paint.
func (sp *SoftwarePainter) FillRect(rect graphics.Rect, paint graphics.Paint) {
	if rect.IsEmpty() || paint.IsTransparent() {
		return
	}
	path := NewPath()
	path.Rectangle(rect)
	sp.FillPath(path, paint, FillNonzero)
}

// DrawRect draws a rounded rectangle with fill and border. The border
// straddles the rectangle edge, so fill and border geometry are both
// adjusted inward by half the border width.
func (sp *SoftwarePainter) DrawRect(rect graphics.Rect, radii graphics.CornerRadii, fill, border graphics.Paint, borderWidth float64) {
	if rect.IsEmpty() {
		return
	}
	inner, innerRadii, bw := adjustRectAndBorderForInnerDrawing(rect, radii, borderWidth)
	path := NewPath()
	path.RoundedRectangle(inner, innerRadii)
	if !fill.IsTransparent() {
		sp.FillPath(path, fill, FillNonzero)
	}
	if bw > 0 && !border.IsTransparent() {
		sp.StrokePath(path, border, DefaultStroke().WithWidth(bw))
	}
}

// FillPath fills a path with a paint using the given fill rule.
func (sp *SoftwarePainter) FillPath(path *Path, paint graphics.Paint, rule FillRule) {
	if path.IsEmpty() || paint.IsTransparent() || sp.state.clip.IsEmpty() {
		return
	}
	device := path.Transform(sp.state.matrix)
	subpaths, _ := device.Flatten()
	sp.fillDeviceEdges(buildEdges(subpaths), paint, rule)
}

// StrokePath strokes the outline of a path. A stroke width of zero
// produces a hairline of one device pixel.
func (sp *SoftwarePainter) StrokePath(path *Path, paint graphics.Paint, stroke Stroke) {
	if path.IsEmpty() || paint.IsTransparent() || sp.state.clip.IsEmpty() {
		return
	}
	if stroke.Width <= 0 {
		stroke.Width = 1 / sp.scale
	}
	polys := strokeOutline(path, stroke)
	if len(polys) == 0 {
		return
	}
	device := make([][]graphics.Point, len(polys))
	for i, poly := range polys {
		dp := make([]graphics.Point, len(poly))
		for j, pt := range poly {
			dp[j] = sp.state.matrix.TransformPoint(pt)
		}
		device[i] = dp
	}
	sp.fillDeviceEdges(buildEdges(device), paint, FillNonzero)
}

// fillDeviceEdges rasterizes device-space edges, sampling the paint in
// shape local coordinates and applying opacity and rounded clips per
// pixel.
func (sp *SoftwarePainter) fillDeviceEdges(edges []edge, paint graphics.Paint, rule FillRule) {
	clipX0, clipY0, clipX1, clipY1 := sp.deviceClipInts()
	if clipX0 >= clipX1 || clipY0 >= clipY1 {
		return
	}

	opacity := sp.state.opacity
	rounded := sp.state.rounded
	inverse := sp.state.matrix.Invert()
	solid := paint.IsSolid()
	solidColor := paint.SolidColor()

	fillEdges(edges, rule, clipX0, clipY0, clipX1, clipY1, func(y, x0 int, cov []float64) {
		cy := float64(y) + 0.5
		for i, coverage := range cov {
			if coverage <= 0 {
				continue
			}
			x := x0 + i
			cx := float64(x) + 0.5
			if !roundedContainsAll(rounded, cx, cy) {
				continue
			}
			c := solidColor
			if !solid {
				local := inverse.TransformPoint(graphics.Pt(cx, cy))
				c = paint.ColorAt(local.X, local.Y)
			}
			if c.A <= 0 {
				continue
			}
			sp.target.BlendPixel(x, y, c, math.Min(1, coverage)*opacity)
		}
	})
}

func roundedContainsAll(rounded []roundedClip, x, y float64) bool {
	for i := range rounded {
		if !rounded[i].contains(x, y) {
			return false
		}
	}
	return true
}

// deviceClipInts returns the integer pixel bounds of the clip rectangle,
// clamped to the target.
func (sp *SoftwarePainter) deviceClipInts() (x0, y0, x1, y1 int) {
	clip := sp.state.clip
	x0 = maxInt(0, int(math.Floor(clip.X)))
	y0 = maxInt(0, int(math.Floor(clip.Y)))
	x1 = minInt(sp.target.Width(), int(math.Ceil(clip.Right())))
	y1 = minInt(sp.target.Height(), int(math.Ceil(clip.Bottom())))
	return
}

// DrawPixmap draws a sub-rectangle of a pixmap into a destination
// rectangle in logical coordinates, scaling as needed.
func (sp *SoftwarePainter) DrawPixmap(dst graphics.Rect, pm *graphics.Pixmap, src graphics.Rect, smooth bool) {
	if pm.IsEmpty() || dst.IsEmpty() || src.IsEmpty() || sp.state.clip.IsEmpty() {
		return
	}

	deviceDst := sp.state.matrix.TransformRect(dst)
	area := deviceDst.Intersect(sp.state.clip)
	if area.IsEmpty() {
		return
	}

	clipX0, clipY0, clipX1, clipY1 := sp.deviceClipInts()
	x0 := maxInt(clipX0, int(math.Floor(area.X)))
	y0 := maxInt(clipY0, int(math.Floor(area.Y)))
	x1 := minInt(clipX1, int(math.Ceil(area.Right())))
	y1 := minInt(clipY1, int(math.Ceil(area.Bottom())))

	inverse := sp.state.matrix.Invert()
	opacity := sp.state.opacity
	rounded := sp.state.rounded
	sx := src.W / dst.W
	sy := src.H / dst.H

	for y := y0; y < y1; y++ {
		cy := float64(y) + 0.5
		for x := x0; x < x1; x++ {
			cx := float64(x) + 0.5
			if !roundedContainsAll(rounded, cx, cy) {
				continue
			}
			local := inverse.TransformPoint(graphics.Pt(cx, cy))
			u := src.X + (local.X-dst.X)*sx
			v := src.Y + (local.Y-dst.Y)*sy
			if u < src.X || u >= src.Right() || v < src.Y || v >= src.Bottom() {
				continue
			}
			var c graphics.Color
			if smooth {
				c = samplePixmapBilinear(pm, u, v)
			} else {
				c = pm.GetPixel(int(u), int(v))
			}
			if c.A <= 0 {
				continue
			}
			sp.target.BlendPixel(x, y, c, opacity)
		}
	}
}

// samplePixmapBilinear samples a pixmap with bilinear filtering. The
// coordinates address pixel centers at half offsets.
func samplePixmapBilinear(pm *graphics.Pixmap, u, v float64) graphics.Color {
	fx := u - 0.5
	fy := v - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	clampX := func(x int) int { return maxInt(0, minInt(pm.Width()-1, x)) }
	clampY := func(y int) int { return maxInt(0, minInt(pm.Height()-1, y)) }

	c00 := pm.GetPixel(clampX(x0), clampY(y0))
	c10 := pm.GetPixel(clampX(x0+1), clampY(y0))
	c01 := pm.GetPixel(clampX(x0), clampY(y0+1))
	c11 := pm.GetPixel(clampX(x0+1), clampY(y0+1))

	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}
