package painter

import (
	"math"

	"github.com/slint-ui/slint-sub001/graphics"
)

// FillRule determines how self-intersecting paths are filled.
type FillRule uint8

const (
	// FillNonzero fills points with a nonzero winding number.
	FillNonzero FillRule = iota
	// FillEvenOdd fills points crossed an odd number of times.
	FillEvenOdd
)

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point graphics.Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point graphics.Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control graphics.Point
	Point   graphics.Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 graphics.Point
	Control2 graphics.Point
	Point    graphics.Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path in logical coordinates.
type Path struct {
	elements []PathElement
	start    graphics.Point
	current  graphics.Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := graphics.Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := graphics.Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.elements = append(p.elements, QuadTo{Control: graphics.Pt(cx, cy), Point: graphics.Pt(x, y)})
	p.current = graphics.Pt(x, y)
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{
		Control1: graphics.Pt(c1x, c1y),
		Control2: graphics.Pt(c2x, c2y),
		Point:    graphics.Pt(x, y),
	})
	p.current = graphics.Pt(x, y)
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elements) == 0
}

// AppendPath appends all subpaths of other to p.
func (p *Path) AppendPath(other *Path) {
	if other.IsEmpty() {
		return
	}
	p.elements = append(p.elements, other.elements...)
	p.start = other.start
	p.current = other.current
}

// Transform returns a copy of the path with all points transformed.
func (p *Path) Transform(m graphics.Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(r graphics.Rect) {
	p.MoveTo(r.X, r.Y)
	p.LineTo(r.Right(), r.Y)
	p.LineTo(r.Right(), r.Bottom())
	p.LineTo(r.X, r.Bottom())
	p.Close()
}

// RoundedRectangle adds a rectangle with per-corner radii. Each corner's
// radius is clamped to half the respective side lengths; square corners
// (radius ~0) connect with straight lines, rounded ones with quarter
// arcs sweeping 90 degrees.
func (p *Path) RoundedRectangle(r graphics.Rect, radii graphics.CornerRadii) {
	radii = radii.ClampedToRect(r)
	if radii.IsZero() {
		p.Rectangle(r)
		return
	}
	tl, tr := radii.TopLeft, radii.TopRight
	br, bl := radii.BottomRight, radii.BottomLeft

	p.MoveTo(r.X+tl, r.Y)
	p.LineTo(r.Right()-tr, r.Y)
	if tr > 0 {
		p.arcSegment(r.Right()-tr, r.Y+tr, tr, -math.Pi/2, 0)
	}
	p.LineTo(r.Right(), r.Bottom()-br)
	if br > 0 {
		p.arcSegment(r.Right()-br, r.Bottom()-br, br, 0, math.Pi/2)
	}
	p.LineTo(r.X+bl, r.Bottom())
	if bl > 0 {
		p.arcSegment(r.X+bl, r.Bottom()-bl, bl, math.Pi/2, math.Pi)
	}
	p.LineTo(r.X, r.Y+tl)
	if tl > 0 {
		p.arcSegment(r.X+tl, r.Y+tl, tl, math.Pi, 3*math.Pi/2)
	}
	p.Close()
}

// arcSegment adds a single circular arc segment of at most 90 degrees as
// a cubic Bezier approximation.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1 := cx + r*cos1
	y1 := cy + r*sin1
	x2 := cx + r*cos2
	y2 := cy + r*sin2

	c1x := x1 - alpha*r*sin1
	c1y := y1 + alpha*r*cos1
	c2x := x2 + alpha*r*sin2
	c2y := y2 - alpha*r*cos2

	if len(p.elements) == 0 {
		p.MoveTo(x1, y1)
	}
	p.CubicTo(c1x, c1y, c2x, c2y, x2, y2)
}

// Flatten converts the path to polylines, one per subpath, approximating
// curves with line segments. Used by the stroker and the even-odd
// rasterizer. The closed flag per subpath reports whether it ended with
// an explicit Close.
func (p *Path) Flatten() (subpaths [][]graphics.Point, closed []bool) {
	var cur []graphics.Point
	var start graphics.Point
	flush := func(isClosed bool) {
		if len(cur) >= 2 {
			subpaths = append(subpaths, cur)
			closed = append(closed, isClosed)
		}
		cur = nil
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush(false)
			start = e.Point
			cur = []graphics.Point{e.Point}
		case LineTo:
			cur = append(cur, e.Point)
		case QuadTo:
			if len(cur) == 0 {
				cur = []graphics.Point{start}
			}
			from := cur[len(cur)-1]
			cur = appendQuad(cur, from, e.Control, e.Point)
		case CubicTo:
			if len(cur) == 0 {
				cur = []graphics.Point{start}
			}
			from := cur[len(cur)-1]
			cur = appendCubic(cur, from, e.Control1, e.Control2, e.Point)
		case Close:
			if len(cur) > 0 {
				cur = append(cur, start)
				flush(true)
			}
		}
	}
	flush(false)
	return subpaths, closed
}

// flattenSegments is the number of line segments per curve. Fixed rather
// than adaptive: painting happens at UI scale where this is visually
// exact, and it keeps the flattening allocation-predictable.
const flattenSegments = 16

func appendQuad(dst []graphics.Point, from, ctrl, to graphics.Point) []graphics.Point {
	for i := 1; i <= flattenSegments; i++ {
		t := float64(i) / flattenSegments
		mt := 1 - t
		x := mt*mt*from.X + 2*mt*t*ctrl.X + t*t*to.X
		y := mt*mt*from.Y + 2*mt*t*ctrl.Y + t*t*to.Y
		dst = append(dst, graphics.Pt(x, y))
	}
	return dst
}

func appendCubic(dst []graphics.Point, from, c1, c2, to graphics.Point) []graphics.Point {
	for i := 1; i <= flattenSegments; i++ {
		t := float64(i) / flattenSegments
		mt := 1 - t
		x := mt*mt*mt*from.X + 3*mt*mt*t*c1.X + 3*mt*t*t*c2.X + t*t*t*to.X
		y := mt*mt*mt*from.Y + 3*mt*mt*t*c1.Y + 3*mt*t*t*c2.Y + t*t*t*to.Y
		dst = append(dst, graphics.Pt(x, y))
	}
	return dst
}

// Bounds returns the control-point bounding box of the path. It may be
// slightly larger than the tight bounds for curved paths.
func (p *Path) Bounds() graphics.Rect {
	if len(p.elements) == 0 {
		return graphics.Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(pt graphics.Point) {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if minX > maxX || minY > maxY {
		return graphics.Rect{}
	}
	return graphics.NewRect(minX, minY, maxX-minX, maxY-minY)
}
