package graphics

import "math"

// Point represents a 2D point in logical coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size represents a 2D extent in logical coordinates.
type Size struct {
	Width, Height float64
}

// IsEmpty reports whether either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect represents a rectangle by origin and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{Width: r.W, Height: r.H} }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Translated returns the rectangle moved by (dx, dy).
func (r Rect) Translated(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Inset returns the rectangle shrunk by d on every side.
// A negative d grows the rectangle.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rectangle if they don't intersect.
func (r Rect) Intersect(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.Right(), other.Right())
	y1 := math.Min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle containing both rectangles.
// An empty rectangle does not contribute.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.Right(), other.Right())
	y1 := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// CornerRadii holds one radius per rectangle corner, clockwise from
// top-left. Radii may be asymmetric; 0 means a square corner.
type CornerRadii struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// UniformRadii creates CornerRadii with the same radius on all corners.
func UniformRadii(r float64) CornerRadii {
	return CornerRadii{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// IsZero reports whether every corner is square.
func (c CornerRadii) IsZero() bool {
	return c.TopLeft <= 0 && c.TopRight <= 0 && c.BottomRight <= 0 && c.BottomLeft <= 0
}

// IsUniform reports whether all four corners share one radius.
func (c CornerRadii) IsUniform() bool {
	return c.TopLeft == c.TopRight && c.TopRight == c.BottomRight && c.BottomRight == c.BottomLeft
}

// Max returns the largest corner radius.
func (c CornerRadii) Max() float64 {
	m := c.TopLeft
	for _, r := range [3]float64{c.TopRight, c.BottomRight, c.BottomLeft} {
		if r > m {
			m = r
		}
	}
	return m
}

// Inset returns the radii reduced by d, clamped at zero. Used when a clip
// or stroke moves to the inside edge of a border.
func (c CornerRadii) Inset(d float64) CornerRadii {
	return CornerRadii{
		TopLeft:     math.Max(0, c.TopLeft-d),
		TopRight:    math.Max(0, c.TopRight-d),
		BottomRight: math.Max(0, c.BottomRight-d),
		BottomLeft:  math.Max(0, c.BottomLeft-d),
	}
}

// ClampedToRect clamps each corner radius to half the rectangle's side
// lengths so adjacent arcs never overlap.
func (c CornerRadii) ClampedToRect(r Rect) CornerRadii {
	half := math.Min(r.W, r.H) / 2
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > half {
			return half
		}
		return v
	}
	return CornerRadii{
		TopLeft:     clamp(c.TopLeft),
		TopRight:    clamp(c.TopRight),
		BottomRight: clamp(c.BottomRight),
		BottomLeft:  clamp(c.BottomLeft),
	}
}
