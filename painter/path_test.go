package painter

import (
	"math"
	"testing"

	"github.com/slint-ui/slint-sub001/graphics"
)

func TestPathBounds(t *testing.T) {
	p := NewPath()
	p.MoveTo(10, 20)
	p.LineTo(30, 20)
	p.LineTo(30, 50)
	p.Close()

	got := p.Bounds()
	want := graphics.NewRect(10, 20, 20, 30)
	if !rectNear(got, want, 1e-9) {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
}

func TestPathFlattenClosesSubpaths(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()
	p.MoveTo(20, 20)
	p.LineTo(30, 20)

	subpaths, closed := p.Flatten()
	if len(subpaths) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(subpaths))
	}
	if !closed[0] {
		t.Error("first subpath not marked closed")
	}
	if closed[1] {
		t.Error("open subpath marked closed")
	}
	first := subpaths[0]
	if first[len(first)-1] != first[0] {
		t.Error("closed subpath does not end at its start point")
	}
}

func TestRoundedRectangleStaysInBounds(t *testing.T) {
	tests := []struct {
		name  string
		rect  graphics.Rect
		radii graphics.CornerRadii
	}{
		{"uniform", graphics.NewRect(0, 0, 100, 50), graphics.UniformRadii(10)},
		{"oversized radius clamped", graphics.NewRect(0, 0, 20, 20), graphics.UniformRadii(50)},
		{"asymmetric", graphics.NewRect(5, 5, 60, 40), graphics.CornerRadii{TopLeft: 20, BottomRight: 8}},
		{"square corners", graphics.NewRect(0, 0, 10, 10), graphics.CornerRadii{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			p.RoundedRectangle(tt.rect, tt.radii)
			b := p.Bounds()
			const tol = 1e-6
			if b.X < tt.rect.X-tol || b.Y < tt.rect.Y-tol ||
				b.Right() > tt.rect.Right()+tol || b.Bottom() > tt.rect.Bottom()+tol {
				t.Errorf("path bounds %+v exceed rect %+v", b, tt.rect)
			}
			if b.IsEmpty() {
				t.Error("rounded rectangle produced empty path")
			}
		})
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2)
	p.QuadraticTo(3, 4, 5, 6)

	moved := p.Transform(graphics.Translate(10, 20))
	elems := moved.Elements()
	if len(elems) != 2 {
		t.Fatalf("got %d elements, want 2", len(elems))
	}
	if m, ok := elems[0].(MoveTo); !ok || m.Point != graphics.Pt(11, 22) {
		t.Errorf("MoveTo = %+v, want (11,22)", elems[0])
	}
	if q, ok := elems[1].(QuadTo); !ok || q.Control != graphics.Pt(13, 24) || q.Point != graphics.Pt(15, 26) {
		t.Errorf("QuadTo = %+v, want control (13,24) point (15,26)", elems[1])
	}
}

func TestArcSegmentEndpoints(t *testing.T) {
	// A quarter arc from angle 0 to pi/2 around (10, 10) with radius 5
	// must start at (15, 10) and end at (10, 15).
	p := NewPath()
	p.MoveTo(15, 10)
	p.arcSegment(10, 10, 5, 0, math.Pi/2)

	elems := p.Elements()
	last, ok := elems[len(elems)-1].(CubicTo)
	if !ok {
		t.Fatalf("last element %T, want CubicTo", elems[len(elems)-1])
	}
	if math.Abs(last.Point.X-10) > 1e-9 || math.Abs(last.Point.Y-15) > 1e-9 {
		t.Errorf("arc end = %+v, want (10,15)", last.Point)
	}
}
