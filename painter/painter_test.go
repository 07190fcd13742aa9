package painter

import (
	"math"
	"testing"

	"github.com/slint-ui/slint-sub001/graphics"
)

func newTestPainter(w, h int, scale float64) (*SoftwarePainter, *graphics.Pixmap) {
	pm := graphics.NewPixmap(w, h)
	return NewSoftwarePainter(pm, scale), pm
}

func colorNear(a, b graphics.Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol &&
		math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol &&
		math.Abs(a.A-b.A) <= tol
}

func rectNear(a, b graphics.Rect, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.W-b.W) <= tol && math.Abs(a.H-b.H) <= tol
}

func TestFillRectSolid(t *testing.T) {
	p, pm := newTestPainter(20, 20, 1)
	red := graphics.Color{R: 1, A: 1}
	p.FillRect(graphics.NewRect(0, 0, 10, 10), graphics.SolidPaint(red))

	if got := pm.GetPixel(5, 5); !colorNear(got, red, 0.01) {
		t.Errorf("inside pixel = %+v, want red", got)
	}
	if got := pm.GetPixel(15, 5); got.A != 0 {
		t.Errorf("outside pixel = %+v, want transparent", got)
	}
	if got := pm.GetPixel(5, 15); got.A != 0 {
		t.Errorf("outside pixel = %+v, want transparent", got)
	}
}

func TestFillRectScaled(t *testing.T) {
	p, pm := newTestPainter(40, 40, 2)
	blue := graphics.Color{B: 1, A: 1}
	p.FillRect(graphics.NewRect(0, 0, 10, 10), graphics.SolidPaint(blue))

	// Logical 10x10 covers device 20x20.
	if got := pm.GetPixel(15, 15); !colorNear(got, blue, 0.01) {
		t.Errorf("device pixel (15,15) = %+v, want blue", got)
	}
	if got := pm.GetPixel(25, 15); got.A != 0 {
		t.Errorf("device pixel (25,15) = %+v, want transparent", got)
	}
}

func TestFillRectOpacity(t *testing.T) {
	p, pm := newTestPainter(10, 10, 1)
	p.ApplyOpacity(0.5)
	p.FillRect(graphics.NewRect(0, 0, 10, 10), graphics.SolidPaint(graphics.Color{R: 1, A: 1}))

	got := pm.GetPixel(5, 5)
	if math.Abs(got.A-0.5) > 0.02 {
		t.Errorf("alpha = %v, want about 0.5", got.A)
	}
}

func TestAdjustRectAndBorderForInnerDrawing(t *testing.T) {
	tests := []struct {
		name        string
		rect        graphics.Rect
		borderWidth float64
		wantRect    graphics.Rect
		wantBorder  float64
	}{
		{
			name:        "normal border",
			rect:        graphics.NewRect(10, 10, 80, 60),
			borderWidth: 4,
			wantRect:    graphics.NewRect(12, 12, 76, 56),
			wantBorder:  4,
		},
		{
			name:        "border capped at half width",
			rect:        graphics.NewRect(0, 0, 10, 100),
			borderWidth: 20,
			wantRect:    graphics.NewRect(2.5, 2.5, 5, 95),
			wantBorder:  5,
		},
		{
			name:        "zero border",
			rect:        graphics.NewRect(5, 5, 20, 20),
			borderWidth: 0,
			wantRect:    graphics.NewRect(5, 5, 20, 20),
			wantBorder:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRect, _, gotBorder := adjustRectAndBorderForInnerDrawing(tt.rect, graphics.CornerRadii{}, tt.borderWidth)
			if !rectNear(gotRect, tt.wantRect, 1e-9) {
				t.Errorf("rect = %+v, want %+v", gotRect, tt.wantRect)
			}
			if math.Abs(gotBorder-tt.wantBorder) > 1e-9 {
				t.Errorf("border = %v, want %v", gotBorder, tt.wantBorder)
			}
		})
	}
}

func TestDrawRectFillAndBorder(t *testing.T) {
	p, pm := newTestPainter(100, 100, 1)
	fill := graphics.Color{G: 1, A: 1}
	border := graphics.Color{R: 1, A: 1}
	p.DrawRect(graphics.NewRect(10, 10, 80, 60), graphics.CornerRadii{},
		graphics.SolidPaint(fill), graphics.SolidPaint(border), 4)

	if got := pm.GetPixel(50, 40); !colorNear(got, fill, 0.01) {
		t.Errorf("center pixel = %+v, want fill color", got)
	}
	// The border straddles the rectangle edge: it covers [10, 14] on the
	// left side.
	if got := pm.GetPixel(11, 40); !colorNear(got, border, 0.01) {
		t.Errorf("border pixel = %+v, want border color", got)
	}
	if got := pm.GetPixel(8, 40); got.A != 0 {
		t.Errorf("pixel outside rect = %+v, want transparent", got)
	}
}

func TestFillPathEvenOddHole(t *testing.T) {
	p, pm := newTestPainter(20, 20, 1)
	path := NewPath()
	path.Rectangle(graphics.NewRect(0, 0, 20, 20))
	path.Rectangle(graphics.NewRect(5, 5, 10, 10))
	p.FillPath(path, graphics.SolidPaint(graphics.Color{R: 1, A: 1}), FillEvenOdd)

	if got := pm.GetPixel(10, 10); got.A != 0 {
		t.Errorf("hole pixel = %+v, want transparent", got)
	}
	if got := pm.GetPixel(2, 10); got.A == 0 {
		t.Error("ring pixel is transparent, want filled")
	}
}

func TestFillPathNonzeroNoHole(t *testing.T) {
	p, pm := newTestPainter(20, 20, 1)
	path := NewPath()
	path.Rectangle(graphics.NewRect(0, 0, 20, 20))
	path.Rectangle(graphics.NewRect(5, 5, 10, 10))
	p.FillPath(path, graphics.SolidPaint(graphics.Color{R: 1, A: 1}), FillNonzero)

	if got := pm.GetPixel(10, 10); got.A == 0 {
		t.Error("inner pixel is transparent, want filled under nonzero rule")
	}
}

func TestStrokePathWidth(t *testing.T) {
	p, pm := newTestPainter(20, 20, 1)
	path := NewPath()
	path.MoveTo(2, 10)
	path.LineTo(18, 10)
	p.StrokePath(path, graphics.SolidPaint(graphics.Color{B: 1, A: 1}), DefaultStroke().WithWidth(4))

	// A 4 wide stroke along y=10 covers rows 8 to 12.
	if got := pm.GetPixel(10, 9); got.A == 0 {
		t.Error("pixel inside stroke is transparent")
	}
	if got := pm.GetPixel(10, 11); got.A == 0 {
		t.Error("pixel inside stroke is transparent")
	}
	if got := pm.GetPixel(10, 5); got.A != 0 {
		t.Errorf("pixel outside stroke = %+v, want transparent", got)
	}
}

func TestCombineClipRestrictsDrawing(t *testing.T) {
	p, pm := newTestPainter(40, 40, 1)
	if !p.CombineClip(graphics.NewRect(10, 10, 20, 20), graphics.CornerRadii{}, 0) {
		t.Fatal("clip reported empty, want visible")
	}
	p.FillRect(graphics.NewRect(0, 0, 40, 40), graphics.SolidPaint(graphics.Color{R: 1, A: 1}))

	if got := pm.GetPixel(20, 20); got.A == 0 {
		t.Error("pixel inside clip is transparent")
	}
	if got := pm.GetPixel(5, 5); got.A != 0 {
		t.Errorf("pixel outside clip = %+v, want transparent", got)
	}
}

func TestCombineClipIdempotent(t *testing.T) {
	clipRect := graphics.NewRect(8, 8, 16, 16)
	radii := graphics.UniformRadii(4)

	render := func(applications int) *graphics.Pixmap {
		p, pm := newTestPainter(32, 32, 1)
		for i := 0; i < applications; i++ {
			if !p.CombineClip(clipRect, radii, 0) {
				t.Fatal("clip reported empty, want visible")
			}
		}
		p.FillRect(graphics.NewRect(0, 0, 32, 32), graphics.SolidPaint(graphics.Color{G: 1, A: 1}))
		return pm
	}

	once := render(1)
	twice := render(2)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if once.GetPixel(x, y) != twice.GetPixel(x, y) {
				t.Fatalf("pixel (%d,%d) differs after repeated identical clip", x, y)
			}
		}
	}
}

func TestCombineClipEmptyIntersection(t *testing.T) {
	p, _ := newTestPainter(100, 100, 1)
	if !p.CombineClip(graphics.NewRect(0, 0, 10, 10), graphics.CornerRadii{}, 0) {
		t.Fatal("first clip reported empty")
	}
	if p.CombineClip(graphics.NewRect(50, 50, 10, 10), graphics.CornerRadii{}, 0) {
		t.Error("disjoint clip reported visible, want empty")
	}
}

func TestCombineClipRoundedCorners(t *testing.T) {
	p, pm := newTestPainter(40, 40, 1)
	p.CombineClip(graphics.NewRect(5, 5, 30, 30), graphics.UniformRadii(10), 0)
	p.FillRect(graphics.NewRect(0, 0, 40, 40), graphics.SolidPaint(graphics.Color{B: 1, A: 1}))

	// The corner pixel lies outside the rounded clip, the center inside.
	if got := pm.GetPixel(6, 6); got.A != 0 {
		t.Errorf("corner pixel = %+v, want clipped out", got)
	}
	if got := pm.GetPixel(20, 20); got.A == 0 {
		t.Error("center pixel is transparent, want filled")
	}
	// Edge midpoints are inside the rounded rect.
	if got := pm.GetPixel(20, 6); got.A == 0 {
		t.Error("top edge pixel is transparent, want filled")
	}
}

func TestClipBoundsLogicalCoordinates(t *testing.T) {
	p, _ := newTestPainter(200, 200, 2)
	p.CombineClip(graphics.NewRect(10, 10, 50, 50), graphics.CornerRadii{}, 0)

	got := p.ClipBounds()
	want := graphics.NewRect(10, 10, 50, 50)
	if !rectNear(got, want, 1e-9) {
		t.Errorf("ClipBounds = %+v, want %+v", got, want)
	}
}

func TestClipBoundsFollowsTranslation(t *testing.T) {
	p, _ := newTestPainter(100, 100, 1)
	p.CombineClip(graphics.NewRect(10, 10, 40, 40), graphics.CornerRadii{}, 0)
	p.Translate(10, 10)

	got := p.ClipBounds()
	want := graphics.NewRect(0, 0, 40, 40)
	if !rectNear(got, want, 1e-9) {
		t.Errorf("ClipBounds after translate = %+v, want %+v", got, want)
	}
}

func TestSaveRestore(t *testing.T) {
	p, pm := newTestPainter(40, 40, 1)
	p.Save()
	p.Translate(10, 10)
	p.ApplyOpacity(0.5)
	p.CombineClip(graphics.NewRect(0, 0, 5, 5), graphics.CornerRadii{}, 0)
	p.Restore()

	// Clip, transform and opacity are all restored.
	p.FillRect(graphics.NewRect(0, 0, 40, 40), graphics.SolidPaint(graphics.Color{R: 1, A: 1}))
	got := pm.GetPixel(30, 30)
	if got.A < 0.99 {
		t.Errorf("pixel after restore = %+v, want fully opaque fill", got)
	}
}

func TestRestorePastBottomIsNoop(t *testing.T) {
	p, _ := newTestPainter(10, 10, 1)
	p.Restore()
	p.Restore()
	if got := p.ClipBounds(); !rectNear(got, graphics.NewRect(0, 0, 10, 10), 1e-9) {
		t.Errorf("ClipBounds = %+v after excess restores", got)
	}
}

func TestDrawPixmapNearest(t *testing.T) {
	src := graphics.NewPixmap(2, 2)
	red := graphics.Color{R: 1, A: 1}
	green := graphics.Color{G: 1, A: 1}
	blue := graphics.Color{B: 1, A: 1}
	white := graphics.Color{R: 1, G: 1, B: 1, A: 1}
	src.SetPixel(0, 0, red)
	src.SetPixel(1, 0, green)
	src.SetPixel(0, 1, blue)
	src.SetPixel(1, 1, white)

	p, pm := newTestPainter(4, 4, 1)
	p.DrawPixmap(graphics.NewRect(0, 0, 4, 4), src, graphics.NewRect(0, 0, 2, 2), false)

	tests := []struct {
		x, y int
		want graphics.Color
	}{
		{0, 0, red}, {1, 1, red},
		{2, 0, green}, {3, 1, green},
		{0, 2, blue}, {1, 3, blue},
		{2, 2, white}, {3, 3, white},
	}
	for _, tt := range tests {
		if got := pm.GetPixel(tt.x, tt.y); !colorNear(got, tt.want, 0.01) {
			t.Errorf("pixel (%d,%d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawPixmapSourceRect(t *testing.T) {
	src := graphics.NewPixmap(4, 4)
	marker := graphics.Color{R: 1, A: 1}
	for y := 2; y < 4; y++ {
		for x := 2; x < 4; x++ {
			src.SetPixel(x, y, marker)
		}
	}

	p, pm := newTestPainter(2, 2, 1)
	p.DrawPixmap(graphics.NewRect(0, 0, 2, 2), src, graphics.NewRect(2, 2, 2, 2), false)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := pm.GetPixel(x, y); !colorNear(got, marker, 0.01) {
				t.Errorf("pixel (%d,%d) = %+v, want marker from source quadrant", x, y, got)
			}
		}
	}
}

func TestFillPathLinearGradient(t *testing.T) {
	p, pm := newTestPainter(20, 10, 1)
	brush := graphics.LinearGradientBrush{
		Angle: 90, // left to right
		Stops: []graphics.GradientStop{
			{Position: 0, Color: graphics.Black},
			{Position: 1, Color: graphics.White},
		},
	}
	paint := graphics.BuildPaint(brush, 20, 10)
	p.FillRect(graphics.NewRect(0, 0, 20, 10), paint)

	left := pm.GetPixel(1, 5)
	right := pm.GetPixel(18, 5)
	if left.R >= right.R {
		t.Errorf("gradient not increasing left to right: left %v right %v", left.R, right.R)
	}
	if left.A == 0 || right.A == 0 {
		t.Error("gradient pixels transparent, want opaque")
	}
}
