package textlayout

import (
	"strings"
	"testing"

	"github.com/slint-ui/slint-sub001/graphics"
)

// fixedShaper shapes every rune as one glyph with a constant advance,
// giving layout tests deterministic geometry without a font file.
type fixedShaper struct {
	advance float64
}

func (f fixedShaper) Shape(_ Face, text string) ([]ShapedGlyph, LineMetrics) {
	var glyphs []ShapedGlyph
	for i, r := range text {
		glyphs = append(glyphs, ShapedGlyph{
			GID:        uint32(r),
			ByteOffset: i,
			Advance:    f.advance,
		})
	}
	return glyphs, LineMetrics{Ascent: 8, Descent: 2}
}

func testEngine() *Engine {
	return NewEngine(fixedShaper{advance: 10})
}

func TestTextSizeUnconstrained(t *testing.T) {
	e := testEngine()
	size := e.TextSize(Face{}, "Hello", 0, NoWrap)
	if size.Width != 50 || size.Height != 10 {
		t.Errorf("size = %+v, want 50x10", size)
	}
}

func TestTextSizeMultiline(t *testing.T) {
	e := testEngine()
	size := e.TextSize(Face{}, "ab\ncdef", 0, NoWrap)
	if size.Width != 40 || size.Height != 20 {
		t.Errorf("size = %+v, want 40x20", size)
	}
}

func TestTextSizeWrapped(t *testing.T) {
	e := testEngine()
	size := e.TextSize(Face{}, "Hello World", 60, WordWrap)
	if size.Width != 50 || size.Height != 20 {
		t.Errorf("size = %+v, want 50x20", size)
	}
}

func TestWordWrapBreaksAtSpace(t *testing.T) {
	e := testEngine()
	layout := e.LayoutForPaint(Face{}, "Hello World", PaintOptions{
		Box:  graphics.Size{Width: 60, Height: 100},
		Wrap: WordWrap,
	})
	if len(layout.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(layout.Lines))
	}
	if layout.Lines[0].Text != "Hello" || layout.Lines[1].Text != "World" {
		t.Errorf("lines = %q, %q", layout.Lines[0].Text, layout.Lines[1].Text)
	}
	if layout.Lines[0].ByteEnd != 5 || layout.Lines[0].BreakLen != 1 {
		t.Errorf("first line range end=%d breakLen=%d, want 5 and 1",
			layout.Lines[0].ByteEnd, layout.Lines[0].BreakLen)
	}
	if layout.Lines[1].ByteStart != 6 {
		t.Errorf("second line start = %d, want 6", layout.Lines[1].ByteStart)
	}
}

func TestCharWrapBreaksInsideWord(t *testing.T) {
	e := testEngine()
	layout := e.LayoutForPaint(Face{}, "abcdef", PaintOptions{
		Box:  graphics.Size{Width: 40, Height: 100},
		Wrap: CharWrap,
	})
	if len(layout.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(layout.Lines))
	}
	if layout.Lines[0].Text != "abcd" || layout.Lines[1].Text != "ef" {
		t.Errorf("lines = %q, %q", layout.Lines[0].Text, layout.Lines[1].Text)
	}
}

func TestWordWiderThanLineFallsBackToCharBreak(t *testing.T) {
	e := testEngine()
	layout := e.LayoutForPaint(Face{}, "abcdefgh", PaintOptions{
		Box:  graphics.Size{Width: 50, Height: 100},
		Wrap: WordWrap,
	})
	if len(layout.Lines) != 2 {
		t.Fatalf("got %d lines, want 2: %+v", len(layout.Lines), layout.Lines)
	}
	if layout.Lines[0].Text != "abcde" {
		t.Errorf("first line = %q, want %q", layout.Lines[0].Text, "abcde")
	}
}

func TestElideNoWrap(t *testing.T) {
	e := testEngine()
	layout := e.LayoutForPaint(Face{}, "Hello World", PaintOptions{
		Box:      graphics.Size{Width: 85, Height: 20},
		Wrap:     NoWrap,
		Overflow: OverflowElide,
	})
	if len(layout.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(layout.Lines))
	}
	got := layout.Lines[0].Text
	if got != "Hello W"+Ellipsis {
		t.Errorf("elided text = %q, want %q", got, "Hello W"+Ellipsis)
	}
	if strings.Contains(got, " "+Ellipsis) {
		t.Errorf("elided text %q has a space before the ellipsis", got)
	}
	if layout.Lines[0].Width > 85 {
		t.Errorf("elided width %v exceeds box", layout.Lines[0].Width)
	}
}

func TestElideShortTextUntouched(t *testing.T) {
	e := testEngine()
	layout := e.LayoutForPaint(Face{}, "Hi", PaintOptions{
		Box:      graphics.Size{Width: 100, Height: 20},
		Wrap:     NoWrap,
		Overflow: OverflowElide,
	})
	if layout.Lines[0].Text != "Hi" {
		t.Errorf("short text was elided: %q", layout.Lines[0].Text)
	}
}

func TestElideEachNewlineSeparatedLine(t *testing.T) {
	e := testEngine()
	layout := e.LayoutForPaint(Face{}, "short\nthis one is long", PaintOptions{
		Box:      graphics.Size{Width: 80, Height: 40},
		Wrap:     NoWrap,
		Overflow: OverflowElide,
	})
	if len(layout.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(layout.Lines))
	}
	if layout.Lines[0].Text != "short" {
		t.Errorf("fitting line modified: %q", layout.Lines[0].Text)
	}
	if !strings.HasSuffix(layout.Lines[1].Text, Ellipsis) {
		t.Errorf("overflowing line not elided: %q", layout.Lines[1].Text)
	}
}

func TestElideWrappedHeightOverflow(t *testing.T) {
	e := testEngine()
	layout := e.LayoutForPaint(Face{}, "Hello World Again", PaintOptions{
		Box:      graphics.Size{Width: 60, Height: 25},
		Wrap:     WordWrap,
		Overflow: OverflowElide,
	})
	if len(layout.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(layout.Lines))
	}
	last := layout.Lines[1].Text
	if !strings.HasSuffix(last, Ellipsis) {
		t.Errorf("last line %q does not end with ellipsis", last)
	}
	if layout.Lines[1].Width > 60 {
		t.Errorf("last line width %v exceeds box", layout.Lines[1].Width)
	}
}

func TestAlignment(t *testing.T) {
	e := testEngine()
	tests := []struct {
		name   string
		halign TextHorizontalAlignment
		valign TextVerticalAlignment
		wantX  float64
		wantY  float64
	}{
		{"top left", AlignLeft, AlignTop, 0, 0},
		{"center", AlignCenter, AlignVCenter, 25, 45},
		{"bottom right", AlignRight, AlignBottom, 50, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := e.LayoutForPaint(Face{}, "Hello", PaintOptions{
				Box:             graphics.Size{Width: 100, Height: 100},
				HorizontalAlign: tt.halign,
				VerticalAlign:   tt.valign,
			})
			line := layout.Lines[0]
			if line.X != tt.wantX || line.Y != tt.wantY {
				t.Errorf("line at (%v,%v), want (%v,%v)", line.X, line.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCursorRect(t *testing.T) {
	e := testEngine()
	layout := e.LayoutForPaint(Face{}, "Hello\nWorld", PaintOptions{
		Box: graphics.Size{Width: 100, Height: 30},
	})

	tests := []struct {
		offset int
		wantX  float64
		wantY  float64
	}{
		{0, 0, 0},
		{3, 30, 0},
		{5, 50, 0},
		{6, 0, 10},
		{7, 10, 10},
		{11, 50, 10},
	}
	for _, tt := range tests {
		got := layout.CursorRect(tt.offset, 2)
		if got.X != tt.wantX || got.Y != tt.wantY {
			t.Errorf("CursorRect(%d) at (%v,%v), want (%v,%v)", tt.offset, got.X, got.Y, tt.wantX, tt.wantY)
		}
		if got.W != 2 || got.H != 10 {
			t.Errorf("CursorRect(%d) size %vx%v, want 2x10", tt.offset, got.W, got.H)
		}
	}
}

func TestHitTest(t *testing.T) {
	e := testEngine()
	layout := e.LayoutForPaint(Face{}, "Hello\nWorld", PaintOptions{
		Box: graphics.Size{Width: 100, Height: 30},
	})

	tests := []struct {
		name string
		pt   graphics.Point
		want int
	}{
		{"start of first line", graphics.Pt(0, 5), 0},
		{"middle of cluster rounds to nearest boundary", graphics.Pt(42, 5), 4},
		{"past line width stops before break", graphics.Pt(90, 5), 5},
		{"above text clamps to first line", graphics.Pt(12, -50), 1},
		{"below text clamps to last line", graphics.Pt(12, 200), 7},
		{"past end of last line", graphics.Pt(90, 15), 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := layout.HitTest(tt.pt); got != tt.want {
				t.Errorf("HitTest(%+v) = %d, want %d", tt.pt, got, tt.want)
			}
		})
	}
}
