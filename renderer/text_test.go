package renderer

import (
	"math"
	"testing"

	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/itemtree"
	"github.com/slint-ui/slint-sub001/painter"
	"github.com/slint-ui/slint-sub001/textlayout"
)

// fixedShaper gives every rune a constant advance so highlight and
// cursor geometry is deterministic without a font file. Glyph outlines
// are skipped because the test face has no font source.
type fixedShaper struct {
	advance float64
}

func (f fixedShaper) Shape(_ textlayout.Face, text string) ([]textlayout.ShapedGlyph, textlayout.LineMetrics) {
	var glyphs []textlayout.ShapedGlyph
	for i := range text {
		glyphs = append(glyphs, textlayout.ShapedGlyph{ByteOffset: i, Advance: f.advance})
	}
	return glyphs, textlayout.LineMetrics{Ascent: 8, Descent: 2}
}

func newTextRenderer(w, h int) (*Renderer, *graphics.Pixmap) {
	target := graphics.NewPixmap(w, h)
	p := painter.NewSoftwarePainter(target, 1)
	r := New(p, WithTextEngine(textlayout.NewEngine(fixedShaper{advance: 10})))
	return r, target
}

func inputItem(w, h float64) *itemtree.Item {
	return &itemtree.Item{Bounds: graphics.NewRect(0, 0, w, h)}
}

func TestTextInputSelectionHighlight(t *testing.T) {
	r, target := newTextRenderer(100, 10)
	r.paintTextInput(inputItem(100, 10), itemtree.TextInput{
		Text:           "Hello",
		Color:          graphics.Solid(graphics.Black),
		SelectionBg:    blue,
		SelectionFg:    graphics.White,
		CursorPosition: 4,
		AnchorPosition: 1,
	}, textlayout.Face{})

	if got := target.GetPixel(15, 5); !colorNear(got, blue, 0.02) {
		t.Errorf("pixel inside selection = %+v, want selection background", got)
	}
	if got := target.GetPixel(45, 5); got.A != 0 {
		t.Errorf("pixel past selection = %+v, want untouched", got)
	}
}

func TestTextInputCursorMarker(t *testing.T) {
	r, target := newTextRenderer(100, 10)
	input := itemtree.TextInput{
		Text:           "Hello",
		Color:          graphics.Solid(graphics.Black),
		CursorPosition: 2,
		AnchorPosition: 2,
		CursorWidth:    2,
		CursorVisible:  true,
	}
	r.paintTextInput(inputItem(100, 10), input, textlayout.Face{})

	if got := target.GetPixel(21, 5); !colorNear(got, graphics.Black, 0.02) {
		t.Errorf("cursor pixel = %+v, want text color", got)
	}

	r2, target2 := newTextRenderer(100, 10)
	input.CursorVisible = false
	r2.paintTextInput(inputItem(100, 10), input, textlayout.Face{})
	if got := target2.GetPixel(21, 5); got.A != 0 {
		t.Errorf("hidden cursor pixel = %+v, want untouched", got)
	}
}

func TestTextInputZeroCursorWidthDisablesMarker(t *testing.T) {
	r, target := newTextRenderer(100, 10)
	r.paintTextInput(inputItem(100, 10), itemtree.TextInput{
		Text:           "Hi",
		Color:          graphics.Solid(graphics.Black),
		CursorPosition: 1,
		AnchorPosition: 1,
		CursorVisible:  true,
	}, textlayout.Face{})

	for x := 0; x < 100; x++ {
		if target.GetPixel(x, 5).A != 0 {
			t.Fatalf("pixel (%d,5) drawn with cursor width 0", x)
		}
	}
}

func TestTextInputPreeditTakesPriorityOverSelection(t *testing.T) {
	r, target := newTextRenderer(100, 10)
	r.paintTextInput(inputItem(100, 10), itemtree.TextInput{
		Text:  "ab",
		Color: graphics.Solid(graphics.Black),
		// An explicit selection that the composition must override.
		AnchorPosition: 0,
		CursorPosition: 2,
		SelectionBg:    red,
		Preedit:        "xy",
		PreeditCursor:  0,
		PreeditSelLen:  2,
	}, textlayout.Face{})

	// The pre-edit range covers the composed characters at x 20..40
	// with the default highlight color, not the configured one.
	if got := target.GetPixel(25, 5); !colorNear(got, defaultSelectionBg, 0.02) {
		t.Errorf("pre-edit pixel = %+v, want default selection background", got)
	}
	if got := target.GetPixel(5, 5); colorNear(got, red, 0.02) {
		t.Error("explicit selection painted although a pre-edit is active")
	}
	// Forced underline in the text color along the range's bottom row.
	if got := target.GetPixel(25, 9); !colorNear(got, graphics.Black, 0.05) {
		t.Errorf("underline pixel = %+v, want text color", got)
	}
}

func TestMaskText(t *testing.T) {
	masked, mapping := maskText("abé", '*')
	if masked != "***" {
		t.Errorf("masked = %q, want %q", masked, "***")
	}
	// "é" is two bytes; both map to the start of its mask character.
	wantMapping := []int{0, 1, 2, 2, 3}
	if len(mapping) != len(wantMapping) {
		t.Fatalf("mapping length = %d, want %d", len(mapping), len(wantMapping))
	}
	for i, want := range wantMapping {
		if mapping[i] != want {
			t.Errorf("mapping[%d] = %d, want %d", i, mapping[i], want)
		}
	}
}

func TestMaskTextDefaultHidingChar(t *testing.T) {
	masked, _ := maskText("abc", 0)
	if masked != "●●●" {
		t.Errorf("masked = %q, want three default mask characters", masked)
	}
}

func TestHighlightRectsSpanLines(t *testing.T) {
	engine := textlayout.NewEngine(fixedShaper{advance: 10})
	layout := engine.LayoutForPaint(textlayout.Face{}, "Hello\nWorld", textlayout.PaintOptions{
		Box: graphics.Size{Width: 100, Height: 20},
	})

	rects := highlightRects(layout, 2, 8)
	if len(rects) != 2 {
		t.Fatalf("got %d rects, want 2", len(rects))
	}
	want0 := graphics.NewRect(20, 0, 30, 10)
	want1 := graphics.NewRect(0, 10, 20, 10)
	if !rectNear(rects[0], want0) {
		t.Errorf("first rect = %+v, want %+v", rects[0], want0)
	}
	if !rectNear(rects[1], want1) {
		t.Errorf("second rect = %+v, want %+v", rects[1], want1)
	}
}

func rectNear(got, want graphics.Rect) bool {
	const tol = 1e-9
	return math.Abs(got.X-want.X) <= tol && math.Abs(got.Y-want.Y) <= tol &&
		math.Abs(got.W-want.W) <= tol && math.Abs(got.H-want.H) <= tol
}

func TestDrawStringWithoutFontsIsNoop(t *testing.T) {
	r, target := newTestRenderer(40, 10)
	r.DrawString(0, 0, "fps: 60", graphics.Black)

	for x := 0; x < 40; x++ {
		if target.GetPixel(x, 5).A != 0 {
			t.Fatalf("pixel (%d,5) drawn without a registered font", x)
		}
	}
}

func TestTextWithoutFontsIsNoop(t *testing.T) {
	r, target := newTestRenderer(40, 20)
	tree := itemtree.NewTree()
	tree.Add(-1, graphics.NewRect(0, 0, 40, 20), itemtree.Text{
		Text:  "hi",
		Color: graphics.Solid(graphics.Black),
	})
	r.RenderTree(tree)

	for x := 0; x < 40; x++ {
		if target.GetPixel(x, 10).A != 0 {
			t.Fatalf("pixel (%d,10) drawn without a registered font", x)
		}
	}
}
