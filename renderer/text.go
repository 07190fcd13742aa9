package renderer

import (
	"strings"
	"unicode/utf8"

	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/itemtree"
	"github.com/slint-ui/slint-sub001/painter"
	"github.com/slint-ui/slint-sub001/textlayout"
)

// Default highlight colors used when a pre-edit range resets the
// selection colors.
var (
	defaultSelectionBg = graphics.ARGBEncoded(0xff3daee9)
	defaultSelectionFg = graphics.White
)

const defaultPasswordChar = '●'

func (r *Renderer) drawText(item *itemtree.Item, v itemtree.Text) {
	if r.degenerate(item.Bounds) || v.Text == "" {
		return
	}
	face, ok := r.resolveFace(v.Font)
	if !ok {
		return
	}
	r.paintText(item, v, face)
}

func (r *Renderer) paintText(item *itemtree.Item, v itemtree.Text, face textlayout.Face) {
	w, h := item.Bounds.W, item.Bounds.H
	layout := r.engine.LayoutForPaint(face, v.Text, textlayout.PaintOptions{
		Box:             graphics.Size{Width: w, Height: h},
		HorizontalAlign: v.HorizontalAlign,
		VerticalAlign:   v.VerticalAlign,
		Wrap:            v.Wrap,
		Overflow:        v.Overflow,
	})

	fill := graphics.BuildPaint(v.Color, w, h)
	stroke := graphics.BuildPaint(v.Stroke, w, h)

	for i := range layout.Lines {
		line := &layout.Lines[i]
		run := r.lineOutline(face, line, layout.Metrics.Ascent)
		if run == nil || run.IsEmpty() {
			continue
		}
		switch {
		case stroke.IsTransparent():
			if !fill.IsTransparent() {
				r.painter.FillPath(run, fill, painter.FillNonzero)
			}
		case v.StrokeStyle == textlayout.StrokeOutside:
			// A centered stroke of twice the width reaches the
			// requested distance outside the glyph edge; the fill
			// pass then covers the inner half.
			r.painter.StrokePath(run, stroke, painter.DefaultStroke().WithWidth(v.StrokeWidth*2))
			if !fill.IsTransparent() {
				r.painter.FillPath(run, fill, painter.FillNonzero)
			}
		default:
			if !fill.IsTransparent() {
				r.painter.FillPath(run, fill, painter.FillNonzero)
			}
			r.painter.StrokePath(run, stroke, painter.DefaultStroke().WithWidth(v.StrokeWidth))
		}
	}
}

func (r *Renderer) drawTextInput(item *itemtree.Item, v itemtree.TextInput) {
	if r.degenerate(item.Bounds) {
		return
	}
	face, ok := r.resolveFace(v.Font)
	if !ok {
		return
	}
	r.paintTextInput(item, v, face)
}

func (r *Renderer) paintTextInput(item *itemtree.Item, v itemtree.TextInput, face textlayout.Face) {
	w, h := item.Bounds.W, item.Bounds.H

	text := v.Text
	cursor := clampOffset(v.CursorPosition, len(text))
	anchor := clampOffset(v.AnchorPosition, len(text))

	if v.PasswordInput {
		var mapping []int
		text, mapping = maskText(text, v.TextHidingChar)
		cursor = mapping[cursor]
		anchor = mapping[anchor]
	}

	// Highlight range and colors. A pre-edit composition takes priority
	// over the selection and resets the colors to the defaults.
	selStart, selEnd := orderRange(anchor, cursor)
	selBg, selFg := v.SelectionBg, v.SelectionFg
	underline := false
	if v.Preedit != "" {
		text = text[:cursor] + v.Preedit + text[cursor:]
		selStart, selEnd = cursor, cursor
		if v.PreeditCursor >= 0 && v.PreeditSelLen > 0 {
			selStart = cursor + v.PreeditCursor
			selEnd = selStart + v.PreeditSelLen
		}
		selBg, selFg = defaultSelectionBg, defaultSelectionFg
		underline = true
		cursor = clampOffset(cursor+len(v.Preedit), len(text))
	}

	layout := r.engine.LayoutForPaint(face, text, textlayout.PaintOptions{
		Box:             graphics.Size{Width: w, Height: h},
		HorizontalAlign: v.HorizontalAlign,
		VerticalAlign:   v.VerticalAlign,
		Wrap:            v.Wrap,
	})

	fill := graphics.BuildPaint(v.Color, w, h)
	if selEnd > selStart {
		bg := graphics.SolidPaint(selBg)
		for _, rect := range highlightRects(layout, selStart, selEnd) {
			r.painter.FillRect(rect, bg)
			if underline {
				r.painter.FillRect(graphics.NewRect(rect.X, rect.Y+rect.H-1, rect.W, 1), fill)
			}
		}
	}
	selected := graphics.SolidPaint(selFg)
	for i := range layout.Lines {
		line := &layout.Lines[i]
		plain, marked := r.splitLineOutline(face, line, layout.Metrics.Ascent, selStart, selEnd)
		if plain != nil && !plain.IsEmpty() && !fill.IsTransparent() {
			r.painter.FillPath(plain, fill, painter.FillNonzero)
		}
		if marked != nil && !marked.IsEmpty() && !selected.IsTransparent() {
			r.painter.FillPath(marked, selected, painter.FillNonzero)
		}
	}

	if v.CursorVisible && v.CursorWidth > 0 {
		rect := layout.CursorRect(cursor, v.CursorWidth)
		if !rect.IsEmpty() {
			r.painter.FillRect(rect, fill)
		}
	}
}

// lineOutline merges the outlines of a line's glyphs into one path
// positioned at the line origin. A nil font source yields no outlines.
func (r *Renderer) lineOutline(face textlayout.Face, line *textlayout.Line, ascent float64) *painter.Path {
	path, _ := r.appendGlyphOutlines(nil, face, line, ascent, func(int) bool { return true })
	return path
}

// splitLineOutline builds two glyph outline paths, one for glyphs
// outside the byte range [start, end) and one for glyphs inside it.
func (r *Renderer) splitLineOutline(face textlayout.Face, line *textlayout.Line, ascent float64, start, end int) (plain, marked *painter.Path) {
	plain, _ = r.appendGlyphOutlines(nil, face, line, ascent, func(offset int) bool {
		return offset < start || offset >= end
	})
	marked, _ = r.appendGlyphOutlines(nil, face, line, ascent, func(offset int) bool {
		return offset >= start && offset < end
	})
	return plain, marked
}

func (r *Renderer) appendGlyphOutlines(path *painter.Path, face textlayout.Face, line *textlayout.Line, ascent float64, keep func(byteOffset int) bool) (*painter.Path, error) {
	if face.Source == nil {
		return path, nil
	}
	if path == nil {
		path = painter.NewPath()
	}
	pen := line.X
	baseline := line.Y + ascent
	var firstErr error
	for _, g := range line.Glyphs {
		if keep(g.ByteOffset) {
			outline, err := face.Source.GlyphPath(g.GID, face.Size)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
			} else if !outline.IsEmpty() {
				path.AppendPath(outline.Transform(graphics.Translate(pen+g.XOffset, baseline+g.YOffset)))
			}
		}
		pen += g.Advance
	}
	return path, firstErr
}

// highlightRects returns one rectangle per line covering the byte range
// [start, end) in layout coordinates.
func highlightRects(layout *textlayout.Layout, start, end int) []graphics.Rect {
	var rects []graphics.Rect
	lineHeight := layout.LineHeight()
	for i := range layout.Lines {
		line := &layout.Lines[i]
		from := start
		if from < line.ByteStart {
			from = line.ByteStart
		}
		to := end
		if to > line.ByteEnd {
			to = line.ByteEnd
		}
		if to <= from {
			continue
		}
		x0 := line.X + lineRunWidth(line, line.ByteStart, from)
		x1 := line.X + lineRunWidth(line, line.ByteStart, to)
		if x1 > x0 {
			rects = append(rects, graphics.NewRect(x0, line.Y, x1-x0, lineHeight))
		}
	}
	return rects
}

// lineRunWidth sums glyph advances for the byte range [from, to) within
// a line.
func lineRunWidth(line *textlayout.Line, from, to int) float64 {
	width := 0.0
	for _, g := range line.Glyphs {
		if g.ByteOffset >= from && g.ByteOffset < to {
			width += g.Advance
		}
	}
	return width
}

// DrawString paints a single unwrapped line of text at a position,
// using the registry's default face. It backs the metrics overlay.
func (r *Renderer) DrawString(x, y float64, text string, color graphics.Color) {
	face, ok := r.resolveFace(textlayout.FontRequest{})
	if !ok {
		return
	}
	layout := r.engine.LayoutForPaint(face, text, textlayout.PaintOptions{
		Box: graphics.Size{Width: 1 << 20, Height: layoutHeight(r.engine, face)},
	})
	paint := graphics.SolidPaint(color)
	r.painter.Save()
	r.painter.Translate(x, y)
	for i := range layout.Lines {
		line := &layout.Lines[i]
		run := r.lineOutline(face, line, layout.Metrics.Ascent)
		if run != nil && !run.IsEmpty() {
			r.painter.FillPath(run, paint, painter.FillNonzero)
		}
	}
	r.painter.Restore()
}

func layoutHeight(e *textlayout.Engine, face textlayout.Face) float64 {
	return e.TextSize(face, "M", 0, textlayout.NoWrap).Height
}

// maskText replaces every character with the hiding character and
// returns, per byte offset of the original text, the corresponding byte
// offset in the masked text.
func maskText(text string, hidingChar rune) (string, []int) {
	if hidingChar == 0 {
		hidingChar = defaultPasswordChar
	}
	maskLen := utf8.RuneLen(hidingChar)
	mapping := make([]int, len(text)+1)
	masked, runes := 0, 0
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		for b := 0; b < size; b++ {
			mapping[i+b] = masked
		}
		i += size
		masked += maskLen
		runes++
	}
	mapping[len(text)] = masked
	return strings.Repeat(string(hidingChar), runes), mapping
}

func clampOffset(offset, length int) int {
	if offset < 0 {
		return 0
	}
	if offset > length {
		return length
	}
	return offset
}

func orderRange(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
