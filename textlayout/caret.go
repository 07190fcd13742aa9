package textlayout

import (
	"github.com/slint-ui/slint-sub001/graphics"
)

// CursorRect returns the caret rectangle for a byte offset into the
// layout's text. Width 0 means the caller disabled cursor painting; the
// rectangle is still valid for IME positioning.
func (l *Layout) CursorRect(byteOffset int, cursorWidth float64) graphics.Rect {
	if len(l.Lines) == 0 {
		return graphics.NewRect(0, 0, cursorWidth, l.LineHeight())
	}

	line := &l.Lines[len(l.Lines)-1]
	for i := range l.Lines {
		if byteOffset <= l.Lines[i].ByteEnd {
			line = &l.Lines[i]
			break
		}
	}

	x := line.X + prefixWidth(line, byteOffset)
	return graphics.NewRect(x, line.Y, cursorWidth, l.LineHeight())
}

// prefixWidth sums the advances of the line's clusters that start
// before the byte offset.
func prefixWidth(line *Line, byteOffset int) float64 {
	local := byteOffset - line.ByteStart
	width := 0.0
	for _, g := range line.Glyphs {
		if g.ByteOffset >= local {
			break
		}
		width += g.Advance
	}
	return width
}

// HitTest maps a point in the layout box to a byte offset. Points above
// the text clamp to the first line, points below to the last; within a
// line, a point past the natural text width resolves to the position
// just before the line's trailing break character. The result is always
// a character boundary.
func (l *Layout) HitTest(p graphics.Point) int {
	if len(l.Lines) == 0 {
		return 0
	}

	lineHeight := l.LineHeight()
	index := 0
	if lineHeight > 0 {
		index = int((p.Y - l.Lines[0].Y) / lineHeight)
	}
	if index < 0 {
		index = 0
	}
	if index >= len(l.Lines) {
		index = len(l.Lines) - 1
	}
	line := &l.Lines[index]

	xrel := p.X - line.X
	if xrel >= line.Width {
		return line.ByteEnd
	}
	if xrel <= 0 {
		return line.ByteStart
	}

	x := 0.0
	for _, g := range line.Glyphs {
		if xrel < x+g.Advance/2 {
			return line.ByteStart + g.ByteOffset
		}
		x += g.Advance
	}
	return line.ByteEnd
}
