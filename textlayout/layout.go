package textlayout

import (
	"math"
	"strings"

	"github.com/slint-ui/slint-sub001/graphics"
)

// Ellipsis is appended to elided text.
const Ellipsis = "…"

// Line is one visual line of a layout. ByteStart and ByteEnd delimit
// the line's range in the source string, excluding the break character
// that ended it; BreakLen is the byte length of that break character.
type Line struct {
	Glyphs    []ShapedGlyph
	Text      string
	ByteStart int
	ByteEnd   int
	BreakLen  int
	X, Y      float64
	Width     float64
	Elided    bool
}

// Layout is the result of breaking and positioning text in a box.
type Layout struct {
	Text    string
	Lines   []Line
	Metrics LineMetrics
	Box     graphics.Size
}

// LineHeight returns the vertical advance from one line to the next.
func (l *Layout) LineHeight() float64 {
	return l.Metrics.Height()
}

// PaintOptions positions text within a box for painting.
type PaintOptions struct {
	Box             graphics.Size
	HorizontalAlign TextHorizontalAlignment
	VerticalAlign   TextVerticalAlignment
	Wrap            TextWrap
	Overflow        TextOverflow
}

// Engine breaks, elides and positions text using a Shaper.
type Engine struct {
	shaper Shaper
}

// NewEngine creates a layout engine over the given shaper.
func NewEngine(shaper Shaper) *Engine {
	return &Engine{shaper: shaper}
}

// DefaultEngine creates an engine backed by the HarfBuzz shaper.
func DefaultEngine() *Engine {
	return NewEngine(NewHarfbuzzTextShaper())
}

// TextSize measures text, optionally constrained to a maximum width.
// Pass maxWidth <= 0 for an unconstrained measurement.
func (e *Engine) TextSize(face Face, text string, maxWidth float64, wrap TextWrap) graphics.Size {
	lines, metrics := e.breakLines(face, text, maxWidth, wrap)
	width := 0.0
	for _, line := range lines {
		width = math.Max(width, line.Width)
	}
	return graphics.Size{Width: width, Height: float64(len(lines)) * metrics.Height()}
}

// LayoutForPaint breaks text into positioned lines within the box,
// honoring wrap, overflow and 2D alignment.
func (e *Engine) LayoutForPaint(face Face, text string, opts PaintOptions) *Layout {
	wrapWidth := 0.0
	if opts.Wrap != NoWrap {
		wrapWidth = opts.Box.Width
	}
	lines, metrics := e.breakLines(face, text, wrapWidth, opts.Wrap)

	if opts.Overflow == OverflowElide {
		lines = e.elideLines(face, text, lines, metrics, opts)
	}

	lineHeight := metrics.Height()
	total := float64(len(lines)) * lineHeight
	var yOffset float64
	switch opts.VerticalAlign {
	case AlignVCenter:
		yOffset = (opts.Box.Height - total) / 2
	case AlignBottom:
		yOffset = opts.Box.Height - total
	}

	for i := range lines {
		line := &lines[i]
		line.Y = yOffset + float64(i)*lineHeight
		switch opts.HorizontalAlign {
		case AlignCenter:
			line.X = (opts.Box.Width - line.Width) / 2
		case AlignRight:
			line.X = opts.Box.Width - line.Width
		}
	}

	return &Layout{Text: text, Lines: lines, Metrics: metrics, Box: opts.Box}
}

// breakLines splits text at explicit newlines and, when wrapping, at
// width overflow. maxWidth <= 0 disables width-driven breaking.
func (e *Engine) breakLines(face Face, text string, maxWidth float64, wrap TextWrap) ([]Line, LineMetrics) {
	var lines []Line
	var metrics LineMetrics

	start := 0
	for start <= len(text) {
		end := strings.IndexByte(text[start:], '\n')
		breakLen := 0
		paragraph := ""
		if end < 0 {
			paragraph = text[start:]
			end = len(text)
		} else {
			paragraph = text[start : start+end]
			end = start + end
			breakLen = 1
		}

		glyphs, m := e.shaper.Shape(face, paragraph)
		if m.Height() > metrics.Height() {
			metrics = m
		}

		if wrap == NoWrap || maxWidth <= 0 {
			lines = append(lines, Line{
				Glyphs:    glyphs,
				Text:      paragraph,
				ByteStart: start,
				ByteEnd:   end,
				BreakLen:  breakLen,
				Width:     glyphsWidth(glyphs),
			})
		} else {
			wrapped := wrapParagraph(paragraph, glyphs, start, maxWidth, wrap)
			if breakLen > 0 && len(wrapped) > 0 {
				wrapped[len(wrapped)-1].BreakLen = breakLen
			}
			lines = append(lines, wrapped...)
		}

		if breakLen == 0 {
			break
		}
		start = end + breakLen
	}

	if metrics.Height() <= 0 {
		_, metrics = e.shaper.Shape(face, " ")
	}
	return lines, metrics
}

// wrapParagraph greedily packs clusters into lines of at most maxWidth.
// Word wrapping breaks after the last space cluster; a single word
// wider than the line falls back to breaking inside the word.
func wrapParagraph(paragraph string, glyphs []ShapedGlyph, paragraphStart int, maxWidth float64, wrap TextWrap) []Line {
	if len(glyphs) == 0 {
		return []Line{{
			ByteStart: paragraphStart,
			ByteEnd:   paragraphStart + len(paragraph),
		}}
	}

	var lines []Line
	lineStart := 0 // glyph index
	width := 0.0
	lastSpace := -1 // glyph index of the most recent space cluster

	flush := func(endGlyph, nextGlyph int) {
		startByte := glyphs[lineStart].ByteOffset
		endByte := len(paragraph)
		if endGlyph < len(glyphs) {
			endByte = glyphs[endGlyph].ByteOffset
		}
		nextByte := len(paragraph)
		if nextGlyph < len(glyphs) {
			nextByte = glyphs[nextGlyph].ByteOffset
		}
		segment := glyphs[lineStart:endGlyph]
		lines = append(lines, Line{
			Glyphs:    segment,
			Text:      paragraph[startByte:endByte],
			ByteStart: paragraphStart + startByte,
			ByteEnd:   paragraphStart + endByte,
			BreakLen:  nextByte - endByte,
			Width:     glyphsWidth(segment),
		})
		lineStart = nextGlyph
		width = 0
		lastSpace = -1
	}

	for i := 0; i < len(glyphs); i++ {
		g := glyphs[i]
		isSpace := isSpaceCluster(paragraph, g.ByteOffset)
		if width+g.Advance > maxWidth && i > lineStart && !isSpace {
			if wrap == WordWrap && lastSpace >= lineStart {
				i = lastSpace
				flush(i, i+1)
				continue
			}
			flush(i, i)
			// Re-evaluate the current glyph on the fresh line.
			i--
			continue
		}
		if isSpace {
			lastSpace = i
		}
		width += g.Advance
	}
	if lineStart <= len(glyphs)-1 || len(lines) == 0 {
		flush(len(glyphs), len(glyphs))
	}
	return lines
}

func isSpaceCluster(text string, byteOffset int) bool {
	if byteOffset < 0 || byteOffset >= len(text) {
		return false
	}
	return text[byteOffset] == ' ' || text[byteOffset] == '\t'
}

func glyphsWidth(glyphs []ShapedGlyph) float64 {
	width := 0.0
	for _, g := range glyphs {
		width += g.Advance
	}
	return width
}

// elideLines applies the overflow ellipsis. Without wrapping every line
// is elided independently from the right; with wrapping, lines that do
// not fit the box height are dropped and the last kept line absorbs the
// remainder of its paragraph, re-elided to the box width.
func (e *Engine) elideLines(face Face, text string, lines []Line, metrics LineMetrics, opts PaintOptions) []Line {
	if len(lines) == 0 {
		return lines
	}

	if opts.Wrap == NoWrap {
		for i := range lines {
			if lines[i].Width > opts.Box.Width {
				e.elideLineRight(face, &lines[i], opts.Box.Width)
			}
		}
		return lines
	}

	lineHeight := metrics.Height()
	if lineHeight <= 0 {
		return lines
	}
	maxLines := int(opts.Box.Height / lineHeight)
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) <= maxLines {
		return lines
	}

	lines = lines[:maxLines]
	last := &lines[maxLines-1]

	// The last kept line absorbs the rest of its paragraph before
	// eliding, so the ellipsis stands for everything dropped.
	paragraphEnd := last.ByteEnd
	if i := strings.IndexByte(text[last.ByteStart:], '\n'); i >= 0 {
		paragraphEnd = last.ByteStart + i
	} else {
		paragraphEnd = len(text)
	}
	remainder := strings.TrimRight(text[last.ByteStart:paragraphEnd], " \t")
	last.Text = remainder
	last.ByteEnd = last.ByteStart + len(remainder)
	last.Glyphs, _ = e.shaper.Shape(face, remainder)
	last.Width = glyphsWidth(last.Glyphs)
	if last.Width > opts.Box.Width {
		e.elideLineRight(face, last, opts.Box.Width)
	} else {
		e.appendEllipsis(face, last)
	}
	return lines
}

// elideLineRight shortens a line from the right until it fits maxWidth
// with an ellipsis appended. Trailing spaces are dropped so the
// ellipsis directly follows the kept text.
func (e *Engine) elideLineRight(face Face, line *Line, maxWidth float64) {
	ellGlyphs, _ := e.shaper.Shape(face, Ellipsis)
	ellWidth := glyphsWidth(ellGlyphs)

	budget := maxWidth - ellWidth
	width := 0.0
	keepBytes := 0
	for _, g := range line.Glyphs {
		if width+g.Advance > budget {
			break
		}
		width += g.Advance
		keepBytes = nextClusterStart(line.Text, line.Glyphs, g.ByteOffset)
	}

	prefix := strings.TrimRight(line.Text[:keepBytes], " \t")
	elided := prefix + Ellipsis

	line.Text = elided
	line.ByteEnd = line.ByteStart + len(prefix)
	line.Glyphs, _ = e.shaper.Shape(face, elided)
	line.Width = glyphsWidth(line.Glyphs)
	line.Elided = true
}

// appendEllipsis marks a fully kept line as elided because following
// lines were dropped.
func (e *Engine) appendEllipsis(face Face, line *Line) {
	elided := strings.TrimRight(line.Text, " \t") + Ellipsis
	line.Text = elided
	line.Glyphs, _ = e.shaper.Shape(face, elided)
	line.Width = glyphsWidth(line.Glyphs)
	line.Elided = true
}

// nextClusterStart returns the byte offset just past the cluster
// starting at byteOffset.
func nextClusterStart(text string, glyphs []ShapedGlyph, byteOffset int) int {
	next := len(text)
	for _, g := range glyphs {
		if g.ByteOffset > byteOffset && g.ByteOffset < next {
			next = g.ByteOffset
		}
	}
	return next
}
