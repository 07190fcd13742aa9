package textlayout

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// ShapedGlyph is one positioned glyph produced by shaping. ByteOffset
// is the byte offset of the glyph's cluster start in the shaped string;
// several glyphs may share a cluster, and a cluster may span several
// bytes.
type ShapedGlyph struct {
	GID        uint32
	ByteOffset int
	Advance    float64
	XOffset    float64
	YOffset    float64
}

// LineMetrics describes the vertical extent of a line of text. Ascent
// and Descent are both positive; the line height is their sum plus the
// gap.
type LineMetrics struct {
	Ascent  float64
	Descent float64
	Gap     float64
}

// Height returns the advance from one baseline to the next.
func (m LineMetrics) Height() float64 {
	return m.Ascent + m.Descent + m.Gap
}

// Shaper turns a string into positioned glyphs for a face. The layout
// engine is generic over this so tests can substitute deterministic
// metrics.
type Shaper interface {
	Shape(face Face, text string) ([]ShapedGlyph, LineMetrics)
}

// HarfbuzzTextShaper shapes text with go-text/typesetting's HarfBuzz
// port. HarfbuzzShaper instances carry mutable buffers and are pooled.
type HarfbuzzTextShaper struct {
	pool sync.Pool
}

// NewHarfbuzzTextShaper creates a shaper.
func NewHarfbuzzTextShaper() *HarfbuzzTextShaper {
	return &HarfbuzzTextShaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// Shape implements Shaper.
func (s *HarfbuzzTextShaper) Shape(face Face, text string) ([]ShapedGlyph, LineMetrics) {
	if face.Source == nil {
		return nil, LineMetrics{}
	}

	runes := []rune(text)
	byteOffsets := runeByteOffsets(text)
	dir := di.DirectionLTR
	if baseDirectionRTL(text) {
		dir = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(face.Source.ShapingFont()),
		Size:      fixed.Int26_6(face.Size * 64),
		Script:    detectScript(runes),
		Language:  language.DefaultLanguage(),
	}

	shaper := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	s.pool.Put(shaper)

	glyphs := make([]ShapedGlyph, 0, len(output.Glyphs))
	for _, g := range output.Glyphs {
		advance := fixedToFloat(g.XAdvance) + face.LetterSpacing
		offset := 0
		if g.ClusterIndex >= 0 && g.ClusterIndex < len(byteOffsets) {
			offset = byteOffsets[g.ClusterIndex]
		} else {
			offset = len(text)
		}
		glyphs = append(glyphs, ShapedGlyph{
			GID:        uint32(g.GlyphID),
			ByteOffset: offset,
			Advance:    advance,
			XOffset:    fixedToFloat(g.XOffset),
			YOffset:    -fixedToFloat(g.YOffset),
		})
	}

	metrics := LineMetrics{
		Ascent:  fixedToFloat(output.LineBounds.Ascent),
		Descent: -fixedToFloat(output.LineBounds.Descent),
		Gap:     fixedToFloat(output.LineBounds.Gap),
	}
	if metrics.Descent < 0 {
		metrics.Descent = -metrics.Descent
	}
	if metrics.Ascent <= 0 && metrics.Descent <= 0 {
		// Fonts without usable line bounds fall back to size-derived
		// metrics.
		metrics = LineMetrics{Ascent: face.Size * 0.8, Descent: face.Size * 0.2}
	}
	return glyphs, metrics
}

// runeByteOffsets returns the starting byte offset of each rune.
func runeByteOffsets(text string) []int {
	offsets := make([]int, 0, len(text))
	for i := range text {
		offsets = append(offsets, i)
	}
	return offsets
}

// baseDirectionRTL reports whether the paragraph's base direction is
// right to left.
func baseDirectionRTL(text string) bool {
	if text == "" {
		return false
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return false
	}
	ordering, err := p.Order()
	if err != nil {
		return false
	}
	return ordering.Direction() == bidi.RightToLeft
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
