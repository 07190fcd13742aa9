package textlayout

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/slint-ui/slint-sub001/painter"
)

// FontSource is one parsed font file. It is heavyweight and shared; a
// Face combines a source with a pixel size.
//
// FontSource must not be copied after creation.
type FontSource struct {
	addr *FontSource

	data    []byte
	shaping *font.Font
	outline *sfnt.Font
	family  string

	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewFontSource parses TTF or OTF font data. The data slice is copied
// and can be reused by the caller.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("textlayout: parse font: %w", err)
	}
	sf, err := sfnt.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("textlayout: parse font outlines: %w", err)
	}

	s := &FontSource{
		data:    dataCopy,
		shaping: face.Font,
		outline: sf,
	}
	s.addr = s

	var buf sfnt.Buffer
	if name, err := sf.Name(&buf, sfnt.NameIDFamily); err == nil {
		s.family = name
	}
	return s, nil
}

func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("textlayout: illegal use of non-zero FontSource copied by value")
	}
}

// Family returns the font family name from the name table.
func (s *FontSource) Family() string {
	s.copyCheck()
	return s.family
}

// ShapingFont returns the parsed font used by the shaper.
func (s *FontSource) ShapingFont() *font.Font {
	s.copyCheck()
	return s.shaping
}

// GlyphPath extracts the outline of a glyph at the given pixel size as
// a path positioned relative to the baseline origin, y growing
// downward. Glyphs without an outline (such as spaces) yield an empty
// path.
func (s *FontSource) GlyphPath(gid uint32, size float64) (*painter.Path, error) {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()

	ppem := fixed.Int26_6(size * 64)
	segments, err := s.outline.LoadGlyph(&s.buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("textlayout: load glyph %d: %w", gid, err)
	}

	path := painter.NewPath()
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			path.MoveTo(fixedToFloat(seg.Args[0].X), fixedToFloat(seg.Args[0].Y))
		case sfnt.SegmentOpLineTo:
			path.LineTo(fixedToFloat(seg.Args[0].X), fixedToFloat(seg.Args[0].Y))
		case sfnt.SegmentOpQuadTo:
			path.QuadraticTo(
				fixedToFloat(seg.Args[0].X), fixedToFloat(seg.Args[0].Y),
				fixedToFloat(seg.Args[1].X), fixedToFloat(seg.Args[1].Y))
		case sfnt.SegmentOpCubeTo:
			path.CubicTo(
				fixedToFloat(seg.Args[0].X), fixedToFloat(seg.Args[0].Y),
				fixedToFloat(seg.Args[1].X), fixedToFloat(seg.Args[1].Y),
				fixedToFloat(seg.Args[2].X), fixedToFloat(seg.Args[2].Y))
		}
	}
	return path, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Face pairs a font source with concrete request parameters.
type Face struct {
	Source        *FontSource
	Size          float64
	LetterSpacing float64
}

// Registry holds the application's registered fonts. Fonts registered
// from a path are deduplicated by canonical path, so repeated
// registration of the same file is not an error and parses only once.
type Registry struct {
	mu       sync.Mutex
	byFamily map[string]*FontSource
	ordered  []*FontSource
	paths    map[string]struct{}
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	return &Registry{
		byFamily: make(map[string]*FontSource),
		paths:    make(map[string]struct{}),
	}
}

// RegisterFromFile loads and registers a font file.
func (r *Registry) RegisterFromFile(path string) error {
	canonical, err := canonicalPath(path)
	if err != nil {
		return fmt.Errorf("textlayout: resolve font path: %w", err)
	}

	r.mu.Lock()
	if _, done := r.paths[canonical]; done {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	data, err := os.ReadFile(canonical)
	if err != nil {
		return fmt.Errorf("textlayout: read font file: %w", err)
	}
	source, err := NewFontSource(data)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, done := r.paths[canonical]; done {
		return nil
	}
	r.paths[canonical] = struct{}{}
	r.add(source)
	return nil
}

// RegisterFromMemory registers a font from raw bytes.
func (r *Registry) RegisterFromMemory(data []byte) error {
	source, err := NewFontSource(data)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(source)
	return nil
}

func (r *Registry) add(source *FontSource) {
	r.ordered = append(r.ordered, source)
	key := strings.ToLower(source.Family())
	if key != "" {
		if _, exists := r.byFamily[key]; !exists {
			r.byFamily[key] = source
		}
	}
}

// Resolve picks the source matching the request's family, falling back
// to the first registered font. The second return value is false when
// the registry is empty.
func (r *Registry) Resolve(req FontRequest) (Face, bool) {
	req = req.WithDefaults()
	r.mu.Lock()
	defer r.mu.Unlock()

	source, ok := r.byFamily[strings.ToLower(req.Family)]
	if !ok {
		if len(r.ordered) == 0 {
			return Face{}, false
		}
		source = r.ordered[0]
	}
	return Face{
		Source:        source,
		Size:          req.PixelSize,
		LetterSpacing: req.LetterSpacing,
	}, true
}

// Len returns the number of registered fonts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ordered)
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
