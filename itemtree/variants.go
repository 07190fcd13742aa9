package itemtree

import (
	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/painter"
	"github.com/slint-ui/slint-sub001/textlayout"
)

// Variant is the closed set of item kinds. No other items exist.
type Variant interface {
	variantMarker()
}

// Rectangle is a plain filled rectangle without border.
type Rectangle struct {
	Fill graphics.Brush
}

func (Rectangle) variantMarker() {}

// BorderRectangle is a filled rectangle with an optional border and
// per-corner radii. The radii describe the outer edge of the shape.
// When Clip is set the subtree is clipped to the rectangle's inner
// edge; a fully clipped-away subtree is skipped entirely.
type BorderRectangle struct {
	Fill        graphics.Brush
	Border      graphics.Brush
	BorderWidth float64
	Radii       graphics.CornerRadii
	Clip        bool
}

func (BorderRectangle) variantMarker() {}

// Text is a static text label.
type Text struct {
	Text            string
	Font            textlayout.FontRequest
	Color           graphics.Brush
	HorizontalAlign textlayout.TextHorizontalAlignment
	VerticalAlign   textlayout.TextVerticalAlignment
	Wrap            textlayout.TextWrap
	Overflow        textlayout.TextOverflow
	Stroke          graphics.Brush
	StrokeWidth     float64
	StrokeStyle     textlayout.TextStrokeStyle
}

func (Text) variantMarker() {}

// TextInput is an editable text field. Offsets are byte offsets into
// Text. The pre-edit string, when non-empty, is composed at the cursor
// position and takes highlight priority over the selection.
type TextInput struct {
	Text            string
	Font            textlayout.FontRequest
	Color           graphics.Brush
	SelectionFg     graphics.Color
	SelectionBg     graphics.Color
	HorizontalAlign textlayout.TextHorizontalAlignment
	VerticalAlign   textlayout.TextVerticalAlignment
	Wrap            textlayout.TextWrap

	CursorPosition int
	AnchorPosition int
	CursorWidth    float64
	CursorVisible  bool
	Preedit        string
	PreeditCursor  int // byte offset into Preedit, -1 for none
	PreeditSelLen  int
	PasswordInput  bool
	TextHidingChar rune
}

func (TextInput) variantMarker() {}

// ImageFit controls how a source bitmap maps into the item rectangle.
type ImageFit uint8

const (
	ImageFitFill ImageFit = iota
	ImageFitContain
	ImageFitCover
	ImageFitPreserve
)

// ImageTiling controls repetition along one axis.
type ImageTiling uint8

const (
	TilingNone ImageTiling = iota
	TilingRepeat
	TilingRound
)

// Image draws a bitmap. SourceClip, when non-empty, selects a
// sub-rectangle of the source before fit is applied.
type Image struct {
	Source     *graphics.Pixmap
	SourceClip graphics.Rect
	Fit        ImageFit
	TilingH    ImageTiling
	TilingV    ImageTiling
	Colorize   graphics.Brush
	Smooth     bool
	Alignment  graphics.Point // 0..1 per axis, used by Contain/Cover
}

func (Image) variantMarker() {}

// Path draws a vector path. Geometry coordinates are relative to the
// item origin.
type Path struct {
	Geometry    *painter.Path
	Fill        graphics.Brush
	FillRule    painter.FillRule
	Stroke      graphics.Brush
	StrokeWidth float64
	AntiAlias   bool
}

func (Path) variantMarker() {}

// BoxShadow draws a blurred rounded rectangle behind the item bounds.
type BoxShadow struct {
	Color   graphics.Color
	OffsetX float64
	OffsetY float64
	Blur    float64
	Radius  float64
}

func (BoxShadow) variantMarker() {}

// Opacity scales the opacity of its subtree.
type Opacity struct {
	Opacity float64
}

func (Opacity) variantMarker() {}

// Layer groups a subtree for offscreen compositing when CacheRendering
// is set; otherwise it is a plain grouping node.
type Layer struct {
	CacheRendering bool
}

func (Layer) variantMarker() {}
