package textlayout

// FontRequest describes the font an item wants. Zero values mean
// "unspecified": the resolver picks the default family, a normal weight
// and the default pixel size.
type FontRequest struct {
	Family        string
	PixelSize     float64
	Weight        int // CSS scale, 100 to 900
	Italic        bool
	LetterSpacing float64
}

// DefaultFontSize is used when a request carries no pixel size.
const DefaultFontSize = 12.0

// WithDefaults fills unset fields from the defaults.
func (r FontRequest) WithDefaults() FontRequest {
	if r.PixelSize <= 0 {
		r.PixelSize = DefaultFontSize
	}
	if r.Weight <= 0 {
		r.Weight = 400
	}
	return r
}

// TextHorizontalAlignment positions lines within the layout box.
type TextHorizontalAlignment uint8

const (
	AlignLeft TextHorizontalAlignment = iota
	AlignCenter
	AlignRight
)

// TextVerticalAlignment positions the line block within the layout box.
type TextVerticalAlignment uint8

const (
	AlignTop TextVerticalAlignment = iota
	AlignVCenter
	AlignBottom
)

// TextWrap selects the line breaking behavior.
type TextWrap uint8

const (
	// NoWrap breaks only at explicit newlines.
	NoWrap TextWrap = iota
	// WordWrap breaks at word boundaries when a line exceeds the width.
	WordWrap
	// CharWrap breaks anywhere, including inside words.
	CharWrap
)

// TextOverflow selects what happens to text exceeding the layout box.
type TextOverflow uint8

const (
	// OverflowClip lets the clip region cut overflowing text.
	OverflowClip TextOverflow = iota
	// OverflowElide replaces overflowing text with an ellipsis.
	OverflowElide
)

// TextStrokeStyle selects how a text stroke relates to the glyph edge.
type TextStrokeStyle uint8

const (
	// StrokeOutside draws the stroke strictly outside the glyph.
	StrokeOutside TextStrokeStyle = iota
	// StrokeCenter centers the stroke on the glyph edge.
	StrokeCenter
)
