package textlayout

import "errors"

// ErrEmptyFontData is returned when font registration receives no bytes.
var ErrEmptyFontData = errors.New("textlayout: empty font data")

// ErrNoFontLoaded is returned when a layout operation needs a font but
// the registry has none.
var ErrNoFontLoaded = errors.New("textlayout: no font loaded")
