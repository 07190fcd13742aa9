package events

import (
	"github.com/slint-ui/slint-sub001/textlayout"
)

// HostComposition is the raw input-method state delivered by the host.
// Offsets and lengths are in UTF-16 units; ReplacementStart is relative
// to the cursor and may be negative.
type HostComposition struct {
	Commit            string
	Preedit           string
	CursorPosition    int // UTF-16 units into Preedit, -1 for none
	SelectionLength   int // UTF-16 units
	ReplacementStart  int
	ReplacementLength int
}

// CompositionChanged translates an input-method update against the text
// currently being edited. The host's cursor-relative replacement start
// becomes an absolute UTF-16 offset; the pre-edit cursor span becomes
// byte offsets into the pre-edit string.
func (t *Translator) CompositionChanged(host HostComposition, text string, cursorByteOffset int) []Event {
	cursorUnits := textlayout.UTF16UnitsForByteOffset(text, cursorByteOffset)
	replacementStart := cursorUnits + host.ReplacementStart
	if replacementStart < 0 {
		replacementStart = 0
	}

	preeditCursor := -1
	preeditSelLen := 0
	if host.CursorPosition >= 0 {
		preeditCursor = textlayout.ByteOffsetForUTF16Units(host.Preedit, host.CursorPosition)
		if host.SelectionLength > 0 {
			end := textlayout.ByteOffsetForUTF16Units(host.Preedit, host.CursorPosition+host.SelectionLength)
			preeditSelLen = end - preeditCursor
		}
	}

	return []Event{UpdateComposition{
		Commit:           host.Commit,
		Preedit:          host.Preedit,
		PreeditCursor:    preeditCursor,
		PreeditSelLen:    preeditSelLen,
		ReplacementStart: replacementStart,
		ReplacementLen:   host.ReplacementLength,
	}}
}
