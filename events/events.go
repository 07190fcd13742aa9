// Package events defines the runtime's input event model and the
// translator turning raw host input into runtime events. The translator
// owns the per-surface input state: which buttons are believed down,
// and the popup an open click may dismiss.
package events

import (
	"github.com/slint-ui/slint-sub001/graphics"
)

// PointerButton identifies a pointer device button.
type PointerButton uint8

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
	ButtonMiddle
	ButtonBack
	ButtonForward
	ButtonOther
)

// Event is the closed set of runtime input events.
type Event interface {
	eventMarker()
}

// PointerPressed reports a button going down at a position.
type PointerPressed struct {
	Position graphics.Point
	Button   PointerButton
	// ClickCount is always zero at this layer; multi-click detection
	// belongs to the runtime.
	ClickCount int
}

// PointerReleased reports a button going up at a position.
type PointerReleased struct {
	Position graphics.Point
	Button   PointerButton
}

// PointerMoved reports pointer motion.
type PointerMoved struct {
	Position graphics.Point
}

// PointerExited reports the pointer leaving the surface.
type PointerExited struct{}

// PointerScrolled reports a wheel or trackpad scroll in pixel deltas.
type PointerScrolled struct {
	Position graphics.Point
	DeltaX   float64
	DeltaY   float64
}

// KeyPressed reports a key going down with its resolved text.
type KeyPressed struct {
	Text string
}

// KeyPressRepeated reports an auto-repeated key press.
type KeyPressRepeated struct {
	Text string
}

// KeyReleased reports a key going up. Auto-repeat releases are never
// delivered.
type KeyReleased struct {
	Text string
}

// UpdateComposition carries an input-method composition state change.
// The replacement range is expressed in UTF-16 units of the text being
// edited.
type UpdateComposition struct {
	Commit           string
	Preedit          string
	PreeditCursor    int // byte offset into Preedit, -1 for none
	PreeditSelLen    int
	ReplacementStart int
	ReplacementLen   int
}

// PopupClosed asks the popup's parent window to dismiss the identified
// popup. It always follows the pointer event that triggered it.
type PopupClosed struct {
	PopupID uint64
}

// ActiveChanged reports window activation or deactivation.
type ActiveChanged struct {
	Active bool
}

// ColorScheme is the platform palette classification.
type ColorScheme uint8

const (
	ColorSchemeUnknown ColorScheme = iota
	ColorSchemeLight
	ColorSchemeDark
)

// ColorSchemeChanged reports a platform palette change.
type ColorSchemeChanged struct {
	Scheme ColorScheme
}

// WindowStateFlags is the host-side window state triple.
type WindowStateFlags struct {
	Minimized  bool
	Maximized  bool
	Fullscreen bool
}

// StateCorrection pushes one window-state flag the host disagrees about
// into the runtime. Corrections flow host to runtime only, never back.
type StateCorrection struct {
	Flag  StateFlag
	Value bool
}

// StateFlag names one of the reconciled window-state flags.
type StateFlag uint8

const (
	FlagMinimized StateFlag = iota
	FlagMaximized
	FlagFullscreen
)

// CloseRequested reports the user asking to close the window. The host
// close is always suppressed; the runtime decides whether to honor it.
type CloseRequested struct{}

func (PointerPressed) eventMarker()     {}
func (PointerReleased) eventMarker()    {}
func (PointerMoved) eventMarker()       {}
func (PointerExited) eventMarker()      {}
func (PointerScrolled) eventMarker()    {}
func (KeyPressed) eventMarker()         {}
func (KeyPressRepeated) eventMarker()   {}
func (KeyReleased) eventMarker()        {}
func (UpdateComposition) eventMarker()  {}
func (PopupClosed) eventMarker()        {}
func (ActiveChanged) eventMarker()      {}
func (ColorSchemeChanged) eventMarker() {}
func (StateCorrection) eventMarker()    {}
func (CloseRequested) eventMarker()     {}
