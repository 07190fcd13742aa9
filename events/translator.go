package events

import (
	"github.com/slint-ui/slint-sub001/graphics"
)

// PopupClosePolicy controls when a click dismisses an open popup.
type PopupClosePolicy uint8

const (
	// CloseOnClick dismisses the popup on any pointer release.
	CloseOnClick PopupClosePolicy = iota
	// CloseOnClickOutside dismisses only when the release lands
	// outside the popup's bounds.
	CloseOnClickOutside
	// NoAutoClose never dismisses from this layer.
	NoAutoClose
)

// ActivePopup describes the popup a translator may dismiss on click.
type ActivePopup struct {
	ID     uint64
	Bounds graphics.Rect
	Policy PopupClosePolicy
}

// Translator turns raw host input for one surface into runtime events.
// It tracks which buttons it has seen pressed, so release events the
// host fabricates without a matching press are dropped.
type Translator struct {
	pressed map[PointerButton]bool
	popup   *ActivePopup
}

// NewTranslator creates a translator with no buttons down.
func NewTranslator() *Translator {
	return &Translator{pressed: make(map[PointerButton]bool)}
}

// SetActivePopup registers the popup that subsequent clicks may close.
// Passing nil clears it.
func (t *Translator) SetActivePopup(p *ActivePopup) {
	t.popup = p
}

// PointerPressed translates a button press.
func (t *Translator) PointerPressed(pos graphics.Point, button PointerButton) []Event {
	t.pressed[button] = true
	return []Event{PointerPressed{Position: pos, Button: button}}
}

// PointerReleased translates a button release. Releases without a
// matching prior press are suppressed. When an active popup's close
// policy matches, the release is followed by exactly one PopupClosed
// for it.
func (t *Translator) PointerReleased(pos graphics.Point, button PointerButton) []Event {
	if !t.pressed[button] {
		return nil
	}
	delete(t.pressed, button)

	evs := []Event{PointerReleased{Position: pos, Button: button}}
	if p := t.popup; p != nil && popupClosesOn(p, pos) {
		t.popup = nil
		evs = append(evs, PopupClosed{PopupID: p.ID})
	}
	return evs
}

func popupClosesOn(p *ActivePopup, pos graphics.Point) bool {
	switch p.Policy {
	case CloseOnClick:
		return true
	case CloseOnClickOutside:
		return !p.Bounds.Contains(pos)
	default:
		return false
	}
}

// PointerMoved translates pointer motion.
func (t *Translator) PointerMoved(pos graphics.Point) []Event {
	return []Event{PointerMoved{Position: pos}}
}

// PointerExited translates the pointer leaving the surface.
func (t *Translator) PointerExited() []Event {
	return []Event{PointerExited{}}
}

// PointerScrolled translates a scroll. Pixel deltas are used when the
// host provides them; otherwise the angle deltas are converted at a
// fixed line height.
func (t *Translator) PointerScrolled(pos graphics.Point, pixelX, pixelY float64, hasPixel bool, angleX, angleY float64) []Event {
	dx, dy := pixelX, pixelY
	if !hasPixel {
		dx = angleX * ScrollLinePixels
		dy = angleY * ScrollLinePixels
	}
	return []Event{PointerScrolled{Position: pos, DeltaX: dx, DeltaY: dy}}
}

// ScrollLinePixels converts line-based scroll steps to pixels.
const ScrollLinePixels = 20.0

// KeyPressed translates a key press, forwarding auto-repeats as their
// own event kind.
func (t *Translator) KeyPressed(code Key, hostText string, autoRepeat bool) []Event {
	text := KeyText(code, hostText)
	if text == "" {
		return nil
	}
	if autoRepeat {
		return []Event{KeyPressRepeated{Text: text}}
	}
	return []Event{KeyPressed{Text: text}}
}

// KeyReleased translates a key release. Auto-repeat releases are
// suppressed entirely; only the repeated presses are forwarded.
func (t *Translator) KeyReleased(code Key, hostText string, autoRepeat bool) []Event {
	if autoRepeat {
		return nil
	}
	text := KeyText(code, hostText)
	if text == "" {
		return nil
	}
	return []Event{KeyReleased{Text: text}}
}

// ActiveChanged translates an activation change.
func (t *Translator) ActiveChanged(active bool) []Event {
	return []Event{ActiveChanged{Active: active}}
}

// ColorSchemeChanged translates a platform palette change.
func (t *Translator) ColorSchemeChanged(scheme ColorScheme) []Event {
	return []Event{ColorSchemeChanged{Scheme: scheme}}
}

// WindowStateChanged reconciles the host's window-state flags against
// the runtime's current belief, emitting one correction per flag that
// differs. Matching flags emit nothing, so no feedback loop can start.
func (t *Translator) WindowStateChanged(host, believed WindowStateFlags) []Event {
	var evs []Event
	if host.Minimized != believed.Minimized {
		evs = append(evs, StateCorrection{Flag: FlagMinimized, Value: host.Minimized})
	}
	if host.Maximized != believed.Maximized {
		evs = append(evs, StateCorrection{Flag: FlagMaximized, Value: host.Maximized})
	}
	if host.Fullscreen != believed.Fullscreen {
		evs = append(evs, StateCorrection{Flag: FlagFullscreen, Value: host.Fullscreen})
	}
	return evs
}

// CloseRequested translates a host close request. The host-level close
// is always suppressed; the runtime decides what to do with the event.
func (t *Translator) CloseRequested() []Event {
	return []Event{CloseRequested{}}
}
