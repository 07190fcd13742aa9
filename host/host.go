// Package host declares the capabilities the windowing backend
// consumes: a paintable surface with event delivery, and a graphics
// API handing out a painter per frame. Implementations live in the
// glfwhost and hosttest sub-packages.
package host

import (
	"errors"

	"github.com/slint-ui/slint-sub001/events"
	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/painter"
)

// ErrSurfaceClosed is returned by operations on a destroyed surface.
var ErrSurfaceClosed = errors.New("host: surface closed")

// WindowFlags are the host window decoration and stacking flags.
type WindowFlags struct {
	Frameless   bool
	AlwaysOnTop bool
}

// Surface is one host window or popup. All coordinates are logical
// pixels in the host's unit; implementations convert to device pixels
// using their scale factor.
type Surface interface {
	// SetHandler installs the receiver of the surface's input and
	// state events. Events arrive on the UI thread.
	SetHandler(h Handler)

	Show() error
	Hide()
	Visible() bool

	SetTitle(title string)
	SetIcon(icon *graphics.Pixmap)
	SetFlags(flags WindowFlags)

	Size() graphics.Size
	SetSize(size graphics.Size)
	Position() graphics.Point
	SetPosition(pos graphics.Point)
	SetMinSize(size graphics.Size)
	SetMaxSize(size graphics.Size)

	StateFlags() events.WindowStateFlags
	SetStateFlags(flags events.WindowStateFlags)

	SetCursor(shape CursorShape)
	SetIMEEnabled(enabled bool)
	SetIMECursorRect(rect graphics.Rect)

	// RequestRedraw schedules a repaint. Requests coalesce: any number
	// of calls before the next paint produce one paint.
	RequestRedraw()

	ScaleFactor() float64
	Destroy()
}

// Handler receives a surface's input and state changes. The window
// adapter implements it and feeds the event translator.
type Handler interface {
	PointerPressed(pos graphics.Point, button events.PointerButton)
	PointerReleased(pos graphics.Point, button events.PointerButton)
	PointerMoved(pos graphics.Point)
	PointerExited()
	// PointerScrolled carries pixel deltas; hosts without pixel
	// precision synthesize them before delivery.
	PointerScrolled(pos graphics.Point, deltaX, deltaY float64)

	KeyPressed(code events.Key, text string, autoRepeat bool)
	KeyReleased(code events.Key, text string, autoRepeat bool)
	CompositionChanged(comp events.HostComposition)

	ActiveChanged(active bool)
	ColorSchemeChanged(scheme events.ColorScheme)
	StateChanged(flags events.WindowStateFlags)
	CloseRequested()

	Resized(size graphics.Size)
	ScaleChanged(factor float64)
	Paint()
}

// GraphicsAPI hands out a painter per frame. The backend calls into it
// without knowing what sits behind it.
type GraphicsAPI interface {
	BeginFrame(surface Surface) (painter.Painter, error)
	EndFrame() error
}
