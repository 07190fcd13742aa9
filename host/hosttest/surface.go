// Package hosttest provides an in-memory host.Surface for adapter and
// translator tests. It records every mutation and lets tests drive
// events into the installed handler.
package hosttest

import (
	"github.com/slint-ui/slint-sub001/events"
	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/host"
	"github.com/slint-ui/slint-sub001/painter"
)

// Surface is a fake host window. The zero value is not usable; create
// it with NewSurface.
type Surface struct {
	handler host.Handler

	Title   string
	Icon    *graphics.Pixmap
	Flags   host.WindowFlags
	Cursor  host.CursorShape
	IMEOn   bool
	IMERect graphics.Rect

	size     graphics.Size
	position graphics.Point
	MinSize  graphics.Size
	MaxSize  graphics.Size
	state    events.WindowStateFlags
	scale    float64

	visible   bool
	destroyed bool

	// RedrawRequests counts RequestRedraw calls; PaintCount counts
	// paints actually delivered through DeliverPaint.
	RedrawRequests int
	PaintCount     int

	// StateSets records every SetStateFlags call, so tests can assert
	// that reconciliation touched the host exactly as often as needed.
	StateSets []events.WindowStateFlags
}

// NewSurface creates a hidden fake surface with the given size and a
// scale factor of 1.
func NewSurface(width, height float64) *Surface {
	return &Surface{
		size:  graphics.Size{Width: width, Height: height},
		scale: 1,
	}
}

// SetScale overrides the reported scale factor.
func (s *Surface) SetScale(factor float64) { s.scale = factor }

func (s *Surface) SetHandler(h host.Handler) { s.handler = h }

func (s *Surface) Show() error {
	if s.destroyed {
		return host.ErrSurfaceClosed
	}
	s.visible = true
	return nil
}

func (s *Surface) Hide()         { s.visible = false }
func (s *Surface) Visible() bool { return s.visible && !s.destroyed }

func (s *Surface) SetTitle(title string)         { s.Title = title }
func (s *Surface) SetIcon(icon *graphics.Pixmap) { s.Icon = icon }
func (s *Surface) SetFlags(flags host.WindowFlags) {
	s.Flags = flags
}

func (s *Surface) Size() graphics.Size            { return s.size }
func (s *Surface) SetSize(size graphics.Size)     { s.size = size }
func (s *Surface) Position() graphics.Point       { return s.position }
func (s *Surface) SetPosition(pos graphics.Point) { s.position = pos }
func (s *Surface) SetMinSize(size graphics.Size)  { s.MinSize = size }
func (s *Surface) SetMaxSize(size graphics.Size)  { s.MaxSize = size }

func (s *Surface) StateFlags() events.WindowStateFlags { return s.state }
func (s *Surface) SetStateFlags(flags events.WindowStateFlags) {
	s.state = flags
	s.StateSets = append(s.StateSets, flags)
}

func (s *Surface) SetCursor(shape host.CursorShape)    { s.Cursor = shape }
func (s *Surface) SetIMEEnabled(enabled bool)          { s.IMEOn = enabled }
func (s *Surface) SetIMECursorRect(rect graphics.Rect) { s.IMERect = rect }

func (s *Surface) RequestRedraw() { s.RedrawRequests++ }

func (s *Surface) ScaleFactor() float64 { return s.scale }

func (s *Surface) Destroy() {
	s.destroyed = true
	s.visible = false
}

// Destroyed reports whether Destroy has been called.
func (s *Surface) Destroyed() bool { return s.destroyed }

// Event drivers. Each forwards to the installed handler, mirroring a
// host callback firing on the UI thread.

func (s *Surface) DeliverPointerPress(pos graphics.Point, button events.PointerButton) {
	if s.handler != nil {
		s.handler.PointerPressed(pos, button)
	}
}

func (s *Surface) DeliverPointerRelease(pos graphics.Point, button events.PointerButton) {
	if s.handler != nil {
		s.handler.PointerReleased(pos, button)
	}
}

func (s *Surface) DeliverPointerMove(pos graphics.Point) {
	if s.handler != nil {
		s.handler.PointerMoved(pos)
	}
}

func (s *Surface) DeliverPointerExit() {
	if s.handler != nil {
		s.handler.PointerExited()
	}
}

func (s *Surface) DeliverScroll(pos graphics.Point, dx, dy float64) {
	if s.handler != nil {
		s.handler.PointerScrolled(pos, dx, dy)
	}
}

func (s *Surface) DeliverKeyPress(code events.Key, text string, repeat bool) {
	if s.handler != nil {
		s.handler.KeyPressed(code, text, repeat)
	}
}

func (s *Surface) DeliverKeyRelease(code events.Key, text string, repeat bool) {
	if s.handler != nil {
		s.handler.KeyReleased(code, text, repeat)
	}
}

func (s *Surface) DeliverComposition(comp events.HostComposition) {
	if s.handler != nil {
		s.handler.CompositionChanged(comp)
	}
}

func (s *Surface) DeliverActiveChange(active bool) {
	if s.handler != nil {
		s.handler.ActiveChanged(active)
	}
}

func (s *Surface) DeliverColorSchemeChange(scheme events.ColorScheme) {
	if s.handler != nil {
		s.handler.ColorSchemeChanged(scheme)
	}
}

// DeliverStateChange mutates the host-side state and notifies the
// handler, as a window manager would.
func (s *Surface) DeliverStateChange(flags events.WindowStateFlags) {
	s.state = flags
	if s.handler != nil {
		s.handler.StateChanged(flags)
	}
}

func (s *Surface) DeliverCloseRequest() {
	if s.handler != nil {
		s.handler.CloseRequested()
	}
}

func (s *Surface) DeliverResize(size graphics.Size) {
	s.size = size
	if s.handler != nil {
		s.handler.Resized(size)
	}
}

// DeliverPaint simulates the host performing the scheduled repaint,
// resetting the coalescing counter.
func (s *Surface) DeliverPaint() {
	s.RedrawRequests = 0
	s.PaintCount++
	if s.handler != nil {
		s.handler.Paint()
	}
}

// Graphics is a test GraphicsAPI rendering into an in-memory pixmap.
type Graphics struct {
	Target *graphics.Pixmap
	Frames int
}

func (g *Graphics) BeginFrame(surface host.Surface) (painter.Painter, error) {
	size := surface.Size()
	scale := surface.ScaleFactor()
	w := int(size.Width * scale)
	h := int(size.Height * scale)
	if g.Target == nil || g.Target.Width() != w || g.Target.Height() != h {
		g.Target = graphics.NewPixmap(w, h)
	} else {
		g.Target.Clear(graphics.Transparent)
	}
	return painter.NewSoftwarePainter(g.Target, scale), nil
}

func (g *Graphics) EndFrame() error {
	g.Frames++
	return nil
}
