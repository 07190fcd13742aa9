package window

import (
	"github.com/slint-ui/slint-sub001/events"
	"github.com/slint-ui/slint-sub001/graphics"
)

// The adapter is the surface's event handler: every host callback runs
// synchronously on the UI thread, goes through the translator, and the
// resulting runtime events reach the dispatch sink in order.

func (a *Adapter) PointerPressed(pos graphics.Point, button events.PointerButton) {
	a.emit(a.translator.PointerPressed(pos, button))
}

func (a *Adapter) PointerReleased(pos graphics.Point, button events.PointerButton) {
	a.emit(a.translator.PointerReleased(pos, button))
}

func (a *Adapter) PointerMoved(pos graphics.Point) {
	a.emit(a.translator.PointerMoved(pos))
}

func (a *Adapter) PointerExited() {
	a.emit(a.translator.PointerExited())
}

func (a *Adapter) PointerScrolled(pos graphics.Point, deltaX, deltaY float64) {
	a.emit(a.translator.PointerScrolled(pos, deltaX, deltaY, true, 0, 0))
}

func (a *Adapter) KeyPressed(code events.Key, text string, autoRepeat bool) {
	a.emit(a.translator.KeyPressed(code, text, autoRepeat))
}

func (a *Adapter) KeyReleased(code events.Key, text string, autoRepeat bool) {
	a.emit(a.translator.KeyReleased(code, text, autoRepeat))
}

func (a *Adapter) CompositionChanged(comp events.HostComposition) {
	text, cursorByte := "", 0
	if a.composition != nil {
		text, cursorByte = a.composition()
	}
	a.emit(a.translator.CompositionChanged(comp, text, cursorByte))
}

func (a *Adapter) ActiveChanged(active bool) {
	a.emit(a.translator.ActiveChanged(active))
}

// ColorSchemeChanged invalidates the cached scheme before forwarding,
// so the next ColorScheme query recomputes from the host palette.
func (a *Adapter) ColorSchemeChanged(scheme events.ColorScheme) {
	a.schemeKnown = false
	a.emit(a.translator.ColorSchemeChanged(scheme))
}

// StateChanged reconciles host window-state flags against the
// runtime's belief: each differing flag yields one correction, and the
// belief is updated so the same transition triggers nothing further.
func (a *Adapter) StateChanged(flags events.WindowStateFlags) {
	corrections := a.translator.WindowStateChanged(flags, a.believed)
	a.believed = flags
	a.emit(corrections)
}

func (a *Adapter) CloseRequested() {
	a.emit(a.translator.CloseRequested())
}

func (a *Adapter) Resized(size graphics.Size) {
	a.RequestRedraw()
}

func (a *Adapter) ScaleChanged(factor float64) {
	a.RequestRedraw()
}

// Paint renders one frame. It may recursively shape text, run blur
// filters, and render offscreen layers, but never re-enters the host
// event loop.
func (a *Adapter) Paint() {
	a.redrawPending = false
	if !a.visible {
		return
	}

	p, err := a.gfx.BeginFrame(a.surface)
	if err != nil {
		graphics.Logger().Warn("begin frame failed", "error", err)
		return
	}
	a.renderer.SetPainter(p)

	size := a.surface.Size()
	frame := graphics.NewRect(0, 0, size.Width, size.Height)
	if bg := a.props.Background; !graphics.IsTransparentBrush(bg) {
		p.FillRect(frame, graphics.BuildPaint(bg, frame.W, frame.H))
	}

	if a.tree != nil {
		a.renderer.RenderTree(a.tree)
	}

	if a.overlay {
		if text := a.collector.overlayText(); text != "" {
			a.renderer.DrawString(4, 4, text, graphics.White)
		}
	}

	if err := a.gfx.EndFrame(); err != nil {
		graphics.Logger().Warn("end frame failed", "error", err)
	}

	a.collector.frameDone(a.now())
	a.bridge.PaintCompleted()
}
