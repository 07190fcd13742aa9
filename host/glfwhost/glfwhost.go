// Package glfwhost implements host.Surface on top of GLFW windows.
// GLFW requires all windowing calls on the main OS thread; the App
// locks it at initialization and the event loop runs there.
package glfwhost

import (
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/slint-ui/slint-sub001/events"
	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/host"
)

// App owns the GLFW library state and the standard cursor cache.
type App struct {
	cursors  map[host.CursorShape]*glfw.Cursor
	surfaces []*Surface
}

// NewApp initializes GLFW. Call Terminate when done.
func NewApp() (*App, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwhost: init: %w", err)
	}
	return &App{cursors: make(map[host.CursorShape]*glfw.Cursor)}, nil
}

// Terminate destroys all surfaces and shuts GLFW down.
func (a *App) Terminate() {
	for _, s := range a.surfaces {
		s.Destroy()
	}
	glfw.Terminate()
}

// WaitEvents blocks until at least one event arrives, then dispatches
// pending callbacks and paints dirty surfaces.
func (a *App) WaitEvents() {
	glfw.WaitEvents()
	a.paintDirty()
}

// WaitEventsTimeout is WaitEvents with an upper bound in seconds, used
// to honor pending animation timers.
func (a *App) WaitEventsTimeout(seconds float64) {
	glfw.WaitEventsTimeout(seconds)
	a.paintDirty()
}

// PollEvents dispatches pending callbacks without blocking.
func (a *App) PollEvents() {
	glfw.PollEvents()
	a.paintDirty()
}

// Wakeup interrupts a blocking WaitEvents from any thread.
func (a *App) Wakeup() {
	glfw.PostEmptyEvent()
}

func (a *App) paintDirty() {
	for _, s := range a.surfaces {
		if s.dirty && !s.destroyed {
			s.dirty = false
			if s.handler != nil {
				s.handler.Paint()
			}
		}
	}
}

func (a *App) standardCursor(shape host.CursorShape) *glfw.Cursor {
	if c, ok := a.cursors[shape]; ok {
		return c
	}
	var std glfw.StandardCursor
	switch shape {
	case host.ShapeHand:
		std = glfw.HandCursor
	case host.ShapeIBeam:
		std = glfw.IBeamCursor
	case host.ShapeCrosshair:
		std = glfw.CrosshairCursor
	case host.ShapeResizeEW, host.ShapeResizeNESW, host.ShapeResizeNWSE:
		std = glfw.HResizeCursor
	case host.ShapeResizeNS, host.ShapeResizeAll:
		std = glfw.VResizeCursor
	default:
		std = glfw.ArrowCursor
	}
	c := glfw.CreateStandardCursor(std)
	a.cursors[shape] = c
	return c
}

// SurfaceConfig configures a new GLFW surface.
type SurfaceConfig struct {
	Title  string
	Width  int
	Height int
	Popup  bool
}

// Surface is one GLFW window.
type Surface struct {
	app     *App
	win     *glfw.Window
	handler host.Handler

	visible   bool
	destroyed bool
	dirty     bool

	// windowedPos and windowedSize hold the geometry to restore when
	// leaving fullscreen.
	windowedPos  graphics.Point
	windowedSize graphics.Size
	fullscreen   bool

	minSize graphics.Size
	maxSize graphics.Size

	pendingText string
}

// CreateSurface creates a hidden window.
func (a *App) CreateSurface(cfg SurfaceConfig) (*Surface, error) {
	glfw.WindowHint(glfw.Visible, glfw.False)
	// GL 3.3 core for the blit presenter; macOS needs the
	// forward-compatible flag.
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Popup {
		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Floating, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Floating, glfw.False)
	}
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfwhost: create window: %w", err)
	}
	s := &Surface{app: a, win: win}
	s.installCallbacks()
	a.surfaces = append(a.surfaces, s)
	return s, nil
}

func (s *Surface) installCallbacks() {
	win := s.win

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if s.handler == nil {
			return
		}
		x, y := win.GetCursorPos()
		pos := graphics.Pt(x, y)
		b := translateButton(button)
		if action == glfw.Press {
			s.handler.PointerPressed(pos, b)
		} else {
			s.handler.PointerReleased(pos, b)
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if s.handler != nil {
			s.handler.PointerMoved(graphics.Pt(x, y))
		}
	})
	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if s.handler != nil && !entered {
			s.handler.PointerExited()
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if s.handler == nil {
			return
		}
		x, y := win.GetCursorPos()
		// GLFW reports line-based offsets; synthesize pixel deltas.
		s.handler.PointerScrolled(graphics.Pt(x, y),
			xoff*events.ScrollLinePixels, yoff*events.ScrollLinePixels)
	})
	win.SetCharCallback(func(_ *glfw.Window, char rune) {
		s.pendingText = string(char)
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if s.handler == nil {
			return
		}
		code := events.Key(key)
		text := s.pendingText
		s.pendingText = ""
		switch action {
		case glfw.Press:
			s.handler.KeyPressed(code, text, false)
		case glfw.Repeat:
			s.handler.KeyPressed(code, text, true)
		case glfw.Release:
			s.handler.KeyReleased(code, text, false)
		}
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if s.handler != nil {
			s.handler.ActiveChanged(focused)
		}
	})
	win.SetIconifyCallback(func(_ *glfw.Window, _ bool) {
		s.notifyState()
	})
	win.SetMaximizeCallback(func(_ *glfw.Window, _ bool) {
		s.notifyState()
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		// The runtime decides whether the window actually closes.
		win.SetShouldClose(false)
		if s.handler != nil {
			s.handler.CloseRequested()
		}
	})
	win.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		if s.handler != nil {
			s.handler.Resized(graphics.Size{Width: float64(w), Height: float64(h)})
		}
	})
	win.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		if s.handler != nil {
			s.handler.ScaleChanged(float64(x))
		}
	})
	win.SetRefreshCallback(func(_ *glfw.Window) {
		s.dirty = true
	})
}

func translateButton(b glfw.MouseButton) events.PointerButton {
	switch b {
	case glfw.MouseButtonLeft:
		return events.ButtonPrimary
	case glfw.MouseButtonRight:
		return events.ButtonSecondary
	case glfw.MouseButtonMiddle:
		return events.ButtonMiddle
	case glfw.MouseButton4:
		return events.ButtonBack
	case glfw.MouseButton5:
		return events.ButtonForward
	default:
		return events.ButtonOther
	}
}

func (s *Surface) SetHandler(h host.Handler) { s.handler = h }

func (s *Surface) Show() error {
	if s.destroyed {
		return host.ErrSurfaceClosed
	}
	s.win.Show()
	s.visible = true
	return nil
}

func (s *Surface) Hide() {
	if !s.destroyed {
		s.win.Hide()
	}
	s.visible = false
}

func (s *Surface) Visible() bool { return s.visible && !s.destroyed }

func (s *Surface) SetTitle(title string) { s.win.SetTitle(title) }

func (s *Surface) SetIcon(icon *graphics.Pixmap) {
	if icon.IsEmpty() {
		s.win.SetIcon(nil)
		return
	}
	s.win.SetIcon([]image.Image{icon.ToImage()})
}

func (s *Surface) SetFlags(flags host.WindowFlags) {
	decorated := glfw.True
	if flags.Frameless {
		decorated = glfw.False
	}
	floating := glfw.False
	if flags.AlwaysOnTop {
		floating = glfw.True
	}
	s.win.SetAttrib(glfw.Decorated, decorated)
	s.win.SetAttrib(glfw.Floating, floating)
}

func (s *Surface) Size() graphics.Size {
	w, h := s.win.GetSize()
	return graphics.Size{Width: float64(w), Height: float64(h)}
}

func (s *Surface) SetSize(size graphics.Size) {
	s.win.SetSize(int(size.Width), int(size.Height))
}

func (s *Surface) Position() graphics.Point {
	x, y := s.win.GetPos()
	return graphics.Pt(float64(x), float64(y))
}

func (s *Surface) SetPosition(pos graphics.Point) {
	s.win.SetPos(int(pos.X), int(pos.Y))
}

func (s *Surface) SetMinSize(size graphics.Size) {
	s.setSizeLimits(size, s.maxSize)
}

func (s *Surface) SetMaxSize(size graphics.Size) {
	s.setSizeLimits(s.minSize, size)
}

func (s *Surface) setSizeLimits(minSize, maxSize graphics.Size) {
	s.minSize, s.maxSize = minSize, maxSize
	minW, minH := glfw.DontCare, glfw.DontCare
	if minSize.Width > 0 {
		minW = int(minSize.Width)
	}
	if minSize.Height > 0 {
		minH = int(minSize.Height)
	}
	maxW, maxH := glfw.DontCare, glfw.DontCare
	if maxSize.Width > 0 {
		maxW = int(maxSize.Width)
	}
	if maxSize.Height > 0 {
		maxH = int(maxSize.Height)
	}
	s.win.SetSizeLimits(minW, minH, maxW, maxH)
}

func (s *Surface) StateFlags() events.WindowStateFlags {
	return events.WindowStateFlags{
		Minimized:  s.win.GetAttrib(glfw.Iconified) == glfw.True,
		Maximized:  s.win.GetAttrib(glfw.Maximized) == glfw.True,
		Fullscreen: s.fullscreen,
	}
}

func (s *Surface) SetStateFlags(flags events.WindowStateFlags) {
	current := s.StateFlags()
	if flags.Fullscreen != current.Fullscreen {
		s.setFullscreen(flags.Fullscreen)
	}
	if flags.Minimized != current.Minimized {
		if flags.Minimized {
			s.win.Iconify()
		} else {
			s.win.Restore()
		}
	}
	if flags.Maximized != current.Maximized {
		if flags.Maximized {
			s.win.Maximize()
		} else {
			s.win.Restore()
		}
	}
}

func (s *Surface) setFullscreen(enable bool) {
	if enable {
		s.windowedPos = s.Position()
		s.windowedSize = s.Size()
		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		s.win.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		s.win.SetMonitor(nil,
			int(s.windowedPos.X), int(s.windowedPos.Y),
			int(s.windowedSize.Width), int(s.windowedSize.Height), 0)
	}
	s.fullscreen = enable
	s.notifyState()
}

func (s *Surface) notifyState() {
	if s.handler != nil {
		s.handler.StateChanged(s.StateFlags())
	}
}

func (s *Surface) SetCursor(shape host.CursorShape) {
	s.win.SetCursor(s.app.standardCursor(shape))
}

// SetIMEEnabled is a no-op: GLFW has no IME control surface; character
// input still arrives through the char callback.
func (s *Surface) SetIMEEnabled(bool) {}

// SetIMECursorRect is a no-op for the same reason.
func (s *Surface) SetIMECursorRect(graphics.Rect) {}

func (s *Surface) RequestRedraw() {
	if s.destroyed {
		return
	}
	s.dirty = true
	glfw.PostEmptyEvent()
}

func (s *Surface) ScaleFactor() float64 {
	x, _ := s.win.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

func (s *Surface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.visible = false
	s.win.Destroy()
}
