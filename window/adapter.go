// Package window binds one host surface to the renderer and the event
// translator. The Adapter owns the render cache, the per-window
// metrics, and the window-state bookkeeping; the Registry tracks all
// adapters for last-window detection and shares one animation timer.
package window

import (
	"errors"
	"time"

	"github.com/slint-ui/slint-sub001/accessibility"
	"github.com/slint-ui/slint-sub001/events"
	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/host"
	"github.com/slint-ui/slint-sub001/itemtree"
	"github.com/slint-ui/slint-sub001/rendercache"
	"github.com/slint-ui/slint-sub001/renderer"
	"github.com/slint-ui/slint-sub001/textlayout"
)

// ErrUnsupportedGraphicsMode reports that a window was requested with a
// graphics mode the host cannot provide. It is fatal to that window's
// creation only.
var ErrUnsupportedGraphicsMode = errors.New("window: unsupported graphics mode")

// maxWindowDimension is the largest window extent passed to the host
// when a maximum size is left unset.
const maxWindowDimension = 1<<24 - 1

// Properties is the declared window state reconciled against the host
// by UpdateWindowProperties.
type Properties struct {
	Title      string
	Icon       *graphics.Pixmap
	Background graphics.Brush

	Frameless   bool
	AlwaysOnTop bool

	Fullscreen bool
	Minimized  bool
	Maximized  bool

	// Size in logical units. A zero dimension adopts the host's
	// current size for that dimension.
	Size graphics.Size

	// MinSize with a zero dimension means no minimum; MaxSize with a
	// zero dimension means the host's maximum representable extent.
	MinSize graphics.Size
	MaxSize graphics.Size
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithDispatch sets the sink receiving translated runtime events.
func WithDispatch(fn func(events.Event)) Option {
	return func(a *Adapter) { a.dispatch = fn }
}

// WithFonts sets the font registry used for text items.
func WithFonts(reg *textlayout.Registry) Option {
	return func(a *Adapter) { a.fonts = reg }
}

// WithTextEngine sets the shaping engine used for text items.
func WithTextEngine(e *textlayout.Engine) Option {
	return func(a *Adapter) { a.engine = e }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// WithColorSchemeQuery sets the host palette query backing the lazily
// computed color scheme.
func WithColorSchemeQuery(fn func() events.ColorScheme) Option {
	return func(a *Adapter) { a.schemeQuery = fn }
}

// WithAccessibility attaches an accessibility bridge.
func WithAccessibility(b *accessibility.Bridge) Option {
	return func(a *Adapter) { a.bridge = b }
}

// WithMetricsOverlay draws the per-second render summary onto the
// frame.
func WithMetricsOverlay() Option {
	return func(a *Adapter) { a.overlay = true }
}

// Adapter drives one host surface: it renders the item tree into
// frames obtained from the graphics API and feeds host input through
// the event translator. All methods run on the UI thread.
type Adapter struct {
	surface  host.Surface
	gfx      host.GraphicsAPI
	registry *Registry

	translator *events.Translator
	renderer   *renderer.Renderer
	cache      *rendercache.Cache
	metrics    *renderer.Metrics
	collector  *metricsCollector
	bridge     *accessibility.Bridge

	fonts  *textlayout.Registry
	engine *textlayout.Engine

	dispatch    func(events.Event)
	now         func() time.Time
	schemeQuery func() events.ColorScheme

	tree  *itemtree.Tree
	props Properties

	// believed is the runtime's view of the host window-state flags,
	// corrected one-directionally on host notifications.
	believed events.WindowStateFlags

	visible       bool
	redrawPending bool
	overlay       bool

	scheme      events.ColorScheme
	schemeKnown bool

	// composition supplies the focused editor's text and cursor byte
	// offset for IME replacement-range translation.
	composition func() (text string, cursorByte int)

	owner   *Adapter
	popupID uint64
}

// New creates an adapter for a surface. The graphics API is required;
// requesting a window without one fails with
// ErrUnsupportedGraphicsMode.
func New(surface host.Surface, gfx host.GraphicsAPI, registry *Registry, opts ...Option) (*Adapter, error) {
	if gfx == nil {
		return nil, ErrUnsupportedGraphicsMode
	}
	a := &Adapter{
		surface:  surface,
		gfx:      gfx,
		registry: registry,
		cache:    rendercache.New(),
		metrics:  renderer.NewMetrics(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.translator = events.NewTranslator()
	a.collector = newMetricsCollector(a.metrics)

	ropts := []renderer.Option{
		renderer.WithCache(a.cache),
		renderer.WithMetrics(a.metrics),
	}
	if a.engine != nil {
		ropts = append(ropts, renderer.WithTextEngine(a.engine))
	}
	if a.fonts != nil {
		ropts = append(ropts, renderer.WithFonts(a.fonts))
	}
	a.renderer = renderer.New(nil, ropts...)

	surface.SetHandler(a)
	registry.add(a)
	return a, nil
}

// Surface returns the host surface the adapter drives.
func (a *Adapter) Surface() host.Surface { return a.surface }

// Cache returns the window's render cache.
func (a *Adapter) Cache() *rendercache.Cache { return a.cache }

// Metrics returns the window's render counters.
func (a *Adapter) Metrics() *renderer.Metrics { return a.metrics }

// IsPopup reports whether the adapter was created by CreatePopup.
func (a *Adapter) IsPopup() bool { return a.owner != nil }

// Visible reports the adapter's own visibility belief.
func (a *Adapter) Visible() bool { return a.visible }

// SetTree swaps the scene displayed by the window and schedules a
// repaint. The accessibility bridge learns about the change at the
// next paint.
func (a *Adapter) SetTree(tree *itemtree.Tree) {
	a.tree = tree
	a.bridge.NotifyTreeChanged()
	a.RequestRedraw()
}

// Tree returns the current scene.
func (a *Adapter) Tree() *itemtree.Tree { return a.tree }

// SetCompositionContext registers the focused editor's text state for
// IME replacement-range translation. Pass nil when focus leaves an
// editor.
func (a *Adapter) SetCompositionContext(fn func() (text string, cursorByte int)) {
	a.composition = fn
}

// SetVisible shows or hides the window. Showing starts the metrics
// collector; hiding stops it, and if the window was visible before the
// registry checks whether any visible top-level window remains.
func (a *Adapter) SetVisible(visible bool) error {
	if visible {
		if err := a.surface.Show(); err != nil {
			return err
		}
		a.visible = true
		a.collector.start(a.now())
		a.RequestRedraw()
		return nil
	}

	wasVisible := a.visible
	a.collector.stop()
	a.surface.Hide()
	a.visible = false
	if wasVisible {
		a.registry.windowHidden(a)
	}
	return nil
}

// Size returns the window size in logical units.
func (a *Adapter) Size() graphics.Size { return a.surface.Size() }

// SetSize resizes the window, in logical units.
func (a *Adapter) SetSize(size graphics.Size) { a.surface.SetSize(size) }

// PhysicalSize returns the window size in device pixels.
func (a *Adapter) PhysicalSize() graphics.Size {
	s := a.surface.Size()
	f := a.surface.ScaleFactor()
	return graphics.Size{Width: s.Width * f, Height: s.Height * f}
}

// SetPhysicalSize resizes the window given a size in device pixels.
func (a *Adapter) SetPhysicalSize(size graphics.Size) {
	f := a.surface.ScaleFactor()
	a.surface.SetSize(graphics.Size{Width: size.Width / f, Height: size.Height / f})
}

// Position returns the window position in the host's native unit.
func (a *Adapter) Position() graphics.Point { return a.surface.Position() }

// SetPosition moves the window, in the host's native unit.
func (a *Adapter) SetPosition(pos graphics.Point) { a.surface.SetPosition(pos) }

// PreferredSize is the size hint reported when the declared size is
// unset: the bounding box of the scene's root subtree.
func (a *Adapter) PreferredSize() graphics.Size {
	if a.tree == nil || a.tree.Len() == 0 {
		return graphics.Size{}
	}
	return a.tree.ChildrenBoundingRect(0).Size()
}

// UpdateWindowProperties reconciles the declared properties against
// the host, toggling only what actually differs so no redundant state
// churn or re-entrant change notification occurs.
func (a *Adapter) UpdateWindowProperties(p Properties) {
	if p.Title != a.props.Title {
		a.surface.SetTitle(p.Title)
	}
	if p.Icon != a.props.Icon {
		a.surface.SetIcon(p.Icon)
	}
	if p.Frameless != a.props.Frameless || p.AlwaysOnTop != a.props.AlwaysOnTop {
		a.surface.SetFlags(host.WindowFlags{
			Frameless:   p.Frameless,
			AlwaysOnTop: p.AlwaysOnTop,
		})
	}

	desired := events.WindowStateFlags{
		Fullscreen: p.Fullscreen,
		Minimized:  p.Minimized,
		Maximized:  p.Maximized,
	}
	if observed := a.surface.StateFlags(); desired != observed {
		a.surface.SetStateFlags(desired)
	}
	a.believed = desired

	// A zero declared dimension adopts the host's current size.
	size := p.Size
	current := a.surface.Size()
	if size.Width == 0 {
		size.Width = current.Width
	}
	if size.Height == 0 {
		size.Height = current.Height
	}
	if size != current {
		a.surface.SetSize(size)
	}

	a.surface.SetMinSize(p.MinSize)
	maxSize := p.MaxSize
	if maxSize.Width == 0 {
		maxSize.Width = maxWindowDimension
	}
	if maxSize.Height == 0 {
		maxSize.Height = maxWindowDimension
	}
	a.surface.SetMaxSize(maxSize)

	if !brushEqual(p.Background, a.props.Background) {
		a.RequestRedraw()
	}
	a.props = p
	a.props.Size = size
}

// brushEqual compares brushes without risking an interface comparison
// on gradient stops. Gradients are treated as always changed.
func brushEqual(x, y graphics.Brush) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	xs, xok := x.(graphics.SolidBrush)
	ys, yok := y.(graphics.SolidBrush)
	if xok && yok {
		return xs == ys
	}
	_, xno := x.(graphics.NoBrush)
	_, yno := y.(graphics.NoBrush)
	return xno && yno
}

// Background returns the declared background brush.
func (a *Adapter) Background() graphics.Brush { return a.props.Background }

// ColorScheme returns the host palette classification. It is computed
// on first query and cached; a host palette-change notification
// invalidates the cached value.
func (a *Adapter) ColorScheme() events.ColorScheme {
	if !a.schemeKnown {
		if a.schemeQuery != nil {
			a.scheme = a.schemeQuery()
		} else {
			a.scheme = events.ColorSchemeUnknown
		}
		a.schemeKnown = true
	}
	return a.scheme
}

// SetMouseCursor maps a runtime cursor to a host shape and applies it.
func (a *Adapter) SetMouseCursor(c host.Cursor) {
	a.surface.SetCursor(host.ShapeForCursor(c))
}

// SetIMEEnabled toggles host input-method composition.
func (a *Adapter) SetIMEEnabled(enabled bool) { a.surface.SetIMEEnabled(enabled) }

// SetIMECursorRect reports where the host should place composition UI.
func (a *Adapter) SetIMECursorRect(rect graphics.Rect) { a.surface.SetIMECursorRect(rect) }

// RequestRedraw asks the host to schedule one repaint. Requests before
// the next paint collapse into one.
func (a *Adapter) RequestRedraw() {
	if a.redrawPending {
		return
	}
	a.redrawPending = true
	a.surface.RequestRedraw()
}

// ScheduleAnimation arms the shared animation timer so the next tick
// happens within d.
func (a *Adapter) ScheduleAnimation(d time.Duration) {
	a.registry.Timer().Schedule(a.now(), d)
}

// CreatePopup constructs a child window parented to this one,
// positioned at the owner's origin plus the geometry's offset in
// global coordinates, and shows it immediately. Releases on the owner
// close it per policy.
func (a *Adapter) CreatePopup(tree *itemtree.Tree, geometry graphics.Rect, policy events.PopupClosePolicy, surface host.Surface) (*Adapter, error) {
	popup, err := New(surface, a.gfx, a.registry,
		WithDispatch(a.dispatch),
		WithClock(a.now),
		WithFonts(a.fonts),
		WithTextEngine(a.engine),
	)
	if err != nil {
		return nil, err
	}
	popup.owner = a
	popup.popupID = a.registry.allocPopupID()
	popup.SetTree(tree)

	origin := a.surface.Position()
	popup.surface.SetPosition(graphics.Pt(origin.X+geometry.X, origin.Y+geometry.Y))
	popup.surface.SetSize(geometry.Size())

	a.translator.SetActivePopup(&events.ActivePopup{
		ID:     popup.popupID,
		Bounds: geometry,
		Policy: policy,
	})
	if err := popup.SetVisible(true); err != nil {
		return nil, err
	}
	return popup, nil
}

// PopupID returns the identifier dispatched in PopupClosed events, or
// zero for top-level windows.
func (a *Adapter) PopupID() uint64 { return a.popupID }

// ClosePopup hides a popup adapter and clears the owner's close
// tracking.
func (a *Adapter) ClosePopup() {
	if a.owner == nil {
		return
	}
	a.owner.translator.SetActivePopup(nil)
	_ = a.SetVisible(false)
	a.Destroy()
}

// Destroy releases the window. The render cache drops every entry for
// the current tree.
func (a *Adapter) Destroy() {
	if a.tree != nil {
		a.cache.ComponentDestroyed(a.tree)
	}
	a.collector.stop()
	a.visible = false
	a.registry.remove(a)
	a.surface.Destroy()
}

func (a *Adapter) emit(evs []events.Event) {
	if a.dispatch == nil {
		return
	}
	for _, ev := range evs {
		a.dispatch(ev)
	}
}
