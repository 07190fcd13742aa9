package window

import (
	"errors"
	"testing"
	"time"

	"github.com/slint-ui/slint-sub001/events"
	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/host/hosttest"
	"github.com/slint-ui/slint-sub001/itemtree"
)

type eventSink struct {
	events []events.Event
}

func (s *eventSink) dispatch(ev events.Event) { s.events = append(s.events, ev) }

func (s *eventSink) drain() []events.Event {
	evs := s.events
	s.events = nil
	return evs
}

func newTestAdapter(t *testing.T) (*Adapter, *hosttest.Surface, *hosttest.Graphics, *eventSink) {
	t.Helper()
	surface := hosttest.NewSurface(640, 480)
	gfx := &hosttest.Graphics{}
	sink := &eventSink{}
	a, err := New(surface, gfx, NewRegistry(), WithDispatch(sink.dispatch))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, surface, gfx, sink
}

func TestNewWithoutGraphicsFails(t *testing.T) {
	_, err := New(hosttest.NewSurface(100, 100), nil, NewRegistry())
	if !errors.Is(err, ErrUnsupportedGraphicsMode) {
		t.Fatalf("err = %v, want ErrUnsupportedGraphicsMode", err)
	}
}

func TestLastWindowDetection(t *testing.T) {
	reg := NewRegistry()
	gfx := &hosttest.Graphics{}
	fired := 0
	reg.OnLastWindowHidden = func() { fired++ }

	a, _ := New(hosttest.NewSurface(100, 100), gfx, reg)
	b, _ := New(hosttest.NewSurface(100, 100), gfx, reg)
	a.SetVisible(true)
	b.SetVisible(true)

	a.SetVisible(false)
	if fired != 0 {
		t.Fatalf("fired with a window still visible")
	}
	b.SetVisible(false)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	// Hiding an already hidden window does not re-check.
	b.SetVisible(false)
	if fired != 1 {
		t.Fatalf("re-hide fired again")
	}
}

func TestHiddenPopupDoesNotCountAsLastWindow(t *testing.T) {
	reg := NewRegistry()
	gfx := &hosttest.Graphics{}
	fired := 0
	reg.OnLastWindowHidden = func() { fired++ }

	owner, _ := New(hosttest.NewSurface(200, 200), gfx, reg)
	owner.SetVisible(true)
	popup, err := owner.CreatePopup(itemtree.NewTree(),
		graphics.NewRect(10, 10, 50, 50), events.CloseOnClick,
		hosttest.NewSurface(50, 50))
	if err != nil {
		t.Fatalf("CreatePopup: %v", err)
	}

	popup.ClosePopup()
	if fired != 0 {
		t.Fatalf("closing a popup fired the last-window callback")
	}
	owner.SetVisible(false)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

func TestWindowStateReconciliationSingleCorrection(t *testing.T) {
	_, surface, _, sink := newTestAdapter(t)

	surface.DeliverStateChange(events.WindowStateFlags{Fullscreen: true})
	evs := sink.drain()
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}
	corr, ok := evs[0].(events.StateCorrection)
	if !ok || corr.Flag != events.FlagFullscreen || !corr.Value {
		t.Fatalf("got %+v, want fullscreen correction to true", evs[0])
	}

	// The same host state again matches the updated belief.
	surface.DeliverStateChange(events.WindowStateFlags{Fullscreen: true})
	if evs := sink.drain(); len(evs) != 0 {
		t.Fatalf("same transition produced further corrections: %v", evs)
	}
}

func TestUpdateWindowPropertiesDiffsStateFlags(t *testing.T) {
	a, surface, _, _ := newTestAdapter(t)

	a.UpdateWindowProperties(Properties{Fullscreen: true, Size: graphics.Size{Width: 640, Height: 480}})
	if len(surface.StateSets) != 1 {
		t.Fatalf("StateSets = %d, want 1", len(surface.StateSets))
	}

	a.UpdateWindowProperties(Properties{Fullscreen: true, Size: graphics.Size{Width: 640, Height: 480}})
	if len(surface.StateSets) != 1 {
		t.Fatalf("matching state re-pushed: %d sets", len(surface.StateSets))
	}

	a.UpdateWindowProperties(Properties{Size: graphics.Size{Width: 640, Height: 480}})
	if len(surface.StateSets) != 2 {
		t.Fatalf("leaving fullscreen not pushed: %d sets", len(surface.StateSets))
	}
}

func TestUpdateWindowPropertiesAdoptsHostSize(t *testing.T) {
	a, surface, _, _ := newTestAdapter(t)

	a.UpdateWindowProperties(Properties{Size: graphics.Size{Height: 300}})
	got := surface.Size()
	want := graphics.Size{Width: 640, Height: 300}
	if got != want {
		t.Fatalf("size = %+v, want %+v", got, want)
	}
}

func TestUpdateWindowPropertiesSizeLimits(t *testing.T) {
	a, surface, _, _ := newTestAdapter(t)

	a.UpdateWindowProperties(Properties{
		Size:    graphics.Size{Width: 640, Height: 480},
		MinSize: graphics.Size{Width: 200, Height: 100},
	})
	if surface.MinSize != (graphics.Size{Width: 200, Height: 100}) {
		t.Errorf("MinSize = %+v", surface.MinSize)
	}
	want := graphics.Size{Width: maxWindowDimension, Height: maxWindowDimension}
	if surface.MaxSize != want {
		t.Errorf("unset max = %+v, want host maximum", surface.MaxSize)
	}
}

func TestUpdateWindowPropertiesTitleAndFlags(t *testing.T) {
	a, surface, _, _ := newTestAdapter(t)

	a.UpdateWindowProperties(Properties{
		Title:       "demo",
		Frameless:   true,
		AlwaysOnTop: true,
		Size:        graphics.Size{Width: 640, Height: 480},
	})
	if surface.Title != "demo" {
		t.Errorf("title = %q", surface.Title)
	}
	if !surface.Flags.Frameless || !surface.Flags.AlwaysOnTop {
		t.Errorf("flags = %+v", surface.Flags)
	}
}

func TestPopupCloseOnClickOutside(t *testing.T) {
	a, surface, _, sink := newTestAdapter(t)
	a.SetVisible(true)

	popup, err := a.CreatePopup(itemtree.NewTree(),
		graphics.NewRect(100, 100, 80, 60), events.CloseOnClickOutside,
		hosttest.NewSurface(80, 60))
	if err != nil {
		t.Fatalf("CreatePopup: %v", err)
	}
	if !popup.Visible() || !popup.IsPopup() {
		t.Fatalf("popup not shown")
	}
	sink.drain()

	// A release inside the popup's rectangle does not close it.
	inside := graphics.Pt(120, 120)
	surface.DeliverPointerPress(inside, events.ButtonPrimary)
	surface.DeliverPointerRelease(inside, events.ButtonPrimary)
	for _, ev := range sink.drain() {
		if _, ok := ev.(events.PopupClosed); ok {
			t.Fatalf("release inside closed the popup")
		}
	}

	// A release outside dispatches the popup's identifier exactly once.
	outside := graphics.Pt(10, 10)
	surface.DeliverPointerPress(outside, events.ButtonPrimary)
	surface.DeliverPointerRelease(outside, events.ButtonPrimary)
	closes := 0
	for _, ev := range sink.drain() {
		if c, ok := ev.(events.PopupClosed); ok {
			closes++
			if c.PopupID != popup.PopupID() {
				t.Errorf("closed popup %d, want %d", c.PopupID, popup.PopupID())
			}
		}
	}
	if closes != 1 {
		t.Fatalf("closes = %d, want 1", closes)
	}
}

func TestPopupPositionedAtOwnerOriginPlusOffset(t *testing.T) {
	a, surface, _, _ := newTestAdapter(t)
	surface.SetPosition(graphics.Pt(100, 50))

	popup, err := a.CreatePopup(itemtree.NewTree(),
		graphics.NewRect(10, 20, 200, 100), events.NoAutoClose,
		hosttest.NewSurface(10, 10))
	if err != nil {
		t.Fatalf("CreatePopup: %v", err)
	}
	if got := popup.Position(); got != graphics.Pt(110, 70) {
		t.Errorf("position = %+v", got)
	}
	if got := popup.Size(); got != (graphics.Size{Width: 200, Height: 100}) {
		t.Errorf("size = %+v", got)
	}
}

func TestRedrawRequestsCoalesce(t *testing.T) {
	a, surface, _, _ := newTestAdapter(t)

	a.RequestRedraw()
	a.RequestRedraw()
	a.RequestRedraw()
	if surface.RedrawRequests != 1 {
		t.Fatalf("requests = %d, want 1", surface.RedrawRequests)
	}

	// A paint re-arms coalescing.
	surface.DeliverPaint()
	a.RequestRedraw()
	if surface.RedrawRequests != 1 {
		t.Fatalf("post-paint request not forwarded")
	}
}

func TestPaintFillsBackgroundAndRendersTree(t *testing.T) {
	a, surface, gfx, _ := newTestAdapter(t)
	a.SetVisible(true)
	a.UpdateWindowProperties(Properties{
		Background: graphics.Solid(graphics.RGB(1, 0, 0)),
		Size:       graphics.Size{Width: 640, Height: 480},
	})

	tree := itemtree.NewTree()
	root := tree.Add(-1, graphics.NewRect(0, 0, 640, 480), itemtree.Rectangle{})
	tree.Add(root, graphics.NewRect(10, 10, 50, 50), itemtree.Rectangle{
		Fill: graphics.Solid(graphics.RGB(0, 1, 0)),
	})
	a.SetTree(tree)

	surface.DeliverPaint()
	if gfx.Frames != 1 {
		t.Fatalf("frames = %d, want 1", gfx.Frames)
	}
	if c := gfx.Target.GetPixel(5, 5); c.G > 0.1 || c.R < 0.9 {
		t.Errorf("background pixel = %+v, want red", c)
	}
	if c := gfx.Target.GetPixel(20, 20); c.G < 0.9 {
		t.Errorf("item pixel = %+v, want green", c)
	}
}

func TestHiddenWindowDoesNotPaint(t *testing.T) {
	_, surface, gfx, _ := newTestAdapter(t)

	surface.DeliverPaint()
	if gfx.Frames != 0 {
		t.Fatalf("hidden window painted")
	}
}

func TestColorSchemeLazyWithInvalidation(t *testing.T) {
	surface := hosttest.NewSurface(100, 100)
	queries := 0
	a, err := New(surface, &hosttest.Graphics{}, NewRegistry(),
		WithColorSchemeQuery(func() events.ColorScheme {
			queries++
			return events.ColorSchemeDark
		}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := a.ColorScheme(); got != events.ColorSchemeDark {
		t.Fatalf("scheme = %v", got)
	}
	a.ColorScheme()
	if queries != 1 {
		t.Fatalf("queries = %d, want 1 (cached)", queries)
	}

	surface.DeliverColorSchemeChange(events.ColorSchemeLight)
	a.ColorScheme()
	if queries != 2 {
		t.Fatalf("palette change did not invalidate: queries = %d", queries)
	}
}

func TestPhysicalSizeUsesScaleFactor(t *testing.T) {
	a, surface, _, _ := newTestAdapter(t)
	surface.SetScale(2)

	got := a.PhysicalSize()
	if got != (graphics.Size{Width: 1280, Height: 960}) {
		t.Fatalf("physical size = %+v", got)
	}

	a.SetPhysicalSize(graphics.Size{Width: 200, Height: 100})
	if a.Size() != (graphics.Size{Width: 100, Height: 50}) {
		t.Fatalf("logical size = %+v", a.Size())
	}
}

func TestPreferredSizeFromTree(t *testing.T) {
	a, _, _, _ := newTestAdapter(t)

	if a.PreferredSize() != (graphics.Size{}) {
		t.Fatalf("empty window has a preferred size")
	}

	tree := itemtree.NewTree()
	root := tree.Add(-1, graphics.NewRect(0, 0, 100, 80), itemtree.Rectangle{})
	tree.Add(root, graphics.NewRect(60, 50, 80, 40), itemtree.Rectangle{})
	a.SetTree(tree)

	if got := a.PreferredSize(); got != (graphics.Size{Width: 140, Height: 90}) {
		t.Fatalf("preferred size = %+v", got)
	}
}

func TestMetricsOverlayAfterOneSecond(t *testing.T) {
	surface := hosttest.NewSurface(100, 100)
	now := time.Unix(0, 0)
	a, err := New(surface, &hosttest.Graphics{}, NewRegistry(),
		WithClock(func() time.Time { return now }),
		WithMetricsOverlay())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.SetVisible(true)

	surface.DeliverPaint()
	if a.collector.overlayText() != "" {
		t.Fatalf("summary before one second elapsed")
	}

	now = now.Add(1100 * time.Millisecond)
	surface.DeliverPaint()
	if a.collector.overlayText() == "" {
		t.Fatalf("no summary after one second")
	}

	a.SetVisible(false)
	if a.collector.overlayText() != "" {
		t.Fatalf("collector still active after hide")
	}
}

func TestAnimationTimerTicksVisibleWindows(t *testing.T) {
	reg := NewRegistry()
	surface := hosttest.NewSurface(100, 100)
	now := time.Unix(0, 0)
	a, _ := New(surface, &hosttest.Graphics{}, reg,
		WithClock(func() time.Time { return now }))
	a.SetVisible(true)
	surface.DeliverPaint()

	a.ScheduleAnimation(50 * time.Millisecond)
	a.ScheduleAnimation(20 * time.Millisecond)

	wait, ok := reg.Timer().NextWait(now)
	if !ok || wait != 20*time.Millisecond {
		t.Fatalf("wait = %v ok=%v, want 20ms", wait, ok)
	}

	if reg.Timer().Fire(now.Add(10 * time.Millisecond)) {
		t.Fatalf("fired before the deadline")
	}
	if !reg.Timer().Fire(now.Add(25 * time.Millisecond)) {
		t.Fatalf("did not fire after the deadline")
	}
	if surface.RedrawRequests != 1 {
		t.Fatalf("tick did not request a redraw: %d", surface.RedrawRequests)
	}
	if reg.Timer().Armed() {
		t.Fatalf("timer still armed after firing")
	}
}

func TestCloseRequestedReachesDispatch(t *testing.T) {
	_, surface, _, sink := newTestAdapter(t)

	surface.DeliverCloseRequest()
	evs := sink.drain()
	if len(evs) != 1 {
		t.Fatalf("got %d events", len(evs))
	}
	if _, ok := evs[0].(events.CloseRequested); !ok {
		t.Fatalf("got %T, want CloseRequested", evs[0])
	}
}

func TestDestroyPurgesCacheAndRegistry(t *testing.T) {
	reg := NewRegistry()
	a, _ := New(hosttest.NewSurface(100, 100), &hosttest.Graphics{}, reg)

	tree := itemtree.NewTree()
	root := tree.Add(-1, graphics.NewRect(0, 0, 100, 100), itemtree.Rectangle{})
	a.SetTree(tree)
	a.Cache().GetOrUpdate(tree.Ref(root), func() *graphics.Pixmap {
		return graphics.NewPixmap(1, 1)
	})

	a.Destroy()
	if a.Cache().Len() != 0 {
		t.Errorf("cache not purged")
	}
	if len(reg.Adapters()) != 0 {
		t.Errorf("adapter still registered")
	}
}
