package window

// Registry tracks every live window adapter for lifecycle bookkeeping.
// It is an explicit object owned by the application context and passed
// to each adapter on construction; there is no ambient global list.
type Registry struct {
	adapters []*Adapter
	timer    *AnimationTimer

	// OnLastWindowHidden fires when the last visible top-level window
	// is hidden or destroyed. Callers typically end the event loop.
	OnLastWindowHidden func()

	nextPopupID uint64
}

// NewRegistry creates an empty registry with a disarmed shared
// animation timer.
func NewRegistry() *Registry {
	r := &Registry{}
	r.timer = NewAnimationTimer(r.tickAnimations)
	return r
}

// Timer returns the shared animation timer. All windows arm the same
// timer; it holds the earliest pending deadline.
func (r *Registry) Timer() *AnimationTimer { return r.timer }

func (r *Registry) add(a *Adapter) {
	r.adapters = append(r.adapters, a)
}

func (r *Registry) remove(a *Adapter) {
	for i, other := range r.adapters {
		if other == a {
			r.adapters = append(r.adapters[:i], r.adapters[i+1:]...)
			return
		}
	}
}

// Adapters returns the live adapters in registration order.
func (r *Registry) Adapters() []*Adapter { return r.adapters }

// VisibleTopLevelCount counts visible adapters that are not popups.
func (r *Registry) VisibleTopLevelCount() int {
	n := 0
	for _, a := range r.adapters {
		if a.owner == nil && a.visible {
			n++
		}
	}
	return n
}

// windowHidden is called after an adapter that was visible hid itself.
// When no visible top-level window remains, the last-window callback
// fires.
func (r *Registry) windowHidden(a *Adapter) {
	if a.owner != nil {
		return
	}
	if r.VisibleTopLevelCount() == 0 && r.OnLastWindowHidden != nil {
		r.OnLastWindowHidden()
	}
}

func (r *Registry) allocPopupID() uint64 {
	r.nextPopupID++
	return r.nextPopupID
}

// tickAnimations requests a redraw on every visible window when the
// shared timer fires. Windows with animations still active re-arm the
// timer from their paint pass.
func (r *Registry) tickAnimations() {
	for _, a := range r.adapters {
		if a.visible {
			a.RequestRedraw()
		}
	}
}
