package window

import "time"

// AnimationTimer tracks the single shared animation deadline. All
// pending animation timeouts collapse into the earliest one; the host
// loop asks NextWait how long it may block and calls Fire once the
// deadline passes. Everything runs on the UI thread.
type AnimationTimer struct {
	deadline time.Time
	armed    bool
	fire     func()
}

// NewAnimationTimer creates a disarmed timer. fire runs from Fire when
// the deadline has passed; it may re-arm the timer.
func NewAnimationTimer(fire func()) *AnimationTimer {
	return &AnimationTimer{fire: fire}
}

// Schedule arms the timer for now+d, or keeps the current deadline if
// that one is earlier.
func (t *AnimationTimer) Schedule(now time.Time, d time.Duration) {
	deadline := now.Add(d)
	if t.armed && t.deadline.Before(deadline) {
		return
	}
	t.deadline = deadline
	t.armed = true
}

// Stop disarms the timer.
func (t *AnimationTimer) Stop() {
	t.armed = false
}

// Armed reports whether a deadline is pending.
func (t *AnimationTimer) Armed() bool { return t.armed }

// NextWait returns how long the host loop may block before the timer
// is due, and whether a deadline is pending at all.
func (t *AnimationTimer) NextWait(now time.Time) (time.Duration, bool) {
	if !t.armed {
		return 0, false
	}
	d := t.deadline.Sub(now)
	if d < 0 {
		d = 0
	}
	return d, true
}

// Fire runs the callback if the deadline has passed. The timer is
// disarmed first so the callback can schedule the next tick.
func (t *AnimationTimer) Fire(now time.Time) bool {
	if !t.armed || now.Before(t.deadline) {
		return false
	}
	t.armed = false
	if t.fire != nil {
		t.fire()
	}
	return true
}
