package reveal

import "sync"

// Tracker counts completed lines of one screen and fires its callback
// exactly once, when every visible line has completed.
// A screen without visible lines is complete from the start; the
// callback then fires on the first call to Complete or Flush.
type Tracker struct {
	mu        sync.Mutex
	visible   int
	completed map[int]struct{}
	fired     bool
	onDone    func()
}

// NewTracker returns a tracker for a screen with the given visible-line count.
func NewTracker(visible int, onDone func()) *Tracker {
	if visible < 0 {
		visible = 0
	}
	return &Tracker{
		visible:   visible,
		completed: make(map[int]struct{}, visible),
		onDone:    onDone,
	}
}

// Complete marks the visible line at index as fully shown.
// Repeated and out-of-range indexes are ignored. It reports whether this
// call fired the callback.
func (t *Tracker) Complete(index int) bool {
	t.mu.Lock()
	if index >= 0 && index < t.visible {
		t.completed[index] = struct{}{}
	}
	fire := t.shouldFire()
	t.mu.Unlock()

	if fire && t.onDone != nil {
		t.onDone()
	}
	return fire
}

// Flush fires the callback of an empty screen.
func (t *Tracker) Flush() bool {
	return t.Complete(-1)
}

// Completed is the number of distinct lines marked so far.
func (t *Tracker) Completed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.completed)
}

// Done reports whether the callback has fired.
func (t *Tracker) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

func (t *Tracker) shouldFire() bool {
	if t.fired || len(t.completed) != t.visible {
		return false
	}
	t.fired = true
	return true
}
