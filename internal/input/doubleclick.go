package input

import "time"

// DoubleClickTracker pairs consecutive clicks that fire within MaxInterval.
type DoubleClickTracker struct {
	MaxInterval time.Duration

	last time.Time
}

// NewDoubleClickTracker creates a tracker with the given pairing window.
func NewDoubleClickTracker(maxInterval time.Duration) *DoubleClickTracker {
	return &DoubleClickTracker{MaxInterval: maxInterval}
}

// Observe is called every frame with whether the click session fired on
// that frame. It reports a double click when this click pairs with the
// previous one; the pair is then forgotten so a third rapid click starts
// a new pair.
func (d *DoubleClickTracker) Observe(clicked bool, now time.Time) bool {
	if !clicked {
		return false
	}

	if !d.last.IsZero() && now.Sub(d.last) <= d.MaxInterval {
		d.last = time.Time{}
		return true
	}

	d.last = now
	return false
}

// Reset forgets the last click.
func (d *DoubleClickTracker) Reset() {
	d.last = time.Time{}
}
