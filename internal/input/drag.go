package input

import "time"

// DragTransition is what a DragSession update asks the caller to do.
type DragTransition int

const (
	DragNone DragTransition = iota
	// DragPress: press and hold the button.
	DragPress
	// DragRelease: release the held button.
	DragRelease
)

// DragSession presses the button once a pinch is held for the hold time and
// releases it once the pinch opens.
type DragSession struct {
	h hold
}

// NewDragSession creates a drag session with its own threshold and hold time.
func NewDragSession(threshold float64, holdTime time.Duration) *DragSession {
	return &DragSession{h: hold{threshold: threshold, duration: holdTime}}
}

// Update feeds one distance sample.
func (s *DragSession) Update(distance float64, now time.Time) DragTransition {
	wasActive := s.Active()
	if s.h.step(distance, now) {
		return DragPress
	}
	if wasActive && !s.Active() {
		return DragRelease
	}
	return DragNone
}

// Active reports whether the button is currently held down.
func (s *DragSession) Active() bool {
	return s.h.state == Fired
}

// State returns the current state. Fired means the drag is active.
func (s *DragSession) State() SessionState {
	return s.h.state
}

// Release ends the session and reports whether a held button must be
// released. Callers use it on shutdown and hand loss.
func (s *DragSession) Release() bool {
	active := s.Active()
	s.h.state = Idle
	return active
}
