package input

import "time"

// SessionState is the debounce state shared by click and drag sessions.
type SessionState int

const (
	// Idle: no pinch in progress.
	Idle SessionState = iota
	// Armed: pinched, waiting for the hold time to elapse.
	Armed
	// Fired: the event was emitted; suppressed until the pinch opens.
	Fired
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	}
	return "unknown"
}

// hold is the Idle -> Armed -> Fired machine underneath click and drag.
type hold struct {
	threshold float64
	duration  time.Duration
	state     SessionState
	start     time.Time
}

// step advances the machine and reports whether it entered Fired on this call.
// Arming and firing never happen on the same sample.
func (h *hold) step(distance float64, now time.Time) bool {
	if distance >= h.threshold {
		h.state = Idle
		return false
	}

	switch h.state {
	case Idle:
		h.state = Armed
		h.start = now
	case Armed:
		if now.Sub(h.start) >= h.duration {
			h.state = Fired
			return true
		}
	}
	return false
}

// ClickSession emits at most one click per unbroken pinch held for the hold time.
type ClickSession struct {
	h hold
}

// NewClickSession creates a click session firing once distance stays below
// threshold for at least holdTime.
func NewClickSession(threshold float64, holdTime time.Duration) *ClickSession {
	return &ClickSession{h: hold{threshold: threshold, duration: holdTime}}
}

// Update feeds one distance sample and reports whether a click fires now.
func (s *ClickSession) Update(distance float64, now time.Time) bool {
	return s.h.step(distance, now)
}

// State returns the current state.
func (s *ClickSession) State() SessionState {
	return s.h.state
}

// Reset returns the session to Idle, ending the current pinch episode.
func (s *ClickSession) Reset() {
	s.h.state = Idle
}
