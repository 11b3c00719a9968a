// Package input turns per-frame pinch and fingertip signals into debounced
// mouse events and delivers them to the native input device.
package input

import (
	"fmt"
	"time"
)

// Button names a mouse button.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonCenter Button = "center"
)

// Injector is the native mouse injection contract. Every call is
// fire-and-forget: no status is reported back to the caller.
type Injector interface {
	Move(x, y int)
	Click(b Button)
	Toggle(b Button, down bool)
	Scroll(amount int)
}

// EventKind enumerates the discrete events the state machines emit.
type EventKind int

const (
	EventClick EventKind = iota + 1
	EventDoubleClick
	EventDragStart
	EventDragEnd
	EventScroll
)

var eventKindNames = map[EventKind]string{
	EventClick:       "click",
	EventDoubleClick: "double_click",
	EventDragStart:   "drag_start",
	EventDragEnd:     "drag_end",
	EventScroll:      "scroll",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// MarshalText renders the kind name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is one emitted input event. X and Y locate the event in camera
// pixels; Amount carries the signed scroll magnitude.
type Event struct {
	Kind   EventKind `json:"kind"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Amount int       `json:"amount,omitempty"`
	Track  string    `json:"track,omitempty"`
	Time   time.Time `json:"time"`
}
