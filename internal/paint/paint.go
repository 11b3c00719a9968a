// Package paint keeps freehand strokes continuous across frames and defines
// the overlay command sink the strokes are drawn on.
package paint

import "image/color"

// Palette colors. Eraser is reserved: selecting it also selects the eraser thickness.
var (
	Red    = color.RGBA{R: 255, A: 255}
	Green  = color.RGBA{G: 255, A: 255}
	Blue   = color.RGBA{B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, A: 255}
	Pink   = color.RGBA{R: 255, B: 255, A: 255}
	Eraser = color.RGBA{A: 255}
)

// Point is a screen position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one straight piece of a stroke.
type Segment struct {
	From  Point      `json:"from"`
	To    Point      `json:"to"`
	Color color.RGBA `json:"color"`
	Width int        `json:"width"`
}

// Result reports what happened to a sink command. Callers ignore it: the
// overlay is best effort and a dropped command is never retried.
type Result int

const (
	Delivered Result = iota
	Dropped
)

// Sink is the overlay command contract.
type Sink interface {
	Show() Result
	Hide() Result
	DrawSegment(s Segment) Result
	Clear() Result
}

// Brush is the active stroke color and thickness.
type Brush struct {
	Color           color.RGBA
	Thickness       int
	EraserThickness int
}

// Width returns the line width for the current color.
func (b Brush) Width() int {
	if b.Color == Eraser {
		return b.EraserThickness
	}
	return b.Thickness
}

// Continuity tracks the last drawn point of the current stroke.
type Continuity struct {
	Brush Brush

	last    Point
	hasLast bool
}

// NewContinuity creates a tracker drawing with brush.
func NewContinuity(brush Brush) *Continuity {
	return &Continuity{Brush: brush}
}

// Update feeds the smoothed pointer position and whether the drawing gesture
// is held. While active it returns the segment from the previous point to p;
// the first active sample only anchors the stroke. Inactive samples end the
// stroke so the next one starts disconnected.
func (c *Continuity) Update(p Point, active bool) (Segment, bool) {
	if !active {
		c.hasLast = false
		return Segment{}, false
	}

	if !c.hasLast {
		c.last, c.hasLast = p, true
		return Segment{}, false
	}

	seg := Segment{From: c.last, To: p, Color: c.Brush.Color, Width: c.Brush.Width()}
	c.last = p
	return seg, true
}

// Drawing reports whether a stroke is in progress.
func (c *Continuity) Drawing() bool {
	return c.hasLast
}

// Reset ends the current stroke.
func (c *Continuity) Reset() {
	c.hasLast = false
}

// Discard is a Sink that drops everything.
type Discard struct{}

func (Discard) Show() Result               { return Dropped }
func (Discard) Hide() Result               { return Dropped }
func (Discard) DrawSegment(Segment) Result { return Dropped }
func (Discard) Clear() Result              { return Dropped }
