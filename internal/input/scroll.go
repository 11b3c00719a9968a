package input

import (
	"math"

	"github.com/ayusman/mudra/internal/hand"
)

// ScrollSession converts the vertical motion of two fingertips into scroll steps.
type ScrollSession struct {
	Smoothing float64
	Threshold float64
	Speed     float64

	prevY  float64
	seeded bool
}

// Scroll is one emitted scroll step located at the fingertip midpoint.
type Scroll struct {
	Amount int
	At     hand.Point
}

// NewScrollSession creates a scroll session. A smoothing factor below 1 is treated as 1.
func NewScrollSession(smoothing, threshold, speed float64) *ScrollSession {
	return &ScrollSession{Smoothing: smoothing, Threshold: threshold, Speed: speed}
}

// Update feeds the two fingertip positions for this frame. Moving the
// fingers up scrolls positive, down negative. The first call only records
// the starting height.
func (s *ScrollSession) Update(a, b hand.Point) (Scroll, bool) {
	avgY := float64(a.Y+b.Y) / 2
	avgX := float64(a.X+b.X) / 2

	if !s.seeded {
		s.prevY, s.seeded = avgY, true
		return Scroll{}, false
	}

	smoothing := math.Max(s.Smoothing, 1)
	delta := (s.prevY - avgY) / smoothing
	s.prevY = avgY

	if math.Abs(delta) < s.Threshold/smoothing {
		return Scroll{}, false
	}

	amount := int(delta * s.Speed)
	if amount == 0 {
		return Scroll{}, false
	}
	return Scroll{Amount: amount, At: hand.Point{X: int(avgX), Y: int(avgY)}}, true
}

// Reset forgets the previous height so the next Update reseeds.
func (s *ScrollSession) Reset() {
	s.prevY, s.seeded = 0, false
}
