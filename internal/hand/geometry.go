// Package hand converts detector output into pixel-space hand geometry and
// classifies which fingers are raised.
package hand

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Landmark is one anatomically indexed hand point in pixel space.
type Landmark struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

// Point returns the landmark position.
func (l Landmark) Point() Point {
	return Point{X: l.X, Y: l.Y}
}

// BoundingBox is the tight pixel extent of a hand. No margin is applied.
type BoundingBox struct {
	XMin int `json:"xmin"`
	YMin int `json:"ymin"`
	XMax int `json:"xmax"`
	YMax int `json:"ymax"`
	ok   bool
}

// Empty reports whether the box was computed from no landmarks.
func (b BoundingBox) Empty() bool {
	return !b.ok
}

// Handedness is the side label of a detected hand.
type Handedness string

const (
	Left  Handedness = detector.Left
	Right Handedness = detector.Right
)

// Hand is one detected hand in pixel space. A zero Hand means "no hand".
type Hand struct {
	Landmarks  []Landmark  `json:"landmarks"`
	Handedness Handedness  `json:"handedness"`
	Box        BoundingBox `json:"box"`
}

// Empty reports whether the hand carries no landmarks.
func (h Hand) Empty() bool {
	return len(h.Landmarks) == 0
}

// Point returns the pixel position of landmark id.
func (h Hand) Point(id int) (Point, bool) {
	if id < 0 || id >= len(h.Landmarks) {
		return Point{}, false
	}
	return h.Landmarks[id].Point(), true
}

// FindPosition converts the hand at index handNo into pixel space for an
// image of the given size. An out of range index or an empty detection
// yields the empty Hand.
func FindPosition(hands []detector.HandLandmarks, width, height, handNo int) Hand {
	if handNo < 0 || handNo >= len(hands) {
		return Hand{}
	}
	return toPixels(hands[handNo], width, height)
}

// FindPositions converts every detected hand, preserving detector order.
func FindPositions(hands []detector.HandLandmarks, width, height int) []Hand {
	out := make([]Hand, 0, len(hands))
	for _, h := range hands {
		out = append(out, toPixels(h, width, height))
	}
	return out
}

func toPixels(h detector.HandLandmarks, width, height int) Hand {
	lms := make([]Landmark, detector.NumLandmarks)
	box := BoundingBox{
		XMin: math.MaxInt, YMin: math.MaxInt,
		XMax: math.MinInt, YMax: math.MinInt,
		ok: true,
	}

	for i, p := range h.Points {
		x := int(p.X * float64(width))
		y := int(p.Y * float64(height))
		lms[i] = Landmark{ID: i, X: x, Y: y}

		box.XMin = min(box.XMin, x)
		box.XMax = max(box.XMax, x)
		box.YMin = min(box.YMin, y)
		box.YMax = max(box.YMax, y)
	}

	return Hand{
		Landmarks:  lms,
		Handedness: Handedness(h.Handedness),
		Box:        box,
	}
}

// Distance is a measurement between two landmarks.
type Distance struct {
	Length float64 `json:"length"`
	P1     Point   `json:"p1"`
	P2     Point   `json:"p2"`
	Mid    Point   `json:"mid"`
	ok     bool
}

// Valid reports whether the measurement was taken from real landmarks.
func (d Distance) Valid() bool {
	return d.ok
}

// FindDistance measures the Euclidean pixel distance between landmarks a and b.
// Empty landmarks or unknown ids give the zero Distance.
func FindDistance(lms []Landmark, a, b int) Distance {
	if a < 0 || b < 0 || a >= len(lms) || b >= len(lms) {
		return Distance{}
	}

	p1, p2 := lms[a].Point(), lms[b].Point()
	return Distance{
		Length: math.Hypot(float64(p2.X-p1.X), float64(p2.Y-p1.Y)),
		P1:     p1,
		P2:     p2,
		Mid:    Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2},
		ok:     true,
	}
}
