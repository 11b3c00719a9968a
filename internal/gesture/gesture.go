// Package gesture labels static hand poses from their raised-finger vector.
package gesture

import (
	"fmt"

	"github.com/ayusman/mudra/internal/hand"
)

// Kind enumerates the known gesture labels.
type Kind int

const (
	NoHand Kind = iota
	Fist
	OpenHand
	Point
	Peace
	ThumbsUp
	RockOn
	Gun
	Custom
)

var kindNames = map[Kind]string{
	NoHand:   "No Hand",
	Fist:     "Fist",
	OpenHand: "Open Hand",
	Point:    "Point",
	Peace:    "Peace",
	ThumbsUp: "Thumbs Up",
	RockOn:   "Rock On",
	Gun:      "Gun",
	Custom:   "Custom",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Gesture is a classified pose. Raised is only meaningful for Custom.
type Gesture struct {
	Kind   Kind
	Raised int
}

func (g Gesture) String() string {
	if g.Kind == Custom {
		return fmt.Sprintf("Custom (%d up)", g.Raised)
	}
	return g.Kind.String()
}

// MarshalText renders the label, so gestures serialize as strings.
func (g Gesture) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// patterns maps exact finger vectors (thumb..pinky) to labels.
var patterns = map[hand.Fingers]Kind{
	{false, false, false, false, false}: Fist,
	{true, true, true, true, true}:      OpenHand,
	{false, true, false, false, false}:  Point,
	{false, true, true, false, false}:   Peace,
	{true, false, false, false, false}:  ThumbsUp,
	{true, false, false, false, true}:   RockOn,
	{true, true, false, false, false}:   Gun,
}

// Classify maps a finger vector to its gesture. Vectors outside the pattern
// table fall back to Custom carrying the raised-finger count.
func Classify(f hand.Fingers) Gesture {
	if kind, ok := patterns[f]; ok {
		return Gesture{Kind: kind}
	}
	return Gesture{Kind: Custom, Raised: f.Count()}
}

// ClassifyHand classifies h, reporting NoHand for an empty hand.
func ClassifyHand(h hand.Hand) Gesture {
	if h.Empty() {
		return Gesture{Kind: NoHand}
	}
	return Classify(hand.FingersUp(h))
}
