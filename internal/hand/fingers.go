package hand

import "github.com/ayusman/mudra/internal/detector"

// Finger positions within a Fingers vector.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
)

// Fingers records which fingers are raised, ordered thumb to pinky.
type Fingers [5]bool

// Count returns the number of raised fingers.
func (f Fingers) Count() int {
	n := 0
	for _, up := range f {
		if up {
			n++
		}
	}
	return n
}

// String renders the vector as five digits, e.g. "01000".
func (f Fingers) String() string {
	b := make([]byte, len(f))
	for i, up := range f {
		b[i] = '0'
		if up {
			b[i] = '1'
		}
	}
	return string(b)
}

// FingersUp classifies the raised fingers of h.
func FingersUp(h Hand) Fingers {
	return FingersUpLandmarks(h.Landmarks, h.Handedness)
}

// FingersUpLandmarks classifies raised fingers from pixel landmarks. A finger
// is up when its tip is above its PIP joint. The thumb extends sideways, so it
// compares x against the IP joint, assuming a mirrored image: a right thumb is
// up when its tip is left of the joint, a left thumb when it is right of it.
// Anything but "Left" is treated as a right hand. Fewer than 21 landmarks
// yields no fingers up.
func FingersUpLandmarks(lms []Landmark, side Handedness) Fingers {
	var f Fingers
	if len(lms) < detector.NumLandmarks {
		return f
	}

	tip, joint := lms[detector.ThumbTip], lms[detector.ThumbIP]
	if side == Left {
		f[Thumb] = tip.X > joint.X
	} else {
		f[Thumb] = tip.X < joint.X
	}

	for i := Index; i <= Pinky; i++ {
		tipID := detector.TipIDs[i]
		f[i] = lms[tipID].Y < lms[tipID-2].Y
	}

	return f
}
