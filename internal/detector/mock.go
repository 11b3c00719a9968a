package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns either a fixed set of hands or plays back a scripted sequence,
// one entry per Detect call.
type MockDetector struct {
	mu       sync.Mutex
	hands    []HandLandmarks
	sequence [][]HandLandmarks
	err      error
	calls    int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
	m.sequence = nil
}

// SetSequence scripts the result of consecutive Detect calls. Once the
// sequence is exhausted Detect reports no hands.
func (m *MockDetector) SetSequence(frames [][]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = frames
	m.hands = nil
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.sequence != nil {
		if len(m.sequence) == 0 {
			return nil, nil
		}
		next := m.sequence[0]
		m.sequence = m.sequence[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Finger geometry used by the fixtures. Coordinates describe a right hand
// as it appears in a mirrored camera image: palm facing the camera, thumb
// pointing toward smaller x.
var fingerBaseX = [5]float64{0, 0.44, 0.50, 0.56, 0.61}

// FixtureHand builds a right hand with the given fingers raised, ordered
// thumb, index, middle, ring, pinky.
func FixtureHand(raised [5]bool) HandLandmarks {
	h := HandLandmarks{Handedness: Right, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.85}

	if raised[0] {
		h.Points[ThumbCMC] = Point3D{X: 0.44, Y: 0.76}
		h.Points[ThumbMCP] = Point3D{X: 0.40, Y: 0.72}
		h.Points[ThumbIP] = Point3D{X: 0.36, Y: 0.68}
		h.Points[ThumbTip] = Point3D{X: 0.32, Y: 0.64}
	} else {
		h.Points[ThumbCMC] = Point3D{X: 0.44, Y: 0.76}
		h.Points[ThumbMCP] = Point3D{X: 0.42, Y: 0.72}
		h.Points[ThumbIP] = Point3D{X: 0.43, Y: 0.68}
		h.Points[ThumbTip] = Point3D{X: 0.46, Y: 0.74}
	}

	for f := 1; f < 5; f++ {
		x := fingerBaseX[f]
		mcp := TipIDs[f] - 3
		if raised[f] {
			h.Points[mcp] = Point3D{X: x, Y: 0.65}
			h.Points[mcp+1] = Point3D{X: x, Y: 0.55}
			h.Points[mcp+2] = Point3D{X: x, Y: 0.47}
			h.Points[mcp+3] = Point3D{X: x, Y: 0.40}
		} else {
			h.Points[mcp] = Point3D{X: x, Y: 0.65}
			h.Points[mcp+1] = Point3D{X: x, Y: 0.58, Z: -0.03}
			h.Points[mcp+2] = Point3D{X: x, Y: 0.62, Z: -0.04}
			h.Points[mcp+3] = Point3D{X: x, Y: 0.66, Z: -0.02}
		}
	}

	return h
}

// MirrorHand returns the hand reflected about the wrist's vertical axis with
// the opposite handedness label.
func MirrorHand(h HandLandmarks) HandLandmarks {
	axis := h.Points[Wrist].X
	for i := range h.Points {
		h.Points[i].X = 2*axis - h.Points[i].X
	}
	if h.Handedness == Left {
		h.Handedness = Right
	} else {
		h.Handedness = Left
	}
	return h
}

// Pinch returns the hand with the thumb tip moved onto the target landmark.
func Pinch(h HandLandmarks, target int) HandLandmarks {
	h.Points[ThumbTip] = h.Points[target]
	return h
}

// PointLandmarks returns a hand with only the index finger raised.
func PointLandmarks() HandLandmarks {
	return FixtureHand([5]bool{false, true, false, false, false})
}

// PeaceLandmarks returns a hand with index and middle fingers raised.
func PeaceLandmarks() HandLandmarks {
	return FixtureHand([5]bool{false, true, true, false, false})
}

// OpenPalmLandmarks returns a hand with every finger raised.
func OpenPalmLandmarks() HandLandmarks {
	return FixtureHand([5]bool{true, true, true, true, true})
}

// FistLandmarks returns a hand with every finger curled.
func FistLandmarks() HandLandmarks {
	return FixtureHand([5]bool{})
}

// ThumbsUpLandmarks returns a hand with only the thumb raised.
func ThumbsUpLandmarks() HandLandmarks {
	return FixtureHand([5]bool{true, false, false, false, false})
}
