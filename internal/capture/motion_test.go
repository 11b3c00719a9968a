package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func blankFrame(t *testing.T, value float64) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	m.SetTo(gocv.NewScalar(value, value, value, 0))
	return m
}

func TestNewMotionDetector(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		want      float64
	}{
		{"explicit threshold", 5.0, 5.0},
		{"zero falls back to default", 0, DefaultMotionThreshold},
		{"negative falls back to default", -1, DefaultMotionThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := NewMotionDetector(tt.threshold)
			defer md.Close()

			if md.threshold != tt.want {
				t.Errorf("threshold = %f, want %f", md.threshold, tt.want)
			}
			if md.seeded {
				t.Error("detector should not be seeded initially")
			}
		})
	}
}

func TestMotionDetector_NoMotion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame1 := blankFrame(t, 0)
	defer frame1.Close()
	frame2 := blankFrame(t, 0)
	defer frame2.Close()

	if m := md.Detect(&frame1); m.Detected || m.Changed != 0 {
		t.Errorf("first frame = %+v, want no motion", m)
	}
	if m := md.Detect(&frame2); m.Detected {
		t.Errorf("identical frames should not detect motion, changed = %f", m.Changed)
	}
}

func TestMotionDetector_WithMotion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	black := blankFrame(t, 0)
	defer black.Close()
	white := blankFrame(t, 255)
	defer white.Close()

	md.Detect(&black)
	m := md.Detect(&white)
	if !m.Detected {
		t.Errorf("black to white should detect motion, changed = %f", m.Changed)
	}
	if m.Changed < 50.0 {
		t.Errorf("changed = %f, expected > 50%% for black to white", m.Changed)
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	black := blankFrame(t, 0)
	defer black.Close()
	white := blankFrame(t, 255)
	defer white.Close()

	md.Detect(&black)
	if !md.seeded {
		t.Error("detector should be seeded after first Detect")
	}

	md.Reset()
	if md.seeded || !md.prev.Empty() {
		t.Error("Reset should drop the baseline")
	}

	// After a reset the next frame reseeds instead of reporting motion.
	if m := md.Detect(&white); m.Detected {
		t.Error("first frame after Reset should not detect motion")
	}
}

func TestMotionDetector_EmptyFrame(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	if m := md.Detect(nil); m.Detected {
		t.Error("nil frame should not detect motion")
	}
}

func TestMotionDetector_SetThreshold(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	md.SetThreshold(5.0)
	if got := md.Threshold(); got != 5.0 {
		t.Errorf("Threshold() = %f, want 5.0", got)
	}

	md.SetThreshold(-1.0)
	if got := md.Threshold(); got != 5.0 {
		t.Errorf("negative threshold should be ignored, got %f", got)
	}
}

func TestMotionDetector_CloseTwice(t *testing.T) {
	md := NewMotionDetector(1.0)
	md.Close()
	md.Close()
}
