package capture

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gocv.io/x/gocv"
)

func TestMockCamera_BlankFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	cam := NewMockCamera(320, 240)
	var _ Camera = cam

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() before Open: err = %v, want ErrCameraNotOpen", err)
	}

	cam.Open()
	defer cam.Close()

	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	defer frame.Close()

	if frame.Cols() != 320 || frame.Rows() != 240 {
		t.Errorf("frame = %dx%d, want 320x240", frame.Cols(), frame.Rows())
	}
	if px := frame.GetVecbAt(120, 160); px[0] != 0 || px[1] != 0 || px[2] != 0 {
		t.Errorf("blank frame pixel = %v, want black", px)
	}
	if cam.Reads() != 1 {
		t.Errorf("Reads() = %d, want 1", cam.Reads())
	}
}

func TestMockCamera_ScriptedFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	a := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer a.Close()
	b := gocv.NewMatWithSize(20, 20, gocv.MatTypeCV8UC3)
	defer b.Close()

	cam := NewMockCamera(640, 480)
	cam.SetFrames([]*gocv.Mat{&a, &b}, false)
	cam.Open()
	defer cam.Close()

	for _, want := range []int{10, 20} {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if f.Rows() != want {
			t.Errorf("rows = %d, want %d", f.Rows(), want)
		}
		f.Close()
	}

	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error once a non-looping script is exhausted")
	}
}

func TestMockCamera_FPSHistory(t *testing.T) {
	cam := NewMockCamera(640, 480)
	cam.SetFPS(30)
	cam.SetFPS(0)
	cam.SetFPS(5)

	if diff := cmp.Diff([]int{30, 5}, cam.FPSHistory()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if cam.FPS() != 5 {
		t.Errorf("FPS() = %d, want 5", cam.FPS())
	}
}
