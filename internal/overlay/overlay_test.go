package overlay

import (
	"testing"

	"github.com/ayusman/mudra/internal/paint"
)

func TestWindow_DropsWhenSaturated(t *testing.T) {
	w := New("test", 640, 480, 2, nil)
	var _ paint.Sink = w

	results := []paint.Result{
		w.Show(),
		w.DrawSegment(paint.Segment{Width: 3}),
		w.DrawSegment(paint.Segment{Width: 3}),
		w.Clear(),
	}

	want := []paint.Result{paint.Delivered, paint.Delivered, paint.Dropped, paint.Dropped}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("command %d: result = %v, want %v", i, results[i], want[i])
		}
	}
	if w.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", w.Dropped())
	}
}

func TestWindow_DefaultBuffer(t *testing.T) {
	w := New("test", 640, 480, 0, nil)
	if cap(w.cmds) != DefaultBuffer {
		t.Errorf("buffer = %d, want %d", cap(w.cmds), DefaultBuffer)
	}
}

func TestCanvas_DrawAndClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	c := NewCanvas(200, 100)
	defer c.Close()

	c.Draw(paint.Segment{
		From:  paint.Point{X: 10, Y: 50},
		To:    paint.Point{X: 190, Y: 50},
		Color: paint.Red,
		Width: 5,
	})

	px := c.Mat().GetVecbAt(50, 100)
	// BGR order.
	if px[2] != 255 || px[0] != 0 {
		t.Errorf("pixel on stroke = %v, want red", px)
	}

	off := c.Mat().GetVecbAt(10, 100)
	if off[0] != 0 || off[1] != 0 || off[2] != 0 {
		t.Errorf("pixel off stroke = %v, want black", off)
	}

	c.Draw(paint.Segment{
		From:  paint.Point{X: 90, Y: 50},
		To:    paint.Point{X: 110, Y: 50},
		Color: paint.Eraser,
		Width: 20,
	})
	if erased := c.Mat().GetVecbAt(50, 100); erased[2] != 0 {
		t.Errorf("erased pixel = %v, want black", erased)
	}

	c.Draw(paint.Segment{From: paint.Point{X: 0, Y: 0}, To: paint.Point{X: 199, Y: 99}, Color: paint.Green, Width: 3})
	c.Clear()
	if n := countNonBlack(c); n != 0 {
		t.Errorf("%d pixels left after Clear", n)
	}
}

func countNonBlack(c *Canvas) int {
	m := c.Mat()
	n := 0
	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			v := m.GetVecbAt(row, col)
			if v[0] != 0 || v[1] != 0 || v[2] != 0 {
				n++
			}
		}
	}
	return n
}
