package input

import (
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/hand"
	"github.com/google/go-cmp/cmp"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

type sample struct {
	ms       int
	distance float64
}

func TestClickSession(t *testing.T) {
	tests := []struct {
		name      string
		samples   []sample
		wantFires int
	}{
		{
			name:      "held past hold time fires once",
			samples:   []sample{{0, 20}, {50, 20}, {100, 20}, {150, 20}, {300, 20}, {900, 20}},
			wantFires: 1,
		},
		{
			name:      "short dip fires nothing",
			samples:   []sample{{0, 20}, {50, 20}, {90, 50}, {120, 60}},
			wantFires: 0,
		},
		{
			name:      "never below threshold",
			samples:   []sample{{0, 40}, {100, 35}, {200, 80}},
			wantFires: 0,
		},
		{
			name: "two episodes fire twice",
			samples: []sample{
				{0, 10}, {150, 10}, {200, 60},
				{300, 10}, {450, 10}, {600, 10},
			},
			wantFires: 2,
		},
		{
			name:      "arming sample never fires",
			samples:   []sample{{0, 10}},
			wantFires: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewClickSession(35, 100*time.Millisecond)
			fires := 0
			for _, smp := range tt.samples {
				if s.Update(smp.distance, at(smp.ms)) {
					fires++
				}
			}
			if fires != tt.wantFires {
				t.Errorf("fires = %d, want %d", fires, tt.wantFires)
			}
		})
	}
}

func TestClickSession_States(t *testing.T) {
	s := NewClickSession(35, 100*time.Millisecond)

	steps := []struct {
		sample
		want SessionState
	}{
		{sample{0, 50}, Idle},
		{sample{10, 30}, Armed},
		{sample{60, 30}, Armed},
		{sample{110, 30}, Fired},
		{sample{500, 30}, Fired},
		{sample{510, 35}, Idle},
	}
	for i, st := range steps {
		s.Update(st.distance, at(st.ms))
		if s.State() != st.want {
			t.Errorf("step %d: state = %v, want %v", i, s.State(), st.want)
		}
	}

	s.Update(10, at(600))
	s.Reset()
	if s.State() != Idle {
		t.Errorf("state after Reset = %v, want idle", s.State())
	}
}

func TestDragSession(t *testing.T) {
	s := NewDragSession(35, 500*time.Millisecond)

	var got []DragTransition
	for _, smp := range []sample{
		{0, 20}, {200, 20}, {499, 20}, {500, 20}, {700, 20}, {900, 80}, {1000, 80},
	} {
		if tr := s.Update(smp.distance, at(smp.ms)); tr != DragNone {
			got = append(got, tr)
		}
	}

	want := []DragTransition{DragPress, DragRelease}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
	if s.Active() {
		t.Error("drag should be inactive after release")
	}
}

func TestDragSession_ReleaseWithoutPress(t *testing.T) {
	s := NewDragSession(35, 500*time.Millisecond)
	s.Update(10, at(0))
	s.Update(10, at(100))

	if tr := s.Update(90, at(200)); tr != DragNone {
		t.Errorf("opening an unfired pinch = %v, want DragNone", tr)
	}
}

func TestDragSession_Release(t *testing.T) {
	s := NewDragSession(35, 0)
	s.Update(10, at(0))
	if tr := s.Update(10, at(1)); tr != DragPress {
		t.Fatalf("expected press, got %v", tr)
	}

	if !s.Release() {
		t.Error("Release() on active drag should report true")
	}
	if s.Release() {
		t.Error("second Release() should report false")
	}
	if s.State() != Idle {
		t.Errorf("state = %v, want idle", s.State())
	}
}

func TestClickAndDragShareOnePinch(t *testing.T) {
	click := NewClickSession(35, 100*time.Millisecond)
	drag := NewDragSession(35, 500*time.Millisecond)

	var clicks, presses int
	for ms := 0; ms <= 600; ms += 50 {
		if click.Update(10, at(ms)) {
			clicks++
		}
		if drag.Update(10, at(ms)) == DragPress {
			presses++
		}
	}

	if clicks != 1 || presses != 1 {
		t.Errorf("clicks = %d, presses = %d, want 1 and 1", clicks, presses)
	}
}

func TestDoubleClickTracker(t *testing.T) {
	t.Run("pair within interval", func(t *testing.T) {
		d := NewDoubleClickTracker(500 * time.Millisecond)

		if d.Observe(true, at(0)) {
			t.Error("first click should not be a double")
		}
		if d.Observe(false, at(200)) {
			t.Error("no click, no double")
		}
		if !d.Observe(true, at(400)) {
			t.Error("second click within interval should be a double")
		}
		if d.Observe(true, at(600)) {
			t.Error("third rapid click must not pair with the consumed double")
		}
		if !d.Observe(true, at(800)) {
			t.Error("fourth click should pair with the third")
		}
	})

	t.Run("interval boundary is inclusive", func(t *testing.T) {
		d := NewDoubleClickTracker(500 * time.Millisecond)
		d.Observe(true, at(0))
		if !d.Observe(true, at(500)) {
			t.Error("click exactly at max interval should pair")
		}
	})

	t.Run("slow clicks do not pair", func(t *testing.T) {
		d := NewDoubleClickTracker(500 * time.Millisecond)
		d.Observe(true, at(0))
		if d.Observe(true, at(501)) {
			t.Error("click after max interval should not pair")
		}
		if !d.Observe(true, at(900)) {
			t.Error("the slow click should start a new pair")
		}
	})

	t.Run("click sessions drive the tracker", func(t *testing.T) {
		click := NewClickSession(35, 100*time.Millisecond)
		d := NewDoubleClickTracker(500 * time.Millisecond)

		doubles := 0
		// Three quick pinch episodes, 100ms hold each.
		for _, smp := range []sample{
			{0, 10}, {100, 10}, {150, 60},
			{200, 10}, {300, 10}, {350, 60},
			{400, 10}, {500, 10}, {550, 60},
		} {
			if d.Observe(click.Update(smp.distance, at(smp.ms)), at(smp.ms)) {
				doubles++
			}
		}
		if doubles != 1 {
			t.Errorf("doubles = %d, want 1", doubles)
		}
	})
}

func TestScrollSession(t *testing.T) {
	pts := func(y int) (hand.Point, hand.Point) {
		return hand.Point{X: 300, Y: y}, hand.Point{X: 340, Y: y + 4}
	}

	t.Run("first call only seeds", func(t *testing.T) {
		s := NewScrollSession(4, 2, 100)
		a, b := pts(200)
		if _, ok := s.Update(a, b); ok {
			t.Error("first call should not scroll")
		}
	})

	t.Run("moving down scrolls negative", func(t *testing.T) {
		s := NewScrollSession(4, 2, 100)
		var amounts []int
		for y := 200; y <= 260; y += 10 {
			a, b := pts(y)
			if sc, ok := s.Update(a, b); ok {
				amounts = append(amounts, sc.Amount)
			}
		}
		if len(amounts) != 6 {
			t.Fatalf("expected 6 scrolls, got %v", amounts)
		}
		for _, a := range amounts {
			if a != -250 {
				t.Errorf("amount = %d, want -250", a)
			}
		}
	})

	t.Run("moving up scrolls positive at the midpoint", func(t *testing.T) {
		s := NewScrollSession(4, 2, 100)
		a, b := pts(300)
		s.Update(a, b)
		a, b = pts(292)
		sc, ok := s.Update(a, b)
		if !ok {
			t.Fatal("expected scroll")
		}
		if sc.Amount != 200 {
			t.Errorf("amount = %d, want 200", sc.Amount)
		}
		if sc.At != (hand.Point{X: 320, Y: 294}) {
			t.Errorf("at = %v, want {320 294}", sc.At)
		}
	})

	t.Run("static fingers never scroll", func(t *testing.T) {
		s := NewScrollSession(4, 2, 100)
		for i := 0; i < 10; i++ {
			a, b := pts(250)
			if _, ok := s.Update(a, b); ok {
				t.Fatal("static fingers should not scroll")
			}
		}
	})

	t.Run("movement below threshold is ignored but tracked", func(t *testing.T) {
		s := NewScrollSession(4, 2, 100)
		a, b := pts(250)
		s.Update(a, b)
		a, b = pts(251)
		if _, ok := s.Update(a, b); ok {
			t.Error("1px movement should be below threshold")
		}
		// previous height advanced to 251, so moving to 253 is again only 2px.
		a, b = pts(253)
		if sc, ok := s.Update(a, b); !ok || sc.Amount != -50 {
			t.Errorf("Update = %+v, %v, want -50", sc, ok)
		}
	})

	t.Run("reset reseeds", func(t *testing.T) {
		s := NewScrollSession(4, 2, 100)
		a, b := pts(100)
		s.Update(a, b)
		s.Reset()
		a, b = pts(400)
		if _, ok := s.Update(a, b); ok {
			t.Error("first call after reset should only seed")
		}
	})
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(nil)
	var _ Injector = r
	var _ Injector = (*RobotInjector)(nil)

	r.Move(10, 20)
	r.Click(ButtonLeft)
	r.Toggle(ButtonLeft, true)
	r.Scroll(-3)

	if !r.Held(ButtonLeft) {
		t.Error("left should be held")
	}
	r.Toggle(ButtonLeft, false)

	want := []string{"click left", "down left", "scroll -3", "up left"}
	if diff := cmp.Diff(want, r.Actions()); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
	if x, y := r.Position(); x != 10 || y != 20 {
		t.Errorf("Position() = (%d, %d)", x, y)
	}
	if len(r.Calls()) != 5 {
		t.Errorf("expected 5 calls, got %d", len(r.Calls()))
	}
}

func TestEventKind_String(t *testing.T) {
	if EventDoubleClick.String() != "double_click" {
		t.Errorf("String() = %q", EventDoubleClick.String())
	}
	if EventKind(99).String() != "EventKind(99)" {
		t.Errorf("String() = %q", EventKind(99).String())
	}
}
